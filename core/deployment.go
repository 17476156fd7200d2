package core

import (
	"fmt"

	"tithe/config"
	"tithe/core/events"
	"tithe/core/state"
	"tithe/native/governance"
	"tithe/native/hook"
	"tithe/storage"
)

// Deployment assembles one hook instance: the state manager over the supplied
// database, the governance controller, and the settlement engine bound to the
// host ledger. Every piece of mutable state is owned by the instance, so
// parallel deployments (including parallel test instances) never share state.
type Deployment struct {
	cfg        *config.Config
	db         storage.Database
	state      *state.Manager
	controller *governance.Controller
	engine     *hook.Engine
}

// NewDeployment wires a hook instance from validated configuration. The
// ledger is the host's obligation record for the enclosing transaction scope.
func NewDeployment(cfg *config.Config, db storage.Database, ledger hook.Ledger, emitter events.Emitter) (*Deployment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("core: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("core: database is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("core: host ledger is required")
	}

	manager := state.NewManager(db)

	controller := governance.NewController()
	controller.SetState(manager)
	controller.SetEmitter(emitter)
	controller.SetPolicy(governance.Policy{
		MaxRateBps:    cfg.MaxRateBps,
		TimelockDelay: cfg.TimelockDelay(),
	})
	if err := controller.Bootstrap(cfg.ManagerAddress(), cfg.GuardianAddress()); err != nil {
		return nil, fmt.Errorf("core: bootstrap governance: %w", err)
	}

	engine := hook.NewEngine(ledger, controller, cfg.RecipientAddress())
	engine.SetEmitter(emitter)
	engine.SetMinDonation(cfg.MinDonation())
	if cfg.PausePolicy == config.PausePolicyPassthrough {
		engine.SetPausePolicy(hook.PausePassthrough)
	}

	return &Deployment{
		cfg:        cfg,
		db:         db,
		state:      manager,
		controller: controller,
		engine:     engine,
	}, nil
}

// Engine returns the settlement engine exposing the PreSwap/PostSwap
// callbacks the host pipeline invokes.
func (d *Deployment) Engine() *hook.Engine { return d.engine }

// Controller returns the governance controller.
func (d *Deployment) Controller() *governance.Controller { return d.controller }

// State returns the state manager, primarily for inspection tooling.
func (d *Deployment) State() *state.Manager { return d.state }

// Close releases the underlying database.
func (d *Deployment) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}
