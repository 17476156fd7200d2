package governance

import (
	"time"

	"tithe/core/events"
	"tithe/native/donation"
	"tithe/observability"
)

// controllerState exposes the persistence helpers the controller requires.
type controllerState interface {
	GovernanceState() (State, bool, error)
	PutGovernanceState(State) error
	PoolFeeConfig(poolID [32]byte) (PoolConfig, bool, error)
	PutPoolFeeConfig(poolID [32]byte, cfg PoolConfig) error
	Paused() (bool, error)
	SetPausedFlag(bool) error
}

// Policy captures the runtime knobs controlling privileged operations. Rates
// are expressed in units of donation.RateDenominator; the timelock delay is
// the mandatory minimum between initiating and completing a manager handover.
type Policy struct {
	MaxRateBps    uint32
	TimelockDelay time.Duration
}

// DefaultTimelockDelay is applied when a deployment does not configure its
// own handover delay.
const DefaultTimelockDelay = 24 * time.Hour

// Controller orchestrates the two authority tracks of the hook: the manager
// (per-pool donation rate and its own succession) and the guardian (emergency
// pause only). The tracks deliberately do not overlap. Heights and timestamps
// are supplied by the host per transaction; the controller owns no clock.
type Controller struct {
	state         controllerState
	emitter       events.Emitter
	maxRateBps    uint32
	timelockDelay time.Duration
}

// NewController constructs a controller with default no-op dependencies.
func NewController() *Controller {
	return &Controller{
		emitter:       events.NoopEmitter{},
		maxRateBps:    donation.MaxRateBps,
		timelockDelay: DefaultTimelockDelay,
	}
}

// SetState wires the controller to the state backend.
func (c *Controller) SetState(state controllerState) { c.state = state }

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (c *Controller) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		c.emitter = events.NoopEmitter{}
		return
	}
	c.emitter = emitter
}

// SetPolicy updates the runtime policy. Zero fields keep their defaults.
func (c *Controller) SetPolicy(policy Policy) {
	if c == nil {
		return
	}
	if policy.MaxRateBps > 0 {
		c.maxRateBps = policy.MaxRateBps
	}
	if policy.TimelockDelay > 0 {
		c.timelockDelay = policy.TimelockDelay
	}
}

// Bootstrap writes the initial authority records unless state already holds
// them, so re-running deployment wiring never clobbers a live handover.
func (c *Controller) Bootstrap(manager, guardian [20]byte) error {
	if c == nil || c.state == nil {
		return errStateNotConfigured
	}
	if _, ok, err := c.state.GovernanceState(); err != nil {
		return err
	} else if ok {
		return nil
	}
	return c.state.PutGovernanceState(State{Manager: manager, Guardian: guardian})
}

func (c *Controller) loadState() (State, error) {
	if c == nil || c.state == nil {
		return State{}, errStateNotConfigured
	}
	st, ok, err := c.state.GovernanceState()
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, ErrNotInitialised
	}
	return st, nil
}

// SetPoolFee writes a new donation rate for the pool. Callable by the manager
// only, capped at the policy maximum, and throttled to one write per pool per
// height.
func (c *Controller) SetPoolFee(poolID [32]byte, rateBps uint32, actor [20]byte, height uint64) error {
	st, err := c.loadState()
	if err != nil {
		return err
	}
	if actor != st.Manager {
		return ErrNotManager
	}
	if rateBps > c.maxRateBps {
		return ErrRateAboveCap
	}
	cfg, ok, err := c.state.PoolFeeConfig(poolID)
	if err != nil {
		return err
	}
	if ok && cfg.LastUpdateHeight >= height {
		return ErrRateUpdateThrottled
	}
	cfg.RateBps = rateBps
	cfg.LastUpdateHeight = height
	if err := c.state.PutPoolFeeConfig(poolID, cfg); err != nil {
		return err
	}
	c.emit(events.PoolFeeUpdated{PoolID: poolID, RateBps: rateBps, Height: height, Manager: actor})
	observability.Donations().RecordRateUpdate()
	return nil
}

// PoolRate returns the configured donation rate for the pool, defaulting to
// zero until the first write.
func (c *Controller) PoolRate(poolID [32]byte) (uint32, error) {
	if c == nil || c.state == nil {
		return 0, errStateNotConfigured
	}
	cfg, ok, err := c.state.PoolFeeConfig(poolID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return cfg.RateBps, nil
}

// InitiateManagerUpdate proposes a new manager, replacing any pending
// proposal. The handover becomes completable once the timelock delay has
// elapsed relative to the supplied host time.
func (c *Controller) InitiateManagerUpdate(candidate, actor [20]byte, now time.Time) error {
	st, err := c.loadState()
	if err != nil {
		return err
	}
	if actor != st.Manager {
		return ErrNotManager
	}
	if candidate == ([20]byte{}) {
		return ErrCandidateZero
	}
	st.PendingManager = candidate
	st.PendingEffectiveAt = now.Add(c.timelockDelay)
	st.HasPending = true
	if err := c.state.PutGovernanceState(st); err != nil {
		return err
	}
	c.emit(events.ManagerUpdateInitiated{Current: st.Manager, Candidate: candidate, EffectiveAt: st.PendingEffectiveAt})
	return nil
}

// CompleteManagerUpdate promotes the pending manager once the timelock has
// elapsed. Callable by anyone: the authority change was authorised when it
// was initiated.
func (c *Controller) CompleteManagerUpdate(now time.Time) error {
	st, err := c.loadState()
	if err != nil {
		return err
	}
	if !st.HasPending {
		return ErrNoPendingUpdate
	}
	if now.Before(st.PendingEffectiveAt) {
		return ErrTimelockActive
	}
	previous := st.Manager
	st.Manager = st.PendingManager
	st.PendingManager = [20]byte{}
	st.PendingEffectiveAt = time.Time{}
	st.HasPending = false
	if err := c.state.PutGovernanceState(st); err != nil {
		return err
	}
	c.emit(events.ManagerUpdateCompleted{Previous: previous, Manager: st.Manager})
	return nil
}

// SetPaused flips the emergency flag. Guardian only; the manager track cannot
// pause and the guardian track cannot touch rates.
func (c *Controller) SetPaused(paused bool, actor [20]byte) error {
	st, err := c.loadState()
	if err != nil {
		return err
	}
	if actor != st.Guardian {
		return ErrNotGuardian
	}
	if err := c.state.SetPausedFlag(paused); err != nil {
		return err
	}
	c.emit(events.PauseChanged{Paused: paused, Guardian: actor})
	return nil
}

// Manager returns the active manager address.
func (c *Controller) Manager() ([20]byte, error) {
	st, err := c.loadState()
	if err != nil {
		return [20]byte{}, err
	}
	return st.Manager, nil
}

// Guardian returns the pause guardian address.
func (c *Controller) Guardian() ([20]byte, error) {
	st, err := c.loadState()
	if err != nil {
		return [20]byte{}, err
	}
	return st.Guardian, nil
}

// Pending returns the in-flight manager handover, if any.
func (c *Controller) Pending() (PendingUpdate, bool, error) {
	st, err := c.loadState()
	if err != nil {
		return PendingUpdate{}, false, err
	}
	if !st.HasPending {
		return PendingUpdate{}, false, nil
	}
	return PendingUpdate{Candidate: st.PendingManager, EffectiveAt: st.PendingEffectiveAt}, true, nil
}

// IsPaused reports the emergency flag.
func (c *Controller) IsPaused() (bool, error) {
	if c == nil || c.state == nil {
		return false, errStateNotConfigured
	}
	return c.state.Paused()
}

func (c *Controller) emit(event events.Event) {
	if c == nil || c.emitter == nil {
		return
	}
	c.emitter.Emit(event)
}
