package config

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"tithe/native/donation"
)

// Config is the deployment configuration for one hook instance.
type Config struct {
	// Recipient receives every materialized donation. Fixed for the lifetime
	// of the deployment.
	Recipient string `toml:"Recipient"`
	// Manager controls per-pool rates and its own succession.
	Manager string `toml:"Manager"`
	// Guardian controls only the emergency pause.
	Guardian string `toml:"Guardian"`
	// MaxRateBps caps every per-pool rate, in units of 0.0001%.
	MaxRateBps uint32 `toml:"MaxRateBps"`
	// MinDonationWei is the dust threshold as a decimal string.
	MinDonationWei string `toml:"MinDonationWei"`
	// TimelockDelaySeconds is the mandatory delay between initiating and
	// completing a manager handover.
	TimelockDelaySeconds uint64 `toml:"TimelockDelaySeconds"`
	// PausePolicy selects how phase 1 reacts while paused: "abort" fails the
	// swap, "passthrough" collects nothing and lets it continue.
	PausePolicy string `toml:"PausePolicy"`
	// DataDir holds the LevelDB store for standalone deployments.
	DataDir string `toml:"DataDir"`
	// GatewayListen is the bind address of the read-only HTTP surface.
	GatewayListen string `toml:"GatewayListen"`
	// Env tags log lines, e.g. "local" or "mainnet".
	Env string `toml:"Env"`
}

// PausePolicy values accepted in configuration files.
const (
	PausePolicyAbort       = "abort"
	PausePolicyPassthrough = "passthrough"
)

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxRateBps == 0 {
		c.MaxRateBps = donation.MaxRateBps
	}
	if strings.TrimSpace(c.MinDonationWei) == "" {
		c.MinDonationWei = "1"
	}
	if c.TimelockDelaySeconds == 0 {
		c.TimelockDelaySeconds = 86_400
	}
	if strings.TrimSpace(c.PausePolicy) == "" {
		c.PausePolicy = PausePolicyAbort
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = "./tithe-data"
	}
	if strings.TrimSpace(c.GatewayListen) == "" {
		c.GatewayListen = ":8645"
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "local"
	}
}

// RecipientAddress returns the parsed recipient.
func (c *Config) RecipientAddress() [20]byte {
	return common.HexToAddress(c.Recipient)
}

// ManagerAddress returns the parsed manager.
func (c *Config) ManagerAddress() [20]byte {
	return common.HexToAddress(c.Manager)
}

// GuardianAddress returns the parsed guardian.
func (c *Config) GuardianAddress() [20]byte {
	return common.HexToAddress(c.Guardian)
}

// MinDonation returns the parsed dust threshold.
func (c *Config) MinDonation() *big.Int {
	min, ok := new(big.Int).SetString(strings.TrimSpace(c.MinDonationWei), 10)
	if !ok {
		return big.NewInt(donation.DefaultMinDonation)
	}
	return min
}

// TimelockDelay returns the handover delay as a duration.
func (c *Config) TimelockDelay() time.Duration {
	return time.Duration(c.TimelockDelaySeconds) * time.Second
}
