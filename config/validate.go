package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"tithe/native/donation"
)

// Validate rejects configurations that could mis-route or mis-charge
// donations before any state is touched.
func (c *Config) Validate() error {
	if err := validateAddress("Recipient", c.Recipient); err != nil {
		return err
	}
	if err := validateAddress("Manager", c.Manager); err != nil {
		return err
	}
	if err := validateAddress("Guardian", c.Guardian); err != nil {
		return err
	}
	if c.ManagerAddress() == c.GuardianAddress() {
		return fmt.Errorf("config: Manager and Guardian must be distinct identities")
	}
	if c.MaxRateBps > donation.MaxRateBps {
		return fmt.Errorf("config: MaxRateBps %d exceeds hard cap %d", c.MaxRateBps, donation.MaxRateBps)
	}
	min, ok := new(big.Int).SetString(strings.TrimSpace(c.MinDonationWei), 10)
	if !ok || min.Sign() < 0 {
		return fmt.Errorf("config: MinDonationWei %q is not a non-negative decimal", c.MinDonationWei)
	}
	switch c.PausePolicy {
	case PausePolicyAbort, PausePolicyPassthrough:
	default:
		return fmt.Errorf("config: PausePolicy %q must be %q or %q", c.PausePolicy, PausePolicyAbort, PausePolicyPassthrough)
	}
	return nil
}

func validateAddress(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("config: %s is required", field)
	}
	if !common.IsHexAddress(trimmed) {
		return fmt.Errorf("config: %s %q is not a hex address", field, value)
	}
	if common.HexToAddress(trimmed) == (common.Address{}) {
		return fmt.Errorf("config: %s must not be the zero address", field)
	}
	return nil
}
