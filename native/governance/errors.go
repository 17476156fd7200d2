package governance

import "errors"

var (
	// ErrNotManager indicates a manager-only operation was attempted by
	// another identity.
	ErrNotManager = errors.New("governance: caller is not the manager")
	// ErrNotGuardian indicates a guardian-only operation was attempted by
	// another identity.
	ErrNotGuardian = errors.New("governance: caller is not the guardian")
	// ErrRateAboveCap indicates a requested rate above the configured cap.
	ErrRateAboveCap = errors.New("governance: rate exceeds cap")
	// ErrCandidateZero indicates an empty candidate manager address.
	ErrCandidateZero = errors.New("governance: candidate manager must not be zero")
	// ErrRateUpdateThrottled indicates a second rate write for the same pool
	// within one height.
	ErrRateUpdateThrottled = errors.New("governance: pool rate already updated at this height")
	// ErrNoPendingUpdate indicates completion was attempted with no handover
	// in flight.
	ErrNoPendingUpdate = errors.New("governance: no pending manager update")
	// ErrTimelockActive indicates completion was attempted before the
	// handover delay elapsed.
	ErrTimelockActive = errors.New("governance: manager update timelock has not elapsed")
	// ErrNotInitialised indicates the controller state was never bootstrapped.
	ErrNotInitialised = errors.New("governance: state not initialised")

	errStateNotConfigured = errors.New("governance: state backend not configured")
)
