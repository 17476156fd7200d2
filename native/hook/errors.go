package hook

import "errors"

var (
	// ErrPaused indicates donation collection was attempted while the
	// emergency flag is set and the deployment runs the fail-closed policy.
	ErrPaused = errors.New("hook: donations paused")
	// ErrMalformedAttribution indicates the opaque attribution payload did
	// not decode to exactly one address. The swap aborts rather than fall
	// back to a default, so a donation is never silently mis-attributed.
	ErrMalformedAttribution = errors.New("hook: malformed attribution payload")
	// ErrPendingNotEmpty indicates phase 1 ran while a pending donation for
	// the same pool was never settled; the prior swap's phase 2 was skipped.
	ErrPendingNotEmpty = errors.New("hook: pending donation already recorded for pool")

	errLedgerNotConfigured = errors.New("hook: ledger not configured")
	errConfigNotConfigured = errors.New("hook: fee config not configured")
)
