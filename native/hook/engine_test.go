package hook

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"tithe/core/events"
)

var (
	asset0    = addr(0xA0)
	asset1    = addr(0xA1)
	recipient = addr(0xEE)
	trader    = addr(0x77)
)

func addr(last byte) [20]byte {
	var a [20]byte
	a[19] = last
	return a
}

func poolID(last byte) [32]byte {
	var p [32]byte
	p[31] = last
	return p
}

// mockLedger simulates the host's transient obligation record: claims must be
// cancelled before the corresponding transfer, and transfers debit the pool
// balance while crediting the destination.
type mockLedger struct {
	claims    map[[20]byte]*big.Int
	pool      map[[20]byte]*big.Int
	balances  map[string]*big.Int
	transfers int
	ops       []string
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		claims:   make(map[[20]byte]*big.Int),
		pool:     make(map[[20]byte]*big.Int),
		balances: make(map[string]*big.Int),
	}
}

func (l *mockLedger) fund(asset [20]byte, amount int64) {
	l.pool[asset] = big.NewInt(amount)
}

func (l *mockLedger) claimed(asset [20]byte) *big.Int {
	if c, ok := l.claims[asset]; ok {
		return c
	}
	return big.NewInt(0)
}

func (l *mockLedger) balance(asset, holder [20]byte) *big.Int {
	if b, ok := l.balances[string(asset[:])+string(holder[:])]; ok {
		return b
	}
	return big.NewInt(0)
}

func (l *mockLedger) IssueClaim(asset [20]byte, amount *big.Int) error {
	l.claims[asset] = new(big.Int).Add(l.claimed(asset), amount)
	l.ops = append(l.ops, "issue")
	return nil
}

func (l *mockLedger) CancelClaim(asset [20]byte, amount *big.Int) error {
	current := l.claimed(asset)
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("cancel exceeds outstanding claim")
	}
	l.claims[asset] = new(big.Int).Sub(current, amount)
	l.ops = append(l.ops, "cancel")
	return nil
}

func (l *mockLedger) Transfer(asset [20]byte, destination [20]byte, amount *big.Int) error {
	available, ok := l.pool[asset]
	if !ok || available.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient pool balance")
	}
	l.pool[asset] = new(big.Int).Sub(available, amount)
	key := string(asset[:]) + string(destination[:])
	l.balances[key] = new(big.Int).Add(l.balance(asset, destination), amount)
	l.transfers++
	l.ops = append(l.ops, "transfer")
	return nil
}

type mockConfig struct {
	rates  map[[32]byte]uint32
	paused bool
}

func (c *mockConfig) PoolRate(poolID [32]byte) (uint32, error) {
	return c.rates[poolID], nil
}

func (c *mockConfig) IsPaused() (bool, error) { return c.paused, nil }

type captureEmitter struct {
	events []events.Event
}

func (c *captureEmitter) Emit(e events.Event) { c.events = append(c.events, e) }

func newTestEngine(rate uint32) (*Engine, *mockLedger, *mockConfig, *captureEmitter) {
	ledger := newMockLedger()
	ledger.fund(asset0, 1_000_000_000)
	ledger.fund(asset1, 1_000_000_000)
	cfg := &mockConfig{rates: map[[32]byte]uint32{poolID(1): rate}}
	engine := NewEngine(ledger, cfg, recipient)
	emitter := &captureEmitter{}
	engine.SetEmitter(emitter)
	return engine, ledger, cfg, emitter
}

func exactInput(volume int64) SwapParams {
	return SwapParams{
		ZeroForOne:      true,
		AmountSpecified: big.NewInt(-volume),
		Asset0:          asset0,
		Asset1:          asset1,
	}
}

func runSwap(t *testing.T, engine *Engine, pool [32]byte, params SwapParams) Adjustment {
	t.Helper()
	adj, err := engine.PreSwap(pool, params, EncodeAttribution(trader), BlockContext{Height: 10})
	if err != nil {
		t.Fatalf("PreSwap: %v", err)
	}
	if err := engine.PostSwap(pool, params, BlockContext{Height: 10}); err != nil {
		t.Fatalf("PostSwap: %v", err)
	}
	return adj
}

func TestChargesExactlyOnce(t *testing.T) {
	// rate 1000 = 0.1%: a 1,000,000 swap donates exactly 1000, the trader's
	// total debit grows by volume + fee, never volume + 2*fee.
	engine, ledger, _, emitter := newTestEngine(1000)

	adj := runSwap(t, engine, poolID(1), exactInput(1_000_000))

	if adj.IsZero() || adj.Amount.Int64() != 1000 {
		t.Fatalf("adjustment = %v, want 1000", adj.Amount)
	}
	if adj.Asset != asset0 {
		t.Fatalf("adjustment asset = %x, want input asset %x", adj.Asset, asset0)
	}
	if got := ledger.balance(asset0, recipient); got.Int64() != 1000 {
		t.Fatalf("recipient balance = %s, want 1000", got)
	}
	if ledger.transfers != 1 {
		t.Fatalf("transfers = %d, want exactly 1", ledger.transfers)
	}
	if outstanding := ledger.claimed(asset0); outstanding.Sign() != 0 {
		t.Fatalf("outstanding claim = %s, want 0", outstanding)
	}
	// Total trader debit: swap volume plus the single adjustment.
	debit := new(big.Int).Add(big.NewInt(1_000_000), adj.Amount)
	if debit.Int64() != 1_001_000 {
		t.Fatalf("trader debit = %s, want 1001000", debit)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("events = %d, want 1", len(emitter.events))
	}
	collected, ok := emitter.events[0].(events.DonationCollected)
	if !ok {
		t.Fatalf("event type = %T, want DonationCollected", emitter.events[0])
	}
	if collected.Amount.Int64() != 1000 || collected.SwapVolume.Int64() != 1_000_000 {
		t.Fatalf("event amounts = %s/%s", collected.Amount, collected.SwapVolume)
	}
	if collected.Payer != trader {
		t.Fatalf("event payer = %x, want %x", collected.Payer, trader)
	}
}

func TestClaimPrecedesTransfer(t *testing.T) {
	engine, ledger, _, _ := newTestEngine(1000)
	runSwap(t, engine, poolID(1), exactInput(1_000_000))
	want := []string{"issue", "cancel", "transfer"}
	if len(ledger.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ledger.ops, want)
	}
	for i, op := range want {
		if ledger.ops[i] != op {
			t.Fatalf("ops = %v, want %v", ledger.ops, want)
		}
	}
}

func TestDustSuppression(t *testing.T) {
	// floor(999 * 1000 / 1e6) = 0: no claim, no transfer, no event.
	engine, ledger, _, emitter := newTestEngine(1000)
	adj := runSwap(t, engine, poolID(1), exactInput(999))
	if !adj.IsZero() {
		t.Fatalf("adjustment = %v, want zero", adj.Amount)
	}
	if len(ledger.ops) != 0 {
		t.Fatalf("ledger ops = %v, want none", ledger.ops)
	}
	if len(emitter.events) != 0 {
		t.Fatalf("events = %d, want 0", len(emitter.events))
	}
}

func TestMinDonationThreshold(t *testing.T) {
	engine, ledger, _, _ := newTestEngine(1000)
	engine.SetMinDonation(big.NewInt(2000))
	// Fee of 1000 sits under the raised threshold.
	adj := runSwap(t, engine, poolID(1), exactInput(1_000_000))
	if !adj.IsZero() || len(ledger.ops) != 0 {
		t.Fatalf("expected suppressed donation, got adj=%v ops=%v", adj.Amount, ledger.ops)
	}
}

func TestZeroRatePassthrough(t *testing.T) {
	engine, ledger, _, emitter := newTestEngine(0)
	adj := runSwap(t, engine, poolID(1), exactInput(1_000_000))
	if !adj.IsZero() || len(ledger.ops) != 0 || len(emitter.events) != 0 {
		t.Fatal("zero rate must skip all ledger interaction")
	}
}

func TestPauseAbortsByDefault(t *testing.T) {
	engine, ledger, cfg, _ := newTestEngine(1000)
	cfg.paused = true
	_, err := engine.PreSwap(poolID(1), exactInput(1_000_000), EncodeAttribution(trader), BlockContext{})
	if !errors.Is(err, ErrPaused) {
		t.Fatalf("err = %v, want ErrPaused", err)
	}
	if len(ledger.ops) != 0 {
		t.Fatalf("ledger ops while paused: %v", ledger.ops)
	}
}

func TestPausePassthroughPolicy(t *testing.T) {
	engine, ledger, cfg, emitter := newTestEngine(1000)
	engine.SetPausePolicy(PausePassthrough)
	cfg.paused = true
	adj := runSwap(t, engine, poolID(1), exactInput(1_000_000))
	if !adj.IsZero() || len(ledger.ops) != 0 || len(emitter.events) != 0 {
		t.Fatal("passthrough pause must collect nothing")
	}
}

func TestUnpauseRestoresCollection(t *testing.T) {
	engine, ledger, cfg, emitter := newTestEngine(1000)
	engine.SetPausePolicy(PausePassthrough)

	cfg.paused = true
	runSwap(t, engine, poolID(1), exactInput(1_000_000))
	if got := ledger.balance(asset0, recipient); got.Sign() != 0 {
		t.Fatalf("recipient balance while paused = %s", got)
	}

	// The configured rate survives the pause; an identical swap reproduces
	// the unpaused result exactly.
	cfg.paused = false
	adj := runSwap(t, engine, poolID(1), exactInput(1_000_000))
	if adj.Amount.Int64() != 1000 {
		t.Fatalf("post-unpause adjustment = %v, want 1000", adj.Amount)
	}
	if got := ledger.balance(asset0, recipient); got.Int64() != 1000 {
		t.Fatalf("recipient balance = %s, want 1000", got)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("events = %d, want 1", len(emitter.events))
	}
}

func TestMalformedAttributionAbortsSwap(t *testing.T) {
	engine, ledger, _, _ := newTestEngine(1000)
	payloads := map[string][]byte{
		"empty":           nil,
		"short":           make([]byte, 19),
		"bare address":    trader[:],
		"overlong":        make([]byte, 33),
		"nonzero padding": append([]byte{1}, EncodeAttribution(trader)[1:]...),
	}
	for name, payload := range payloads {
		_, err := engine.PreSwap(poolID(1), exactInput(1_000_000), payload, BlockContext{})
		if !errors.Is(err, ErrMalformedAttribution) {
			t.Fatalf("%s: err = %v, want ErrMalformedAttribution", name, err)
		}
	}
	if len(ledger.ops) != 0 {
		t.Fatalf("ledger ops after aborted swaps: %v", ledger.ops)
	}
}

func TestInputAssetFollowsDirection(t *testing.T) {
	engine, ledger, cfg, _ := newTestEngine(1000)
	cfg.rates[poolID(1)] = 1000

	params := exactInput(1_000_000)
	params.ZeroForOne = false
	adj := runSwap(t, engine, poolID(1), params)
	if adj.Asset != asset1 {
		t.Fatalf("adjustment asset = %x, want asset1 %x", adj.Asset, asset1)
	}
	if got := ledger.balance(asset1, recipient); got.Int64() != 1000 {
		t.Fatalf("recipient asset1 balance = %s, want 1000", got)
	}
	if got := ledger.balance(asset0, recipient); got.Sign() != 0 {
		t.Fatalf("recipient asset0 balance = %s, want 0", got)
	}
}

func TestExactOutputUsesInputAsset(t *testing.T) {
	engine, ledger, _, _ := newTestEngine(1000)
	params := SwapParams{
		ZeroForOne:      true,
		AmountSpecified: big.NewInt(1_000_000), // positive: exact output
		Asset0:          asset0,
		Asset1:          asset1,
	}
	adj := runSwap(t, engine, poolID(1), params)
	if adj.Asset != asset0 {
		t.Fatalf("adjustment asset = %x, want input asset %x", adj.Asset, asset0)
	}
	if got := ledger.balance(asset0, recipient); got.Int64() != 1000 {
		t.Fatalf("recipient balance = %s, want 1000", got)
	}
}

func TestPostSwapReinvocationIsNoop(t *testing.T) {
	engine, ledger, _, emitter := newTestEngine(1000)
	params := exactInput(1_000_000)
	runSwap(t, engine, poolID(1), params)

	// A defensive second phase-2 call for the same swap must not replay the
	// cleared claim.
	if err := engine.PostSwap(poolID(1), params, BlockContext{}); err != nil {
		t.Fatalf("re-invoked PostSwap: %v", err)
	}
	if ledger.transfers != 1 {
		t.Fatalf("transfers = %d, want 1", ledger.transfers)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("events = %d, want 1", len(emitter.events))
	}
}

func TestPreSwapRejectsStalePending(t *testing.T) {
	engine, _, _, _ := newTestEngine(1000)
	if _, err := engine.PreSwap(poolID(1), exactInput(1_000_000), EncodeAttribution(trader), BlockContext{}); err != nil {
		t.Fatalf("first PreSwap: %v", err)
	}
	_, err := engine.PreSwap(poolID(1), exactInput(1_000_000), EncodeAttribution(trader), BlockContext{})
	if !errors.Is(err, ErrPendingNotEmpty) {
		t.Fatalf("err = %v, want ErrPendingNotEmpty", err)
	}
}

func TestPoolsDoNotSharePendingState(t *testing.T) {
	engine, ledger, cfg, _ := newTestEngine(1000)
	cfg.rates[poolID(2)] = 500

	a := exactInput(1_000_000)
	b := exactInput(2_000_000)
	if _, err := engine.PreSwap(poolID(1), a, EncodeAttribution(trader), BlockContext{}); err != nil {
		t.Fatalf("PreSwap pool 1: %v", err)
	}
	if _, err := engine.PreSwap(poolID(2), b, EncodeAttribution(trader), BlockContext{}); err != nil {
		t.Fatalf("PreSwap pool 2: %v", err)
	}
	if err := engine.PostSwap(poolID(2), b, BlockContext{}); err != nil {
		t.Fatalf("PostSwap pool 2: %v", err)
	}
	if err := engine.PostSwap(poolID(1), a, BlockContext{}); err != nil {
		t.Fatalf("PostSwap pool 1: %v", err)
	}
	// pool 1: 0.1% of 1,000,000 = 1000; pool 2: 0.05% of 2,000,000 = 1000.
	if got := ledger.balance(asset0, recipient); got.Int64() != 2000 {
		t.Fatalf("recipient balance = %s, want 2000", got)
	}
}

func TestTransferFailureAbortsSwap(t *testing.T) {
	engine, ledger, _, emitter := newTestEngine(1000)
	ledger.fund(asset0, 1) // not enough to honour the claim
	params := exactInput(1_000_000)
	if _, err := engine.PreSwap(poolID(1), params, EncodeAttribution(trader), BlockContext{}); err != nil {
		t.Fatalf("PreSwap: %v", err)
	}
	if err := engine.PostSwap(poolID(1), params, BlockContext{}); err == nil {
		t.Fatal("expected transfer failure to propagate")
	}
	if len(emitter.events) != 0 {
		t.Fatalf("events after failed transfer = %d, want 0", len(emitter.events))
	}
}

func TestPendingFor(t *testing.T) {
	engine, _, _, _ := newTestEngine(1000)
	if got := engine.PendingFor(poolID(1)); got.Sign() != 0 {
		t.Fatalf("fresh pending = %s, want 0", got)
	}
	if _, err := engine.PreSwap(poolID(1), exactInput(1_000_000), EncodeAttribution(trader), BlockContext{}); err != nil {
		t.Fatalf("PreSwap: %v", err)
	}
	if got := engine.PendingFor(poolID(1)); got.Int64() != 1000 {
		t.Fatalf("pending = %s, want 1000", got)
	}
}
