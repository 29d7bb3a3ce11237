package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// TrackerState is the lifecycle state of a WalletTracker
type TrackerState int

const (
	// StateIdle means no valid address was accepted yet
	StateIdle TrackerState = iota
	// StateFetching means a cycle for the current pair is in flight
	StateFetching
	// StateReady means the snapshot belongs to the current pair
	StateReady
)

func (s TrackerState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// SnapshotFetcher produces a complete snapshot for one pair
type SnapshotFetcher interface {
	Fetch(ctx context.Context, key entities.SnapshotKey) entities.WalletSnapshot
}

// WalletTracker keeps the snapshot of the most recently accepted wallet.
// Every fetch cycle is tagged with a generation and its key; a completion
// that no longer matches the current tag is dropped.
type WalletTracker struct {
	resolver *AddressResolver
	fetcher  SnapshotFetcher
	logger   *zap.Logger

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu          sync.Mutex
	state       TrackerState
	key         entities.SnapshotKey
	generation  uint64
	snapshot    entities.WalletSnapshot
	cancelCycle context.CancelFunc
	updates     chan entities.WalletSnapshot
	closed      bool
}

// NewWalletTracker creates a new tracker in the Idle state
func NewWalletTracker(resolver *AddressResolver, fetcher SnapshotFetcher, logger *zap.Logger) *WalletTracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &WalletTracker{
		resolver:   resolver,
		fetcher:    fetcher,
		logger:     logger,
		baseCtx:    ctx,
		baseCancel: cancel,
		updates:    make(chan entities.WalletSnapshot, 1),
	}
}

// Track resolves the input and starts a fetch cycle when it yields a pair
// different from the current one. It reports whether the input resolved to
// a valid pair.
func (t *WalletTracker) Track(ctx context.Context, address, chainID string) bool {
	key, ok := t.resolver.Resolve(ctx, address, chainID)
	if !ok {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	if t.state != StateIdle && t.key.Equal(key) {
		return true
	}

	if t.cancelCycle != nil {
		t.cancelCycle()
		trackerCyclesTotal.WithLabelValues("superseded").Inc()
	}

	t.generation++
	t.key = key
	t.state = StateFetching

	cycleCtx, cancel := context.WithCancel(t.baseCtx)
	t.cancelCycle = cancel
	t.wg.Add(1)

	t.logger.Debug("Starting wallet fetch cycle",
		zap.String("address", key.Address),
		zap.String("chain_id", key.ChainID),
		zap.Uint64("generation", t.generation),
	)

	go t.run(cycleCtx, cancel, t.generation, key)
	return true
}

func (t *WalletTracker) run(ctx context.Context, cancel context.CancelFunc, generation uint64, key entities.SnapshotKey) {
	defer t.wg.Done()
	defer cancel()

	snapshot := t.fetcher.Fetch(ctx, key)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || generation != t.generation || !key.Equal(t.key) {
		trackerCyclesTotal.WithLabelValues("stale").Inc()
		t.logger.Debug("Discarding stale wallet snapshot",
			zap.String("address", key.Address),
			zap.Uint64("generation", generation),
			zap.Uint64("current_generation", t.generation),
		)
		return
	}

	trackerCyclesTotal.WithLabelValues("published").Inc()
	t.snapshot = snapshot
	t.state = StateReady
	t.cancelCycle = nil
	t.publish(snapshot)
}

// publish hands the snapshot to Updates, replacing one nobody read yet.
// Callers hold t.mu.
func (t *WalletTracker) publish(snapshot entities.WalletSnapshot) {
	select {
	case t.updates <- snapshot:
		return
	default:
	}
	select {
	case <-t.updates:
	default:
	}
	t.updates <- snapshot
}

// Reset returns the tracker to Idle, invalidating any in-flight cycle, and
// publishes the empty snapshot
func (t *WalletTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.state == StateIdle {
		return
	}
	if t.cancelCycle != nil {
		t.cancelCycle()
		t.cancelCycle = nil
		trackerCyclesTotal.WithLabelValues("superseded").Inc()
	}

	t.generation++
	t.state = StateIdle
	t.key = entities.SnapshotKey{}
	t.snapshot = entities.WalletSnapshot{}
	t.publish(t.snapshot)
}

// Updates delivers every published snapshot. The channel is closed by Close.
func (t *WalletTracker) Updates() <-chan entities.WalletSnapshot {
	return t.updates
}

// Snapshot returns the last published snapshot
func (t *WalletTracker) Snapshot() entities.WalletSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// State returns the current lifecycle state
func (t *WalletTracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Key returns the pair of the current cycle, zero while Idle
func (t *WalletTracker) Key() entities.SnapshotKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.key
}

// Close discards the tracker's state, cancels in-flight cycles and closes
// Updates. It does not wait for cycles to return; their results are dropped
// once they take the lock. It is safe to call more than once.
func (t *WalletTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.state = StateIdle
	t.key = entities.SnapshotKey{}
	t.snapshot = entities.WalletSnapshot{}
	t.cancelCycle = nil
	close(t.updates)

	t.baseCancel()
}
