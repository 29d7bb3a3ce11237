package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// SessionRegistry owns the live console sessions of the API. Idle sessions
// expire after the TTL and are closed; their inputs stay in the store so a
// later request can rehydrate them.
type SessionRegistry struct {
	live     *cache.Cache
	store    repositories.SessionStore
	fetcher  SnapshotFetcher
	clock    clockwork.Clock
	debounce time.Duration
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionRegistry creates a new session registry
func NewSessionRegistry(
	store repositories.SessionStore,
	fetcher SnapshotFetcher,
	clock clockwork.Clock,
	debounce time.Duration,
	ttl time.Duration,
	logger *zap.Logger,
) *SessionRegistry {
	live := cache.New(ttl, ttl/2)
	live.OnEvicted(func(id string, v interface{}) {
		session := v.(*ConsoleSession)
		if session.shutdown() {
			sessionsActive.Dec()
			logger.Debug("Console session evicted", zap.String("session_id", id))
		}
		// A concurrent Get may have put the session back while it was evicted
		if cur, ok := live.Get(id); ok && cur == session {
			live.Delete(id)
		}
	})

	return &SessionRegistry{
		live:     live,
		store:    store,
		fetcher:  fetcher,
		clock:    clock,
		debounce: debounce,
		ttl:      ttl,
		logger:   logger,
	}
}

func (r *SessionRegistry) newSession(id string) *ConsoleSession {
	return NewConsoleSession(SessionOptions{
		ID:       id,
		Fetcher:  r.fetcher,
		Clock:    r.clock,
		Debounce: r.debounce,
		Logger:   r.logger,
	})
}

// Create opens a session for the widget's connected account, which may be empty
func (r *SessionRegistry) Create(ctx context.Context, address, chainID string) (*ConsoleSession, error) {
	session := r.newSession(uuid.NewString())
	session.ConnectWallet(ctx, address, chainID)

	if err := r.store.Save(ctx, session.State()); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	r.live.Set(session.ID(), session, r.ttl)
	sessionsActive.Inc()

	r.logger.Info("Console session created",
		zap.String("session_id", session.ID()),
		zap.Bool("wallet_connected", !session.State().Wallet.IsZero()),
	)
	return session, nil
}

// Get returns the live session, rehydrating it from the store after expiry
func (r *SessionRegistry) Get(ctx context.Context, id string) (*ConsoleSession, error) {
	if v, ok := r.live.Get(id); ok {
		session := v.(*ConsoleSession)
		r.live.Set(id, session, r.ttl)
		if !session.Closed() {
			r.touch(ctx, session)
			return session, nil
		}
		// Evicted between Get and Set; drop it and rehydrate
		r.live.Delete(id)
	}

	// Close a session whose TTL passed before the janitor saw it
	r.live.DeleteExpired()

	state, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	session := r.newSession(id)
	if err := r.live.Add(id, session, r.ttl); err != nil {
		// Another request rehydrated it first
		session.Close()
		return r.Get(ctx, id)
	}
	sessionsActive.Inc()
	session.Restore(ctx, *state)

	r.logger.Info("Console session rehydrated", zap.String("session_id", id))
	return session, nil
}

// touch re-saves the session so the stored copy outlives the live one.
// A failure only shortens how long the session can be rehydrated.
func (r *SessionRegistry) touch(ctx context.Context, session *ConsoleSession) {
	if err := r.store.Save(ctx, session.State()); err != nil {
		r.logger.Warn("Failed to refresh session expiry",
			zap.String("session_id", session.ID()),
			zap.Error(err),
		)
	}
}

// Persist saves the session's inputs and refreshes its expiry
func (r *SessionRegistry) Persist(ctx context.Context, session *ConsoleSession) error {
	if err := r.store.Save(ctx, session.State()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete closes the session and forgets it
func (r *SessionRegistry) Delete(ctx context.Context, id string) error {
	_, live := r.live.Get(id)
	state, err := r.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !live && state == nil {
		return ErrSessionNotFound
	}

	r.live.Delete(id)
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	r.logger.Info("Console session deleted", zap.String("session_id", id))
	return nil
}

// Count returns the number of live sessions
func (r *SessionRegistry) Count() int {
	return r.live.ItemCount()
}

// Close closes every live session
func (r *SessionRegistry) Close() {
	for id := range r.live.Items() {
		r.live.Delete(id)
	}
}
