package repositories

import (
	"context"
	"time"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// SessionState is the shareable part of a console session.
// It carries the user's inputs only, never fetched chain data.
type SessionState struct {
	ID         string               `json:"id"`
	Wallet     entities.SnapshotKey `json:"wallet"`
	SearchText string               `json:"search_text"`
	ActiveTab  string               `json:"active_tab"`
	CreatedAt  time.Time            `json:"created_at"`
}

// SessionStore defines storage for console session state
type SessionStore interface {
	// Save stores the session state, refreshing its expiry
	Save(ctx context.Context, state SessionState) error

	// Load returns the stored state or nil when unknown
	Load(ctx context.Context, id string) (*SessionState, error)

	// Delete removes the session state
	Delete(ctx context.Context, id string) error
}
