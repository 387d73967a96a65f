package repository

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
)

const (
	// DefaultHandoffTTL is how long a result stays reachable from /results.
	DefaultHandoffTTL = 15 * time.Minute

	// DefaultLockTTL releases a session lock whose holder never came back.
	DefaultLockTTL = 3 * time.Minute
)

// ResultStore holds handoffs between the submit redirect and the result view.
type ResultStore interface {
	// Put assigns an ID when h.ID is empty.
	Put(ctx context.Context, h *domain.Handoff) error
	// Get returns domain.ErrResultNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*domain.Handoff, error)
	Delete(ctx context.Context, id string) error
}

// SessionLock allows one outstanding analysis per browser session.
type SessionLock interface {
	// Acquire returns a token owned by this holder, or ok=false when the
	// session already holds the lock.
	Acquire(ctx context.Context, sessionID string) (token string, ok bool, err error)
	// Release frees the lock only while token still owns it. A lock that
	// expired and was taken by a newer holder is left alone.
	Release(ctx context.Context, sessionID, token string) error
}

// Backend is a store that also provides session locks and a health probe.
type Backend interface {
	ResultStore
	SessionLock
	Name() string
	Ping(ctx context.Context) error
}
