package repository

import (
	"context"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/google/uuid"
)

type memoryEntry struct {
	handoff   domain.Handoff
	expiresAt time.Time
}

type memoryLock struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps handoffs and locks in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	lockTTL time.Duration
	now     func() time.Time

	handoffs map[string]memoryEntry
	locks    map[string]memoryLock
}

// NewMemoryStore creates an in-process store. Non-positive TTLs use defaults.
func NewMemoryStore(ttl, lockTTL time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		lockTTL:  lockTTL,
		now:      time.Now,
		handoffs: make(map[string]memoryEntry),
		locks:    make(map[string]memoryLock),
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Put(ctx context.Context, h *domain.Handoff) error {
	now := s.now()
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handoffs[h.ID] = memoryEntry{handoff: *h, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Handoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.handoffs[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.handoffs, id)
		return nil, domain.ErrResultNotFound
	}
	h := e.handoff
	return &h, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handoffs, id)
	return nil
}

func (s *MemoryStore) Acquire(ctx context.Context, sessionID string) (string, bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, held := s.locks[sessionID]; held && now.Before(l.expiresAt) {
		return "", false, nil
	}
	token := uuid.New().String()
	s.locks[sessionID] = memoryLock{token: token, expiresAt: now.Add(s.lockTTL)}
	return token, true, nil
}

func (s *MemoryStore) Release(ctx context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, held := s.locks[sessionID]; held && l.token == token {
		delete(s.locks, sessionID)
	}
	return nil
}

// Sweep drops expired handoffs and stale locks and returns how many
// handoffs were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.handoffs {
		if !now.Before(e.expiresAt) {
			delete(s.handoffs, id)
			removed++
		}
	}
	for sid, l := range s.locks {
		if !now.Before(l.expiresAt) {
			delete(s.locks, sid)
		}
	}
	return removed
}

// Len reports the number of stored handoffs, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handoffs)
}
