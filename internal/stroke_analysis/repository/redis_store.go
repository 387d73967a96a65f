package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	handoffKeyPrefix  = "sa:handoff:"  // sa:handoff:{id} -> JSON handoff
	inflightKeyPrefix = "sa:inflight:" // sa:inflight:{session_id} -> lock token
)

// releaseScript deletes the lock only if it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps handoffs and session locks in Redis with expiry.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisStore creates a Redis-backed store. Non-positive TTLs use defaults.
func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisStore{client: client, ttl: ttl, lockTTL: lockTTL}
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Put(ctx context.Context, h *domain.Handoff) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}

	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal handoff: %w", err)
	}
	if err := r.client.Set(ctx, handoffKey(h.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store handoff: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*domain.Handoff, error) {
	data, err := r.client.Get(ctx, handoffKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get handoff: %w", err)
	}

	var h domain.Handoff
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal handoff: %w", err)
	}
	h.Result.Normalize()
	return &h, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, handoffKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete handoff: %w", err)
	}
	return nil
}

func (r *RedisStore) Acquire(ctx context.Context, sessionID string) (string, bool, error) {
	token := uuid.New().String()
	ok, err := r.client.SetNX(ctx, inflightKey(sessionID), token, r.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisStore) Release(ctx context.Context, sessionID, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{inflightKey(sessionID)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release session lock: %w", err)
	}
	return nil
}

func handoffKey(id string) string {
	return handoffKeyPrefix + id
}

func inflightKey(sessionID string) string {
	return inflightKeyPrefix + sessionID
}
