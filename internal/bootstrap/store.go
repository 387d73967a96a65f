package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/repository"
)

type StoreOptions struct {
	Backend   string // "memory" or "redis"
	TTL       time.Duration
	LockTTL   time.Duration
	Redis     RedisOptions
	SweepCron string
}

// OpenHandoffStore builds the configured backend. The returned func releases
// its resources (redis client or sweeper).
func OpenHandoffStore(ctx context.Context, opt StoreOptions) (repository.Backend, func(), error) {
	switch opt.Backend {
	case "", "memory":
		store := repository.NewMemoryStore(opt.TTL, opt.LockTTL)
		sweeper, err := repository.StartSweeper(store, opt.SweepCron)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { <-sweeper.Stop().Done() }, nil
	case "redis":
		client, err := OpenRedis(ctx, opt.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client, opt.TTL, opt.LockTTL), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown handoff backend %q", opt.Backend)
	}
}
