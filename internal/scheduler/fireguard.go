package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/infra"
)

// FireGuard deduplicates firings within one schedule slot. The reference
// single-process deployment relies on tick granularity alone; the guard
// hardens restarts and multi-replica setups. A nil guard disables it.
type FireGuard interface {
	// TryAcquire reports whether this process owns the firing for the
	// agent's slot.
	TryAcquire(ctx context.Context, agentID, slot string) bool
	// Release gives an acquired slot back after a failed firing so a later
	// pass inside the same slot can try again.
	Release(ctx context.Context, agentID, slot string)
}

// RedisFireGuard claims slots with SET NX. It fails open: if Redis is
// unreachable the firing proceeds, preserving reference behavior.
type RedisFireGuard struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// Slots expire after a day plus slack; the slot string itself carries the
// date or hour.
const fireGuardTTL = 26 * time.Hour

func NewRedisFireGuard(rdb *redis.Client, logger *zap.Logger) *RedisFireGuard {
	return &RedisFireGuard{rdb: rdb, logger: logger.Named("fire-guard")}
}

func (g *RedisFireGuard) TryAcquire(ctx context.Context, agentID, slot string) bool {
	key := infra.FireGuardKey(agentID, slot)
	ok, err := g.rdb.SetNX(ctx, key, 1, fireGuardTTL).Result()
	if err != nil {
		g.logger.Warn("fire-guard unavailable, firing anyway",
			zap.String("agent_id", agentID),
			zap.Error(err))
		return true
	}
	return ok
}

// Release deletes the slot claim. Best effort: if the DEL fails the agent
// misses the rest of the slot, which the warning makes visible.
func (g *RedisFireGuard) Release(ctx context.Context, agentID, slot string) {
	key := infra.FireGuardKey(agentID, slot)
	if err := g.rdb.Del(ctx, key).Err(); err != nil {
		g.logger.Warn("fire-guard release failed",
			zap.String("agent_id", agentID),
			zap.Error(err))
	}
}
