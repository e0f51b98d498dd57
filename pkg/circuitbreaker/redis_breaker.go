package circuitbreaker

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBreaker shares circuit state across gateway instances through Redis,
// so one instance tripping on Canvas outages protects the rest.
type RedisBreaker struct {
	rdb    *redis.Client
	name   string
	opts   Options
	logger *slog.Logger
}

func NewRedisBreaker(rdb *redis.Client, name string, opts Options, logger *slog.Logger) *RedisBreaker {
	if opts.FailureThreshold <= 0 {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisBreaker{
		rdb:    rdb,
		name:   name,
		opts:   opts,
		logger: logger.With(slog.String("component", "circuitbreaker"), slog.String("breaker", name)),
	}
}

func (b *RedisBreaker) keys() (openKey, failsKey string) {
	prefix := b.opts.Prefix + b.name + ":"
	return prefix + "open", prefix + "fails"
}

// Allow returns nil if the call may proceed, or ErrCircuitOpen if it must be blocked.
func (b *RedisBreaker) Allow(ctx context.Context) error {
	openKey, _ := b.keys()

	exists, err := b.rdb.Exists(ctx, openKey).Result()
	if err != nil {
		if b.opts.FailOpen {
			return nil
		}
		return ErrCircuitOpen
	}
	if exists == 1 {
		return ErrCircuitOpen
	}

	return nil
}

func (b *RedisBreaker) OnSuccess(ctx context.Context) {
	_, failsKey := b.keys()

	_ = b.rdb.Del(ctx, failsKey).Err()
}

func (b *RedisBreaker) OnFailure(ctx context.Context) {
	openKey, failsKey := b.keys()

	fails, err := b.rdb.Incr(ctx, failsKey).Result()
	if err != nil {
		return
	}

	ttl, err := b.rdb.PTTL(ctx, failsKey).Result()
	if err == nil && ttl < 0 {
		_ = b.rdb.PExpire(ctx, failsKey, b.opts.FailWindow).Err()
	}

	if int(fails) >= b.opts.FailureThreshold {
		b.logger.Warn("opening circuit", slog.Int64("fails", fails))
		_ = b.rdb.Set(ctx, openKey, "1", b.opts.OpenCoolDown).Err()
		_ = b.rdb.Del(ctx, failsKey).Err()
	}
}
