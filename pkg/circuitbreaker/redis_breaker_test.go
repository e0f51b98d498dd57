package circuitbreaker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	redisClientAddr   = "localhost:6379"
	redisPassword     = ""
	redisDB           = 0
	redisDialTimeout  = 2 * time.Second
	redisReadTimeout  = 2 * time.Second
	redisWriteTimeout = 2 * time.Second
	redisPoolTimeout  = 2 * time.Second
	redisPoolSize     = 20
	redisMinIdleConns = 2
)

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	return redis.NewClient(&redis.Options{
		Addr:         redisClientAddr,
		Password:     redisPassword,
		DB:           redisDB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisReadTimeout,
		WriteTimeout: redisWriteTimeout,
		PoolTimeout:  redisPoolTimeout,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
}

func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requireRedis(t *testing.T, rdb *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", redisClientAddr, err)
	}
}

func newTestBreakerOptions(t *testing.T) Options {
	t.Helper()

	return Options{
		FailureThreshold: 5,
		FailWindow:       10 * time.Second,
		OpenCoolDown:     30 * time.Second,
		HalfOpenLease:    5 * time.Second,
		FailOpen:         true,
		Prefix:           "canvas:cb:",
	}
}

func TestNewRedisBreaker(t *testing.T) {
	rdb := newTestRedisClient(t)
	testBreakerOpts := newTestBreakerOptions(t)

	result := NewRedisBreaker(rdb, "canvasBreaker", testBreakerOpts, newTestLogger(t))

	require.NotNil(t, result, "NewRedisBreaker should not return nil")

	assert.Same(t, rdb, result.rdb, "Expected breaker to keep the passed-in redis client instance")

	assert.Equal(t, "canvasBreaker", result.name)
	assert.Equal(t, testBreakerOpts, result.opts)
}

func TestNewRedisBreaker_keys(t *testing.T) {
	rdb := newTestRedisClient(t)
	testBreakerOpts := newTestBreakerOptions(t)

	breaker := NewRedisBreaker(rdb, "canvasBreaker", testBreakerOpts, newTestLogger(t))

	resultOpenKey, resultFailsKey := breaker.keys()

	expectedOpenKey := "canvas:cb:canvasBreaker:open"
	expectedFailsKey := "canvas:cb:canvasBreaker:fails"

	assert.Equalf(t, expectedOpenKey, resultOpenKey, "Got: %q; Expected: %q", resultOpenKey, expectedOpenKey)

	assert.Equalf(t, expectedFailsKey, resultFailsKey, "Got: %q; Expected: %q", resultFailsKey, expectedFailsKey)
}

func TestNewRedisBreaker_Allow(t *testing.T) {
	rdb := newTestRedisClient(t)
	testBreakerOpts := newTestBreakerOptions(t)

	breaker := NewRedisBreaker(rdb, "canvasBreaker"+t.Name(), testBreakerOpts, newTestLogger(t))

	ctx := context.Background()

	err := breaker.Allow(ctx)

	require.NoErrorf(t, err, "The Allow method returned an error: %v", err)
}

func TestRedisBreaker_OnFailure_TransitionsToOpen(t *testing.T) {
	rdb := newTestRedisClient(t)
	requireRedis(t, rdb)

	opts := newTestBreakerOptions(t)
	opts.FailureThreshold = 2

	ctx := context.Background()

	breaker := NewRedisBreaker(rdb, "canvasBreaker"+t.Name(), opts, newTestLogger(t))

	openKey, failsKey := breaker.keys()
	t.Cleanup(func() {
		_ = rdb.Del(ctx, openKey, failsKey).Err()
	})

	breaker.OnFailure(ctx)

	fails, err := rdb.Get(ctx, failsKey).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(1), fails)

	exists, err := rdb.Exists(ctx, openKey).Result()
	require.NoError(t, err)
	require.Equal(t, int64(0), exists)

	breaker.OnFailure(ctx)

	exists, err = rdb.Exists(ctx, openKey).Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), exists)

	exists, err = rdb.Exists(ctx, failsKey).Result()
	require.NoError(t, err)
	require.Equal(t, int64(0), exists)

	err = breaker.Allow(ctx)
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestRedisBreaker_OnSuccess_ResetsFailures(t *testing.T) {
	rdb := newTestRedisClient(t)
	requireRedis(t, rdb)

	ctx := context.Background()

	breaker := NewRedisBreaker(rdb, "canvasBreaker"+t.Name(), newTestBreakerOptions(t), newTestLogger(t))

	_, failsKey := breaker.keys()
	t.Cleanup(func() {
		_ = rdb.Del(ctx, failsKey).Err()
	})

	breaker.OnFailure(ctx)
	breaker.OnSuccess(ctx)

	exists, err := rdb.Exists(ctx, failsKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
