package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "canvas:oauth:token"

// RedisStore persists the exchanged Canvas token so gateway instances other
// than the one that ran the oauth flow can pick it up.
type RedisStore struct {
	rdb *redis.Client
	key string
}

var _ Fetcher = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Save stores the token with a TTL derived from its expiry. Tokens without
// an expiry are kept for an hour rather than forever.
func (s *RedisStore) Save(ctx context.Context, tok *Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("token is empty")
	}

	ttl := time.Duration(tok.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	payload, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	return s.rdb.Set(ctx, s.key, payload, ttl).Err()
}

func (s *RedisStore) Fetch(ctx context.Context) (*Token, error) {
	payload, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("fetch token: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(payload, &tok); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &tok, nil
}
