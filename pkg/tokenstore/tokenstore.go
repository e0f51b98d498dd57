package tokenstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoToken signals that no token has been stored yet; callers decide
// whether that means "run the authorization flow" or "reject the request".
var ErrNoToken = errors.New("no access token stored")

type Token struct {
	AccessToken string
	TokenType   string
	Scope       string
	ExpiresIn   int
}

type Fetcher interface {
	Fetch(ctx context.Context) (*Token, error)
}

// CachedFetcher memoizes a Fetcher result until shortly before expiry.
// The skew keeps a token from being handed out in its final seconds.
type CachedFetcher struct {
	fetcher   Fetcher
	skew      time.Duration
	mu        sync.Mutex
	token     *Token
	expiresAt time.Time
}

func NewCachedFetcher(f Fetcher, skew time.Duration) *CachedFetcher {
	return &CachedFetcher{fetcher: f, skew: skew}
}

func (c *CachedFetcher) Token(ctx context.Context) (*Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && time.Now().UTC().Before(c.expiresAt.Add(-c.skew)) {
		return c.token, nil
	}

	tok, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.token = tok
	c.expiresAt = time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return tok, nil
}
