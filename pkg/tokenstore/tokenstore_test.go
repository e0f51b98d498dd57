package tokenstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	token *Token
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*Token, error) {
	f.calls++
	return f.token, f.err
}

func TestCachedFetcher_ReusesTokenUntilSkew(t *testing.T) {
	ff := &fakeFetcher{token: &Token{AccessToken: "tok", ExpiresIn: 3600}}
	cf := NewCachedFetcher(ff, 30*time.Second)

	ctx := context.Background()

	tok, err := cf.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)

	_, err = cf.Token(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, ff.calls, "second call should hit the cache")
}

func TestCachedFetcher_RefetchesExpiredToken(t *testing.T) {
	ff := &fakeFetcher{token: &Token{AccessToken: "tok", ExpiresIn: 0}}
	cf := NewCachedFetcher(ff, 30*time.Second)

	ctx := context.Background()

	_, err := cf.Token(ctx)
	require.NoError(t, err)

	_, err = cf.Token(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, ff.calls, "zero-lifetime token must be refetched")
}

func TestCachedFetcher_PropagatesFetchError(t *testing.T) {
	wantErr := errors.New("upstream down")
	ff := &fakeFetcher{err: wantErr}
	cf := NewCachedFetcher(ff, time.Second)

	_, err := cf.Token(context.Background())
	require.ErrorIs(t, err, wantErr)
}
