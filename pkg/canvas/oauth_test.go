package canvas

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCodeURL(t *testing.T) {
	svc := newTestService(t, &fakeTransport{}, testConfig())

	raw := svc.AuthCodeURL("state-xyz")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/login/oauth2/auth", u.Path)

	q := u.Query()
	assert.Equal(t, "10000000000001", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "https://gateway.example.edu/api/oauth/callback", q.Get("redirect_uri"))
}

func TestExchangeAuthorizationCode_Success(t *testing.T) {
	ft := &fakeTransport{
		resp: jsonResponse(http.StatusOK, `{
			"access_token":"1~mock-token",
			"token_type":"Bearer",
			"refresh_token":"1~mock-refresh",
			"expires_in":3600,
			"user":{"id":42,"name":"Jessica Jones"}
		}`),
	}

	svc := newTestService(t, ft, testConfig())

	tok, err := svc.ExchangeAuthorizationCode(context.Background(), "auth-code-1")
	require.NoError(t, err)

	require.True(t, ft.called)
	assert.Equal(t, http.MethodPost, ft.req.Method)
	assert.Equal(t, "https://canvas.example.edu/login/oauth2/token", ft.req.URL.String())
	assert.Equal(t, contentTypeForm, ft.req.Header.Get("Content-Type"))

	body, err := io.ReadAll(ft.req.Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "10000000000001", form.Get("client_id"))
	assert.Equal(t, "s3cret", form.Get("client_secret"))
	assert.Equal(t, "auth-code-1", form.Get("code"))

	assert.Equal(t, "1~mock-token", tok.AccessToken)
	assert.Equal(t, 3600, tok.ExpiresIn)
	assert.Equal(t, int64(42), tok.User.ID)

	assert.Equal(t, "1~mock-token", svc.Token(), "exchange should capture the token")
}

func TestExchangeAuthorizationCode_DoesNotOverwriteExistingToken(t *testing.T) {
	ft := &fakeTransport{
		resp: jsonResponse(http.StatusOK, `{"access_token":"1~new","token_type":"Bearer","expires_in":3600,"user":{"id":1,"name":"x"}}`),
	}

	svc := newTestService(t, ft, testConfig())
	require.NoError(t, svc.SetToken("1~original"))

	_, err := svc.ExchangeAuthorizationCode(context.Background(), "auth-code-1")
	require.NoError(t, err)

	assert.Equal(t, "1~original", svc.Token())
}

func TestExchangeAuthorizationCode_BadRequest(t *testing.T) {
	ft := &fakeTransport{
		resp: jsonResponse(http.StatusBadRequest, `{"error":"invalid_grant"}`),
	}

	svc := newTestService(t, ft, testConfig())

	_, err := svc.ExchangeAuthorizationCode(context.Background(), "expired-code")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_grant")
	assert.Empty(t, svc.Token())
}

func TestExchangeAuthorizationCode_MissingTokenField(t *testing.T) {
	ft := &fakeTransport{
		resp: jsonResponse(http.StatusOK, `{"token_type":"Bearer"}`),
	}

	svc := newTestService(t, ft, testConfig())

	_, err := svc.ExchangeAuthorizationCode(context.Background(), "auth-code-1")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, svc.Token())
}

func TestExchangeAuthorizationCode_EmptyCode(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(t, ft, testConfig())

	_, err := svc.ExchangeAuthorizationCode(context.Background(), "")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, ft.called)
}

func TestExchangeAuthorizationCode_MissingClientCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.ClientID = ""

	ft := &fakeTransport{}
	svc := newTestService(t, ft, cfg)

	_, err := svc.ExchangeAuthorizationCode(context.Background(), "auth-code-1")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, ft.called)
}
