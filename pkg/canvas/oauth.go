package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"

	"golang.org/x/oauth2"
)

const (
	authPath  = "/login/oauth2/auth"
	tokenPath = "/login/oauth2/token"

	grantAuthorizationCode = "authorization_code"
)

func (s *service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		RedirectURL:  s.cfg.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.cfg.BaseURL + authPath,
			TokenURL:  s.cfg.BaseURL + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL builds the browser-facing authorization URL. The caller owns
// the state value and must verify it on the redirect back.
func (s *service) AuthCodeURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state)
}

// ExchangeAuthorizationCode trades an authorization code for an access token
// via a form-encoded POST to /login/oauth2/token. On success the token is
// captured for this session unless one was already set.
func (s *service) ExchangeAuthorizationCode(ctx context.Context, code string) (*AccessToken, error) {
	if code == "" {
		return nil, &AuthError{Reason: "authorization code is empty"}
	}
	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		return nil, &AuthError{Reason: "client credentials are not configured"}
	}

	form := url.Values{
		"grant_type":    {grantAuthorizationCode},
		"client_id":     {s.cfg.ClientID},
		"client_secret": {s.cfg.ClientSecret},
		"code":          {code},
	}

	res, err := s.call(ctx, epTokenExchange, callOptions{form: form})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, &AuthError{
				Reason:     "token exchange rejected",
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Body,
			}
		}
		return nil, err
	}

	var tok AccessToken
	if err := json.Unmarshal(res.body, &tok); err != nil {
		return nil, &AuthError{Reason: "token response is not valid JSON"}
	}
	if tok.AccessToken == "" {
		return nil, &AuthError{Reason: "token response missing access_token"}
	}

	s.captureToken(tok.AccessToken)

	s.logger.Info("canvas token exchange succeeded",
		slog.String("token_type", tok.TokenType),
		slog.Int("expires_in", tok.ExpiresIn),
	)

	return &tok, nil
}
