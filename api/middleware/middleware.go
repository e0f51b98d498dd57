package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/circuitbreaker"
	"github.com/gofiber/fiber/v2"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type VerifierConfig struct {
	// OIDC issuer URL, e.g. https://auth.example.edu/realms/campus
	Issuer string
	// Overrides the derived <issuer>/.well-known/jwks.json location.
	JWKSURL string
	// Expected client_id claim on inbound access tokens.
	ClientID string
}

// TokenVerifier validates inbound gateway access tokens against the
// configured issuer's JWKS. This protects the gateway itself; Canvas
// credentials are a separate concern handled by pkg/canvas.
type TokenVerifier struct {
	issuer  string
	jwksURL string
	cache   *jwk.Cache
	client  *http.Client
	cfg     VerifierConfig
}

func NewTokenVerifier(cfg VerifierConfig) (*TokenVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("Issuer is required")
	}

	if cfg.ClientID == "" {
		return nil, errors.New("ClientID is required")
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = strings.TrimSuffix(cfg.Issuer, "/") + "/.well-known/jwks.json"
	}

	cache := jwk.NewCache(context.Background())
	// register the JWKS URL with a refresh window
	if err := cache.Register(jwksURL); err != nil {
		return nil, err
	}

	return &TokenVerifier{
		issuer:  cfg.Issuer,
		jwksURL: jwksURL,
		cache:   cache,
		client:  &http.Client{Timeout: 5 * time.Second},
		cfg:     cfg,
	}, nil
}

func (v *TokenVerifier) FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return fiber.ErrUnauthorized
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		keyset, err := v.cache.Get(ctx, v.jwksURL)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unable to load jwks")
		}

		tok, err := jwt.Parse(
			[]byte(raw),
			jwt.WithKeySet(keyset),
			jwt.WithValidate(true),
			jwt.WithIssuer(v.issuer),
		)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		if cid, ok := tok.Get("client_id"); !ok || cid != v.cfg.ClientID {
			return fiber.ErrUnauthorized
		}

		// expose caller identity to handlers for the request's lifetime
		if sub := tok.Subject(); sub != "" {
			c.Locals("sub", sub)
		}
		if scope, ok := tok.Get("scope"); ok {
			c.Locals("scope", scope)
		}

		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// WithCircuitBreaker wraps a handler in a per-route circuit breaker.
// Breakers are created lazily, one per method+path.
func WithCircuitBreaker(newBreaker func(name string) circuitbreaker.Breaker) func(fiber.Handler) fiber.Handler {
	var mu sync.RWMutex
	breakers := make(map[string]circuitbreaker.Breaker)

	getBreaker := func(name string) circuitbreaker.Breaker {
		mu.RLock()
		b := breakers[name]
		mu.RUnlock()
		if b != nil {
			return b
		}

		mu.Lock()
		defer mu.Unlock()
		if b = breakers[name]; b != nil {
			return b
		}

		b = newBreaker(name)
		breakers[name] = b
		return b
	}

	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			name := breakerName(c)
			breaker := getBreaker(name)

			if err := breaker.Allow(c.Context()); err != nil {
				if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
					return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
						"error": "service temporarily unavailable",
						"code":  "CIRCUIT_OPEN",
					})
				}

				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "service temporarily unavailable",
					"code":  "BREAKER_ERROR",
				})
			}

			err := next(c)
			if upstreamFailure(err) {
				breaker.OnFailure(c.Context())
				return err
			}

			breaker.OnSuccess(c.Context())
			return err
		}
	}
}

// upstreamFailure reports whether err points at Canvas or the gateway itself
// being unhealthy. Handler errors arrive mapped to fiber statuses; caller
// mistakes (4xx) must not trip a breaker shared by all clients.
func upstreamFailure(err error) bool {
	if err == nil {
		return false
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code >= fiber.StatusInternalServerError
	}

	// unmapped errors surface as 500s
	return true
}

func breakerName(c *fiber.Ctx) string {
	var path string
	r := c.Route()
	if r != nil && r.Path != "" {
		path = r.Path
	} else {
		path = c.Path()
	}

	return c.Method() + " " + path
}
