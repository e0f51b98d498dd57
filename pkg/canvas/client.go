package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/core"
	"github.com/campusops/canvas-gateway-api/pkg/oauthcache"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	applicationJSON = "application/json"

	maxErrBodyLogBytes = 800
)

// Service is the typed surface over the Canvas LMS REST API. Calls are
// stateless except for the one-time access-token capture; a Service is safe
// for concurrent use once the token is set.
type Service interface {
	AuthCodeURL(state string) string
	ExchangeAuthorizationCode(ctx context.Context, code string) (*AccessToken, error)
	Token() string
	SetToken(token string) error

	ListCourses(ctx context.Context, opts ListOptions) ([]Course, string, error)
	ListAccountCourses(ctx context.Context, accountID string, opts ListOptions) ([]Course, string, error)
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	CreateCourse(ctx context.Context, accountID string, fields CourseFields) (*Course, error)
	UpdateCourse(ctx context.Context, courseID string, fields CourseFields) (*Course, error)
	DeleteCourse(ctx context.Context, courseID string) (*Ack, error)
	GetCourseSettings(ctx context.Context, courseID string) (*CourseSettings, error)
	UpdateCourseSettings(ctx context.Context, courseID string, fields SettingsFields) (*CourseSettings, error)

	ListAccounts(ctx context.Context, opts ListOptions) ([]Account, string, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	ListModules(ctx context.Context, courseID string, opts ListOptions) ([]Module, string, error)
	ListModuleItems(ctx context.Context, courseID, moduleID string, opts ListOptions) ([]ModuleItem, string, error)
	ListPages(ctx context.Context, courseID string, opts ListOptions) ([]Page, string, error)
	ListContentExports(ctx context.Context, courseID string, opts ListOptions) ([]ContentExport, string, error)
}

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// Override for testing the HTTP client
	HTTPClient HTTPTransport
	// Structured logger using slog package
	Logger *slog.Logger
	// Context timeout
	Timeout time.Duration
}

type service struct {
	cfg    *core.CanvasConfig
	client HTTPTransport
	logger *slog.Logger
	opts   Options

	mu    sync.Mutex
	token string
}

func New(cfg *core.CanvasConfig, opts Options) (Service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("cfg.BaseURL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "canvas"),
		slog.String("base_url", cfg.BaseURL),
	)

	client := opts.HTTPClient
	if client == nil {
		client = oauthcache.HeaderPreservingClient()
	}

	return &service{
		cfg:    cfg,
		client: client,
		logger: logger,
		opts:   opts,
		token:  cfg.AccessToken,
	}, nil
}

func (s *service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken records the access token for this session. The token is
// write-once: a second call fails rather than silently rotating credentials
// under concurrent readers.
func (s *service) SetToken(token string) error {
	if token == "" {
		return errors.New("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return errors.New("token already set")
	}
	s.token = token
	return nil
}

func (s *service) captureToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		s.token = token
	}
}

// callOptions carries the per-call pieces that vary between endpoints.
// rawQuery is pre-encoded so callers control parameter order.
type callOptions struct {
	pathArgs []any
	rawQuery string
	form     url.Values
	cursor   string
}

type apiResult struct {
	status int
	body   []byte
	header http.Header
}

func (s *service) call(ctx context.Context, ep endpoint, opt callOptions) (*apiResult, error) {
	if s.opts.Timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
			defer cancel()
		}
	}

	token := s.Token()
	if ep.auth && token == "" {
		return nil, &AuthError{Reason: "endpoint requires a bearer token but none is set"}
	}

	target := opt.cursor
	if target == "" {
		path := ep.path
		if len(opt.pathArgs) > 0 {
			path = fmt.Sprintf(ep.path, opt.pathArgs...)
		}
		target = s.cfg.BaseURL + path
		if opt.rawQuery != "" {
			target += "?" + opt.rawQuery
		}
	}

	log := s.logger.With(
		slog.String("method", ep.method),
		slog.String("url", target),
	)

	var body io.Reader
	if opt.form != nil {
		body = strings.NewReader(opt.form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, target, body)
	if err != nil {
		log.Error("canvas create request failed", slog.Any("error", err))
		return nil, fmt.Errorf("create canvas request: %w", err)
	}

	req.Header.Set("Accept", applicationJSON)
	if opt.form != nil {
		req.Header.Set("Content-Type", contentTypeForm)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("canvas request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	log.Debug("canvas response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBytes)
		if len(snippet) > maxErrBodyLogBytes {
			snippet = snippet[:maxErrBodyLogBytes] + "..."
		}

		log.Error("canvas non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("www_authenticate", resp.Header.Get("WWW-Authenticate")),
			slog.String("body_snippet", snippet),
		)

		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	return &apiResult{
		status: resp.StatusCode,
		body:   respBytes,
		header: resp.Header,
	}, nil
}

// listQuery encodes pagination parameters for listing endpoints.
func listQuery(opts ListOptions) string {
	if opts.PerPage <= 0 {
		return ""
	}
	v := url.Values{}
	v.Set("per_page", fmt.Sprint(opts.PerPage))
	return v.Encode()
}
