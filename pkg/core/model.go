package core

type Config struct {
	Environment string
	Port        int
	SkipAuth    bool
	Otel        OtelConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Canvas      CanvasConfig
}

type OtlpConfig struct {
	Endpoint string
	Insecure bool
}

type OtelConfig struct {
	OtlpExporter OtlpConfig
	Disable      bool
}

// AuthConfig configures inbound bearer-token verification for the gateway
// itself. Issuer is the OIDC issuer URL; the JWKS endpoint is derived from it
// unless JWKSURL overrides it.
type AuthConfig struct {
	Issuer   string
	JWKSURL  string
	ClientID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CanvasConfig holds everything needed to talk to a Canvas LMS instance.
// AccessToken may be a manually generated token; when empty, the gateway
// relies on the authorization-code exchange to obtain one.
type CanvasConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AccessToken  string
}
