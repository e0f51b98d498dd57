package core

import (
	"errors"
	"fmt"
)

const (
	defaultConfigEnvironment = "development"
	defaultConfigPort        = 8000
	defaultSkipAuth          = false

	defaultOtelDisable          = false
	defaultOTLPExporterEndpoint = "localhost:4317"
	// Local collectors speak plaintext; production overrides this via env.
	defaultOTLPInsecure = true

	defaultAuthIssuer   = "UNSET"
	defaultAuthJWKSURL  = ""
	defaultAuthClientID = "UNSET"

	defaultRedisAddr     = "localhost:6379"
	defaultRedisPassword = ""
	defaultRedisDB       = 0

	defaultCanvasBaseURL     = "http://localhost:3000"
	defaultCanvasRedirectURI = "http://localhost:8000/api/oauth/callback"
)

func DefaultConfig() Config {
	return Config{
		Environment: defaultConfigEnvironment,
		Port:        defaultConfigPort,
		SkipAuth:    defaultSkipAuth,
		Otel: OtelConfig{
			Disable: defaultOtelDisable,
			OtlpExporter: OtlpConfig{
				Endpoint: defaultOTLPExporterEndpoint,
				Insecure: defaultOTLPInsecure,
			},
		},
		Auth: AuthConfig{
			Issuer:   defaultAuthIssuer,
			JWKSURL:  defaultAuthJWKSURL,
			ClientID: defaultAuthClientID,
		},
		Redis: RedisConfig{
			Addr:     defaultRedisAddr,
			Password: defaultRedisPassword,
			DB:       defaultRedisDB,
		},
		Canvas: CanvasConfig{
			BaseURL:     defaultCanvasBaseURL,
			RedirectURI: defaultCanvasRedirectURI,
		},
	}
}

func NewConfig(options ...func(*Config)) Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return config
}

func NewConfigFromEnv(options ...func(*Config)) (Config, error) {
	config := DefaultConfig()
	err := errors.Join(
		setFromEnv(&config.Environment, "ENVIRONMENT"),
		setFromEnv(&config.Port, "PORT"),
		setFromEnv(&config.SkipAuth, "SKIP_AUTH"),
		setFromEnv(&config.Otel.Disable, "OTEL_DISABLE"),
		setFromEnv(&config.Otel.OtlpExporter.Endpoint, "OTEL_OTLP_EXPORTER_ENDPOINT"),
		setFromEnv(&config.Otel.OtlpExporter.Insecure, "OTEL_OTLP_EXPORTER_INSECURE"),
		setFromEnv(&config.Auth.Issuer, "AUTH_ISSUER"),
		setFromEnv(&config.Auth.JWKSURL, "AUTH_JWKS_URL"),
		setFromEnv(&config.Auth.ClientID, "AUTH_CLIENT_ID"),
		setFromEnv(&config.Redis.Addr, "REDIS_ADDR"),
		setFromEnv(&config.Redis.Password, "REDIS_PASSWORD"),
		setFromEnv(&config.Redis.DB, "REDIS_DB"),
		setFromEnv(&config.Canvas.BaseURL, "CANVAS_BASE_URL"),
		setFromEnv(&config.Canvas.ClientID, "CANVAS_CLIENT_ID"),
		setFromEnv(&config.Canvas.ClientSecret, "CANVAS_CLIENT_SECRET"),
		setFromEnv(&config.Canvas.RedirectURI, "CANVAS_REDIRECT_URI"),
		setFromEnv(&config.Canvas.AccessToken, "CANVAS_ACCESS_TOKEN"),
	)

	for _, opt := range options {
		opt(&config)
	}

	return config, err
}

func LoadEnv(environment ...string) error {
	filenames := []string{
		".env.local",
		".env",
	}

	env := getEnv("ENVIRONMENT", DefaultConfig().Environment)
	if len(environment) > 0 {
		env = environment[0]
	}

	if env != "" {
		file := ".env." + env + ".local"
		filenames = append([]string{file}, filenames...)
	}

	var errs error

	for _, filename := range filenames {
		err := loadEnvFile(filename)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", filename, err),
			)
		}
	}

	return errs
}
