package config

import (
	"time"
)

// ClientConfig holds configuration for the devdesk CLI client.
type ClientConfig struct {
	// Adapter holds settings for the HTTP adapter talking to the server.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
}

// ClientAdapter holds settings for the outbound HTTP client.
type ClientAdapter struct {
	// BaseURL is the server base URL (e.g. "http://localhost:8080").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetClientConfig loads the client configuration from environment
// variables, applying defaults for unset fields.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = "http://localhost:8080"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}

	return cfg, cfg.validate()
}
