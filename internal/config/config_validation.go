package config

import "time"

// Default values applied to fields left unset by every source. Token
// lifetimes follow the session design: short-lived access token, week-long
// refresh token, ten-minute OTP window.
const (
	defaultHTTPAddress          = "0.0.0.0:8080"
	defaultTokenIssuer          = "devdesk"
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultOTPDuration          = 10 * time.Minute
)

// applyDefaults fills zero-valued fields of the merged configuration with
// their documented defaults. Secrets have no defaults on purpose.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = defaultRefreshTokenDuration
	}
	if cfg.App.OTPDuration == 0 {
		cfg.App.OTPDuration = defaultOTPDuration
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvDevelopment
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessTokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.Environment != EnvDevelopment && cfg.App.Environment != EnvProduction {
		return ErrInvalidAppConfigs
	}

	return nil
}

// validate checks client configuration invariants: the CLI needs at least
// a server base address.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
