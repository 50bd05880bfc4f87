package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-access-sign-key access token signing key
//	-refresh-sign-key refresh token signing key
//	-token-issuer token issuer name
//	-access-duration access token duration (e.g., "15m")
//	-refresh-duration refresh token duration (e.g., "168h")
//	-otp-duration OTP validity window (e.g., "10m")
//	-environment deployment environment ("development" or "production")
//	-allowed-origins comma-separated CORS origin list
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var accessSignKey string
	var refreshSignKey string
	var tokenIssuer string
	var accessDuration time.Duration
	var refreshDuration time.Duration
	var otpDuration time.Duration
	var environment string
	var allowedOrigins string
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessSignKey, "access-sign-key", "", "Access token signing key")
	flag.StringVar(&refreshSignKey, "refresh-sign-key", "", "Refresh token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessDuration, "access-duration", 0, "Access token duration (e.g., 15m)")
	flag.DurationVar(&refreshDuration, "refresh-duration", 0, "Refresh token duration (e.g., 168h)")
	flag.DurationVar(&otpDuration, "otp-duration", 0, "OTP validity window (e.g., 10m)")
	flag.StringVar(&environment, "environment", "", "Deployment environment (development|production)")
	flag.StringVar(&allowedOrigins, "allowed-origins", "", "Comma-separated CORS origin list")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	return &StructuredConfig{
		App: App{
			AccessTokenSignKey:   accessSignKey,
			RefreshTokenSignKey:  refreshSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessDuration,
			RefreshTokenDuration: refreshDuration,
			OTPDuration:          otpDuration,
			Environment:          environment,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			AllowedOrigins: origins,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect host")
		}
	}

	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return errors.New("incorrect port")
	}
	if port < 0 || port > 65535 {
		return errors.New("port out of range")
	}

	a.Host = host
	a.Port = port

	return nil
}
