package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for the Canva Connect API endpoints. Overridable through the
// environment so tests and staging setups can point elsewhere.
const (
	defaultAPIBaseURL  = "https://api.canva.com/rest/v1"
	defaultAuthBaseURL = "https://www.canva.com/api/oauth"
)

// Config holds everything read from the environment at startup. The core
// components receive these as opaque values and do no validation of their own.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	APIBaseURL  string
	AuthBaseURL string

	LogLevel string
}

// Load reads configuration from the environment, consulting a .env file in
// the working directory first if one exists. Missing required variables are
// reported together rather than one at a time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:     strings.TrimSpace(os.Getenv("CANVA_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("CANVA_CLIENT_SECRET")),
		RedirectURI:  strings.TrimSpace(os.Getenv("CANVA_REDIRECT_URI")),
		APIBaseURL:   envOrDefault("CANVA_API_BASE_URL", defaultAPIBaseURL),
		AuthBaseURL:  envOrDefault("CANVA_AUTH_BASE_URL", defaultAuthBaseURL),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "CANVA_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, "CANVA_CLIENT_SECRET")
	}
	if cfg.RedirectURI == "" {
		missing = append(missing, "CANVA_REDIRECT_URI")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// AuthorizeURL returns the provider's authorization endpoint.
func (c *Config) AuthorizeURL() string {
	return c.AuthBaseURL + "/authorize"
}

// TokenURL returns the provider's token endpoint. Canva serves it under the
// REST base, not the authorization base.
func (c *Config) TokenURL() string {
	return c.APIBaseURL + "/oauth/token"
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
