// Package config loads client configuration from LMS_ environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Deployment modes for resolving the backend base address.
const (
	ModeAuto   = "auto"
	ModeProxy  = "proxy"
	ModeDirect = "direct"
)

// Backend implementations.
const (
	BackendHTTP   = "http"
	BackendMemory = "memory"
)

// Token store implementations.
const (
	TokenStoreMemory = "memory"
	TokenStoreSQLite = "sqlite"
)

// Config holds the client configuration.
// Environment variables are parsed from the LMS_ prefix, e.g. LMS_API_URL.
type Config struct {
	// Mode selects how BaseURL is resolved: proxy, direct, or auto
	// (direct when APIURL is set, proxy otherwise).
	Mode string `envconfig:"MODE" default:"auto"`

	// APIURL is the absolute backend address used in direct mode, typically
	// a public tunnel in front of the backend.
	APIURL string `envconfig:"API_URL" default:""`

	// ProxyURL is the same-origin reverse proxy that forwards /api in proxy mode.
	ProxyURL string `envconfig:"PROXY_URL" default:"http://localhost:5173"`

	Backend    string `envconfig:"BACKEND" default:"http"`
	TokenStore string `envconfig:"TOKEN_STORE" default:"sqlite"`
	StateHome  string `envconfig:"STATE_HOME" default:""`

	// HTTPTimeout of zero leaves requests bounded only by their context.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	// BaseURL is derived by ResolveDefaults.
	BaseURL string `ignored:"true"`
}

// ResolveDefaults validates the enumerated fields and derives Mode and BaseURL.
func (c *Config) ResolveDefaults() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.ProxyURL = strings.TrimRight(strings.TrimSpace(c.ProxyURL), "/")

	switch c.Mode {
	case "", ModeAuto:
		if c.APIURL != "" {
			c.Mode = ModeDirect
		} else {
			c.Mode = ModeProxy
		}
	case ModeProxy, ModeDirect:
	default:
		return fmt.Errorf("unsupported MODE: %s", c.Mode)
	}

	switch c.Mode {
	case ModeProxy:
		if c.ProxyURL == "" {
			return fmt.Errorf("proxy mode requires LMS_PROXY_URL")
		}
		c.BaseURL = c.ProxyURL
	case ModeDirect:
		if c.APIURL == "" {
			return fmt.Errorf("direct mode requires LMS_API_URL")
		}
		c.BaseURL = c.APIURL
	}

	switch c.Backend {
	case BackendHTTP, BackendMemory:
	default:
		return fmt.Errorf("unsupported BACKEND: %s", c.Backend)
	}
	switch c.TokenStore {
	case TokenStoreMemory, TokenStoreSQLite:
	default:
		return fmt.Errorf("unsupported TOKEN_STORE: %s", c.TokenStore)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	return nil
}

// SessionDBPath returns the session database path under StateHome, or ""
// to let the token store pick its default location.
func (c *Config) SessionDBPath() string {
	if c.StateHome == "" {
		return ""
	}
	return filepath.Join(c.StateHome, "session.db")
}

// Load parses LMS_ environment variables without resolving them, so callers
// can apply overrides before ResolveDefaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LMS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// New creates a Config by parsing LMS_ environment variables.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("mode", cfg.Mode).
		Str("base_url", cfg.BaseURL).
		Str("backend", cfg.Backend).
		Str("token_store", cfg.TokenStore).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("log_level", cfg.LogLevel).
		Bool("debug", cfg.Debug).
		Msg("Configuration loaded")

	return cfg, nil
}

// NewForTesting returns an in-memory configuration that touches neither
// the network nor the filesystem.
func NewForTesting() *Config {
	return &Config{
		Mode:       ModeProxy,
		ProxyURL:   "http://localhost:5173",
		BaseURL:    "http://localhost:5173",
		Backend:    BackendMemory,
		TokenStore: TokenStoreMemory,
		LogLevel:   "debug",
	}
}
