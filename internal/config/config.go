package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/rosterbot/internal/nav"
)

// Environment variable overrides.
const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "ROSTERBOT_CONFIG"

	// EnvDatabase overrides the participant database path.
	EnvDatabase = "ROSTERBOT_DB"

	// EnvLocale overrides the display locale.
	EnvLocale = "ROSTERBOT_LOCALE"
)

// Default configuration values.
const (
	// DefaultDatabase is the participant database path.
	DefaultDatabase = "roster.db"

	// DefaultLocale is the display locale.
	DefaultLocale = "en"

	// DefaultFetchTimeoutSeconds bounds each entity source call.
	DefaultFetchTimeoutSeconds = 5

	// DefaultCountTTLSeconds bounds staleness of cached totals.
	DefaultCountTTLSeconds = 30
)

// Validation errors.
var (
	ErrCapTooSmall     = errors.New("transport.cap_bytes must exceed transport.header_reserve_bytes")
	ErrBadMaxPerPage   = errors.New("transport.max_per_page must be positive")
	ErrBadFetchTimeout = errors.New("source.fetch_timeout_seconds must be positive")
)

// Config is the full rosterbot configuration, loaded from YAML with
// defaults filled in for anything unset.
type Config struct {
	Locale    string          `yaml:"locale"`
	Logging   LoggingConfig   `yaml:"logging"`
	Transport TransportConfig `yaml:"transport"`
	Source    SourceConfig    `yaml:"source"`
}

// LoggingConfig controls the global zerolog logger.
type LoggingConfig struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string `yaml:"level"`

	// File, when set, receives logs in addition to the console.
	File string `yaml:"file"`
}

// TransportConfig is the page budget derived from the chat transport's hard
// message size limit.
type TransportConfig struct {
	CapBytes           int `yaml:"cap_bytes"`
	HeaderReserveBytes int `yaml:"header_reserve_bytes"`
	MaxPerPage         int `yaml:"max_per_page"`
}

// SourceConfig locates the tabular backend and bounds calls to it.
type SourceConfig struct {
	Database            string `yaml:"database"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	CountTTLSeconds     int    `yaml:"count_ttl_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Locale:  DefaultLocale,
		Logging: LoggingConfig{Level: "info"},
		Transport: TransportConfig{
			CapBytes:           nav.DefaultCapBytes,
			HeaderReserveBytes: nav.DefaultHeaderReserveBytes,
			MaxPerPage:         nav.DefaultMaxPerPage,
		},
		Source: SourceConfig{
			Database:            DefaultDatabase,
			FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
			CountTTLSeconds:     DefaultCountTTLSeconds,
		},
	}
}

// Load reads the YAML config at path over the defaults, then applies
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if envPath := os.Getenv(EnvConfigPath); envPath != "" && path == "" {
		path = envPath
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing config is fine, defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if db := os.Getenv(EnvDatabase); db != "" {
		cfg.Source.Database = db
	}
	if locale := os.Getenv(EnvLocale); locale != "" {
		cfg.Locale = locale
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the navigation layer depends on.
func (c *Config) Validate() error {
	if c.Transport.CapBytes <= c.Transport.HeaderReserveBytes {
		return fmt.Errorf("%w: cap %d, reserve %d",
			ErrCapTooSmall, c.Transport.CapBytes, c.Transport.HeaderReserveBytes)
	}
	if c.Transport.MaxPerPage <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadMaxPerPage, c.Transport.MaxPerPage)
	}
	if c.Source.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadFetchTimeout, c.Source.FetchTimeoutSeconds)
	}
	return nil
}

// Limits converts the transport section into the navigation layer's budget.
func (c *Config) Limits() nav.Limits {
	return nav.Limits{
		CapBytes:           c.Transport.CapBytes,
		HeaderReserveBytes: c.Transport.HeaderReserveBytes,
		MaxPerPage:         c.Transport.MaxPerPage,
		FetchTimeout:       time.Duration(c.Source.FetchTimeoutSeconds) * time.Second,
	}
}

// CountTTL returns the configured count cache TTL.
func (c *Config) CountTTL() time.Duration {
	return time.Duration(c.Source.CountTTLSeconds) * time.Second
}
