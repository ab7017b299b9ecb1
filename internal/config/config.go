package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	// Location is the IANA zone that decides which calendar day is "today".
	Location string `yaml:"location" env:"TALLY_LOCATION"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"TALLY_SERVER_HOST"`
	Port int    `yaml:"port" env:"TALLY_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"TALLY_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"TALLY_LOG_LEVEL"`
	// Path sends logs to a rotated file instead of the console.
	Path string `yaml:"path" env:"TALLY_LOG_PATH"`
}

// TransportConfig selects how the MCP server is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode" env:"TALLY_TRANSPORT_MODE"`
}

type AuthConfig struct {
	Enabled     bool          `yaml:"enabled" env:"TALLY_AUTH_ENABLED"`
	TokenSecret string        `yaml:"token_secret" env:"TALLY_AUTH_TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TALLY_AUTH_TOKEN_TTL"`
	// DefaultUser owns requests when auth is disabled and none is named.
	DefaultUser string `yaml:"default_user" env:"TALLY_AUTH_DEFAULT_USER"`
}

type OAuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id" env:"TALLY_OAUTH_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `yaml:"google_client_secret" env:"TALLY_OAUTH_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `yaml:"google_redirect_url" env:"TALLY_OAUTH_GOOGLE_REDIRECT_URL"`
}

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "tally.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Auth: AuthConfig{
			TokenTTL:    30 * 24 * time.Hour,
			DefaultUser: "local",
		},
		Location: "Local",
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TALLY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if c.Transport.Mode != TransportHTTP && c.Transport.Mode != TransportStdio {
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Auth.Enabled && c.Auth.TokenSecret == "" {
		return errors.New("auth.token_secret is required when auth is enabled")
	}
	if _, err := c.TimeLocation(); err != nil {
		return err
	}
	return nil
}

// TimeLocation resolves Location.
func (c Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return loc, nil
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c Config) GoogleEnabled() bool {
	return c.OAuth.GoogleClientID != "" && c.OAuth.GoogleClientSecret != ""
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
