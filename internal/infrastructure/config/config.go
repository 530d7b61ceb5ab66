package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App      AppConfig
	API      APIConfig
	Log      LogConfig
	Session  SessionConfig
	Cache    CacheConfig
	Features FeatureConfig
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name    string
	Env     string
	Version string
	Debug   bool
}

// APIConfig holds the remote backend settings
type APIConfig struct {
	URL     string        // base URL including the API prefix
	Timeout time.Duration // per-request timeout
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SessionConfig holds the persisted-session settings
type SessionConfig struct {
	Path            string // file backing the session store
	TokenKey        string
	RefreshTokenKey string
	UserKey         string
}

// CacheConfig holds the query-cache freshness windows and retry policy
type CacheConfig struct {
	StaleAfter  time.Duration // entries younger than this are served without a fetch
	EvictAfter  time.Duration // unused entries are dropped after this
	ReadRetries int           // max fetch attempts for reads (401 is never retried)
}

// FeatureConfig holds optional feature flags
type FeatureConfig struct {
	Analytics      bool
	ErrorReporting bool
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with REGISTRO_ prefix (e.g. REGISTRO_API_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.registro")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("REGISTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Version: v.GetString("app.version"),
			Debug:   v.GetBool("app.debug"),
		},
		API: APIConfig{
			URL:     v.GetString("api.url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Session: SessionConfig{
			Path:            v.GetString("session.path"),
			TokenKey:        v.GetString("session.token_key"),
			RefreshTokenKey: v.GetString("session.refresh_token_key"),
			UserKey:         v.GetString("session.user_key"),
		},
		Cache: CacheConfig{
			StaleAfter:  v.GetDuration("cache.stale_after"),
			EvictAfter:  v.GetDuration("cache.evict_after"),
			ReadRetries: v.GetInt("cache.read_retries"),
		},
		Features: FeatureConfig{
			Analytics:      v.GetBool("features.analytics"),
			ErrorReporting: v.GetBool("features.error_reporting"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "person-registration-client"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.API.URL == "" {
		cfg.API.URL = "http://localhost:8000/api/v1"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = ".registro-session.json"
	}
	if cfg.Session.TokenKey == "" {
		cfg.Session.TokenKey = "auth_token"
	}
	if cfg.Session.RefreshTokenKey == "" {
		cfg.Session.RefreshTokenKey = "refresh_token"
	}
	if cfg.Session.UserKey == "" {
		cfg.Session.UserKey = "user"
	}
	if cfg.Cache.StaleAfter == 0 {
		cfg.Cache.StaleAfter = 5 * time.Minute
	}
	if cfg.Cache.EvictAfter == 0 {
		cfg.Cache.EvictAfter = 10 * time.Minute
	}
	if cfg.Cache.ReadRetries == 0 {
		cfg.Cache.ReadRetries = 3
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	parsed, err := url.Parse(c.API.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.url must be an absolute URL, got %q", c.API.URL)
	}
	if c.Cache.StaleAfter > c.Cache.EvictAfter {
		return fmt.Errorf("cache.stale_after (%s) cannot exceed cache.evict_after (%s)",
			c.Cache.StaleAfter, c.Cache.EvictAfter)
	}
	if c.Cache.ReadRetries < 1 {
		return fmt.Errorf("cache.read_retries must be positive")
	}
	return nil
}

// IsDevelopment reports whether the client runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the client runs in a production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
