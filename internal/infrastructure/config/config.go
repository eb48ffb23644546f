package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Explorer  ExplorerConfig
	Cache     CacheConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8400"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ExplorerConfig holds index and scan configuration.
type ExplorerConfig struct {
	// Root is the tree indexed on startup; empty selects the platform
	// default volume root.
	Root string `envconfig:"EXPLORER_ROOT" default:""`
	// ScanOnStart begins the initial root scan at boot.
	ScanOnStart bool `envconfig:"EXPLORER_SCAN_ON_START" default:"true"`
	// SkipSubstrings prunes directories whose path contains any of these.
	SkipSubstrings []string `envconfig:"EXPLORER_SKIP" default:"System Volume Information,OneDrive,CloudStore"`
}

// CacheConfig holds directory listing cache configuration.
type CacheConfig struct {
	MaxEntries int           `envconfig:"CACHE_MAX_ENTRIES" default:"256"`
	TTL        time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: "8400",
			Host: "0.0.0.0",
		},
		Explorer: ExplorerConfig{
			ScanOnStart:    true,
			SkipSubstrings: []string{"System Volume Information", "OneDrive", "CloudStore"},
		},
		Cache: CacheConfig{
			MaxEntries: 256,
			TTL:        30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Explorer.Root == "" {
		c.Explorer.Root = DefaultRoot()
	}
	c.Explorer.Root = filepath.Clean(c.Explorer.Root)
}

// DefaultRoot returns the platform default scan root: the system drive on
// Windows, the user home elsewhere.
func DefaultRoot() string {
	if runtime.GOOS == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive + `\`
		}
		return `C:\`
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}
