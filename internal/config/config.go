// Package config loads tool defaults from a TOML file. Every value has a
// built-in default and can be overridden per invocation by command flags,
// so the file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables shared by the dissectnpm commands.
type Config struct {
	// BaseURL is the npms.io API root.
	BaseURL string `toml:"base_url"`

	// RequestInterval is the minimum spacing between outbound API
	// requests, e.g. "250ms".
	RequestInterval duration `toml:"request_interval"`

	// Cache selects the response cache backend: "file", "redis" or "none".
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"` // file backend; empty selects the default
	TTL       duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:         "https://api.npms.io/v2",
		RequestInterval: duration(250 * time.Millisecond),
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       duration(24 * time.Hour),
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads the config file at path. An empty path selects the first of
// ./dissectnpm.toml and ~/.config/dissectnpm/config.toml that exists; when
// neither does, the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
		return nil
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
}

// Interval returns the request interval as a time.Duration.
func (c Config) Interval() time.Duration { return time.Duration(c.RequestInterval) }

// CacheTTL returns the cache TTL as a time.Duration.
func (c Config) CacheTTL() time.Duration { return time.Duration(c.Cache.TTL) }

func findConfig() string {
	if _, err := os.Stat("dissectnpm.toml"); err == nil {
		return "dissectnpm.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "dissectnpm", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// duration parses TOML strings like "250ms" or "24h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}
