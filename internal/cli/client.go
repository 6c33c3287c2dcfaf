package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhocevar/DissectingNPM/internal/config"
	"github.com/danielhocevar/DissectingNPM/pkg/cache"
	"github.com/danielhocevar/DissectingNPM/pkg/npms"
)

// newCache builds the response cache backend selected by the config.
func newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "file":
		return cache.NewFileCache(cfg.Cache.Dir)
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Cache.RedisAddr, err)
		}
		return c, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newClient builds an npms client from the config. A non-zero interval
// overrides the configured request spacing.
func newClient(ctx context.Context, cfg config.Config, interval time.Duration) (*npms.Client, cache.Cache, error) {
	store, err := newCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if interval <= 0 {
		interval = cfg.Interval()
	}
	client := npms.New(npms.Config{
		BaseURL:  cfg.BaseURL,
		Cache:    store,
		CacheTTL: cfg.CacheTTL(),
		Interval: interval,
	})
	return client, store, nil
}
