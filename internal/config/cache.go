package config

import "time"

// CacheConfig defines settings for the backend response cache.  When Enabled
// is false or no Redis client is configured, every GET goes to the backend.
// TTL bounds how stale a cached list or detail may get when another console
// changes the backend; mutations made through this console invalidate the
// affected resource immediately.  MaxBodyBytes skips caching of large bodies.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "console:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	return cfg
}
