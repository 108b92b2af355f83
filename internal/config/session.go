package config

import "time"

// SessionConfig selects where checkout and layout sessions live between
// requests.  Store is "redis" or "memory"; redis falls back to memory when
// no Redis client is available.  SweepEvery only matters for the memory store.
type SessionConfig struct {
	Store      string
	TTL        time.Duration
	Prefix     string
	SweepEvery time.Duration
}

// LoadSessionConfig reads SESSION_* variables.
func LoadSessionConfig() SessionConfig {
	return SessionConfig{
		Store:      envStr("SESSION_STORE", "redis"),
		TTL:        envDur("SESSION_TTL", 30*time.Minute),
		Prefix:     envStr("SESSION_PREFIX", "console:session"),
		SweepEvery: envDur("SESSION_SWEEP_EVERY", time.Minute),
	}
}
