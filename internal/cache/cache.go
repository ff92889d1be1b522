// Package cache stores finished reports under their symmetric cache key.
package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Store is a shared key-value cache. Implementations must be safe for
// concurrent use; no transactional guarantee is expected.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Noop is the store used when no cache is configured. Every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }

// Enabled reports whether s actually caches anything.
func Enabled(s Store) bool {
	if s == nil {
		return false
	}
	_, noop := s.(Noop)
	return !noop
}

// Open picks a store from a connection string: empty disables caching,
// memory:// keeps reports in process, redis:// and rediss:// use Redis.
func Open(rawURL string) (Store, error) {
	if rawURL == "" {
		return Noop{}, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	switch u.Scheme {
	case "memory":
		size := defaultMemorySize
		if s := u.Query().Get("size"); s != "" {
			if size, err = strconv.Atoi(s); err != nil || size <= 0 {
				return nil, fmt.Errorf("invalid memory cache size %q", s)
			}
		}
		return NewMemoryStore(size)
	case "redis", "rediss":
		return NewRedisStore(rawURL)
	}
	return nil, fmt.Errorf("unsupported cache scheme %q", u.Scheme)
}
