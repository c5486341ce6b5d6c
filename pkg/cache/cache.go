// Package cache provides the key/value stores behind sessions: Redis for
// deployments with more than one process and an in-process map otherwise.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
)

// Store is a byte-oriented key/value store with per-key expiry.
type Store interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Driver names the backend for logs and metrics.
	Driver() string
	// Close releases the backend's connections.
	Close() error
}

// Connect builds the store selected by SESSION_DRIVER.
func Connect(ctx context.Context) (Store, error) {
	switch config.SessionDriver() {
	case "redis":
		return NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
	case "memory", "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", config.SessionDriver())
	}
}

// GetJSON loads key from s and unmarshals into dest. It reports a hit.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key for ttl.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}
