package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON decodes the value stored under key into v. It returns
// [ErrCacheMiss] when the key is absent.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt entry is as good as a miss.
		_ = c.Delete(ctx, key)
		return fmt.Errorf("%w: decode %s: %v", ErrCacheMiss, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key. It returns the size of the
// stored value.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return 0, err
	}
	return len(data), nil
}
