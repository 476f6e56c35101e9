package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores one file per entry below a root directory. It is the
// default backend of the CLI.
//
// An entry file starts with a one-line JSON header holding the original key
// and the expiry, followed by the raw value:
//
//	{"key":"solve:3f1c...","expires":1735689600000000000}
//	[{"formula":"CH4",...}]
//
// Keeping the key in the header lets Get tell a hash collision from a hit.
type FileCache struct {
	dir string
}

type fileHeader struct {
	Key     string `json:"key"`
	Expires int64  `json:"expires,omitempty"` // unix nanoseconds, 0 never expires
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get returns the value stored under key. Unreadable and expired entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	nl := bytes.IndexByte(raw, '\n')
	var h fileHeader
	if nl < 0 || json.Unmarshal(raw[:nl], &h) != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if h.Key != key {
		return nil, false, nil
	}
	if h.Expires != 0 && time.Now().UnixNano() > h.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[nl+1:], true, nil
}

// Set writes the entry to a temporary file and renames it into place, so
// concurrent readers never see a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h := fileHeader{Key: key}
	if ttl > 0 {
		h.Expires = time.Now().Add(ttl).UnixNano()
	}
	header, err := json.Marshal(h)
	if err != nil {
		return err
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(append(header, '\n'), data...)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. A missing entry is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string { return c.dir }

// Clear removes every entry and recreates the empty root directory.
func (c *FileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0755)
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// path shards entries into 256 subdirectories by the first byte of the
// hashed key.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
