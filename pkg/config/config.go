// Package config loads and saves the lewis configuration file.
//
// The file lives at $XDG_CONFIG_HOME/lewis/config.toml (falling back to
// ~/.config/lewis/config.toml) and is optional: a missing file yields
// [Default]. Command-line flags override file values.
//
//	[solve]
//	mode = "first"
//	max_ion_charge = 4
//
//	[render]
//	size = 600
//	formats = ["svg"]
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "168h"
//
//	[store]
//	mongo_uri = ""
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/pipeline"
	"github.com/matzehuels/lewis/pkg/solver"
)

const appName = "lewis"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration file.
type Config struct {
	Solve  Solve  `toml:"solve"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Solve holds solver defaults.
type Solve struct {
	Mode         string   `toml:"mode"`
	MaxIonCharge int      `toml:"max_ion_charge"`
	Limit        int      `toml:"limit"`
	Timeout      Duration `toml:"timeout"`
}

// Render holds rendering defaults.
type Render struct {
	Size    float64  `toml:"size"`
	Formats []string `toml:"formats"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir,omitempty"` // file backend, default under the user cache dir
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	Prefix        string   `toml:"prefix,omitempty"` // key prefix for shared backends
}

// Store configures optional MongoDB persistence for the server.
type Store struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// Server configures the HTTP server.
type Server struct {
	Addr            string   `toml:"addr"`
	RequestTimeout  Duration `toml:"request_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solve: Solve{
			Mode:         pipeline.DefaultMode,
			MaxIonCharge: solver.DefaultMaxIonCharge,
			Limit:        pipeline.DefaultLimit,
			Timeout:      Duration{pipeline.DefaultTimeout},
		},
		Render: Render{
			Size:    pipeline.DefaultSize,
			Formats: []string{pipeline.FormatSVG},
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: Server{
			Addr:            ":8080",
			RequestTimeout:  Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// Load reads path on top of [Default]. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating parent directories.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := pipeline.ValidateMode(c.Solve.Mode); err != nil {
		return err
	}
	if c.Solve.MaxIonCharge < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "solve.max_ion_charge must not be negative")
	}
	if c.Solve.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "solve.limit must not be negative")
	}
	if c.Render.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.size must be positive")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the configuration.
func (c Config) PipelineOptions(formula string) pipeline.Options {
	return pipeline.Options{
		Formula:      formula,
		Mode:         c.Solve.Mode,
		MaxIonCharge: c.Solve.MaxIonCharge,
		Limit:        c.Solve.Limit,
		Timeout:      c.Solve.Timeout.Duration,
		Formats:      append([]string(nil), c.Render.Formats...),
		Size:         c.Render.Size,
	}
}

// =============================================================================
// Paths
// =============================================================================

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/lewis/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
