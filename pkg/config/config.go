// Package config loads the kuvia server configuration from a TOML file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jlaitio/kuvia/pkg/errors"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds all server settings. Every field has a sensible default;
// a missing config file yields a working development setup backed by
// the in-memory store.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `toml:"listen"`

	// MediaRoot is the directory holding originals and pre-generated
	// previews (the pictures/ and previews/ subtrees).
	MediaRoot string `toml:"media_root"`

	// MediaURL is the URL prefix media files are served under.
	MediaURL string `toml:"media_url"`

	// Store selects the album store backend: "memory" or "mongo".
	Store string `toml:"store"`

	// MongoURI and MongoDatabase configure the mongo backend.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`

	// RedisAddr enables the shared Redis cache when set; otherwise a
	// file cache in CacheDir is used.
	RedisAddr string `toml:"redis_addr"`

	// CacheDir is the file cache directory. Empty selects
	// ~/.cache/kuvia/.
	CacheDir string `toml:"cache_dir"`

	// CacheTTL bounds the life of cached layouts and album payloads.
	CacheTTL duration `toml:"cache_ttl"`

	// DefaultWidth is the container width used when a request does not
	// specify one.
	DefaultWidth float64 `toml:"default_width"`
}

// duration wraps time.Duration for TOML strings like "15m".
type duration struct {
	time.Duration
}

// UnmarshalText implements toml's text unmarshaling for durations.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Listen:        ":8000",
		MediaRoot:     "media",
		MediaURL:      "/media",
		Store:         StoreMemory,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "kuvia",
		CacheTTL:      duration{15 * time.Minute},
		DefaultWidth:  1200,
	}
}

// Load reads the TOML config at path on top of the defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want %s or %s)", c.Store, StoreMemory, StoreMongo)
	}

	if c.Store == StoreMongo && c.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mongo store selected but mongo_uri is empty")
	}

	if c.DefaultWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "default_width must be positive, got %v", c.DefaultWidth)
	}

	return nil
}

// ResolveCacheDir returns the configured cache directory, defaulting to
// the XDG cache home.
func (c Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "kuvia"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "kuvia"), nil
}
