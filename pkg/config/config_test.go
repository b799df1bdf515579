package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jlaitio/kuvia/pkg/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen != ":8000" {
		t.Errorf("Listen = %q, want :8000", cfg.Listen)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
	if cfg.DefaultWidth != 1200 {
		t.Errorf("DefaultWidth = %v, want 1200", cfg.DefaultWidth)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CacheTTL.Duration != 15*time.Minute {
		t.Errorf("CacheTTL = %v, want 15m", cfg.CacheTTL.Duration)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuvia.toml")
	content := `
listen = ":9000"
media_root = "/srv/gallery/media"
store = "mongo"
mongo_uri = "mongodb://db:27017"
mongo_database = "gallery"
redis_addr = "redis:6379"
cache_ttl = "1h"
default_width = 1600.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Listen)
	}
	if cfg.Store != StoreMongo {
		t.Errorf("Store = %q, want mongo", cfg.Store)
	}
	if cfg.MongoDatabase != "gallery" {
		t.Errorf("MongoDatabase = %q, want gallery", cfg.MongoDatabase)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.CacheTTL.Duration != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL.Duration)
	}
	if cfg.DefaultWidth != 1600 {
		t.Errorf("DefaultWidth = %v, want 1600", cfg.DefaultWidth)
	}
	// Unset fields keep defaults.
	if cfg.MediaURL != "/media" {
		t.Errorf("MediaURL = %q, want /media", cfg.MediaURL)
	}
}

func TestLoadInvalidStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuvia.toml")
	if err := os.WriteFile(path, []byte(`store = "postgres"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load() error = %v, want INVALID_INPUT", err)
	}
}

func TestValidateWidth(t *testing.T) {
	cfg := Default()
	cfg.DefaultWidth = -5
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidWidth) {
		t.Errorf("Validate() error = %v, want INVALID_WIDTH", err)
	}
}

func TestResolveCacheDirExplicit(t *testing.T) {
	cfg := Default()
	cfg.CacheDir = "/tmp/kuvia-cache"
	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		t.Fatalf("ResolveCacheDir() error = %v", err)
	}
	if dir != "/tmp/kuvia-cache" {
		t.Errorf("dir = %q", dir)
	}
}

func TestResolveCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	dir, err := Default().ResolveCacheDir()
	if err != nil {
		t.Fatalf("ResolveCacheDir() error = %v", err)
	}
	if dir != "/xdg/cache/kuvia" {
		t.Errorf("dir = %q, want /xdg/cache/kuvia", dir)
	}
}
