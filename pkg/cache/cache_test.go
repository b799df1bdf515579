package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	tests := []struct {
		name string
		key  string
		data []byte
	}{
		{"simple", "key1", []byte("hello")},
		{"json payload", "key2", []byte(`{"rows":[]}`)},
		{"empty value", "key3", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.key, tt.data, 0); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, found, err := c.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found {
				t.Fatal("Get() found = false, want true")
			}
			if string(got) != string(tt.data) {
				t.Errorf("Get() = %q, want %q", got, tt.data)
			}
		})
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	_, found, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true, want false")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, found, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("expired entry still found")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("entry still found after Delete")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, found, _ := c.Get(ctx, key); found {
			t.Errorf("key %q still found after Clear", key)
		}
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found, err := c.Get(ctx, "key"); err != nil || found {
		t.Errorf("Get() = (found=%v, err=%v), want miss", found, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestKeys(t *testing.T) {
	// Same inputs produce the same key; any differing input changes it.
	base := LayoutKey("/2026", 1200, "v1")
	if LayoutKey("/2026", 1200, "v1") != base {
		t.Error("LayoutKey is not deterministic")
	}
	if LayoutKey("/2026", 800, "v1") == base {
		t.Error("LayoutKey ignores container width")
	}
	if LayoutKey("/2026", 1200, "v2") == base {
		t.Error("LayoutKey ignores version")
	}
	if LayoutKey("/2027", 1200, "v1") == base {
		t.Error("LayoutKey ignores path")
	}

	if AlbumKey("/2026", "v1") == AlbumKey("/2026", "v2") {
		t.Error("AlbumKey ignores version")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	c := Hash([]byte("world"))

	if a != b {
		t.Error("Hash is not deterministic")
	}
	if a == c {
		t.Error("Hash collides on different inputs")
	}
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
}
