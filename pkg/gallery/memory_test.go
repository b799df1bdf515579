package gallery

import (
	"context"
	"testing"

	"github.com/jlaitio/kuvia/pkg/errors"
)

func TestMemoryStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, testTree()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	album, err := store.Get(ctx, "/2026/juhlat")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if album.Title != "Juhlat" {
		t.Errorf("Title = %q, want Juhlat", album.Title)
	}

	wantTrail := []Breadcrumb{
		{Path: "/", Title: "Gallery"},
		{Path: "/2026", Title: "Year 2026"},
	}
	if len(album.Breadcrumb) != len(wantTrail) {
		t.Fatalf("breadcrumb length = %d, want %d", len(album.Breadcrumb), len(wantTrail))
	}
	for i, want := range wantTrail {
		if album.Breadcrumb[i] != want {
			t.Errorf("breadcrumb[%d] = %+v, want %+v", i, album.Breadcrumb[i], want)
		}
	}
}

func TestMemoryStoreGetPicturePath(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, testTree()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	album, err := store.Get(ctx, "/2026/juhlat/p1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if album.Path != "/2026/juhlat" {
		t.Errorf("picture path resolved to %q, want /2026/juhlat", album.Path)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, testTree()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	_, err := store.Get(ctx, "/nonexistent")
	if !errors.Is(err, errors.ErrCodeAlbumNotFound) {
		t.Errorf("Get() error = %v, want ALBUM_NOT_FOUND", err)
	}
}

func TestMemoryStoreRootEmpty(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Root(context.Background()); !errors.Is(err, errors.ErrCodeAlbumNotFound) {
		t.Errorf("Root() error = %v, want ALBUM_NOT_FOUND", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, testTree()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	replacement := &Album{Path: "/", Title: "New Gallery", IsVisible: true}
	replacement.Normalize()
	if err := store.Put(ctx, replacement); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := store.Get(ctx, "/2026"); !errors.Is(err, errors.ErrCodeAlbumNotFound) {
		t.Errorf("old tree still resolvable after Put, error = %v", err)
	}

	root, err := store.Root(ctx)
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if root.Title != "New Gallery" {
		t.Errorf("root title = %q, want New Gallery", root.Title)
	}
}
