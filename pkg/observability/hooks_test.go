package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGalleryHooks{}
	g.OnScanStart(ctx, "/var/gallery")
	g.OnScanComplete(ctx, "/var/gallery", 12, 340, time.Second, nil)
	g.OnLayoutStart(ctx, "/2026/juhlat", 40)
	g.OnLayoutComplete(ctx, "/2026/juhlat", 9, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "album")
	c.OnCacheSet(ctx, "layout", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/2026/juhlat")
	h.OnResponse(ctx, "GET", "/2026/juhlat", 200, time.Millisecond)
}

type testGalleryHooks struct {
	NoopGalleryHooks
	layoutStarts int
}

func (h *testGalleryHooks) OnLayoutStart(ctx context.Context, path string, tileCount int) {
	h.layoutStarts++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Gallery().(NoopGalleryHooks); !ok {
		t.Error("Gallery() should return NoopGalleryHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testGalleryHooks{}
	SetGalleryHooks(custom)

	Gallery().OnLayoutStart(context.Background(), "/", 5)
	if custom.layoutStarts != 1 {
		t.Errorf("layoutStarts = %d, want 1", custom.layoutStarts)
	}

	// nil registration keeps the current hooks.
	SetGalleryHooks(nil)
	if Gallery() != custom {
		t.Error("SetGalleryHooks(nil) replaced the registered hooks")
	}
}
