package gallery

import (
	"testing"
)

func TestTilesOrderAndWidths(t *testing.T) {
	root := testTree()
	year := root.Subalbums[0]

	tiles := Tiles(year)

	// One tile for the juhlat subalbum, one for picture p3.
	if len(tiles) != 2 {
		t.Fatalf("got %d tiles, want 2", len(tiles))
	}

	if tiles[0].Key != "/2026/juhlat" {
		t.Errorf("tile 0 key = %q, want /2026/juhlat", tiles[0].Key)
	}
	if !tiles[0].HasWidth || tiles[0].Width != 320 {
		t.Errorf("tile 0 width = %v (known=%v), want 320", tiles[0].Width, tiles[0].HasWidth)
	}
	if tiles[0].Caption != "Juhlat" {
		t.Errorf("tile 0 caption = %q, want Juhlat", tiles[0].Caption)
	}

	if tiles[1].Key != "/2026/p3" {
		t.Errorf("tile 1 key = %q, want /2026/p3", tiles[1].Key)
	}
	if !tiles[1].HasWidth || tiles[1].Width != 360 {
		t.Errorf("tile 1 width = %v (known=%v), want 360", tiles[1].Width, tiles[1].HasWidth)
	}
}

func TestTilesDefaultWidthForMissingThumbnail(t *testing.T) {
	album := &Album{
		Path:  "/x",
		Title: "X",
		Pictures: []Picture{
			{Slug: "noshot", Path: "/x/noshot", Title: "No thumbnail"},
		},
	}

	tiles := Tiles(album)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].HasWidth {
		t.Error("tile without thumbnail must not carry a known width")
	}
}

func TestTilesSkipsHiddenSubalbums(t *testing.T) {
	album := &Album{
		Path:  "/",
		Title: "Gallery",
		Subalbums: []*Album{
			{Path: "/visible", Title: "Visible", IsVisible: true},
			{Path: "/hidden", Title: "Hidden", IsVisible: false},
		},
	}

	tiles := Tiles(album)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].Key != "/visible" {
		t.Errorf("tile key = %q, want /visible", tiles[0].Key)
	}
}

func TestTilesEmptyAlbum(t *testing.T) {
	if tiles := Tiles(&Album{Path: "/", Title: "Empty"}); len(tiles) != 0 {
		t.Errorf("got %d tiles, want 0", len(tiles))
	}
}
