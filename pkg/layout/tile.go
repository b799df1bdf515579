package layout

// Tile is a single item to be laid out: a subalbum cover or a picture
// thumbnail. Tiles are immutable inputs; the engine only reads them.
//
// A tile either carries a known intrinsic width (the stored width of its
// thumbnail, which encodes the aspect ratio at the base row height) or no
// width at all, in which case the engine substitutes the configured
// default width during packing.
type Tile struct {
	// Key is a stable identifier, used as a display key by renderers.
	Key string `json:"key"`

	// Caption is an optional display caption.
	Caption string `json:"caption,omitempty"`

	// Width is the intrinsic display width in pixels. Only meaningful
	// when HasWidth is true.
	Width float64 `json:"width,omitempty"`

	// HasWidth reports whether Width is known. Tiles without a thumbnail
	// leave it false and receive the default width.
	HasWidth bool `json:"has_width"`
}

// KnownTile creates a tile with a known intrinsic width.
func KnownTile(key, caption string, width float64) Tile {
	return Tile{Key: key, Caption: caption, Width: width, HasWidth: true}
}

// DefaultTile creates a tile without a thumbnail. Its width resolves to
// the engine's default tile width.
func DefaultTile(key, caption string) Tile {
	return Tile{Key: key, Caption: caption}
}

// resolvedWidth returns the tile's intrinsic width, or fallback when the
// tile carries no thumbnail.
func (t Tile) resolvedWidth(fallback float64) float64 {
	if t.HasWidth {
		return t.Width
	}
	return fallback
}
