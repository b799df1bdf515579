package gallery

import (
	"github.com/jlaitio/kuvia/pkg/layout"
)

// Tiles produces the layout engine's input for an album view: one tile
// per visible subalbum followed by one tile per picture, in album order.
//
// Tile keys are paths (stable and unique within the tree), captions are
// titles. A tile's width comes from the stored thumbnail width; entries
// without a thumbnail get a default-width tile so the engine can still
// place them.
func Tiles(album *Album) []layout.Tile {
	tiles := make([]layout.Tile, 0, len(album.Subalbums)+len(album.Pictures))

	for _, sub := range album.Subalbums {
		if !sub.IsVisible {
			continue
		}
		if sub.Thumbnail != nil {
			tiles = append(tiles, layout.KnownTile(sub.Path, sub.Title, float64(sub.Thumbnail.Width)))
		} else {
			tiles = append(tiles, layout.DefaultTile(sub.Path, sub.Title))
		}
	}

	for i := range album.Pictures {
		pic := &album.Pictures[i]
		if thumb := pic.Thumbnail(); thumb != nil {
			tiles = append(tiles, layout.KnownTile(pic.Path, pic.Title, float64(thumb.Width)))
		} else {
			tiles = append(tiles, layout.DefaultTile(pic.Path, pic.Title))
		}
	}

	return tiles
}
