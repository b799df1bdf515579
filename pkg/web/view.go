package web

import (
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/i18n"
	"github.com/jlaitio/kuvia/pkg/layout"
)

// rowGap is the cosmetic border added to each row's displayed height.
// It lives here, in the renderer, outside the engine's computed height.
const rowGap = 2.0

// AlbumView is the template model for one album page.
type AlbumView struct {
	Title      string
	PageTitle  string
	Description string
	Body       string
	Breadcrumb []gallery.Breadcrumb
	Rows       []RowView
	Empty      bool
	Labels     Labels
}

// Labels carries the translated chrome strings.
type Labels struct {
	Gallery    string
	EmptyAlbum string
}

// RowView is one justified row of tiles.
type RowView struct {
	// Height is the engine-computed row height.
	Height float64

	// OuterHeight includes the visual gap between rows.
	OuterHeight float64

	Tiles []TileView
}

// TileView is one rendered tile: a subalbum cover or a picture
// thumbnail, scaled to the row.
type TileView struct {
	Href     string
	Caption  string
	ImageSrc string // empty when no thumbnail exists
	Width    float64
	Height   float64
	IsAlbum  bool
}

// tileMeta is the per-path display metadata extracted from the album.
type tileMeta struct {
	imageSrc string
	isAlbum  bool
}

// buildAlbumView assembles the template model from the album, its
// computed rows, and the matched translator.
func (s *Server) buildAlbumView(album *gallery.Album, rows []layout.Row, tr i18n.Translator) AlbumView {
	meta := make(map[string]tileMeta, len(album.Subalbums)+len(album.Pictures))
	for _, sub := range album.Subalbums {
		m := tileMeta{isAlbum: true}
		if sub.Thumbnail != nil {
			m.imageSrc = s.mediaSrc(sub.Thumbnail.Src)
		}
		meta[sub.Path] = m
	}
	for i := range album.Pictures {
		pic := &album.Pictures[i]
		var m tileMeta
		if thumb := pic.Thumbnail(); thumb != nil {
			m.imageSrc = s.mediaSrc(thumb.Src)
		}
		meta[pic.Path] = m
	}

	view := AlbumView{
		Title:       album.Title,
		PageTitle:   pageTitle(album),
		Description: album.Description,
		Body:        album.Body,
		Breadcrumb:  album.Breadcrumb,
		Empty:       len(rows) == 0,
		Labels: Labels{
			Gallery:    tr.T("gallery"),
			EmptyAlbum: tr.T("empty_album"),
		},
	}

	view.Rows = make([]RowView, len(rows))
	for i, row := range rows {
		rv := RowView{
			Height:      row.Height,
			OuterHeight: row.Height + rowGap,
			Tiles:       make([]TileView, row.Len()),
		}
		for j, tile := range row.Tiles {
			m := meta[tile.Key]
			rv.Tiles[j] = TileView{
				Href:     tile.Key,
				Caption:  tile.Caption,
				ImageSrc: m.imageSrc,
				Width:    row.RenderWidth(j),
				Height:   row.Height,
				IsAlbum:  m.isAlbum,
			}
		}
		view.Rows[i] = rv
	}

	return view
}

// mediaSrc resolves a stored media path against the media URL prefix.
func (s *Server) mediaSrc(src string) string {
	return s.opts.MediaURL + "/" + src
}

// pageTitle builds the browser title: album title, suffixed with the
// gallery root title for nested albums.
func pageTitle(album *gallery.Album) string {
	if len(album.Breadcrumb) == 0 {
		return album.Title
	}
	return album.Title + " · " + album.Breadcrumb[0].Title
}
