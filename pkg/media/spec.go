// Package media describes the stored renditions of gallery pictures:
// originals and pre-generated scaled variants, their canonical storage
// paths, and dimension probing of image files.
//
// Variant generation itself happens outside this application; kuvia
// only records what already exists on disk.
package media

import (
	"fmt"
	"path"
)

// Spec describes one class of pre-generated scaled media.
type Spec struct {
	// Role names the variant: "thumbnail" or "preview".
	Role string

	// MaxWidth and MaxHeight bound the variant's dimensions. The
	// generator fits the image inside this box preserving aspect ratio.
	MaxWidth  int
	MaxHeight int

	// Quality is the encoder quality setting (1-100).
	Quality int

	// Format is the encoded file format ("jpeg" or "webp").
	Format string
}

// DefaultSpecs are the variants the scanner expects to find next to
// originals. Thumbnail height matches the layout engine's base row
// height, so a thumbnail's width encodes its aspect ratio at that
// height.
var DefaultSpecs = []Spec{
	{Role: "thumbnail", MaxWidth: 2400, MaxHeight: 240, Quality: 60, Format: "jpeg"},
	{Role: "preview", MaxWidth: 2400, MaxHeight: 1200, Quality: 80, Format: "jpeg"},
}

// OriginalPath returns the canonical storage path of an original,
// relative to the media root: pictures/<picturePath>.<ext>.
func OriginalPath(picturePath, format string) string {
	return fmt.Sprintf("pictures%s.%s", picturePath, format)
}

// VariantPath returns the canonical storage path of a scaled variant,
// relative to the media root: previews/<picturePath>.<role>.<format>.
func (s Spec) VariantPath(picturePath string) string {
	return fmt.Sprintf("previews%s.%s.%s", picturePath, s.Role, s.Format)
}

// IsImageFile reports whether filename has an image extension the
// scanner understands.
func IsImageFile(filename string) bool {
	switch path.Ext(filename) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
