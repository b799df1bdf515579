// Package layout implements the justified row-packing engine that
// arranges image tiles of heterogeneous width into visually balanced
// rows filling a container of known width.
//
// The engine is a pure function over its inputs: it performs no I/O,
// touches no shared state, and may be called concurrently. It packs
// tiles greedily into rows (allowing a slight pre-scale overflow so
// natural breaks land near the container edge without lookahead), then
// justifies each sufficiently full row by scaling its tiles and height
// uniformly so the row spans the container exactly. Sparse rows, such
// as the trailing row of an album, are deliberately left at native size
// rather than being stretched.
//
// Aspect ratios are preserved throughout: thumbnail widths encode the
// aspect ratio at the base row height, and a row's single scale factor
// applies to both its height and every member width.
package layout

import (
	"math"

	"github.com/jlaitio/kuvia/pkg/errors"
)

// Policy constants. These are fixed properties of the layout policy,
// not derived from input.
const (
	// DefaultBaseHeight is the nominal, unscaled row height.
	DefaultBaseHeight = 240.0

	// DefaultTileWidth is substituted for tiles without a thumbnail.
	DefaultTileWidth = 240.0

	// DefaultMaxWidthFactor allows a 10% pre-scale overflow before a
	// row is closed.
	DefaultMaxWidthFactor = 1.1

	// DefaultScaleThresholdFactor separates rows worth justifying from
	// rows too sparse to stretch.
	DefaultScaleThresholdFactor = 0.8
)

// Config holds the layout policy parameters.
type Config struct {
	// BaseHeight is the unscaled row height in pixels.
	BaseHeight float64

	// DefaultTileWidth is the width assumed for tiles without a thumbnail.
	DefaultTileWidth float64

	// MaxWidthFactor scales the container width into the packing budget:
	// a row accepts tiles until its total would exceed
	// containerWidth × MaxWidthFactor.
	MaxWidthFactor float64

	// ScaleThresholdFactor scales the container width into the
	// justification threshold: rows whose total exceeds
	// containerWidth × ScaleThresholdFactor are stretched to span the
	// container exactly; the rest keep their native size.
	ScaleThresholdFactor float64
}

// DefaultConfig returns the standard layout policy.
func DefaultConfig() Config {
	return Config{
		BaseHeight:           DefaultBaseHeight,
		DefaultTileWidth:     DefaultTileWidth,
		MaxWidthFactor:       DefaultMaxWidthFactor,
		ScaleThresholdFactor: DefaultScaleThresholdFactor,
	}
}

// ComputeRows lays out tiles into justified rows for a container of the
// given width using the default policy. See Config.ComputeRows.
func ComputeRows(tiles []Tile, containerWidth float64) ([]Row, error) {
	return DefaultConfig().ComputeRows(tiles, containerWidth)
}

// ComputeRows lays out tiles into justified rows for a container of the
// given width.
//
// Every input tile appears in exactly one output row, in original
// relative order. Rows are never empty; a tile wider than the packing
// budget that starts a fresh row stays alone in it, undistorted by
// further splitting. An empty input yields zero rows.
//
// containerWidth must be a finite positive number; anything else is
// rejected with an INVALID_WIDTH error.
func (c Config) ComputeRows(tiles []Tile, containerWidth float64) ([]Row, error) {
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return nil, errors.New(errors.ErrCodeInvalidWidth, "container width must be a finite positive number, got %v", containerWidth)
	}

	rows := c.pack(tiles, containerWidth)
	c.justify(rows, containerWidth)
	return rows, nil
}

// pack greedily distributes tiles into rows. A row is closed before a
// tile that would push its total past maxWidth, unless the row is still
// empty: the first tile always lands in the current row.
func (c Config) pack(tiles []Tile, containerWidth float64) []Row {
	if len(tiles) == 0 {
		return nil
	}

	maxWidth := containerWidth * c.MaxWidthFactor
	rows := make([]Row, 0, estimateRows(len(tiles), containerWidth, c.DefaultTileWidth))
	current := c.newRow()

	for _, t := range tiles {
		w := t.resolvedWidth(c.DefaultTileWidth)
		if len(current.Tiles) > 0 && current.TotalWidth+w > maxWidth {
			rows = append(rows, current)
			current = c.newRow()
		}
		t.Width = w
		t.HasWidth = true
		current.Tiles = append(current.Tiles, t)
		current.TotalWidth += w
	}

	return append(rows, current)
}

// justify finalizes each row independently. Rows whose unscaled total
// exceeds the threshold are scaled so their tiles span the container
// exactly; sparse rows keep scale 1.0 and the base height.
func (c Config) justify(rows []Row, containerWidth float64) {
	threshold := containerWidth * c.ScaleThresholdFactor
	for i := range rows {
		row := &rows[i]
		if row.TotalWidth > threshold && row.TotalWidth > 0 {
			row.Scale = containerWidth / row.TotalWidth
			row.Height = c.BaseHeight * row.Scale
		}
	}
}

func (c Config) newRow() Row {
	return Row{Height: c.BaseHeight, Scale: 1.0}
}

// estimateRows guesses the row count for the initial allocation.
func estimateRows(tileCount int, containerWidth, tileWidth float64) int {
	perRow := int(containerWidth / tileWidth)
	if perRow < 1 {
		perRow = 1
	}
	return tileCount/perRow + 1
}
