package layout

import (
	"fmt"
	"math"
	"testing"
)

const tolerance = 1e-9

func tilesOfWidth(widths ...float64) []Tile {
	tiles := make([]Tile, len(widths))
	for i, w := range widths {
		tiles[i] = KnownTile(fmt.Sprintf("tile-%d", i), "", w)
	}
	return tiles
}

func TestComputeRowsEmptyInput(t *testing.T) {
	rows, err := ComputeRows(nil, 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}

	rows, err = ComputeRows([]Tile{}, 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestComputeRowsInvalidWidth(t *testing.T) {
	tests := []struct {
		name  string
		width float64
	}{
		{"zero", 0},
		{"negative", -100},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRows(tilesOfWidth(100), tt.width)
			if err == nil {
				t.Errorf("ComputeRows(width=%v) error = nil, want error", tt.width)
			}
		})
	}
}

// Scenario: container 1000, five tiles of 250. The first four fit within
// the 1100 budget and justify exactly (scale 1.0); the fifth lands alone
// in a sparse, unscaled trailing row.
func TestComputeRowsFiveEqualTiles(t *testing.T) {
	rows, err := ComputeRows(tilesOfWidth(250, 250, 250, 250, 250), 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Len() != 4 {
		t.Errorf("row 0 has %d tiles, want 4", first.Len())
	}
	if first.TotalWidth != 1000 {
		t.Errorf("row 0 TotalWidth = %v, want 1000", first.TotalWidth)
	}
	if first.Scale != 1.0 {
		t.Errorf("row 0 Scale = %v, want 1.0", first.Scale)
	}
	if first.Height != 240 {
		t.Errorf("row 0 Height = %v, want 240", first.Height)
	}

	last := rows[1]
	if last.Len() != 1 {
		t.Errorf("row 1 has %d tiles, want 1", last.Len())
	}
	if last.Scale != 1.0 {
		t.Errorf("row 1 Scale = %v, want 1.0 (sparse row must not stretch)", last.Scale)
	}
	if last.Height != 240 {
		t.Errorf("row 1 Height = %v, want 240", last.Height)
	}
	if got := last.RenderWidth(0); got != 250 {
		t.Errorf("row 1 RenderWidth(0) = %v, want 250", got)
	}
}

// Scenario: container 1000, one tile of 1500. The oversized tile stays
// alone and is shrunk to span the container without cropping.
func TestComputeRowsOversizedSingleTile(t *testing.T) {
	rows, err := ComputeRows(tilesOfWidth(1500), 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.Len() != 1 {
		t.Fatalf("row has %d tiles, want 1", row.Len())
	}

	wantScale := 1000.0 / 1500.0
	if math.Abs(row.Scale-wantScale) > tolerance {
		t.Errorf("Scale = %v, want %v", row.Scale, wantScale)
	}
	if math.Abs(row.Height-240*wantScale) > tolerance {
		t.Errorf("Height = %v, want %v", row.Height, 240*wantScale)
	}
	if math.Abs(row.RenderWidth(0)-1000) > tolerance {
		t.Errorf("RenderWidth(0) = %v, want 1000", row.RenderWidth(0))
	}
}

// An oversized tile that follows a non-empty row is isolated in its own row.
func TestComputeRowsOversizedTileAfterFullRow(t *testing.T) {
	rows, err := ComputeRows(tilesOfWidth(300, 1500, 300), 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Len() != 1 || rows[1].Len() != 1 || rows[2].Len() != 1 {
		t.Fatalf("row sizes = %d/%d/%d, want 1/1/1", rows[0].Len(), rows[1].Len(), rows[2].Len())
	}
	if rows[1].Tiles[0].Width != 1500 {
		t.Errorf("row 1 tile width = %v, want 1500", rows[1].Tiles[0].Width)
	}
}

func TestComputeRowsDefaultWidthFallback(t *testing.T) {
	tiles := []Tile{
		DefaultTile("no-thumb-1", "Subalbum"),
		KnownTile("pic", "", 360),
		DefaultTile("no-thumb-2", ""),
	}

	rows, err := ComputeRows(tiles, 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	wantTotal := 240.0 + 360.0 + 240.0
	if row.TotalWidth != wantTotal {
		t.Errorf("TotalWidth = %v, want %v", row.TotalWidth, wantTotal)
	}
	for i, tile := range row.Tiles {
		if !tile.HasWidth {
			t.Errorf("tile %d width unresolved after layout", i)
		}
	}
	if row.Tiles[0].Width != 240 {
		t.Errorf("tile 0 resolved width = %v, want 240", row.Tiles[0].Width)
	}

	// 840 > 800 threshold: the row justifies to the container edge.
	wantScale := 1000.0 / wantTotal
	if math.Abs(row.Scale-wantScale) > tolerance {
		t.Errorf("Scale = %v, want %v", row.Scale, wantScale)
	}
}

func TestComputeRowsCoverageAndOrder(t *testing.T) {
	tests := []struct {
		name   string
		widths []float64
	}{
		{"uniform", []float64{250, 250, 250, 250, 250, 250, 250}},
		{"mixed", []float64{100, 900, 50, 400, 400, 400, 120, 1500, 30}},
		{"single", []float64{77}},
		{"all oversized", []float64{2000, 3000, 2500}},
		{"tiny tiles", []float64{10, 10, 10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := tilesOfWidth(tt.widths...)
			rows, err := ComputeRows(tiles, 1000)
			if err != nil {
				t.Fatalf("ComputeRows() error = %v", err)
			}

			var flat []Tile
			for _, row := range rows {
				if row.Len() == 0 {
					t.Error("found empty row")
				}
				flat = append(flat, row.Tiles...)
			}

			if len(flat) != len(tiles) {
				t.Fatalf("got %d tiles across rows, want %d", len(flat), len(tiles))
			}
			for i, tile := range flat {
				if tile.Key != tiles[i].Key {
					t.Errorf("tile %d key = %q, want %q (order not preserved)", i, tile.Key, tiles[i].Key)
				}
			}
		})
	}
}

// For every multi-tile row, the members before the last kept the row
// within the packing budget.
func TestComputeRowsNonOverflowTendency(t *testing.T) {
	const containerWidth = 1000.0
	maxWidth := containerWidth * DefaultMaxWidthFactor

	widths := []float64{320, 180, 540, 260, 410, 95, 700, 330, 280, 150, 620, 240}
	rows, err := ComputeRows(tilesOfWidth(widths...), containerWidth)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	for i, row := range rows {
		if row.Len() < 2 {
			continue
		}
		var withoutLast float64
		for _, tile := range row.Tiles[:row.Len()-1] {
			withoutLast += tile.Width
		}
		if withoutLast > maxWidth {
			t.Errorf("row %d: width without last tile = %v exceeds budget %v", i, withoutLast, maxWidth)
		}
	}
}

func TestComputeRowsJustificationCorrectness(t *testing.T) {
	const containerWidth = 1000.0
	threshold := containerWidth * DefaultScaleThresholdFactor

	widths := []float64{320, 180, 540, 260, 410, 95, 700, 330, 280, 150}
	rows, err := ComputeRows(tilesOfWidth(widths...), containerWidth)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	for i, row := range rows {
		if row.TotalWidth > threshold {
			var scaled float64
			for j := range row.Tiles {
				scaled += row.RenderWidth(j)
			}
			if math.Abs(scaled-containerWidth) > tolerance {
				t.Errorf("row %d: scaled width sum = %v, want %v", i, scaled, containerWidth)
			}
			if math.Abs(row.Height-DefaultBaseHeight*row.Scale) > tolerance {
				t.Errorf("row %d: Height = %v, want %v", i, row.Height, DefaultBaseHeight*row.Scale)
			}
		} else {
			if row.Scale != 1.0 {
				t.Errorf("row %d: sparse row Scale = %v, want 1.0", i, row.Scale)
			}
			if row.Height != DefaultBaseHeight {
				t.Errorf("row %d: sparse row Height = %v, want %v", i, row.Height, DefaultBaseHeight)
			}
		}
	}
}

func TestComputeRowsCustomConfig(t *testing.T) {
	cfg := Config{
		BaseHeight:           120,
		DefaultTileWidth:     100,
		MaxWidthFactor:       1.0,
		ScaleThresholdFactor: 0.5,
	}

	rows, err := cfg.ComputeRows(tilesOfWidth(300, 300, 300, 300), 600)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}

	// Budget is exactly 600: two tiles per row, both rows justify at scale 1.
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if row.Len() != 2 {
			t.Errorf("row %d has %d tiles, want 2", i, row.Len())
		}
		if row.Scale != 1.0 {
			t.Errorf("row %d Scale = %v, want 1.0", i, row.Scale)
		}
		if row.Height != 120 {
			t.Errorf("row %d Height = %v, want 120", i, row.Height)
		}
	}
}

func TestRowJustified(t *testing.T) {
	rows, err := ComputeRows(tilesOfWidth(900, 100), 1000)
	if err != nil {
		t.Fatalf("ComputeRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].Justified() {
		// TotalWidth 1000 == container: scale is exactly 1.0 and the row
		// still counts as unjustified. Verify the boundary is stable.
		if rows[0].Scale != 1.0 {
			t.Errorf("Scale = %v, want 1.0", rows[0].Scale)
		}
	}
}
