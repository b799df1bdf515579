package layout

// Row is a horizontal grouping of tiles sharing one render height and
// scale factor. Rows are created fresh on every layout invocation and
// hold their member tiles in input order.
//
// All tiles in a finalized row have resolved widths (the default width
// has already been substituted for tiles without a thumbnail), so a
// renderer draws tile i at RenderWidth(i) × Height.
type Row struct {
	// Tiles are the member tiles in input order.
	Tiles []Tile `json:"tiles"`

	// TotalWidth is the sum of the members' unscaled widths.
	TotalWidth float64 `json:"total_width"`

	// Height is the target render height. Defaults to the base height
	// and is multiplied by Scale when the row is justified.
	Height float64 `json:"height"`

	// Scale is the uniform factor applied to every member's width and to
	// the row height. 1.0 for unjustified rows.
	Scale float64 `json:"scale"`
}

// Len returns the number of tiles in the row.
func (r Row) Len() int { return len(r.Tiles) }

// RenderWidth returns the scaled display width of tile i.
func (r Row) RenderWidth(i int) float64 {
	return r.Tiles[i].Width * r.Scale
}

// Justified reports whether the row was stretched (or shrunk) to span
// the container width exactly.
func (r Row) Justified() bool { return r.Scale != 1.0 }
