package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"sync"
)

// memoMaxEntries bounds the memo size. Galleries rarely render more
// than a handful of (album, width) combinations at once, so eviction
// simply drops the whole table when the bound is hit.
const memoMaxEntries = 64

// Memo caches ComputeRows results keyed by container width and tile set.
//
// The engine itself is stateless and idempotent; Memo exists so callers
// that re-render on every request (the web view, the TUI) recompute a
// layout only when the container width or the tile collection actually
// changes. It is safe for concurrent use.
type Memo struct {
	cfg Config

	mu      sync.Mutex
	entries map[string][]Row
}

// NewMemo creates a memoizing wrapper around the given layout policy.
func NewMemo(cfg Config) *Memo {
	return &Memo{
		cfg:     cfg,
		entries: make(map[string][]Row),
	}
}

// ComputeRows returns the cached layout for (tiles, containerWidth) or
// computes and caches it. The returned rows are shared between callers
// and must be treated as read-only.
func (m *Memo) ComputeRows(tiles []Tile, containerWidth float64) ([]Row, error) {
	key := memoKey(tiles, containerWidth)

	m.mu.Lock()
	if rows, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return rows, nil
	}
	m.mu.Unlock()

	rows, err := m.cfg.ComputeRows(tiles, containerWidth)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if len(m.entries) >= memoMaxEntries {
		m.entries = make(map[string][]Row)
	}
	m.entries[key] = rows
	m.mu.Unlock()

	return rows, nil
}

// Invalidate drops all cached layouts. Callers invoke it when the tile
// collection changes identity without changing content hash semantics
// (e.g., after a rescan).
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.entries = make(map[string][]Row)
	m.mu.Unlock()
}

// memoKey derives a cache key from the tile set content and the width.
// Tiles marshal deterministically, so equal collections map to equal keys.
func memoKey(tiles []Tile, containerWidth float64) string {
	data, _ := json.Marshal(tiles)
	sum := sha256.Sum256(data)
	return strconv.FormatFloat(containerWidth, 'g', -1, 64) + ":" + hex.EncodeToString(sum[:])
}
