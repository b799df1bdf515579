package gallery

import (
	"context"
)

// Store is the persistence boundary for the album tree.
//
// Get resolves a path to its album: album paths return that album,
// picture paths return the containing album (so a deep link to a
// picture still renders its album view). The returned album carries its
// breadcrumb trail and shallow subalbum entries sufficient for
// navigation tiles.
//
// Put publishes a complete, normalized tree, replacing whatever was
// stored before. Scans always rebuild the whole tree, so there is no
// partial update operation.
type Store interface {
	// Get returns the album at path, or the album containing the
	// picture at path. Returns an ALBUM_NOT_FOUND error when nothing
	// matches.
	Get(ctx context.Context, path string) (*Album, error)

	// Put replaces the stored tree with the given root.
	Put(ctx context.Context, root *Album) error

	// Root returns the root album.
	Root(ctx context.Context) (*Album, error)

	// Close releases any underlying connections.
	Close(ctx context.Context) error
}
