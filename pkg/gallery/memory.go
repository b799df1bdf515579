package gallery

import (
	"context"
	"sync"

	"github.com/jlaitio/kuvia/pkg/errors"
)

// MemoryStore keeps the published album tree in process memory. It is
// the development and test backend; production deployments use the
// Mongo store.
//
// The stored tree is treated as read-only: Put swaps in a new tree
// atomically and Get hands out pointers into the current one.
type MemoryStore struct {
	mu    sync.RWMutex
	root  *Album
	index map[string]*Album
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]*Album)}
}

// Put replaces the stored tree and rebuilds the path index, including
// picture-path entries so deep links resolve to their album.
func (s *MemoryStore) Put(ctx context.Context, root *Album) error {
	index := make(map[string]*Album)
	root.Walk(func(a *Album) {
		a.Breadcrumb = breadcrumbFor(index, a.Path)
		index[a.Path] = a
		for i := range a.Pictures {
			index[a.Pictures[i].Path] = a
		}
	})

	s.mu.Lock()
	s.root = root
	s.index = index
	s.mu.Unlock()
	return nil
}

// Get returns the album at path or the album containing the picture at
// path.
func (s *MemoryStore) Get(ctx context.Context, path string) (*Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	album, ok := s.index[path]
	if !ok {
		return nil, errors.New(errors.ErrCodeAlbumNotFound, "no album at %s", path)
	}
	return album, nil
}

// Root returns the root album.
func (s *MemoryStore) Root(ctx context.Context) (*Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.root == nil {
		return nil, errors.New(errors.ErrCodeAlbumNotFound, "no tree has been published")
	}
	return s.root, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// breadcrumbFor builds the ancestor trail for path from albums already
// indexed. Walk visits parents before children, so every ancestor is
// present by the time its descendants are indexed.
func breadcrumbFor(index map[string]*Album, path string) []Breadcrumb {
	ancestorPaths := AncestorPaths(path)
	if len(ancestorPaths) == 0 {
		return nil
	}
	trail := make([]Breadcrumb, 0, len(ancestorPaths))
	for _, p := range ancestorPaths {
		if ancestor, ok := index[p]; ok {
			trail = append(trail, ancestor.MakeBreadcrumb())
		}
	}
	return trail
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
