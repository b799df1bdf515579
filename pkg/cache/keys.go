package cache

// AlbumKey generates a key for a rendered album payload. The version
// changes whenever the tree is republished, invalidating older entries.
func AlbumKey(path, version string) string {
	return hashKey("album", path, version)
}

// LayoutKey generates a key for a computed row layout of an album at a
// given container width.
func LayoutKey(path string, containerWidth float64, version string) string {
	return hashKey("layout", path, containerWidth, version)
}
