// Package gallery defines the album tree domain model: albums, pictures,
// their media variants, and the navigation metadata (paths, breadcrumbs)
// derived from the tree structure.
//
// Albums form a tree rooted at path "/". Each album's path is its parent
// path joined with its slug; picture paths extend their album's path the
// same way. The tree is built by a scanner (pkg/source/local) or loaded
// from a store and is treated as immutable once published.
package gallery

import (
	"strings"
	"time"
)

// Media is one stored rendition of a picture: the original file or a
// pre-generated scaled variant. Width and height are the pixel
// dimensions of the stored file.
type Media struct {
	Src    string `json:"src" bson:"src"`
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
	Role   string `json:"-" bson:"role"`
	Format string `json:"-" bson:"format"`
}

// Media roles.
const (
	RoleOriginal  = "original"
	RoleThumbnail = "thumbnail"
	RolePreview   = "preview"
)

// Picture is a single photograph in an album.
type Picture struct {
	ID    string  `json:"-" bson:"id"`
	Slug  string  `json:"slug" bson:"slug"`
	Path  string  `json:"path" bson:"path"`
	Title string  `json:"title" bson:"title"`
	Media []Media `json:"media" bson:"media"`
}

// GetMedia returns the picture's media with the given role, or nil.
func (p Picture) GetMedia(role string) *Media {
	for i := range p.Media {
		if p.Media[i].Role == role {
			return &p.Media[i]
		}
	}
	return nil
}

// Thumbnail returns the picture's thumbnail media, or nil when no
// thumbnail has been generated.
func (p Picture) Thumbnail() *Media {
	return p.GetMedia(RoleThumbnail)
}

// Breadcrumb is one entry of the ancestor trail shown above an album.
type Breadcrumb struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Album is a node in the gallery tree. The root album has path "/" and
// an empty parent.
//
// Loaded from a store, Subalbums holds shallow children (enough for
// navigation tiles: path, title, thumbnail); produced by a scanner, it
// holds the full subtree.
type Album struct {
	Slug        string `json:"slug" bson:"slug"`
	Path        string `json:"path" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Body        string `json:"body,omitempty" bson:"body,omitempty"`

	// RedirectURL, when set, sends visitors elsewhere instead of
	// rendering the album.
	RedirectURL string `json:"redirect_url,omitempty" bson:"redirect_url,omitempty"`

	IsPublic  bool `json:"-" bson:"is_public"`
	IsVisible bool `json:"-" bson:"is_visible"`

	// Thumbnail is the cover image shown when this album appears as a
	// subalbum tile. Selected automatically by Normalize unless set.
	Thumbnail *Media `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`

	// Breadcrumb is the ancestor trail, root first, excluding the album
	// itself. Populated by stores on Get.
	Breadcrumb []Breadcrumb `json:"breadcrumb" bson:"-"`

	Subalbums []*Album  `json:"subalbums" bson:"-"`
	Pictures  []Picture `json:"pictures" bson:"pictures"`

	CreatedAt time.Time `json:"-" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// JoinPath joins a parent album path and a child slug.
func JoinPath(parentPath, slug string) string {
	if parentPath == "/" || parentPath == "" {
		return "/" + slug
	}
	return parentPath + "/" + slug
}

// ParentPath returns the path of the album containing path, or "" for
// the root.
func ParentPath(path string) string {
	if path == "/" || path == "" {
		return ""
	}
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// AncestorPaths returns the paths of all ancestors of path, root first,
// excluding path itself. For "/a/b/c" it returns ["/", "/a", "/a/b"].
func AncestorPaths(path string) []string {
	if path == "/" || path == "" {
		return nil
	}
	ancestors := []string{"/"}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	current := ""
	for _, seg := range segments[:len(segments)-1] {
		current = current + "/" + seg
		ancestors = append(ancestors, current)
	}
	return ancestors
}

// Normalize walks the tree, deriving slugs from titles where missing,
// rebuilding paths from the tree structure, assigning picture paths, and
// selecting cover thumbnails bottom-up. It is called once after a scan,
// before the tree is stored.
func (a *Album) Normalize() {
	if a.Slug == "" && a.Title != "" {
		a.Slug = Slugify(a.Title)
	}
	if a.Path == "" {
		a.Path = "/"
	}
	a.normalizeChildren()
}

func (a *Album) normalizeChildren() {
	for i := range a.Pictures {
		p := &a.Pictures[i]
		if p.Slug == "" && p.Title != "" {
			p.Slug = Slugify(p.Title)
		}
		p.Path = JoinPath(a.Path, p.Slug)
	}

	for _, sub := range a.Subalbums {
		if sub.Slug == "" && sub.Title != "" {
			sub.Slug = Slugify(sub.Title)
		}
		sub.Path = JoinPath(a.Path, sub.Slug)
		sub.normalizeChildren()
	}

	if a.Thumbnail == nil {
		a.Thumbnail = a.selectThumbnail()
	}
}

// selectThumbnail picks a cover for the album: the first subalbum that
// has one, else the first picture's thumbnail.
func (a *Album) selectThumbnail() *Media {
	for _, sub := range a.Subalbums {
		if sub.Thumbnail != nil {
			return sub.Thumbnail
		}
	}
	for i := range a.Pictures {
		if thumb := a.Pictures[i].Thumbnail(); thumb != nil {
			return thumb
		}
	}
	return nil
}

// Find descends the tree looking for the album or picture at path.
// When path names a picture, the containing album is returned. Returns
// nil when nothing matches.
func (a *Album) Find(path string) *Album {
	if path == "" {
		return nil
	}
	if a.Path == path {
		return a
	}
	for i := range a.Pictures {
		if a.Pictures[i].Path == path {
			return a
		}
	}
	for _, sub := range a.Subalbums {
		if path == sub.Path || strings.HasPrefix(path, sub.Path+"/") {
			return sub.Find(path)
		}
	}
	return nil
}

// Walk visits the album and every descendant in depth-first order.
func (a *Album) Walk(visit func(*Album)) {
	visit(a)
	for _, sub := range a.Subalbums {
		sub.Walk(visit)
	}
}

// MakeBreadcrumb returns the album's own breadcrumb entry.
func (a *Album) MakeBreadcrumb() Breadcrumb {
	return Breadcrumb{Path: a.Path, Title: a.Title}
}
