// Package local builds the album tree from a local media directory.
//
// The expected layout under the media root mirrors what the preview
// generator produces:
//
//	pictures/<album>/.../photo.jpeg       originals, directories = albums
//	previews/<album>/.../photo.thumbnail.jpeg
//	previews/<album>/.../photo.preview.jpeg
//
// A directory may carry an album.toml sidecar overriding the album's
// title and adding a description, body text, or redirect. Without one,
// the directory name becomes the title.
package local

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jlaitio/kuvia/pkg/errors"
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/media"
	"github.com/jlaitio/kuvia/pkg/observability"
)

// sidecarFile is the per-directory metadata file name.
const sidecarFile = "album.toml"

// sidecar is the optional album.toml content.
type sidecar struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Body        string `toml:"body"`
	RedirectURL string `toml:"redirect_url"`
	Hidden      bool   `toml:"hidden"`
}

// Scanner builds gallery trees from a media root directory.
type Scanner struct {
	mediaRoot string
	specs     []media.Spec
	logger    *log.Logger
}

// Stats summarizes a completed scan.
type Stats struct {
	Albums   int
	Pictures int
}

// NewScanner creates a scanner for the given media root. A nil logger
// falls back to the default logger.
func NewScanner(mediaRoot string, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		mediaRoot: mediaRoot,
		specs:     media.DefaultSpecs,
		logger:    logger,
	}
}

// Scan walks pictures/ under the media root and returns a normalized
// album tree ready to publish, along with scan statistics.
func (s *Scanner) Scan(ctx context.Context) (*gallery.Album, Stats, error) {
	start := time.Now()
	observability.Gallery().OnScanStart(ctx, s.mediaRoot)

	picturesDir := filepath.Join(s.mediaRoot, "pictures")
	if _, err := os.Stat(picturesDir); os.IsNotExist(err) {
		err = errors.New(errors.ErrCodeFileNotFound, "no pictures directory under %s", s.mediaRoot)
		observability.Gallery().OnScanComplete(ctx, s.mediaRoot, 0, 0, time.Since(start), err)
		return nil, Stats{}, err
	}

	// All albums of one scan share a timestamp; it doubles as the cache
	// version for the published tree.
	now := start.UTC()
	root := &gallery.Album{
		Slug:      "-root-album",
		Path:      "/",
		Title:     "Gallery",
		IsPublic:  true,
		IsVisible: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var stats Stats
	if err := s.scanDir(ctx, picturesDir, root, &stats); err != nil {
		observability.Gallery().OnScanComplete(ctx, s.mediaRoot, stats.Albums, stats.Pictures, time.Since(start), err)
		return nil, Stats{}, err
	}
	stats.Albums++ // count the root

	root.Normalize()
	observability.Gallery().OnScanComplete(ctx, s.mediaRoot, stats.Albums, stats.Pictures, time.Since(start), nil)

	s.logger.Debug("scan complete",
		"albums", stats.Albums,
		"pictures", stats.Pictures,
		"duration", time.Since(start).Round(time.Millisecond))
	return root, stats, nil
}

// scanDir populates album from the directory at dir.
func (s *Scanner) scanDir(ctx context.Context, dir string, album *gallery.Album, stats *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.applySidecar(dir, album)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read directory %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			sub := &gallery.Album{
				Title:     titleFromName(name),
				Slug:      gallery.Slugify(name),
				IsPublic:  true,
				IsVisible: true,
				CreatedAt: album.CreatedAt,
				UpdatedAt: album.UpdatedAt,
			}
			album.Subalbums = append(album.Subalbums, sub)
			// Paths are rebuilt by Normalize after the walk, but the
			// scanner needs them now to locate previews.
			sub.Path = gallery.JoinPath(album.Path, sub.Slug)
			if err := s.scanDir(ctx, filepath.Join(dir, name), sub, stats); err != nil {
				return err
			}
			stats.Albums++
			continue
		}

		if !media.IsImageFile(name) {
			continue
		}

		pic, err := s.scanPicture(dir, name, album.Path)
		if err != nil {
			// A broken image file should not sink the whole scan.
			s.logger.Warn("skipping unreadable image", "file", filepath.Join(dir, name), "err", err)
			continue
		}
		album.Pictures = append(album.Pictures, pic)
		stats.Pictures++
	}

	return nil
}

// scanPicture builds a Picture from an original file, attaching any
// pre-generated variants found under previews/.
func (s *Scanner) scanPicture(dir, filename, albumPath string) (gallery.Picture, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	slug := gallery.Slugify(base)
	picPath := gallery.JoinPath(albumPath, slug)

	originalFile := filepath.Join(dir, filename)
	dims, err := media.Probe(originalFile)
	if err != nil {
		return gallery.Picture{}, err
	}

	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	pic := gallery.Picture{
		ID:    uuid.NewString(),
		Slug:  slug,
		Title: titleFromName(base),
		Media: []gallery.Media{
			{
				Src:    media.OriginalPath(picPath, format),
				Width:  dims.Width,
				Height: dims.Height,
				Role:   gallery.RoleOriginal,
				Format: format,
			},
		},
	}

	for _, spec := range s.specs {
		variantRel := spec.VariantPath(picPath)
		variantFile := filepath.Join(s.mediaRoot, filepath.FromSlash(variantRel))
		variantDims, err := media.Probe(variantFile)
		if err != nil {
			// Variant not generated (or unreadable): the layout engine
			// falls back to the default tile width.
			continue
		}
		pic.Media = append(pic.Media, gallery.Media{
			Src:    variantRel,
			Width:  variantDims.Width,
			Height: variantDims.Height,
			Role:   spec.Role,
			Format: spec.Format,
		})
	}

	return pic, nil
}

// applySidecar overlays album.toml metadata, when present.
func (s *Scanner) applySidecar(dir string, album *gallery.Album) {
	path := filepath.Join(dir, sidecarFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	var sc sidecar
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		s.logger.Warn("ignoring malformed sidecar", "file", path, "err", err)
		return
	}

	if sc.Title != "" {
		album.Title = sc.Title
	}
	album.Description = sc.Description
	album.Body = sc.Body
	album.RedirectURL = sc.RedirectURL
	if sc.Hidden {
		album.IsVisible = false
	}
}

// titleFromName turns a file or directory name into a display title:
// separators become spaces.
func titleFromName(name string) string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(title)
}
