// Package web serves the gallery: server-rendered album pages with
// justified tile rows, a JSON API mirroring the album payloads, and
// static media files.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jlaitio/kuvia/pkg/cache"
	"github.com/jlaitio/kuvia/pkg/errors"
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/i18n"
	"github.com/jlaitio/kuvia/pkg/layout"
	"github.com/jlaitio/kuvia/pkg/observability"
)

// Container width bounds for the ?width query parameter. Values outside
// this range fall back to the configured default.
const (
	minContainerWidth = 320
	maxContainerWidth = 4000
)

// Options configures the server.
type Options struct {
	// DefaultWidth is the container width used when the request does
	// not carry a valid ?width parameter.
	DefaultWidth float64

	// MediaRoot is the directory media files are served from. Empty
	// disables the /media file server (media served elsewhere).
	MediaRoot string

	// MediaURL is the URL prefix media sources are resolved against.
	MediaURL string

	// CacheTTL bounds cached album payloads and layouts.
	CacheTTL time.Duration

	// Layout is the layout policy. Zero value selects the default.
	Layout layout.Config
}

// Server handles gallery HTTP traffic.
type Server struct {
	store  gallery.Store
	cache  cache.Cache
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a gallery server. The cache may be a NullCache; the
// logger must not be nil.
func New(store gallery.Store, c cache.Cache, logger *log.Logger, opts Options) *Server {
	if opts.DefaultWidth <= 0 {
		opts.DefaultWidth = 1200
	}
	if opts.MediaURL == "" {
		opts.MediaURL = "/media"
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}

	s := &Server{
		store:  store,
		cache:  c,
		logger: logger,
		opts:   opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v3", s.handleAPIAlbum)
	r.Get("/api/v3/*", s.handleAPIAlbum)
	if opts.MediaRoot != "" {
		r.Handle(opts.MediaURL+"/*", http.StripPrefix(opts.MediaURL+"/", http.FileServer(http.Dir(opts.MediaRoot))))
	}
	r.Get("/*", s.handleAlbum)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// logRequests logs every request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed.Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleAPIAlbum serves the album JSON payload: breadcrumb, subalbum
// entries with thumbnails, and pictures with their media.
func (s *Server) handleAPIAlbum(w http.ResponseWriter, r *http.Request) {
	path := albumPath(r, "/api/v3")
	if err := errors.ValidateAlbumPath(path); err != nil {
		s.respondError(w, err)
		return
	}

	album, err := s.store.Get(r.Context(), path)
	if err != nil {
		s.respondError(w, err)
		return
	}

	key := cache.AlbumKey(album.Path, albumVersion(album))
	if data, found, _ := s.cache.Get(r.Context(), key); found {
		observability.Cache().OnCacheHit(r.Context(), "album")
		writeJSON(w, data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "album")

	data, err := json.Marshal(album)
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "marshal album %s", album.Path))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.opts.CacheTTL); err == nil {
		observability.Cache().OnCacheSet(r.Context(), "album", len(data))
	}
	writeJSON(w, data)
}

// handleAlbum serves the HTML album view.
func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	path := albumPath(r, "")
	if err := errors.ValidateAlbumPath(path); err != nil {
		s.respondError(w, err)
		return
	}

	album, err := s.store.Get(r.Context(), path)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if album.RedirectURL != "" {
		http.Redirect(w, r, album.RedirectURL, http.StatusFound)
		return
	}

	width := s.containerWidth(r)
	rows, err := s.layoutRows(r, album, width)
	if err != nil {
		s.respondError(w, err)
		return
	}

	tr := i18n.Match(r.Header.Get("Accept-Language"))
	view := s.buildAlbumView(album, rows, tr)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := albumTemplate.Execute(w, view); err != nil {
		s.logger.Error("render album", "path", album.Path, "err", err)
	}
}

// layoutRows computes (or loads from cache) the justified rows for an
// album at the given container width.
func (s *Server) layoutRows(r *http.Request, album *gallery.Album, width float64) ([]layout.Row, error) {
	ctx := r.Context()
	tiles := gallery.Tiles(album)

	key := cache.LayoutKey(album.Path, width, albumVersion(album))
	if data, found, _ := s.cache.Get(ctx, key); found {
		var rows []layout.Row
		if err := json.Unmarshal(data, &rows); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return rows, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Gallery().OnLayoutStart(ctx, album.Path, len(tiles))
	rows, err := s.opts.Layout.ComputeRows(tiles, width)
	observability.Gallery().OnLayoutComplete(ctx, album.Path, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, key, data, s.opts.CacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return rows, nil
}

// containerWidth resolves the ?width parameter, falling back to the
// default for missing or out-of-range values.
func (s *Server) containerWidth(r *http.Request) float64 {
	raw := r.URL.Query().Get("width")
	if raw == "" {
		return s.opts.DefaultWidth
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil || width < minContainerWidth || width > maxContainerWidth {
		return s.opts.DefaultWidth
	}
	return width
}

// respondError maps structured errors to HTTP statuses.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeAlbumNotFound, errors.ErrCodePictureNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidPath, errors.ErrCodeInvalidWidth, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

// albumPath extracts the album path from the request, stripping the
// given route prefix. The empty remainder is the root album.
func albumPath(r *http.Request, prefix string) string {
	path := r.URL.Path
	if prefix != "" {
		path = path[len(prefix):]
	}
	if path == "" || path == "/" {
		return "/"
	}
	// Normalize away a trailing slash so /2026/ and /2026 are the same
	// album.
	if path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// albumVersion derives a cache version from the album's update time.
func albumVersion(album *gallery.Album) string {
	return strconv.FormatInt(album.UpdatedAt.UnixNano(), 10)
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(data)
}
