package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlaitio/kuvia/pkg/config"
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/source/local"
	"github.com/jlaitio/kuvia/pkg/web"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the gallery HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
		mediaRoot  string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Long: `Serve the gallery over HTTP.

With the in-memory store the media directory is scanned at startup and
served from memory; re-run serve to pick up new pictures. With the mongo
store the albums published by 'kuvia scan' are served, and several
instances can share one database and Redis cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if mediaRoot != "" {
				cfg.MediaRoot = mediaRoot
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kuvia.toml", "config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&mediaRoot, "media-root", "m", "", "media directory (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout and payload caching")

	return cmd
}

// runServe builds the store and cache, then runs the HTTP server until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	store, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	gc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer gc.Close()

	server := web.New(store, gc, c.Logger, web.Options{
		DefaultWidth: cfg.DefaultWidth,
		MediaRoot:    cfg.MediaRoot,
		MediaURL:     cfg.MediaURL,
		CacheTTL:     cfg.CacheTTL.Duration,
	})

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving gallery", "addr", cfg.Listen, "store", cfg.Store)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newStore builds the configured album store. The in-memory store is
// populated by scanning the media root.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (gallery.Store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		store, err := gallery.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect store: %w", err)
		}
		return store, nil

	case config.StoreMemory:
		scanner := local.NewScanner(cfg.MediaRoot, c.Logger)
		p := newProgress(c.Logger)
		root, stats, err := scanner.Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", cfg.MediaRoot, err)
		}
		p.done(fmt.Sprintf("Scanned %d albums, %d pictures", stats.Albums, stats.Pictures))

		store := gallery.NewMemoryStore()
		if err := store.Put(ctx, root); err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
