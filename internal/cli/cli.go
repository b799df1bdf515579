// Package cli implements the kuvia command-line interface.
//
// This package provides commands for serving the gallery over HTTP,
// scanning a media directory into an album tree, publishing it to a
// store, browsing the tree interactively, and managing the layout
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jlaitio/kuvia/pkg/buildinfo"
	"github.com/jlaitio/kuvia/pkg/cache"
	"github.com/jlaitio/kuvia/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "kuvia"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kuvia serves photo galleries with justified tile layouts",
		Long:         `Kuvia is a photo gallery server. It scans a directory of pictures into an album tree and serves it as web pages whose thumbnails are packed into justified rows filling the browser width.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the cache selected by the configuration: Redis when
// an address is configured, a file cache otherwise, and a NullCache
// when caching is disabled or the directory cannot be resolved.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	}
	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
