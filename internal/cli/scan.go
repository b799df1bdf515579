package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jlaitio/kuvia/pkg/config"
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/source/local"
)

// scanCommand creates the scan command building and publishing the album tree.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		configPath string
		mediaRoot  string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the media directory and publish the album tree",
		Long: `Scan the media directory and publish the album tree.

The scanner walks pictures/ under the media root, reads image dimensions,
applies album.toml sidecar metadata, and attaches pre-generated previews.
With the mongo store the resulting tree is published to the database;
with --dry-run (or the in-memory store) the tree is only reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if mediaRoot != "" {
				cfg.MediaRoot = mediaRoot
			}
			return c.runScan(cmd.Context(), cfg, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kuvia.toml", "config file")
	cmd.Flags().StringVarP(&mediaRoot, "media-root", "m", "", "media directory (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "scan without publishing")

	return cmd
}

// runScan scans the media root and publishes the tree to the store.
func (c *CLI) runScan(ctx context.Context, cfg config.Config, dryRun bool) error {
	scanner := local.NewScanner(cfg.MediaRoot, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", cfg.MediaRoot))
	spinner.Start()

	root, stats, err := scanner.Scan(ctx)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", cfg.MediaRoot, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Scan complete")
	printScanStats(stats.Albums, stats.Pictures)
	if stats.Pictures == 0 {
		printWarning("No pictures found under %s", cfg.MediaRoot)
	}

	if dryRun || cfg.Store != config.StoreMongo {
		if !dryRun {
			printDetail("Store is %q; nothing published", cfg.Store)
		}
		printNewline()
		printNextStep("Serve", "kuvia serve")
		return nil
	}

	store, err := gallery.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Close(context.Background())

	p := newProgress(c.Logger)
	if err := store.Put(ctx, root); err != nil {
		return fmt.Errorf("publish albums: %w", err)
	}
	p.done(fmt.Sprintf("Published %d albums", stats.Albums))

	printSuccess("Published to %s", cfg.MongoDatabase)
	printNewline()
	printNextStep("Serve", "kuvia serve")
	return nil
}
