package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlaitio/kuvia/pkg/layout"
)

// layoutCommand creates the layout command for inspecting computed rows.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width  float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [tiles.json]",
		Short: "Compute justified rows for a set of tiles",
		Long: `Compute justified rows for a set of tiles.

The layout command reads a JSON array of tiles from a file (or stdin
when no file is given) and prints the rows the engine produces for the
given container width. It exists for debugging layouts without running
the server.

A tile is {"key": "...", "caption": "...", "width": 320, "has_width": true};
tiles without a known width receive the default tile width.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(input, width, output)
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 1200, "container width in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runLayout reads tiles, computes rows, and writes the result as JSON.
func (c *CLI) runLayout(input string, width float64, output string) error {
	tiles, err := readTiles(input)
	if err != nil {
		return err
	}

	rows, err := layout.ComputeRows(tiles, width)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Layout complete")
		printFile(output)
	}

	justified := 0
	for _, row := range rows {
		if row.Justified() {
			justified++
		}
	}
	printKeyValue("tiles", fmt.Sprintf("%d", len(tiles)))
	printKeyValue("rows", fmt.Sprintf("%d (%d justified)", len(rows), justified))

	return nil
}

// readTiles loads the tile array from a file, or stdin when path is empty.
func readTiles(path string) ([]layout.Tile, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read tiles: %w", err)
	}

	var tiles []layout.Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return nil, fmt.Errorf("parse tiles: %w", err)
	}
	return tiles, nil
}
