package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jlaitio/kuvia/pkg/config"
	"github.com/jlaitio/kuvia/pkg/gallery"
	"github.com/jlaitio/kuvia/pkg/layout"
	"github.com/jlaitio/kuvia/pkg/source/local"
)

// browseCommand creates the browse command: an interactive album tree viewer.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		configPath string
		mediaRoot  string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the scanned album tree interactively",
		Long: `Browse the scanned album tree interactively.

The browser scans the media directory and presents the album tree in
the terminal, showing per-album layout statistics for the current
width. It is a quick way to check what a scan produces without starting
the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if mediaRoot != "" {
				cfg.MediaRoot = mediaRoot
			}

			scanner := local.NewScanner(cfg.MediaRoot, c.Logger)
			root, _, err := scanner.Scan(cmd.Context())
			if err != nil {
				return fmt.Errorf("scan %s: %w", cfg.MediaRoot, err)
			}

			p := tea.NewProgram(newBrowseModel(root, cfg.DefaultWidth), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kuvia.toml", "config file")
	cmd.Flags().StringVarP(&mediaRoot, "media-root", "m", "", "media directory (overrides config)")

	return cmd
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseEntry is one selectable line: a subalbum or a picture.
type browseEntry struct {
	album   *gallery.Album
	picture *gallery.Picture
}

func (e browseEntry) title() string {
	if e.album != nil {
		return e.album.Title
	}
	return e.picture.Title
}

// BrowseModel is the bubbletea model for album tree navigation.
type BrowseModel struct {
	Current *gallery.Album
	Cursor  int
	Height  int
	Offset  int

	parents []*gallery.Album
	entries []browseEntry
	memo    *layout.Memo
	width   float64
}

// newBrowseModel creates a browse model rooted at the given album.
func newBrowseModel(root *gallery.Album, width float64) BrowseModel {
	m := BrowseModel{
		Current: root,
		Height:  15,
		memo:    layout.NewMemo(layout.DefaultConfig()),
		width:   width,
	}
	m.entries = entriesFor(root)
	return m
}

// entriesFor lists the selectable children of an album: visible
// subalbums first, then pictures, matching the web view's tile order.
func entriesFor(album *gallery.Album) []browseEntry {
	var entries []browseEntry
	for _, sub := range album.Subalbums {
		if sub.IsVisible {
			entries = append(entries, browseEntry{album: sub})
		}
	}
	for i := range album.Pictures {
		entries = append(entries, browseEntry{picture: &album.Pictures[i]})
	}
	return entries
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Cursor < len(m.entries) {
				if sub := m.entries[m.Cursor].album; sub != nil {
					m.parents = append(m.parents, m.Current)
					m.Current = sub
					m.entries = entriesFor(sub)
					m.Cursor = 0
					m.Offset = 0
				}
			}
		case "backspace", "left", "h", "esc":
			if len(m.parents) > 0 {
				m.Current = m.parents[len(m.parents)-1]
				m.parents = m.parents[:len(m.parents)-1]
				m.entries = entriesFor(m.Current)
				m.Cursor = 0
				m.Offset = 0
			} else if msg.String() == "esc" {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Current.Path))
	if m.Current.Title != "" {
		b.WriteString("  " + listDimStyle.Render(m.Current.Title))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.Offset; i < end; i++ {
		entry := m.entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := "picture"
		if entry.album != nil {
			kind = "album"
		}
		line := fmt.Sprintf("%s%-32s %s", cursor, entry.title(), listDimStyle.Render(kind))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case entry.album != nil:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(listDimStyle.Render("  (empty album)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.layoutSummary()))

	return b.String()
}

// layoutSummary describes the rows the engine would produce for the
// current album at the configured width.
func (m BrowseModel) layoutSummary() string {
	tiles := gallery.Tiles(m.Current)
	if len(tiles) == 0 {
		return fmt.Sprintf("  [0/%d]", len(m.entries))
	}

	rows, err := m.memo.ComputeRows(tiles, m.width)
	if err != nil {
		return "  layout: " + err.Error()
	}

	justified := 0
	for _, row := range rows {
		if row.Justified() {
			justified++
		}
	}
	return fmt.Sprintf("  [%d/%d]  %d tiles · %d rows (%d justified) at %.0fpx",
		m.Cursor+1, len(m.entries), len(tiles), len(rows), justified, m.width)
}
