package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/export"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// =============================================================================
// Tile Rendering
// =============================================================================

// tileGlyphs maps tile codes to the characters drawn for them. Unknown codes
// fall back to "?" so a corrupt grid is visible rather than silently blank.
var tileGlyphs = map[int]string{
	layout.TileVoid:     " ",
	layout.TileFloor:    "·",
	layout.TileWall:     "█",
	layout.TileCorridor: "░",
	layout.TileDoor:     "+",
	layout.TileTreasure: "$",
	layout.TileEntrance: "E",
	layout.TileBoss:     "B",
	layout.TileMarker8:  "◆",
	layout.TileTrap:     "^",
	layout.TilePuzzle:   "?",
	layout.TileChamber:  "C",
}

var tileStyles = map[int]lipgloss.Style{
	layout.TileFloor:    lipgloss.NewStyle().Foreground(colorDim),
	layout.TileWall:     lipgloss.NewStyle().Foreground(colorGray),
	layout.TileCorridor: lipgloss.NewStyle().Foreground(colorDim),
	layout.TileDoor:     lipgloss.NewStyle().Foreground(colorYellow),
	layout.TileTreasure: lipgloss.NewStyle().Foreground(colorYellow),
	layout.TileEntrance: lipgloss.NewStyle().Foreground(colorGreen),
	layout.TileBoss:     lipgloss.NewStyle().Foreground(colorRed),
	layout.TileMarker8:  lipgloss.NewStyle().Foreground(colorCyan),
	layout.TileTrap:     lipgloss.NewStyle().Foreground(colorRed),
	layout.TilePuzzle:   lipgloss.NewStyle().Foreground(colorBlue),
	layout.TileChamber:  lipgloss.NewStyle().Foreground(colorCyan),
}

// renderGrid renders a tile grid as colored text, one glyph per tile.
func renderGrid(g layout.Grid) string {
	var b strings.Builder
	for _, row := range g {
		for _, tile := range row {
			glyph, ok := tileGlyphs[tile]
			if !ok {
				glyph = "?"
			}
			if style, ok := tileStyles[tile]; ok {
				glyph = style.Render(glyph)
			}
			b.WriteString(glyph)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLegend renders the one-line glyph legend shown under previews.
func renderLegend() string {
	entries := []struct {
		tile int
		name string
	}{
		{layout.TileFloor, "floor"},
		{layout.TileWall, "wall"},
		{layout.TileCorridor, "corridor"},
		{layout.TileDoor, "door"},
		{layout.TileEntrance, "entrance"},
		{layout.TileBoss, "boss"},
		{layout.TileTreasure, "treasure"},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, tileGlyphs[e.tile]+" "+e.name)
	}
	return StyleDim.Render(strings.Join(parts, "  "))
}

// =============================================================================
// Preview Command
// =============================================================================

// previewCommand creates the preview command for rendering a saved layout in
// the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var noLegend bool

	cmd := &cobra.Command{
		Use:   "preview <layout.json>",
		Short: "Render a saved layout as a colored tile grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}

			fmt.Println(renderGrid(res.Grid))
			if !noLegend {
				printNewline()
				fmt.Println(renderLegend())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "omit the glyph legend")

	return cmd
}
