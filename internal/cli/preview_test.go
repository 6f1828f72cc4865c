package cli

import (
	"strings"
	"testing"

	"github.com/forgelab/dungeonforge/pkg/layout"
)

func TestRenderGridShape(t *testing.T) {
	g := layout.NewGrid(4, 3)
	g.Set(0, 0, layout.TileWall)
	g.Set(1, 1, layout.TileEntrance)

	out := renderGrid(g)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(out, tileGlyphs[layout.TileWall]) {
		t.Error("wall glyph missing")
	}
	if !strings.Contains(out, tileGlyphs[layout.TileEntrance]) {
		t.Error("entrance glyph missing")
	}
}

func TestRenderGridUnknownTile(t *testing.T) {
	g := layout.NewGrid(2, 1)
	g.Set(0, 0, 99)

	if !strings.Contains(renderGrid(g), "?") {
		t.Error("unknown tiles should render as ?")
	}
}

func TestRenderLegend(t *testing.T) {
	legend := renderLegend()
	for _, want := range []string{"floor", "wall", "corridor", "door", "entrance"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}
