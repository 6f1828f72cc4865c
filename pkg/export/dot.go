package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// DotOptions configures connectivity-graph rendering.
type DotOptions struct {
	// Detailed includes room type, area, and door count in node labels.
	// When false, only the room ID is shown.
	Detailed bool
}

// ToDOT converts a layout's room graph to Graphviz DOT format. Rooms are
// colored by role; the resulting string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(res *layout.Result, opts DotOptions) string {
	byID := make(map[int]layout.RoomResult, len(res.Rooms))
	for _, r := range res.Rooms {
		byID[r.ID] = r
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range res.Graph.Nodes {
		room, ok := byID[id]
		if !ok {
			fmt.Fprintf(&buf, "  %d;\n", id)
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", fmtRoomLabel(room, opts.Detailed))}
		if fill := roomFill(room); fill != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Graph.Edges {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtRoomLabel(r layout.RoomResult, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%d", r.ID)
	}
	parts := []string{
		fmt.Sprintf("room %d", r.ID),
		string(r.Type),
		fmt.Sprintf("area: %.0f", r.Area),
	}
	if len(r.Doors) > 0 {
		parts = append(parts, fmt.Sprintf("doors: %d", len(r.Doors)))
	}
	return strings.Join(parts, "\n")
}

func roomFill(r layout.RoomResult) string {
	switch r.Type {
	case layout.RoomEntrance:
		return "palegreen"
	case layout.RoomBoss:
		return "lightcoral"
	case layout.RoomTreasure:
		return "gold"
	case layout.RoomCorridor:
		return "lightgrey"
	default:
		if r.IsMain {
			return "lightblue"
		}
		return ""
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}
