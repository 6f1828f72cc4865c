// Package pkg provides the core libraries for Dungeonforge layout generation.
//
// # Overview
//
// Dungeonforge produces procedural dungeon layouts as tile grids with typed
// rooms and a connectivity graph. The pkg directory is organized into three
// main areas:
//
//  1. [layout] - Domain logic (generation methods, shapes, rasterization, analysis)
//  2. [wfc], [agentio] - Post-processing (texture synthesis, per-room editing)
//  3. [cache], [export], [preset] - Infrastructure (caching, serialization, config)
//
// # Architecture
//
// The typical data flow through Dungeonforge:
//
//	Request (method, size, seed, overrides)
//	         ↓
//	    [layout] package (place rooms, build graph, carve corridors)
//	         ↓
//	    [layout.Result] (grid + rooms + graph)
//	         ↓
//	    [export] package (JSON, Graphviz DOT/SVG/PNG)
//
// # Quick Start
//
// Generate a layout and save it:
//
//	import (
//	    "github.com/forgelab/dungeonforge/pkg/export"
//	    "github.com/forgelab/dungeonforge/pkg/layout"
//	)
//
//	res, err := layout.Generate(layout.Request{
//	    Method: layout.MethodPhysics,
//	    Width:  80,
//	    Height: 80,
//	    Seed:   42,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := export.SaveJSON("dungeon.json", res); err != nil {
//	    return err
//	}
//
// # Main Packages
//
// [layout] - Generation methods and everything they share: room shapes
// (rectangles, circles, L-shapes, irregular polygons, polyominoes), the tile
// grid, Delaunay-based connectivity, corridor carving, and layout analysis.
// Seven methods are registered, from pure graph topologies to physics-based
// separation.
//
// [wfc] - Wave function collapse texture synthesis. Learns overlapping K×K
// patterns from a generated layout and synthesizes a new grid in the same
// local style.
//
// [agentio] - Room extraction and reassembly in a symbolic alphabet, for
// handing individual rooms to an external editor and merging the edited
// versions back into the layout.
//
// [export] - Result serialization: JSON save/load and Graphviz rendering of
// the connectivity graph to DOT, SVG, and PNG.
//
// [cache] - Result caching keyed by the generation fingerprint. FileCache for
// local use, RedisCache for a shared cache, NullCache to disable.
//
// [preset] - Named generation configurations loaded from TOML files.
//
// [errors] - Structured errors with stable codes used across all packages.
//
// [observability] - Optional hooks for generation and cache events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//
// [layout]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/layout
// [layout.Result]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/layout#Result
// [wfc]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/wfc
// [agentio]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/agentio
// [export]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/export
// [cache]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/cache
// [preset]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/preset
// [errors]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/forgelab/dungeonforge/pkg/buildinfo
package pkg
