// Package layout is the procedural layout engine: it turns high-level
// parameters into a semantic tile grid describing rooms, corridors and
// doors.
//
// Seven generation methods are registered, falling into three families:
//
//   - graph_* methods synthesize an abstract connectivity graph first and
//     place rooms to match it
//   - physics_tinykep and enhanced_physics scatter rooms and relax overlaps
//     with simulated repulsion before connecting them
//   - adjacent_rooms packs touching rooms and connects them with doors on
//     shared walls
//
// Every run is single-threaded and I/O free, and draws all randomness from
// one seeded generator, so a fixed seed reproduces a layout exactly and
// independent runs can execute in parallel with no shared state.
package layout

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"

	"github.com/forgelab/dungeonforge/pkg/errors"
)

// Generation method names.
const (
	MethodGraphLinear    = "graph_linear"
	MethodGraphHub       = "graph_hub"
	MethodGraphBranching = "graph_branching"
	MethodGraphLoop      = "graph_loop"
	MethodPhysics        = "physics_tinykep"
	MethodShapedPhysics  = "enhanced_physics"
	MethodAdjacentRooms  = "adjacent_rooms"
)

// Default grid dimensions when a request leaves them unset.
const (
	DefaultWidth  = 50
	DefaultHeight = 50
)

type methodSpec struct {
	name        string
	description string
	defaults    func() any
	run         func(rng *rand.Rand, width, height int, params any, meta *Metadata) (*Result, error)
}

var registry = []methodSpec{
	{
		name:        MethodGraphLinear,
		description: "Linear progression graph with occasional skips and shortcuts",
		defaults:    func() any { p := DefaultLinearGraphParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GenerateGraphLayout(rng, w, h, *params.(*GraphParams), meta)
		},
	},
	{
		name:        MethodGraphHub,
		description: "Hub-and-spoke graph radiating from a central room",
		defaults:    func() any { p := DefaultHubGraphParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GenerateGraphLayout(rng, w, h, *params.(*GraphParams), meta)
		},
	},
	{
		name:        MethodGraphBranching,
		description: "Branching tree graph with sparse cross connections",
		defaults:    func() any { p := DefaultBranchingGraphParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GenerateGraphLayout(rng, w, h, *params.(*GraphParams), meta)
		},
	},
	{
		name:        MethodGraphLoop,
		description: "Circular loop graph with shortcuts across the ring",
		defaults:    func() any { p := DefaultLoopGraphParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GenerateGraphLayout(rng, w, h, *params.(*GraphParams), meta)
		},
	},
	{
		name:        MethodPhysics,
		description: "Separation-based placement with triangulated corridors",
		defaults:    func() any { p := DefaultPhysicsParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GeneratePhysics(rng, w, h, *params.(*PhysicsParams), meta)
		},
	},
	{
		name:        MethodShapedPhysics,
		description: "Separation-based placement with the full shape library and degree-weighted room selection",
		defaults:    func() any { p := DefaultShapedPhysicsParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GeneratePhysics(rng, w, h, *params.(*PhysicsParams), meta)
		},
	},
	{
		name:        MethodAdjacentRooms,
		description: "Touching rooms connected by doors on shared walls",
		defaults:    func() any { p := DefaultAdjacencyParams(); return &p },
		run: func(rng *rand.Rand, w, h int, params any, meta *Metadata) (*Result, error) {
			return GenerateAdjacency(rng, w, h, *params.(*AdjacencyParams), meta)
		},
	},
}

// MethodInfo describes one registered generation method.
type MethodInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Defaults    any    `json:"defaults"`
}

// Methods lists every registered generation method with its default
// parameters, in registration order.
func Methods() []MethodInfo {
	out := make([]MethodInfo, len(registry))
	for i, m := range registry {
		out[i] = MethodInfo{Name: m.name, Description: m.description, Defaults: m.defaults()}
	}
	return out
}

// MethodNames lists the registered method names in registration order.
func MethodNames() []string {
	out := make([]string, len(registry))
	for i, m := range registry {
		out[i] = m.name
	}
	return out
}

// DefaultParams returns the default parameter struct for a method.
func DefaultParams(method string) (any, error) {
	for _, m := range registry {
		if m.name == method {
			return m.defaults(), nil
		}
	}
	return nil, unknownMethod(method)
}

// Request is one generation request: a method name, grid dimensions, a seed,
// and a sparse JSON parameter override applied on top of the method's
// defaults.
type Request struct {
	Method    string          `json:"method"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Seed      int64           `json:"seed"`
	Overrides json.RawMessage `json:"parameters,omitempty"`
}

// Generate runs one layout generation. Unknown method names and override
// fields that do not exist in the method's parameter schema are fatal
// configuration errors; no partial result is returned for them.
func Generate(req Request) (*Result, error) {
	var spec *methodSpec
	for i := range registry {
		if registry[i].name == req.Method {
			spec = &registry[i]
			break
		}
	}
	if spec == nil {
		return nil, unknownMethod(req.Method)
	}

	width, height := req.Width, req.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width < 4 || height < 4 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid size %dx%d is too small", width, height)
	}

	params := spec.defaults()
	if len(req.Overrides) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Overrides))
		dec.DisallowUnknownFields()
		if err := dec.Decode(params); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParam, err,
				"parameter override does not match the %s schema", req.Method)
		}
	}

	rng := rand.New(rand.NewSource(req.Seed))
	meta := newMetadata(req.Method, req.Seed)
	return spec.run(rng, width, height, params, &meta)
}

func unknownMethod(name string) error {
	return errors.New(errors.ErrCodeInvalidMethod,
		"unknown layout method %q (available: %s)", name, strings.Join(MethodNames(), ", "))
}
