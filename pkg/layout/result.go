package layout

import (
	"sort"

	"github.com/google/uuid"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// RoomResult is the serialized view of one room in a layout result.
type RoomResult struct {
	ID     int         `json:"id"`
	Center [2]float64  `json:"center"`
	Bounds geom.Bounds `json:"bounds"`
	Area   float64     `json:"area"`
	Type   RoomType    `json:"type"`
	Shape  ShapeKind   `json:"shape"`
	IsMain bool        `json:"is_main"`
	Doors  [][2]int    `json:"doors"`
}

// Metadata carries diagnostics about a single run. Warnings are conditions
// that were recovered locally; they never abort generation.
type Metadata struct {
	RunID             string   `json:"run_id"`
	Seed              int64    `json:"seed"`
	Method            string   `json:"method"`
	Warnings          []string `json:"warnings,omitempty"`
	PhysicsConverged  bool     `json:"physics_converged"`
	WFCContradictions int      `json:"wfc_contradictions,omitempty"`
}

// Result is the normalized output shape shared by every generation method.
type Result struct {
	Grid       Grid          `json:"grid"`
	Rooms      []RoomResult  `json:"rooms"`
	Graph      GraphSnapshot `json:"graph"`
	Parameters any           `json:"parameters"`
	Metadata   Metadata      `json:"metadata"`
}

// newMetadata stamps a fresh run id. PhysicsConverged starts true; methods
// without a separation phase leave it that way.
func newMetadata(method string, seed int64) Metadata {
	return Metadata{
		RunID:            uuid.NewString(),
		Seed:             seed,
		Method:           method,
		PhysicsConverged: true,
	}
}

// roomResults serializes the given rooms, sorted by id.
func roomResults(rooms []*Room) []RoomResult {
	out := make([]RoomResult, 0, len(rooms))
	for _, r := range rooms {
		doors := make([][2]int, 0, len(r.Doors))
		for _, d := range r.Doors {
			doors = append(doors, [2]int{d.X, d.Y})
		}
		out = append(out, RoomResult{
			ID:     r.ID,
			Center: [2]float64{r.Center().X(), r.Center().Y()},
			Bounds: r.Bounds(),
			Area:   r.Area(),
			Type:   r.Type,
			Shape:  r.Geometry.Kind,
			IsMain: r.IsMain,
			Doors:  doors,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
