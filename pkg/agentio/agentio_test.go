package agentio

import (
	"reflect"
	"testing"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// testResult builds an 8x8 grid with one 3x3 room at (2,2), a wall ring
// around it, and a door in the east wall.
func testResult() *layout.Result {
	grid := layout.NewGrid(8, 8)
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			grid.Set(x, y, layout.TileWall)
		}
	}
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			grid.Set(x, y, layout.TileFloor)
		}
	}
	grid.Set(5, 3, layout.TileDoor)

	return &layout.Result{
		Grid: grid,
		Rooms: []layout.RoomResult{
			{ID: 1, Bounds: geom.Bounds{MinX: 2, MinY: 2, MaxX: 5, MaxY: 5}},
		},
	}
}

func TestSymbolFor(t *testing.T) {
	tests := []struct {
		tile int
		want string
	}{
		{layout.TileVoid, SymbolEmpty},
		{layout.TileWall, SymbolWall},
		{layout.TileDoor, SymbolDoor},
		{layout.TileFloor, SymbolFloor},
		{layout.TileCorridor, SymbolFloor},
		{layout.TileBoss, SymbolFloor},
	}
	for _, tt := range tests {
		if got := symbolFor(tt.tile); got != tt.want {
			t.Errorf("symbolFor(%d) = %q, want %q", tt.tile, got, tt.want)
		}
	}
}

func TestExtractRoom(t *testing.T) {
	res := testResult()
	e := ExtractRoom(res.Grid, res.Rooms[0])

	if e.RoomID != 1 {
		t.Errorf("RoomID = %d", e.RoomID)
	}
	if e.OriginX != 1 || e.OriginY != 1 {
		t.Errorf("origin = (%d, %d), want (1, 1)", e.OriginX, e.OriginY)
	}

	want := [][]string{
		{"2", "2", "2", "2", "2"},
		{"2", "1", "1", "1", "2"},
		{"2", "1", "1", "1", "D"},
		{"2", "1", "1", "1", "2"},
		{"2", "2", "2", "2", "2"},
	}
	if !reflect.DeepEqual(e.Island, want) {
		t.Errorf("island = %v, want %v", e.Island, want)
	}
}

func TestExtractRoomDiscardsUnrelatedGeometry(t *testing.T) {
	res := testResult()
	// Floor outside the wall ring but inside the extraction window. The
	// flood fill reaches it from the window edge, so it must not survive.
	res.Grid.Set(6, 3, layout.TileFloor)

	room := layout.RoomResult{ID: 2, Bounds: geom.Bounds{MinX: 2, MinY: 2, MaxX: 6, MaxY: 5}}
	e := ExtractRoom(res.Grid, room)

	// Window now spans x 1..6; the stray floor is the last column.
	lastCol := e.Width() - 1
	if e.Island[2][lastCol] != SymbolEmpty {
		t.Errorf("unrelated floor survived extraction: %q", e.Island[2][lastCol])
	}
}

func TestValidate(t *testing.T) {
	res := testResult()
	e := ExtractRoom(res.Grid, res.Rooms[0])

	// Editing a floor cell is allowed.
	design := make([][]string, len(e.Island))
	for y, row := range e.Island {
		design[y] = append([]string(nil), row...)
	}
	design[1][1] = "torch_01"
	if err := e.Validate(design); err != nil {
		t.Errorf("floor edit rejected: %v", err)
	}

	// Editing a door cell is allowed.
	design[2][4] = "gate_03"
	if err := e.Validate(design); err != nil {
		t.Errorf("door edit rejected: %v", err)
	}

	// Wrong shape is fatal.
	if err := e.Validate(design[:3]); !errors.Is(err, errors.ErrCodeAgentShape) {
		t.Errorf("shape violation error = %v", err)
	}

	// Touching a wall is fatal.
	design[0][0] = "1"
	err := e.Validate(design)
	if !errors.Is(err, errors.ErrCodeAgentContent) {
		t.Errorf("content violation error = %v", err)
	}
}

func TestAssembleRoundTrip(t *testing.T) {
	res := testResult()
	extracts := ExtractRooms(res)

	// Submitting the untouched islands reproduces the room footprint.
	designs := map[int][][]string{1: extracts[1].Island}
	got, err := Assemble(res.Grid.Width(), res.Grid.Height(), extracts, designs)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !reflect.DeepEqual(got, extracts[1].Island) {
		t.Errorf("assembled grid = %v, want the island back", got)
	}
}

func TestAssembleUnknownRoom(t *testing.T) {
	res := testResult()
	extracts := ExtractRooms(res)

	_, err := Assemble(8, 8, extracts, map[int][][]string{42: {{"1"}}})
	if !errors.Is(err, errors.ErrCodeRoomNotFound) {
		t.Errorf("error = %v, want room not found", err)
	}
}

func TestAssembleEmpty(t *testing.T) {
	got, err := Assemble(8, 8, map[int]*Extract{}, map[int][][]string{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got != nil {
		t.Errorf("empty assembly = %v, want nil", got)
	}
}
