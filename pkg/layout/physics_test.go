package layout

import (
	"encoding/json"
	"testing"
)

func generatePhysicsResult(t *testing.T, seed int64, overrides string) *Result {
	t.Helper()
	res, err := Generate(Request{
		Method:    MethodPhysics,
		Width:     50,
		Height:    50,
		Seed:      seed,
		Overrides: json.RawMessage(overrides),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func TestPhysicsProducesRooms(t *testing.T) {
	res := generatePhysicsResult(t, 42, `{"num_rooms": 10, "spawn_radius": 15}`)

	if len(res.Rooms) == 0 {
		t.Fatal("no rooms in result")
	}

	mains := 0
	for _, r := range res.Rooms {
		if r.IsMain {
			mains++
		}
	}
	if mains < 3 {
		t.Errorf("got %d main rooms, want at least the configured minimum of 3", mains)
	}
}

func TestPhysicsRoomsInsideGrid(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		res := generatePhysicsResult(t, seed, `{"num_rooms": 15}`)
		w, h := float64(res.Grid.Width()), float64(res.Grid.Height())
		for _, r := range res.Rooms {
			if r.Bounds.MinX < 0 || r.Bounds.MinY < 0 || r.Bounds.MaxX > w || r.Bounds.MaxY > h {
				t.Fatalf("seed %d: room %d bounds %+v outside %vx%v grid", seed, r.ID, r.Bounds, w, h)
			}
		}
	}
}

func TestPhysicsMainRoomsDisjoint(t *testing.T) {
	res := generatePhysicsResult(t, 42, `{"num_rooms": 10, "spawn_radius": 15}`)

	if !res.Metadata.PhysicsConverged {
		t.Skip("separation hit the iteration cap; overlap is not guaranteed gone")
	}

	var mains []RoomResult
	for _, r := range res.Rooms {
		if r.IsMain {
			mains = append(mains, r)
		}
	}
	for i := 0; i < len(mains); i++ {
		for j := i + 1; j < len(mains); j++ {
			a, b := mains[i].Bounds, mains[j].Bounds
			if a.MinX < b.MaxX && b.MinX < a.MaxX && a.MinY < b.MaxY && b.MinY < a.MaxY {
				t.Errorf("main rooms %d and %d overlap: %+v vs %+v",
					mains[i].ID, mains[j].ID, a, b)
			}
		}
	}
}

func TestPhysicsGraphSpansMainRooms(t *testing.T) {
	res := generatePhysicsResult(t, 7, `{"num_rooms": 12}`)

	mains := map[int]bool{}
	for _, r := range res.Rooms {
		if r.IsMain {
			mains[r.ID] = true
		}
	}
	if len(mains) < 2 {
		t.Skip("not enough main rooms to check connectivity")
	}

	g := NewGraph()
	for _, e := range res.Graph.Edges {
		g.AddEdge(Edge{A: e[0], B: e[1]})
	}
	if !g.Connected() {
		t.Error("room graph should be connected after MST reconnection")
	}
	for _, e := range res.Graph.Edges {
		if !mains[e[0]] || !mains[e[1]] {
			t.Errorf("edge %v touches a non-main room", e)
		}
	}
}

func TestShapedPhysicsUsesShapeLibrary(t *testing.T) {
	res, err := Generate(Request{
		Method: MethodShapedPhysics,
		Seed:   3,
		Overrides: json.RawMessage(`{"num_rooms": 30}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kinds := map[ShapeKind]bool{}
	for _, r := range res.Rooms {
		kinds[r.Shape] = true
	}
	if len(kinds) < 2 {
		t.Errorf("expected a mix of shapes, got %v", kinds)
	}
}

func TestSelectMainRoomsKeepsThresholdedSet(t *testing.T) {
	// 4 large rooms clear the area threshold (25 >= 16), 6 small ones do
	// not. The minimum is satisfied, so the ranked fallback must not fire
	// even though the ratio would ask for 8 rooms.
	rooms := make([]*Room, 0, 10)
	for i := 0; i < 4; i++ {
		rooms = append(rooms, NewRoom(i, NewRectangle(float64(i*10), 0, 5, 5)))
	}
	for i := 4; i < 10; i++ {
		rooms = append(rooms, NewRoom(i, NewRectangle(float64(i*10), 20, 3, 3)))
	}

	p := DefaultPhysicsParams()
	p.RoomSizeMean = 4
	p.MainRoomThreshold = 1
	p.MinMainRooms = 3
	p.MainRoomRatio = 0.8

	selectMainRooms(rooms, p)

	for _, r := range rooms {
		if want := r.ID < 4; r.IsMain != want {
			t.Errorf("room %d: IsMain = %v, want %v", r.ID, r.IsMain, want)
		}
	}
}

func TestSelectMainRoomsFallbackBelowMinimum(t *testing.T) {
	// Only 2 rooms clear the threshold, below the minimum of 3, so the
	// fallback flags the top max(3, 0.8*10) = 8 rooms by area.
	rooms := make([]*Room, 0, 10)
	for i := 0; i < 2; i++ {
		rooms = append(rooms, NewRoom(i, NewRectangle(float64(i*10), 0, 5, 5)))
	}
	for i := 2; i < 10; i++ {
		rooms = append(rooms, NewRoom(i, NewRectangle(float64(i*10), 20, 3, 3)))
	}

	p := DefaultPhysicsParams()
	p.RoomSizeMean = 4
	p.MainRoomThreshold = 1
	p.MinMainRooms = 3
	p.MainRoomRatio = 0.8

	selectMainRooms(rooms, p)

	mains := 0
	for _, r := range rooms {
		if r.IsMain {
			mains++
		}
	}
	if mains != 8 {
		t.Errorf("got %d main rooms, want 8 from the ranked fallback", mains)
	}
	if !rooms[0].IsMain || !rooms[1].IsMain {
		t.Error("the largest rooms should rank into the fallback selection")
	}
}

func TestPhysicsGridHasContent(t *testing.T) {
	res := generatePhysicsResult(t, 42, `{"num_rooms": 10, "spawn_radius": 15}`)

	counts := map[int]int{}
	for _, row := range res.Grid {
		for _, tile := range row {
			counts[tile]++
		}
	}
	if counts[TileFloor] == 0 {
		t.Error("grid has no floor tiles")
	}
	if counts[TileWall] == 0 {
		t.Error("grid has no wall tiles")
	}
}
