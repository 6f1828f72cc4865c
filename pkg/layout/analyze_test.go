package layout

import (
	"encoding/json"
	"testing"
)

func TestAnalyze(t *testing.T) {
	res, err := Generate(Request{
		Method:    MethodAdjacentRooms,
		Seed:      3,
		Overrides: json.RawMessage(`{"num_rooms": 8, "door_probability": 1.0}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := Analyze(res)

	if a.RoomCount != len(res.Rooms) {
		t.Errorf("RoomCount = %d, want %d", a.RoomCount, len(res.Rooms))
	}
	if a.Connectivity.TotalConnections != len(res.Graph.Edges) {
		t.Errorf("TotalConnections = %d, want %d",
			a.Connectivity.TotalConnections, len(res.Graph.Edges))
	}
	if a.TotalArea <= 0 {
		t.Error("TotalArea should be positive")
	}
	if a.AverageRoomSize <= 0 {
		t.Error("AverageRoomSize should be positive")
	}

	mains := 0
	for _, r := range res.Rooms {
		if r.IsMain {
			mains++
		}
	}
	if a.MainRoomCount != mains {
		t.Errorf("MainRoomCount = %d, want %d", a.MainRoomCount, mains)
	}

	typed := 0
	for _, n := range a.RoomTypes {
		typed += n
	}
	if typed != a.RoomCount {
		t.Errorf("room type counts sum to %d, want %d", typed, a.RoomCount)
	}

	tiles := 0
	for _, n := range a.TileCounts {
		tiles += n
	}
	if tiles != res.Grid.Width()*res.Grid.Height() {
		t.Errorf("tile counts sum to %d, want full grid", tiles)
	}
}

func TestAnalyzeDoorDeduplication(t *testing.T) {
	// Shared-wall doors are recorded on both rooms; the analysis counts each
	// physical cell once.
	res, err := Generate(Request{
		Method:    MethodAdjacentRooms,
		Seed:      1,
		Overrides: json.RawMessage(`{"num_rooms": 6, "door_probability": 1.0}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := Analyze(res)

	cells := map[[2]int]bool{}
	total := 0
	for _, r := range res.Rooms {
		for _, d := range r.Doors {
			cells[d] = true
			total++
		}
	}
	if a.DoorCount != len(cells) {
		t.Errorf("DoorCount = %d, want %d unique cells (of %d recorded)",
			a.DoorCount, len(cells), total)
	}
}
