package layout

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/forgelab/dungeonforge/pkg/errors"
)

func TestMethodsRegistry(t *testing.T) {
	names := MethodNames()
	want := []string{
		MethodGraphLinear, MethodGraphHub, MethodGraphBranching, MethodGraphLoop,
		MethodPhysics, MethodShapedPhysics, MethodAdjacentRooms,
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("MethodNames = %v, want %v", names, want)
	}

	for _, m := range Methods() {
		if m.Description == "" {
			t.Errorf("method %s has no description", m.Name)
		}
		if m.Defaults == nil {
			t.Errorf("method %s has no defaults", m.Name)
		}
	}
}

func TestDefaultParamsUnknownMethod(t *testing.T) {
	_, err := DefaultParams("bsp_tree")
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	if !errors.Is(err, errors.ErrCodeInvalidMethod) {
		t.Errorf("error code = %v, want invalid method", errors.GetCode(err))
	}
}

func TestGenerateUnknownMethod(t *testing.T) {
	_, err := Generate(Request{Method: "voronoi"})
	if !errors.Is(err, errors.ErrCodeInvalidMethod) {
		t.Fatalf("error = %v, want invalid method code", err)
	}
}

func TestGenerateUnknownOverrideField(t *testing.T) {
	_, err := Generate(Request{
		Method:    MethodPhysics,
		Seed:      1,
		Overrides: json.RawMessage(`{"num_roomz": 10}`),
	})
	if err == nil {
		t.Fatal("misspelled override field should be fatal")
	}
	if !errors.Is(err, errors.ErrCodeInvalidParam) {
		t.Errorf("error code = %v, want invalid param", errors.GetCode(err))
	}
}

func TestGenerateGridTooSmall(t *testing.T) {
	_, err := Generate(Request{Method: MethodPhysics, Width: 3, Height: 50})
	if !errors.Is(err, errors.ErrCodeInvalidGrid) {
		t.Fatalf("error = %v, want invalid grid code", err)
	}
}

func TestGenerateDefaultDimensions(t *testing.T) {
	res, err := Generate(Request{
		Method:    MethodPhysics,
		Seed:      42,
		Overrides: json.RawMessage(`{"num_rooms": 10}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Grid.Width() != DefaultWidth || res.Grid.Height() != DefaultHeight {
		t.Errorf("grid is %dx%d, want %dx%d",
			res.Grid.Width(), res.Grid.Height(), DefaultWidth, DefaultHeight)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	req := Request{
		Method:    MethodPhysics,
		Width:     50,
		Height:    50,
		Seed:      42,
		Overrides: json.RawMessage(`{"num_rooms": 10, "spawn_radius": 15}`),
	}

	a, err := Generate(req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Generate(req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("same seed should produce identical grids")
	}
	if !reflect.DeepEqual(a.Rooms, b.Rooms) {
		t.Error("same seed should produce identical rooms")
	}
	if !reflect.DeepEqual(a.Graph, b.Graph) {
		t.Error("same seed should produce identical graphs")
	}
	if a.Metadata.RunID == b.Metadata.RunID {
		t.Error("each run should get a fresh run id")
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	base := Request{
		Method:    MethodPhysics,
		Seed:      1,
		Overrides: json.RawMessage(`{"num_rooms": 12}`),
	}
	other := base
	other.Seed = 2

	a, err := Generate(base)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(other)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("different seeds should produce different grids")
	}
}
