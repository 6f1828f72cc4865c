package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

func TestNewRectangle(t *testing.T) {
	g := NewRectangle(2, 3, 4, 5)
	if g.Kind != ShapeRectangle {
		t.Errorf("Kind = %v", g.Kind)
	}
	if g.Area != 20 {
		t.Errorf("Area = %v, want 20", g.Area)
	}
	b := g.Bounds
	if b.MinX != 2 || b.MinY != 3 || b.MaxX != 6 || b.MaxY != 8 {
		t.Errorf("Bounds = %+v", b)
	}
	if len(g.GridCells()) != 20 {
		t.Errorf("GridCells = %d, want 20", len(g.GridCells()))
	}
}

func TestNewCircleArea(t *testing.T) {
	g := NewCircle(10, 10, 3)
	want := math.Pi * 9
	if math.Abs(g.Area-want) > 1e-9 {
		t.Errorf("Area = %v, want %v", g.Area, want)
	}
	if len(g.GridCells()) == 0 {
		t.Error("circle has no grid cells")
	}
}

func TestNewLShapeNotch(t *testing.T) {
	full := NewRectangle(0, 0, 6, 6)
	l := NewLShape(0, 0, 6, 6, 2, 2, NotchTopRight)
	if l.Area >= full.Area {
		t.Errorf("notched area %v should be below full area %v", l.Area, full.Area)
	}
	if len(l.GridCells()) >= len(full.GridCells()) {
		t.Error("notch should remove interior cells")
	}
}

func TestPolyominoGeometry(t *testing.T) {
	offsets := []Offset{{0, 0}, {1, 0}, {0, 1}}
	g := NewPolyomino(5, 5, offsets)

	cells := cellSet(g.GridCells())
	want := []geom.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for _, c := range want {
		if !cells[c] {
			t.Errorf("missing cell %v", c)
		}
	}

	// Integer translation shifts every cell in lockstep.
	g.Translate(2, 3)
	moved := cellSet(g.GridCells())
	for _, c := range want {
		if !moved[geom.Cell{X: c.X + 2, Y: c.Y + 3}] {
			t.Errorf("missing translated cell for %v", c)
		}
	}
}

func TestPolyominoOverlapIsCellExact(t *testing.T) {
	// Two L pieces whose bounding boxes overlap but whose cells interlock.
	a := NewPolyomino(0, 0, []Offset{{0, 0}, {0, 1}, {1, 1}})
	b := NewPolyomino(1, 0, []Offset{{0, 0}})

	if a.Overlaps(b) {
		t.Error("interlocking polyominoes should not overlap")
	}

	c := NewPolyomino(0, 1, []Offset{{0, 0}})
	if !a.Overlaps(c) {
		t.Error("shared cell should count as overlap")
	}
}

func TestGenerateShapeRespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	weights := map[ShapeKind]float64{ShapeRectangle: 1}

	for i := 0; i < 25; i++ {
		g := GenerateShape(rng, 10, 10, 36, weights)
		if g.Kind != ShapeRectangle {
			t.Fatalf("got kind %v with rectangle-only weights", g.Kind)
		}
		if g.Area <= 0 {
			t.Fatal("generated shape has no area")
		}
	}
}

func TestGenerateShapeAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	seen := map[ShapeKind]bool{}
	for i := 0; i < 300; i++ {
		g := GenerateShape(rng, 20, 20, 30, DefaultShapeWeights)
		seen[g.Kind] = true
		if len(g.GridCells()) == 0 {
			t.Fatalf("%v shape has no grid cells", g.Kind)
		}
	}
	for kind := range DefaultShapeWeights {
		if !seen[kind] {
			t.Errorf("kind %v never generated in 300 draws", kind)
		}
	}
}
