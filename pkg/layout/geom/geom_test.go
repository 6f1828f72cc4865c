package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func square(x, y, size float64) orb.Polygon {
	return NewPolygon([]orb.Point{
		{x, y},
		{x + size, y},
		{x + size, y + size},
		{x, y + size},
	})
}

func TestBounds(t *testing.T) {
	b := Bounds{MinX: 1, MinY: 2, MaxX: 4, MaxY: 8}
	if b.Width() != 3 {
		t.Errorf("Width = %v, want 3", b.Width())
	}
	if b.Height() != 6 {
		t.Errorf("Height = %v, want 6", b.Height())
	}

	moved := b.Translate(2, -1)
	if moved.MinX != 3 || moved.MaxY != 7 {
		t.Errorf("Translate = %+v", moved)
	}

	if !b.Intersects(Bounds{MinX: 3, MinY: 3, MaxX: 10, MaxY: 10}) {
		t.Error("overlapping bounds should intersect")
	}
	if b.Intersects(Bounds{MinX: 5, MinY: 0, MaxX: 6, MaxY: 1}) {
		t.Error("disjoint bounds should not intersect")
	}
}

func TestAreaAndCentroid(t *testing.T) {
	sq := square(0, 0, 2)
	if got := Area(sq); got != 4 {
		t.Errorf("Area = %v, want 4", got)
	}
	c := Centroid(sq)
	if c.X() != 1 || c.Y() != 1 {
		t.Errorf("Centroid = %v, want (1, 1)", c)
	}
}

func TestContains(t *testing.T) {
	sq := square(0, 0, 2)
	if !Contains(sq, orb.Point{1, 1}) {
		t.Error("interior point should be contained")
	}
	if Contains(sq, orb.Point{3, 3}) {
		t.Error("exterior point should not be contained")
	}
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b orb.Polygon
		want bool
	}{
		{"overlapping", square(0, 0, 2), square(1, 1, 2), true},
		{"disjoint", square(0, 0, 2), square(5, 5, 2), false},
		{"contained", square(0, 0, 10), square(2, 2, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// Symmetry
			if got := Intersects(tt.b, tt.a); got != tt.want {
				t.Errorf("Intersects reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCellsInside(t *testing.T) {
	cells := CellsInside(square(0, 0, 2))
	want := []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d: %v", len(cells), len(want), cells)
	}
	for i, c := range cells {
		if c != want[i] {
			t.Errorf("cell %d = %v, want %v", i, c, want[i])
		}
	}
}

func TestPerimeter(t *testing.T) {
	var block []Cell
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			block = append(block, Cell{x, y})
		}
	}
	edge := Perimeter(block)
	if len(edge) != 8 {
		t.Fatalf("got %d perimeter cells, want 8", len(edge))
	}
	for _, c := range edge {
		if (c == Cell{1, 1}) {
			t.Error("center cell should not be on the perimeter")
		}
	}
}
