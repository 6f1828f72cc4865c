package layout

import (
	"math/rand"
	"testing"
)

func offsetSet(cells []Offset) map[Offset]bool {
	set := make(map[Offset]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

func TestNormalizePolyomino(t *testing.T) {
	cells := []Offset{{3, 5}, {4, 5}, {3, 6}}
	got := normalizePolyomino(cells)
	want := offsetSet([]Offset{{0, 0}, {1, 0}, {0, 1}})
	if len(got) != 3 {
		t.Fatalf("got %d cells, want 3", len(got))
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected cell %v", c)
		}
	}
}

func TestRotatePolyomino(t *testing.T) {
	// A vertical domino becomes horizontal after a quarter turn.
	domino := []Offset{{0, 0}, {0, 1}}
	got := offsetSet(rotatePolyomino(domino, 1))
	if !got[Offset{0, 0}] || !got[Offset{1, 0}] {
		t.Errorf("rotated domino = %v", got)
	}

	// Four quarter turns are the identity.
	l := tetrominoes["L"]
	full := offsetSet(rotatePolyomino(l, 4))
	for _, c := range l {
		if !full[c] {
			t.Errorf("cell %v missing after full rotation", c)
		}
	}
}

func TestCataloguesAreNormalized(t *testing.T) {
	check := func(name string, cells []Offset, size int) {
		if len(cells) != size {
			t.Errorf("%s has %d cells, want %d", name, len(cells), size)
		}
		minX, minY := cells[0].DX, cells[0].DY
		for _, c := range cells {
			if c.DX < minX {
				minX = c.DX
			}
			if c.DY < minY {
				minY = c.DY
			}
		}
		if minX != 0 || minY != 0 {
			t.Errorf("%s is not normalized: min (%d, %d)", name, minX, minY)
		}
	}
	for name, cells := range tetrominoes {
		check("tetromino "+name, cells, 4)
	}
	for name, cells := range pentominoes {
		check("pentomino "+name, cells, 5)
	}
}

func TestRandomCatalogued(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		cells := randomCatalogued(rng, pentominoes)
		if len(cells) != 5 {
			t.Fatalf("catalogued pentomino has %d cells", len(cells))
		}
	}
}

func TestGrowPolyomino(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for size := 1; size <= 9; size++ {
		cells := growPolyomino(rng, size, 100)
		if len(cells) != size {
			t.Fatalf("grew %d cells, want %d", len(cells), size)
		}
		if !connectedOffsets(cells) {
			t.Fatalf("grown polyomino of size %d is disconnected: %v", size, cells)
		}
	}
}

// connectedOffsets reports whether the cells form one 4-connected component.
func connectedOffsets(cells []Offset) bool {
	if len(cells) == 0 {
		return true
	}
	set := offsetSet(cells)
	seen := map[Offset]bool{cells[0]: true}
	queue := []Offset{cells[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4]Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
			n := Offset{c.DX + d.DX, c.DY + d.DY}
			if set[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(cells)
}
