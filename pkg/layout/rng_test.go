package layout

import (
	"math"
	"math/rand"
	"testing"
)

func TestChoose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// A single positive weight always wins.
	items := []Weighted[string]{
		{Item: "never", Weight: 0},
		{Item: "always", Weight: 5},
	}
	for i := 0; i < 50; i++ {
		if got := Choose(rng, items); got != "always" {
			t.Fatalf("Choose picked %q with zero-weight alternative", got)
		}
	}

	// All-zero weights fall back to the first item.
	zero := []Weighted[string]{{Item: "first"}, {Item: "second"}}
	if got := Choose(rng, zero); got != "first" {
		t.Errorf("Choose with zero weights = %q, want first", got)
	}
}

func TestChooseDeterministic(t *testing.T) {
	items := []Weighted[int]{{Item: 1, Weight: 1}, {Item: 2, Weight: 2}, {Item: 3, Weight: 3}}

	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if Choose(a, items) != Choose(b, items) {
			t.Fatal("same seed should produce the same selection stream")
		}
	}
}

func TestNormClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		v := normClamped(rng, 10, 100, 5, 15)
		if v < 5 || v > 15 {
			t.Fatalf("normClamped = %v outside [5, 15]", v)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		x, y := pointInCircle(rng, 10)
		if math.Hypot(x, y) > 10+1e-9 {
			t.Fatalf("point (%v, %v) outside radius 10", x, y)
		}
	}
}

func TestRoundToTile(t *testing.T) {
	tests := []struct {
		n    float64
		tile int
		want int
	}{
		{3.7, 1, 3},
		{3.7, 0, 3},
		{-1.2, 1, -2},
		{5, 4, 8},
		{8, 4, 8},
		{1.5, 4, 4},
	}
	for _, tt := range tests {
		if got := roundToTile(tt.n, tt.tile); got != tt.want {
			t.Errorf("roundToTile(%v, %d) = %d, want %d", tt.n, tt.tile, got, tt.want)
		}
	}
}
