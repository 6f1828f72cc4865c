package wfc

import (
	"math/rand"
	"reflect"
	"testing"
)

func uniformSample(size, tile int) [][]int {
	s := make([][]int, size)
	for y := range s {
		s[y] = make([]int, size)
		for x := range s[y] {
			s[y][x] = tile
		}
	}
	return s
}

// stripeSample alternates full rows of the two tiles.
func stripeSample(size int) [][]int {
	s := make([][]int, size)
	for y := range s {
		s[y] = make([]int, size)
		for x := range s[y] {
			s[y][x] = y % 2
		}
	}
	return s
}

func TestRunRejectsBadInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Run(rng, uniformSample(2, 1), 10, 10, DefaultParams()); err == nil {
		t.Error("sample smaller than the pattern size should be rejected")
	}
	if _, err := Run(rng, uniformSample(5, 1), 0, 10, DefaultParams()); err == nil {
		t.Error("empty output size should be rejected")
	}

	ragged := [][]int{{1, 1, 1}, {1, 1}, {1, 1, 1}}
	if _, err := Run(rng, ragged, 10, 10, DefaultParams()); err == nil {
		t.Error("ragged sample should be rejected")
	}
}

func TestRunUniformSample(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	out, err := Run(rng, uniformSample(6, 7), 12, 9, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.PatternCount != 1 {
		t.Errorf("PatternCount = %d, want 1", out.PatternCount)
	}
	if out.Contradictions != 0 {
		t.Errorf("Contradictions = %d, want 0", out.Contradictions)
	}
	if len(out.Grid) != 9 || len(out.Grid[0]) != 12 {
		t.Fatalf("output is %dx%d, want 12x9", len(out.Grid[0]), len(out.Grid))
	}
	for _, row := range out.Grid {
		for _, tile := range row {
			if tile != 7 {
				t.Fatalf("uniform sample should collapse to tile 7, got %d", tile)
			}
		}
	}
}

func TestRunPreservesSampleAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	out, err := Run(rng, stripeSample(8), 16, 16, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, row := range out.Grid {
		for _, tile := range row {
			if tile != 0 && tile != 1 {
				t.Fatalf("output tile %d not present in the sample", tile)
			}
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	sample := stripeSample(8)

	a, err := Run(rand.New(rand.NewSource(5)), sample, 20, 20, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(rand.New(rand.NewSource(5)), sample, 20, 20, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("same seed should produce identical output")
	}

	c, err := Run(rand.New(rand.NewSource(6)), sample, 20, 20, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reflect.DeepEqual(a.Grid, c.Grid) && a.Contradictions == c.Contradictions {
		t.Log("different seeds produced identical output; acceptable for constrained samples")
	}
}

func TestPatternLearning(t *testing.T) {
	m := learn(stripeSample(6), 3)
	if len(m.patterns) == 0 {
		t.Fatal("no patterns learned")
	}
	// Stripes yield two distinct 3x3 phases.
	if len(m.patterns) != 2 {
		t.Errorf("learned %d patterns, want 2", len(m.patterns))
	}

	total := 0
	for _, p := range m.patterns {
		total += p.count
	}
	// 4x4 window positions over a 6x6 sample.
	if total != 16 {
		t.Errorf("pattern occurrences sum to %d, want 16", total)
	}
}

func TestCollapsedNeighborsSatisfyLearnedRules(t *testing.T) {
	m := learn(stripeSample(8), 3)
	rng := rand.New(rand.NewSource(11))
	width, height := 14, 10
	assign := m.solve(rng, width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := assign[y*width+x]
			if a < 0 {
				continue
			}
			if x+1 < width {
				if b := assign[y*width+x+1]; b >= 0 && !m.right[a][b] {
					t.Errorf("cell (%d,%d): pattern %d right of %d breaks the learned rules", x, y, b, a)
				}
			}
			if y+1 < height {
				if b := assign[(y+1)*width+x]; b >= 0 && !m.down[a][b] {
					t.Errorf("cell (%d,%d): pattern %d below %d breaks the learned rules", x, y, b, a)
				}
			}
		}
	}
}

func TestFallbackOnContradiction(t *testing.T) {
	// A sample with two tiles that never touch horizontally in the same
	// phase can still collapse; the fallback only fires on empty domains,
	// so force one by synthesizing an impossible model is out of scope.
	// Instead verify the fallback tile parameter is respected when set.
	p := DefaultParams()
	p.FallbackTile = 9
	if p.PatternSize != 3 {
		t.Errorf("default pattern size = %d, want 3", p.PatternSize)
	}

	rng := rand.New(rand.NewSource(8))
	out, err := Run(rng, uniformSample(5, 2), 6, 6, p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, row := range out.Grid {
		for _, tile := range row {
			if tile == 9 {
				t.Error("fallback tile should not appear without contradictions")
			}
		}
	}
}
