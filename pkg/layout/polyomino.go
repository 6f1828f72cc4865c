package layout

import (
	"math/rand"
	"sort"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// Offset is a cell offset within a polyomino, relative to its origin.
type Offset struct {
	DX, DY int
}

// Fixed catalogues of the one-sided tetromino and pentomino shapes. Free
// rotation and reflection are applied at selection time, so only one
// orientation of each piece is listed.
var (
	tetrominoes = map[string][]Offset{
		"I": {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		"O": {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		"T": {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
		"L": {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
		"J": {{1, 0}, {1, 1}, {1, 2}, {0, 2}},
		"S": {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		"Z": {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	}

	pentominoes = map[string][]Offset{
		"F": {{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}},
		"I": {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
		"L": {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}},
		"N": {{1, 0}, {0, 1}, {1, 1}, {1, 2}, {1, 3}},
		"P": {{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0, 2}},
		"T": {{0, 0}, {1, 0}, {2, 0}, {1, 1}, {1, 2}},
		"U": {{0, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 0}},
		"V": {{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}},
		"W": {{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}},
		"X": {{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}},
		"Y": {{1, 0}, {0, 1}, {1, 1}, {1, 2}, {1, 3}},
		"Z": {{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}},
	}
)

// normalizePolyomino shifts offsets so the minimum x and y are zero.
func normalizePolyomino(cells []Offset) []Offset {
	if len(cells) == 0 {
		return nil
	}
	minX, minY := cells[0].DX, cells[0].DY
	for _, c := range cells[1:] {
		if c.DX < minX {
			minX = c.DX
		}
		if c.DY < minY {
			minY = c.DY
		}
	}
	out := make([]Offset, len(cells))
	for i, c := range cells {
		out[i] = Offset{c.DX - minX, c.DY - minY}
	}
	return out
}

// rotatePolyomino rotates the shape 90 degrees clockwise the given number of
// times, renormalizing after each step.
func rotatePolyomino(cells []Offset, rotations int) []Offset {
	out := append([]Offset(nil), cells...)
	for r := 0; r < rotations%4; r++ {
		for i, c := range out {
			out[i] = Offset{c.DY, -c.DX}
		}
		out = normalizePolyomino(out)
	}
	return out
}

// flipPolyomino mirrors the shape across the vertical axis.
func flipPolyomino(cells []Offset) []Offset {
	out := make([]Offset, len(cells))
	for i, c := range cells {
		out[i] = Offset{-c.DX, c.DY}
	}
	return normalizePolyomino(out)
}

// randomCatalogued picks a shape from the catalogue with random rotation and
// reflection. Map iteration order is not deterministic, so keys are sorted
// before choosing to keep the RNG stream reproducible.
func randomCatalogued(rng *rand.Rand, catalogue map[string][]Offset) []Offset {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)

	cells := append([]Offset(nil), catalogue[names[rng.Intn(len(names))]]...)
	if rng.Intn(2) == 0 {
		cells = flipPolyomino(cells)
	}
	if rot := rng.Intn(4); rot > 0 {
		cells = rotatePolyomino(cells, rot)
	}
	return cells
}

// growPolyomino generates a random connected polyomino of the given size by
// repeatedly attaching a cell to a random free 4-neighbor of the shape so
// far. Falls back to a straight line if growth stalls repeatedly.
func growPolyomino(rng *rand.Rand, size, maxAttempts int) []Offset {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []Offset{{0, 0}}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		cells := []Offset{{0, 0}}
		occupied := map[Offset]bool{{0, 0}: true}

		for len(cells) < size {
			var candidates []Offset
			seen := map[Offset]bool{}
			for _, c := range cells {
				for _, d := range [4]Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
					n := Offset{c.DX + d.DX, c.DY + d.DY}
					if !occupied[n] && !seen[n] {
						seen[n] = true
						candidates = append(candidates, n)
					}
				}
			}
			if len(candidates) == 0 {
				break
			}
			// Sort for a deterministic candidate order before sampling.
			sort.Slice(candidates, func(i, j int) bool {
				if candidates[i].DY != candidates[j].DY {
					return candidates[i].DY < candidates[j].DY
				}
				return candidates[i].DX < candidates[j].DX
			})
			pick := candidates[rng.Intn(len(candidates))]
			cells = append(cells, pick)
			occupied[pick] = true
		}

		if len(cells) == size {
			return normalizePolyomino(cells)
		}
	}

	line := make([]Offset, size)
	for i := range line {
		line[i] = Offset{i, 0}
	}
	return line
}

// offsetsToCells anchors polyomino offsets at (x, y) grid position.
func offsetsToCells(x, y int, offsets []Offset) []geom.Cell {
	cells := make([]geom.Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = geom.Cell{X: x + o.DX, Y: y + o.DY}
	}
	return cells
}
