// Package wfc implements a wave-function-collapse tiler: given a small
// sample grid, it learns local tile patterns and their adjacencies and
// synthesizes a larger grid that is locally consistent with the sample.
//
// The tiler is independent of the room/graph generation paths and shares
// only the tile-code vocabulary with them. There is no backtracking: a cell
// whose domain empties out degrades to a fallback tile and the contradiction
// is counted in the output.
package wfc

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/forgelab/dungeonforge/pkg/errors"
)

// Params configures a tiling run.
type Params struct {
	// PatternSize is the side length K of the K x K sample windows.
	PatternSize int `json:"pattern_size"`
	// FallbackTile is written for cells whose domain becomes empty.
	FallbackTile int `json:"fallback_tile"`
}

// DefaultParams returns the standard 3x3 configuration with a void fallback.
func DefaultParams() Params {
	return Params{PatternSize: 3, FallbackTile: 0}
}

// Output is the result of one tiling run.
type Output struct {
	Grid           [][]int `json:"grid"`
	Contradictions int     `json:"contradictions"`
	PatternCount   int     `json:"pattern_count"`
}

// pattern is a flattened K x K tile window with its sample occurrence count.
type pattern struct {
	cells []int
	count int
}

// model holds the learned patterns and their directional adjacency.
// right[i][j] means pattern j may sit immediately right of pattern i; down
// likewise. Left and up are the transposes.
type model struct {
	k        int
	patterns []pattern
	right    [][]bool
	down     [][]bool
}

// Run learns patterns from the sample and collapses a width x height output
// grid. The sample must be at least PatternSize in both dimensions.
func Run(rng *rand.Rand, sample [][]int, width, height int, p Params) (*Output, error) {
	if p.PatternSize < 1 {
		p.PatternSize = 3
	}
	if len(sample) < p.PatternSize || len(sample) > 0 && len(sample[0]) < p.PatternSize {
		return nil, errors.New(errors.ErrCodeInvalidGrid,
			"sample grid must be at least %dx%d", p.PatternSize, p.PatternSize)
	}
	for _, row := range sample {
		if len(row) != len(sample[0]) {
			return nil, errors.New(errors.ErrCodeInvalidGrid, "sample grid rows have uneven lengths")
		}
	}
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "output size %dx%d is invalid", width, height)
	}

	m := learn(sample, p.PatternSize)
	return m.collapse(rng, width, height, p.FallbackTile), nil
}

// learn extracts every K x K window from the sample, deduplicates them with
// occurrence counts, and derives the directional adjacency rules from
// overlapping column/row equality.
func learn(sample [][]int, k int) *model {
	index := map[string]int{}
	var patterns []pattern

	h, w := len(sample), len(sample[0])
	for i := 0; i+k <= h; i++ {
		for j := 0; j+k <= w; j++ {
			cells := make([]int, 0, k*k)
			for y := 0; y < k; y++ {
				cells = append(cells, sample[i+y][j:j+k]...)
			}
			key := patternKey(cells)
			if idx, ok := index[key]; ok {
				patterns[idx].count++
			} else {
				index[key] = len(patterns)
				patterns = append(patterns, pattern{cells: cells, count: 1})
			}
		}
	}

	n := len(patterns)
	m := &model{k: k, patterns: patterns, right: boolMatrix(n), down: boolMatrix(n)}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if overlapRight(patterns[a].cells, patterns[b].cells, k) {
				m.right[a][b] = true
			}
			if overlapDown(patterns[a].cells, patterns[b].cells, k) {
				m.down[a][b] = true
			}
		}
	}
	return m
}

func patternKey(cells []int) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(strconv.Itoa(c))
		sb.WriteByte(',')
	}
	return sb.String()
}

func boolMatrix(n int) [][]bool {
	m := make([][]bool, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	return m
}

// overlapRight reports whether b may sit right of a: a's trailing k-1
// columns must equal b's leading k-1 columns.
func overlapRight(a, b []int, k int) bool {
	for y := 0; y < k; y++ {
		for x := 1; x < k; x++ {
			if a[y*k+x] != b[y*k+x-1] {
				return false
			}
		}
	}
	return true
}

// overlapDown reports whether b may sit below a: a's trailing k-1 rows must
// equal b's leading k-1 rows.
func overlapDown(a, b []int, k int) bool {
	for y := 1; y < k; y++ {
		for x := 0; x < k; x++ {
			if a[y*k+x] != b[(y-1)*k+x] {
				return false
			}
		}
	}
	return true
}

// allows reports whether pattern b may lie in the given direction from a.
// Directions: 0 right, 1 down, 2 left, 3 up; left/up are the inverses of
// right/down.
func (m *model) allows(a, b, dir int) bool {
	switch dir {
	case 0:
		return m.right[a][b]
	case 1:
		return m.down[a][b]
	case 2:
		return m.right[b][a]
	default:
		return m.down[b][a]
	}
}

var directions = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// solve runs the observe/propagate loop until no cell has a domain larger
// than one and returns the chosen pattern index per cell, -1 where the
// domain emptied out.
func (m *model) solve(rng *rand.Rand, width, height int) []int {
	n := len(m.patterns)
	domains := make([][]bool, width*height)
	sizes := make([]int, width*height)
	for i := range domains {
		domains[i] = make([]bool, n)
		for p := 0; p < n; p++ {
			domains[i][p] = true
		}
		sizes[i] = n
	}

	for {
		cell := observe(sizes)
		if cell < 0 {
			break
		}

		chosen := m.weightedPick(rng, domains[cell])
		for p := 0; p < n; p++ {
			domains[cell][p] = p == chosen
		}
		sizes[cell] = 1
		m.propagate(domains, sizes, width, height, cell)
	}

	assign := make([]int, width*height)
	for i := range assign {
		assign[i] = -1
		if sizes[i] == 0 {
			continue
		}
		for p := 0; p < n; p++ {
			if domains[i][p] {
				assign[i] = p
				break
			}
		}
	}
	return assign
}

// collapse solves the wave and maps every cell to its pattern's center tile.
func (m *model) collapse(rng *rand.Rand, width, height, fallback int) *Output {
	assign := m.solve(rng, width, height)

	out := &Output{Grid: make([][]int, height), PatternCount: len(m.patterns)}
	center := m.k/2*m.k + m.k/2
	for y := 0; y < height; y++ {
		out.Grid[y] = make([]int, width)
		for x := 0; x < width; x++ {
			p := assign[y*width+x]
			if p < 0 {
				out.Grid[y][x] = fallback
				out.Contradictions++
				continue
			}
			out.Grid[y][x] = m.patterns[p].cells[center]
		}
	}
	return out
}

// observe picks the cell with the smallest domain larger than one, ties
// broken by scan order. Returns -1 when every domain is decided or empty.
func observe(sizes []int) int {
	best, bestSize := -1, int(^uint(0)>>1)
	for i, s := range sizes {
		if s > 1 && s < bestSize {
			best, bestSize = i, s
		}
	}
	return best
}

// weightedPick chooses one pattern from the domain with probability
// proportional to its sample occurrence count.
func (m *model) weightedPick(rng *rand.Rand, domain []bool) int {
	total := 0
	for p, ok := range domain {
		if ok {
			total += m.patterns[p].count
		}
	}
	r := rng.Intn(total)
	for p, ok := range domain {
		if !ok {
			continue
		}
		r -= m.patterns[p].count
		if r < 0 {
			return p
		}
	}
	// Unreachable with a non-empty domain.
	return 0
}

// propagate narrows neighbor domains outward from a changed cell. For each
// direction it removes neighbor patterns with no supporting pattern left in
// the source domain, pushing neighbors that shrank. Domains may empty out;
// the contradiction surfaces at mapping time.
func (m *model) propagate(domains [][]bool, sizes []int, width, height, start int) {
	n := len(m.patterns)
	stack := []int{start}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := cell%width, cell/width

		for dir, d := range directions {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			neighbor := ny*width + nx
			if sizes[neighbor] <= 1 {
				continue
			}

			shrank := false
			for p := 0; p < n; p++ {
				if !domains[neighbor][p] {
					continue
				}
				supported := false
				for q := 0; q < n; q++ {
					if domains[cell][q] && m.allows(q, p, dir) {
						supported = true
						break
					}
				}
				if !supported {
					domains[neighbor][p] = false
					sizes[neighbor]--
					shrank = true
				}
			}
			if shrank {
				stack = append(stack, neighbor)
			}
		}
	}
}
