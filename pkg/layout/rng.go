package layout

import (
	"math"
	"math/rand"
)

// Weighted pairs an item with a selection weight for use with Choose.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Choose picks one item from the list with probability proportional to its
// weight. Non-positive weights are treated as zero. If every weight is zero
// the first item is returned, so a caller with a valid distribution never
// sees a surprise.
//
// All random selection in the engine funnels through this helper (and the
// *rand.Rand it is handed) so that a fixed seed reproduces a layout exactly.
func Choose[T any](rng *rand.Rand, items []Weighted[T]) T {
	var total float64
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return items[0].Item
	}
	r := rng.Float64() * total
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		r -= it.Weight
		if r < 0 {
			return it.Item
		}
	}
	return items[len(items)-1].Item
}

// normClamped samples a normal distribution and clamps the result to
// [min, max].
func normClamped(rng *rand.Rand, mean, std, min, max float64) float64 {
	v := rng.NormFloat64()*std + mean
	return math.Max(min, math.Min(max, v))
}

// pointInCircle returns a point uniformly distributed inside a circle of the
// given radius centered at the origin. Uses the sum-of-two-uniforms radius
// trick from the TinyKeep writeup rather than a sqrt transform.
func pointInCircle(rng *rand.Rand, radius float64) (float64, float64) {
	t := 2 * math.Pi * rng.Float64()
	u := rng.Float64() + rng.Float64()
	r := u
	if u > 1 {
		r = 2 - u
	}
	return radius * r * math.Cos(t), radius * r * math.Sin(t)
}

// roundToTile rounds n up to the nearest multiple of tileSize.
func roundToTile(n float64, tileSize int) int {
	if tileSize <= 1 {
		return int(math.Floor(n + 0))
	}
	ts := float64(tileSize)
	return int(math.Floor((n+ts-1)/ts) * ts)
}
