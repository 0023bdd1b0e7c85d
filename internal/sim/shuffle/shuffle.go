// Package shuffle implements an in-copy Fisher-Yates shuffle with a pluggable
// uniform source, so deals can be replayed under test.
package shuffle

import "math/rand"

// Source returns a uniform float in [0, 1). Values outside that range are
// clamped to the first or last candidate index.
type Source func() float64

// Shuffle returns a permuted copy of items. A nil rng uses math/rand.
func Shuffle[T any](items []T, rng Source) []T {
	if rng == nil {
		rng = rand.Float64
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := min(max(int(rng()*float64(i+1)), 0), i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Seeded returns a deterministic Source for seed.
func Seeded(seed int64) Source {
	return rand.New(rand.NewSource(seed)).Float64
}
