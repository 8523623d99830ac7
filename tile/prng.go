// Package tile implements the isometric tile renderer: the top-block
// iterator, the per-column compositing pass, biome averaging, and the
// painter's-order assembly that turns a world cache plus a block image
// catalog into finished tile images.
package tile

import "github.com/oriumgames/isotile/pos"

const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (int64(1) << 48) - 1
)

// variantRNG is the deterministic per-voxel linear congruential
// generator §4.6 derives from a world position, reproducing the
// platform's variant-selection formula so repeated renders of the same
// world pick the same sprite variant.
type variantRNG struct {
	state int64
}

// newVariantRNG seeds a generator from a world block position.
func newVariantRNG(p pos.BlockPos) variantRNG {
	seed := int64(p.X*3129871) ^ int64(p.Z*116129781) ^ int64(p.Y)
	seed = seed*seed*42317861 + seed*11
	seed >>= 16
	return variantRNG{state: (seed ^ lcgMultiplier) & lcgMask}
}

// nextBits advances the generator and returns the top b bits of the new
// state, matching java.util.Random's algorithm.
func (r *variantRNG) nextBits(b uint) int32 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) & lcgMask
	return int32(r.state >> (48 - b))
}

// nextLong concatenates two 32-bit draws into a 64-bit value.
func (r *variantRNG) nextLong() int64 {
	hi := int64(r.nextBits(32))
	lo := int64(r.nextBits(32))
	return (hi << 32) + lo
}

// pickVariant chooses an index into weights by cumulative weight,
// matching abs(next_long()) % sum(weights) mapped through the
// prefix-sum of weights. Callers must ensure sum(weights) > 0.
func pickVariant(r *variantRNG, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	n := r.nextLong()
	if n < 0 {
		n = -n
	}
	target := int(n % int64(total))
	cum := 0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
