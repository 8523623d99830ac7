package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/isotile/pos"
)

func TestVariantRNGReproducibleForSamePosition(t *testing.T) {
	p := pos.BlockPos{X: 12, Y: 64, Z: -7}
	a := newVariantRNG(p)
	b := newVariantRNG(p)

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.nextLong(), b.nextLong())
	}
}

func TestVariantRNGDiffersAcrossPositions(t *testing.T) {
	a := newVariantRNG(pos.BlockPos{X: 0, Y: 0, Z: 0})
	b := newVariantRNG(pos.BlockPos{X: 1, Y: 0, Z: 0})

	assert.NotEqual(t, a.nextLong(), b.nextLong())
}

func TestPickVariantRespectsWeightBounds(t *testing.T) {
	r := newVariantRNG(pos.BlockPos{X: 5, Y: 70, Z: 5})
	weights := []int{1, 3, 6}
	for i := 0; i < 50; i++ {
		idx := pickVariant(&r, weights)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(weights))
	}
}

func TestPickVariantSingleWeightAlwaysZero(t *testing.T) {
	r := newVariantRNG(pos.BlockPos{X: 3, Y: 3, Z: 3})
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, pickVariant(&r, []int{1}))
	}
}
