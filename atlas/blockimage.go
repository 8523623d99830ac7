package atlas

import (
	"github.com/oriumgames/isotile/biome"
)

// LightingType selects how a block image's faces receive the per-corner
// smooth-light multiply versus a single uniform multiply.
type LightingType int

const (
	LightingNone LightingType = iota
	LightingSimple
	LightingSmooth
	LightingSmoothBottom
	LightingSmoothTopRemainingSimple
)

// Variant is one (color sprite, UV mask sprite, weight) triple a block
// image may randomly choose between at render time.
type Variant struct {
	Color  int
	UV     int
	Weight int
}

// SideMask records which of the left/up/right faces a block image's UV
// mask actually covers, derived once at load time from the mask pixels.
type SideMask struct {
	Left, Up, Right bool
}

// BlockImage is the fully-prepared, render-ready description of one
// block-state's sprite(s), assembled by the index loader and the
// post-load completion pass.
type BlockImage struct {
	Name     string
	Variants []Variant

	IsEmpty       bool
	IsTransparent bool

	IsBiome       bool
	IsMaskedBiome bool
	BiomeColor    biome.Selector
	BiomeColormap *biome.ColorMap
	// BiomeMaskSprite is the borrowed first sprite of the companion
	// "<name>_biome_mask" block image, set only when IsMaskedBiome.
	BiomeMaskSprite int
	HasBiomeMask    bool

	LightingType   LightingType
	FaultyLighting bool

	ShadowEdges int // 0..3

	CanPartial     bool
	IsWaterlogged  bool
	InherentlyWet  bool
	IsWaterloggable bool

	SideMask SideMask

	// shadowEdgesExplicit and lightingTypeExplicit record whether the
	// index line set these fields explicitly, so the post-load
	// completion pass knows whether to apply its defaults.
	shadowEdgesExplicit bool
	lightingTypeExplicit bool
}

// TotalWeight sums the weights of every variant, used by the PRNG-driven
// variant selector.
func (bi *BlockImage) TotalWeight() int {
	total := 0
	for _, v := range bi.Variants {
		total += v.Weight
	}
	return total
}
