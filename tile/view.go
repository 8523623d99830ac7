package tile

import (
	"image"

	"github.com/oriumgames/isotile/pos"
)

// View is the small render-mode descriptor §9's "sealed variant"
// design note replaces the source's virtual-dispatch render-view
// hierarchy with: the iterator and column step vector are pure
// functions of a Rotation plus this struct, so no dispatch happens
// per-pixel.
type View struct {
	// BlockSize is the pixel width/height of one sprite.
	BlockSize int
	// TileWidth is the tile's scale factor, a power of two.
	TileWidth int
	// WaterOpacity is the alpha fraction (0..1) applied to water overlay
	// sprites.
	WaterOpacity float64
	// RenderBiomes disables biome tinting entirely when false, useful
	// for debug renders that want raw sprite colors.
	RenderBiomes bool
	// RenderLighting disables the block/sky-light multiply pass entirely
	// when false, useful for debug renders that want unlit sprite colors.
	RenderLighting bool
	// ShadowEdgeStrength is a per-edge enable toggle (0: never draw this
	// edge, regardless of what the block image requests), multiplied
	// against each block's own shadow_edges strength (1..3) rather than
	// supplying a strength itself; index order is north, south, east,
	// west, bottom.
	ShadowEdgeStrength [5]uint8
}

// CanvasSize returns the pixel side length of a tile rendered under v.
func (v View) CanvasSize() int {
	return v.BlockSize * 16 * v.TileWidth
}

// Image is one composited sprite placed at a tile-local pixel offset,
// produced by the column renderer and consumed by the final painter's-
// order blit. The backing RGBA is a private copy owned by the
// TileImage value, not a borrowed atlas sprite.
type Image struct {
	X, Y   int
	Pos    pos.BlockPos
	Sprite *image.RGBA
}
