package tile

import (
	"image"
	"image/draw"

	"github.com/oriumgames/isotile/pos"
)

// columnDir is rotate(DIR_NORTH + DIR_EAST + DIR_BOTTOM): the direction
// the column walk steps along beneath each top-of-column block.
func columnDir(r pos.Rotation) pos.BlockPos {
	return r.Rotate(pos.BlockPos{X: 1, Y: -1, Z: -1})
}

// RenderTile renders one full tile (§4.4 iterator + §4.5 column render +
// §4.8 sort and blit) for tilePos under rotation, returning the
// composited canvas. Not safe for concurrent use on the same Renderer;
// each worker should own one (§5).
func (r *Renderer) RenderTile(tilePos Pos, rotation pos.Rotation) *image.RGBA {
	size := r.view.CanvasSize()
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))

	it := NewTopBlockIterator(tilePos, r.view.BlockSize, r.view.TileWidth, rotation)
	dir := columnDir(rotation)

	var images []Image
	for !it.End() {
		images = r.RenderColumn(it.DrawX(), it.DrawY(), it.BlockPos(), dir, rotation, images)
		it.Advance()
	}

	sortImages(images, rotation)
	for _, img := range images {
		blitOver(canvas, img.Sprite, img.X, img.Y)
	}
	return canvas
}

// blitOver alpha-composites sprite onto canvas with its top-left corner
// at (x, y), clipped to the canvas bounds.
func blitOver(canvas, sprite *image.RGBA, x, y int) {
	dst := sprite.Bounds().Add(image.Pt(x, y))
	draw.Draw(canvas, dst, sprite, sprite.Bounds().Min, draw.Over)
}
