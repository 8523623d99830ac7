package tile

import (
	"github.com/oriumgames/isotile/chunk"
	"github.com/oriumgames/isotile/pos"
)

// Pos is a signed 2D tile coordinate.
type Pos struct {
	X, Y int
}

// pos2Row and pos2Col project a world block position onto the
// screen-space row/column grid a rotation's iterator walks.
func pos2Row(p pos.BlockPos, r pos.Rotation) int {
	switch r {
	case pos.TopLeft:
		return -p.X + p.Z
	case pos.TopRight:
		return p.X + p.Z
	case pos.BottomRight:
		return p.X - p.Z
	default: // BottomLeft
		return -p.X - p.Z
	}
}

func pos2Col(p pos.BlockPos, r pos.Rotation) int {
	switch r {
	case pos.TopLeft:
		return p.X + p.Z
	case pos.TopRight:
		return p.X - p.Z
	case pos.BottomRight:
		return -p.X - p.Z
	default: // BottomLeft
		return -p.X + p.Z
	}
}

// tile2Pos inverts pos2Row/pos2Col into a chunk position; the integer
// division by two holds because two projected columns span one chunk's
// width.
func tile2Pos(row, col int, r pos.Rotation) pos.ChunkPos {
	switch r {
	case pos.TopLeft:
		return pos.ChunkPos{X: (col - row) / 2, Z: (col + row) / 2}
	case pos.TopRight:
		return pos.ChunkPos{X: (col + row) / 2, Z: (row - col) / 2}
	case pos.BottomRight:
		return pos.ChunkPos{X: (row - col) / 2, Z: (-col - row) / 2}
	default: // BottomLeft
		return pos.ChunkPos{X: (-col - row) / 2, Z: (col - row) / 2}
	}
}

// TopBlockIterator yields, in scan order, the draw position and world
// block position of every top-of-column block whose projection may
// contribute to one tile (§4.4). Construct with NewTopBlockIterator and
// drive with End/Advance/DrawX/DrawY/BlockPos.
type TopBlockIterator struct {
	blockSize  int
	rotation   pos.Rotation
	tileDir    pos.BlockPos
	tileRewind pos.BlockPos

	top, current pos.BlockPos
	maxCol, minCol, minRow, maxRow int

	drawX, drawY int
	done         bool
}

// NewTopBlockIterator constructs an iterator over tile's projected
// columns under rotation, at the given block size and tile width.
func NewTopBlockIterator(tile Pos, blockSize, tileWidth int, rotation pos.Rotation) *TopBlockIterator {
	it := &TopBlockIterator{blockSize: blockSize, rotation: rotation}

	it.tileDir = rotation.Rotate(pos.DirSouth)
	it.tileRewind = rotation.Rotate(addPos(pos.DirNorth, pos.DirWest))

	toprightChunk := tile2Pos(4*tileWidth*tile.Y, 2*tileWidth*(tile.X+1), rotation)
	topLocal := pos.LocalBlockPos{X: 8, Z: 8, Y: chunk.ChunkHighest*16 - 1}
	it.top = topLocal.Global(toprightChunk)
	it.current = it.top

	relCol := 2 * (16*tileWidth - 1)
	relRow := -1

	it.maxCol = pos2Col(it.top, rotation) + 2*16 - relCol
	it.minCol = it.maxCol - 2*16*tileWidth
	it.minRow = pos2Row(it.top, rotation) - relRow
	it.maxRow = it.minRow + 4*16*tileWidth + 4

	it.drawX = relCol * blockSize / 2
	it.drawY = relRow*blockSize/4 - blockSize/2

	return it
}

func addPos(a, b pos.BlockPos) pos.BlockPos {
	return pos.BlockPos{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// End reports whether every column inside the tile has already been
// yielded. Drive the iterator as `for !it.End() { use it; it.Advance() }`
// — mirroring a C-style for loop lets Advance's internal bookkeeping
// compute (and discard) one past-the-end position without it ever being
// read, matching the reference iterator's termination behavior exactly.
func (it *TopBlockIterator) End() bool {
	return it.done
}

// Advance moves the iterator to its next column. The position it
// computes is only meaningful if a subsequent End() call returns false.
func (it *TopBlockIterator) Advance() {
	it.current = it.current.Add(it.tileDir)
	absRow := pos2Row(it.current, it.rotation)
	absCol := pos2Col(it.current, it.rotation)

	if absCol >= it.maxCol || absRow >= it.maxRow {
		it.top = it.top.Add(it.tileRewind)
		it.current = it.top

		if pos2Col(it.current, it.rotation) < it.minCol {
			delta := it.minCol - pos2Col(it.current, it.rotation) - 1
			it.current = it.current.Add(it.rotation.Rotate(pos.BlockPos{Z: delta}))
		}

		absRow = pos2Row(it.current, it.rotation)
		absCol = pos2Col(it.current, it.rotation)
	}

	it.drawX = (absCol - it.minCol) * it.blockSize / 2
	it.drawY = (absRow-it.minRow)*it.blockSize/4 - it.blockSize/2

	if absRow >= it.maxRow && absCol <= it.minCol+1 {
		it.done = true
	}
}

// DrawX and DrawY are the tile-local pixel offset of the current column.
func (it *TopBlockIterator) DrawX() int { return it.drawX }
func (it *TopBlockIterator) DrawY() int { return it.drawY }

// BlockPos is the world position of the current column's top block.
func (it *TopBlockIterator) BlockPos() pos.BlockPos { return it.current }
