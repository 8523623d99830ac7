// Package pos holds the small integer position and rotation types shared by
// the chunk decoder, the world cache and the tile renderer: absolute block
// positions, chunk positions, local (section-relative) positions and the
// four-step isometric rotation.
//
// In Minecraft, x/z are the horizontal axes and y is vertical:
// north = -z, south = +z, east = +x, west = -x.
package pos

// BlockPos is an absolute block coordinate in the world.
type BlockPos struct {
	X, Y, Z int
}

// Add returns the component-wise sum of two positions.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns the component-wise difference of two positions.
func (p BlockPos) Sub(o BlockPos) BlockPos {
	return BlockPos{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Chunk returns the position of the chunk containing p.
func (p BlockPos) Chunk() ChunkPos {
	return ChunkPos{X: p.X >> 4, Z: p.Z >> 4}
}

// Local returns p's coordinates relative to the chunk section it falls in.
// X and Z are in [0,16); Y keeps its absolute value so callers can derive
// the section index with Y>>4.
func (p BlockPos) Local() LocalBlockPos {
	return LocalBlockPos{X: p.X & 15, Y: p.Y, Z: p.Z & 15}
}

// ChunkPos addresses a chunk by its XZ grid coordinate. Y is not part of a
// ChunkPos: chunks are not height-delimited, only their sections are.
type ChunkPos struct {
	X, Z int
}

// Region returns the position of the 32x32-chunk region file containing c.
const chunksPerRegion = 32

func (c ChunkPos) Region() RegionPos {
	return RegionPos{X: floorDiv(c.X, chunksPerRegion), Z: floorDiv(c.Z, chunksPerRegion)}
}

// RegionPos addresses a region file by its absolute coordinate, i.e. world
// block coordinates divided by 512 (16 blocks/chunk * 32 chunks/region).
type RegionPos struct {
	X, Z int
}

// LocalBlockPos is a block position local to a chunk: X and Z are in
// [0,16). Y is left as the block's absolute Y so the caller can still
// derive a section index and in-section offset from it.
type LocalBlockPos struct {
	X, Y, Z int
}

// Global reconstructs the absolute BlockPos of a local position inside the
// given chunk.
func (l LocalBlockPos) Global(c ChunkPos) BlockPos {
	return BlockPos{X: c.X*16 + l.X, Y: l.Y, Z: c.Z*16 + l.Z}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Direction vectors, unrotated (TOP_LEFT view).
var (
	DirNorth  = BlockPos{X: 0, Y: 0, Z: -1}
	DirSouth  = BlockPos{X: 0, Y: 0, Z: 1}
	DirEast   = BlockPos{X: 1, Y: 0, Z: 0}
	DirWest   = BlockPos{X: -1, Y: 0, Z: 0}
	DirTop    = BlockPos{X: 0, Y: 1, Z: 0}
	DirBottom = BlockPos{X: 0, Y: -1, Z: 0}
)
