// Package chunk decodes compressed Anvil-format NBT chunk blobs into a
// dense in-memory representation, and answers the per-voxel lookups the
// tile renderer needs: block ID, light level, and biome ID.
package chunk

import (
	"github.com/oriumgames/isotile/pos"
	"github.com/oriumgames/isotile/registry"
)

// Section Y bounds (post-Caves-and-Cliffs world height): sections run from
// chunkLowest (inclusive) to chunkHighest (exclusive), 24 of them.
const (
	ChunkLowest  = -4
	ChunkHighest = 20
	sectionCount = ChunkHighest - ChunkLowest
)

// Section holds one 16x16x16 slice of a Chunk: palette-resolved block IDs,
// biome IDs at 4x4x4 resolution, and the two light nibble arrays.
type Section struct {
	Y         int8
	BlockIDs  [4096]registry.ID // index: (y&15)*256 + z*16 + x
	Biomes    [64]biomeSlot     // index: (y<<4)|(z<<2)|x, quantized to 4-cells
	BlockLight [2048]byte        // nibble-packed
	SkyLight  [2048]byte        // nibble-packed
}

// biomeSlot avoids importing the biome package from chunk: chunk only
// stores the numeric ID, the renderer resolves it against the biome
// table.
type biomeSlot = uint16

// Chunk is the decoded contents of one 16x(16*24)x16 column. Sections
// absent from the source data (or skipped due to a per-section decode
// failure) are nil; lookups against an absent section fall back to the
// no-op block ID and full sky light, matching what a real absent chunk
// looks like to a renderer walking through it.
type Chunk struct {
	Pos      pos.ChunkPos
	Sections [sectionCount]*Section
	// Status is the raw NBT Status string this chunk decoded with. A
	// Status outside the renderable set (see IsRenderableStatus) yields a
	// Chunk with every Sections entry nil.
	Status string
}

// RenderableStatuses are the chunk generation statuses the decoder treats
// as "finished enough to render". Any other status decodes successfully
// but produces a Chunk with no populated sections.
var RenderableStatuses = map[string]bool{
	"fullchunk":     true,
	"full":          true,
	"postprocessed": true,
	"mobs_spawned":  true,
}

// WorldCrop restricts which blocks are visible to an axis-aligned
// rectangle in XZ plus a Y band, independent of chunk boundaries. The
// zero value means "no crop": every block passes.
type WorldCrop struct {
	MinX, MaxX int
	MinZ, MaxZ int
	MinY, MaxY int8
	Enabled    bool
}

// Contains reports whether p falls inside the crop. A disabled
// (zero-value) crop contains everything.
func (w WorldCrop) Contains(p pos.BlockPos) bool {
	if !w.Enabled {
		return true
	}
	return p.X >= w.MinX && p.X < w.MaxX &&
		p.Z >= w.MinZ && p.Z < w.MaxZ &&
		int8(p.Y) >= w.MinY && int8(p.Y) < w.MaxY
}

// BlockHider is the narrow render-mode hook §4.5 calls "the render mode
// reports the block hidden". A nil BlockHider hides nothing.
type BlockHider interface {
	Hidden(p pos.BlockPos, id registry.ID) bool
}

// sectionIndex maps a block's Y to its section slot, or -1 if out of the
// chunk's height range.
func sectionIndex(y int) int {
	idx := (y >> 4) - ChunkLowest
	if idx < 0 || idx >= sectionCount {
		return -1
	}
	return idx
}

// BlockIDAt resolves the global block-state ID at local (chunk-relative)
// coordinates. force bypasses crop/hider checks (used by neighbor lookups
// that must see true geometry regardless of render-mode masking). A nil
// crop/hider behaves as "no restriction".
func (c *Chunk) BlockIDAt(local pos.LocalBlockPos, force bool, noop registry.ID, crop WorldCrop, hider BlockHider) registry.ID {
	if !force {
		if !crop.Contains(local.Global(c.Pos)) {
			return noop
		}
	}
	idx := sectionIndex(local.Y)
	if idx < 0 || c.Sections[idx] == nil {
		return noop
	}
	sec := c.Sections[idx]
	id := sec.BlockIDs[(local.Y&15)*256+local.Z*16+local.X]
	if !force && hider != nil && hider.Hidden(local.Global(c.Pos), id) {
		return noop
	}
	return id
}

// BlockLightAt returns the block-light level (0-15) at local coordinates;
// 0 outside the chunk's populated range.
func (c *Chunk) BlockLightAt(local pos.LocalBlockPos) uint8 {
	idx := sectionIndex(local.Y)
	if idx < 0 || c.Sections[idx] == nil {
		return 0
	}
	return nibbleAt(c.Sections[idx].BlockLight[:], local)
}

// SkyLightAt returns the sky-light level (0-15) at local coordinates; 15
// outside the chunk's populated range (an absent section is as bright as
// open sky).
func (c *Chunk) SkyLightAt(local pos.LocalBlockPos) uint8 {
	idx := sectionIndex(local.Y)
	if idx < 0 || c.Sections[idx] == nil {
		return 15
	}
	return nibbleAt(c.Sections[idx].SkyLight[:], local)
}

func nibbleAt(arr []byte, local pos.LocalBlockPos) uint8 {
	offset := (local.Y&15)*256 + local.Z*16 + local.X
	b := arr[offset/2]
	if offset%2 == 0 {
		return b & 0x0F
	}
	return (b >> 4) & 0x0F
}

// BiomeAt returns the biome ID at local coordinates, quantized to the
// chunk's 4x4x4 biome grid. Absent sections return biome.UnknownID (0).
func (c *Chunk) BiomeAt(local pos.LocalBlockPos) uint16 {
	idx := sectionIndex(local.Y)
	if idx < 0 || c.Sections[idx] == nil {
		return 0
	}
	x, z, y := local.X>>2, local.Z>>2, (local.Y&15)>>2
	return c.Sections[idx].Biomes[(y<<4)|(z<<2)|x]
}
