package tile

import (
	"github.com/oriumgames/isotile/atlas"
	"github.com/oriumgames/isotile/biome"
	"github.com/oriumgames/isotile/chunk"
	"github.com/oriumgames/isotile/pos"
)

// chunkSource is the narrow collaborator the biome averager and column
// renderer pull chunks through; *worldcache.WorldCache satisfies this
// without either package importing the other.
type chunkSource interface {
	Chunk(p pos.ChunkPos) (*chunk.Chunk, error)
}

// averageBiomeWindow samples a 5x5 horizontal window of biome tints
// around top (§4.7) and returns their componentwise average. A chunk
// missing from the cache reduces the divisor rather than contributing a
// zero sample.
func averageBiomeWindow(top pos.BlockPos, bi *atlas.BlockImage, current *chunk.Chunk, cache chunkSource) biome.Color {
	const radius = 2
	f := float64((2*radius + 1) * (2*radius + 1))
	var r, g, b float64

	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			other := pos.BlockPos{X: top.X + dx, Y: top.Y, Z: top.Z + dz}
			c := current
			if other.Chunk() != current.Pos {
				fetched, err := cache.Chunk(other.Chunk())
				if err != nil || fetched == nil {
					f -= 1
					continue
				}
				c = fetched
			}
			biomeID := c.BiomeAt(other.Local())
			bi2 := biome.Lookup(biome.ID(biomeID))
			tint := biome.Tint(bi2, other.Y, bi.BiomeColor, bi.BiomeColormap)
			r += float64(tint.R)
			g += float64(tint.G)
			b += float64(tint.B)
		}
	}

	if f <= 0 {
		return biome.Color{}
	}
	return biome.Color{
		R: uint8(r / f),
		G: uint8(g / f),
		B: uint8(b / f),
		A: 255,
	}
}
