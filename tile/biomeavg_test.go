package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/isotile/atlas"
	"github.com/oriumgames/isotile/biome"
	"github.com/oriumgames/isotile/chunk"
	"github.com/oriumgames/isotile/pos"
)

type fakeChunkSource struct {
	chunks map[pos.ChunkPos]*chunk.Chunk
}

func (f *fakeChunkSource) Chunk(p pos.ChunkPos) (*chunk.Chunk, error) {
	return f.chunks[p], nil
}

func chunkWithUniformBiome(p pos.ChunkPos, y int, biomeID uint16) *chunk.Chunk {
	c := &chunk.Chunk{Pos: p}
	idx := (y >> 4) - chunk.ChunkLowest
	sec := &chunk.Section{Y: int8(y >> 4)}
	for i := range sec.Biomes {
		sec.Biomes[i] = biomeID
	}
	c.Sections[idx] = sec
	return c
}

func TestAverageBiomeWindowUsesGrassTintForGrassSelector(t *testing.T) {
	plainsID, ok := biome.LookupByName("minecraft:plains")
	require.True(t, ok)

	current := chunkWithUniformBiome(pos.ChunkPos{X: 0, Z: 0}, 64, uint16(plainsID))
	src := &fakeChunkSource{chunks: map[pos.ChunkPos]*chunk.Chunk{{X: 0, Z: 0}: current}}

	bi := &atlas.BlockImage{BiomeColor: biome.Grass}
	got := averageBiomeWindow(pos.BlockPos{X: 8, Y: 64, Z: 8}, bi, current, src)

	want := biome.Lookup(plainsID).GrassTint
	assert.Equal(t, want.R, got.R)
	assert.Equal(t, want.G, got.G)
	assert.Equal(t, want.B, got.B)
	assert.Equal(t, uint8(255), got.A)
}

func TestAverageBiomeWindowReducesDivisorForMissingChunks(t *testing.T) {
	plainsID, _ := biome.LookupByName("minecraft:plains")
	current := chunkWithUniformBiome(pos.ChunkPos{X: 0, Z: 0}, 64, uint16(plainsID))
	// No neighbouring chunks registered: every sample outside the
	// current chunk is a cache miss.
	src := &fakeChunkSource{chunks: map[pos.ChunkPos]*chunk.Chunk{{X: 0, Z: 0}: current}}

	bi := &atlas.BlockImage{BiomeColor: biome.Grass}
	// Near chunk edge (x=0) so the 5x5 window spans into neighbouring,
	// unregistered chunks.
	got := averageBiomeWindow(pos.BlockPos{X: 0, Y: 64, Z: 0}, bi, current, src)

	want := biome.Lookup(plainsID).GrassTint
	assert.Equal(t, want.R, got.R)
}
