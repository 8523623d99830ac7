package chunk

import (
	"bytes"
	"testing"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/isotile/registry"
)

func encodeNBT(t *testing.T, data map[string]any) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, nbt.NewEncoderWithEncoding(buf, nbt.BigEndian).Encode(data))
	return buf.Bytes()
}

func airPaletteSection(y int8) map[string]any {
	return map[string]any{
		"Y": y,
		"block_states": map[string]any{
			"palette": []any{
				map[string]any{"Name": "minecraft:air"},
			},
		},
		"biomes": map[string]any{
			"palette": []any{"minecraft:plains"},
		},
	}
}

func TestDecodeRejectsUnsupportedDataVersion(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(2230),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
	})

	reg := registry.New()
	_, err := Decode(raw, CompressionRaw, reg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedChunk)
}

func TestDecodeMissingDataVersionIsCorrupt(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"xPos": int32(0),
		"zPos": int32(0),
	})

	reg := registry.New()
	_, err := Decode(raw, CompressionRaw, reg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptChunk)
}

func TestDecodeNonRenderableStatusYieldsEmptySections(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(1),
		"yPos":        int32(-4),
		"zPos":        int32(-2),
		"Status":      "noise",
		"sections":    []any{airPaletteSection(0)},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Pos.X)
	assert.Equal(t, -2, c.Pos.Z)
	for _, sec := range c.Sections {
		assert.Nil(t, sec)
	}
}

func TestDecodeMissingStatusYieldsEmptySections(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"sections":    []any{airPaletteSection(0)},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)
	for _, sec := range c.Sections {
		assert.Nil(t, sec)
	}
}

func TestDecodeSinglePaletteEntryFillsSectionUniformly(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections": []any{
			map[string]any{
				"Y": int8(0),
				"block_states": map[string]any{
					"palette": []any{
						map[string]any{"Name": "minecraft:stone"},
					},
				},
				"biomes": map[string]any{
					"palette": []any{"minecraft:plains"},
				},
			},
		},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)

	stoneID, ok := reg.Find(registry.NewBlockState("minecraft:stone", nil))
	require.True(t, ok)

	idx := sectionIndex(0)
	require.NotNil(t, c.Sections[idx])
	for _, id := range c.Sections[idx].BlockIDs {
		assert.Equal(t, stoneID, id)
	}
}

func TestDecodeMultiEntryPaletteUnpacksIndices(t *testing.T) {
	names := []string{"minecraft:air", "minecraft:stone", "minecraft:dirt", "minecraft:granite"}
	palette := make([]any, len(names))
	for i, n := range names {
		palette[i] = map[string]any{"Name": n}
	}

	values := make([]uint16, 4096)
	for i := range values {
		values[i] = uint16(i % len(names))
	}
	data := packLongs(values, 2)

	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections": []any{
			map[string]any{
				"Y": int8(0),
				"block_states": map[string]any{
					"palette": palette,
					"data":    data,
				},
				"biomes": map[string]any{
					"palette": []any{"minecraft:plains"},
				},
			},
		},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)

	idx := sectionIndex(0)
	require.NotNil(t, c.Sections[idx])

	ids := make([]registry.ID, len(names))
	for i, n := range names {
		id, ok := reg.Find(registry.NewBlockState(n, nil))
		require.True(t, ok)
		ids[i] = id
	}
	for i, v := range values {
		assert.Equal(t, ids[v], c.Sections[idx].BlockIDs[i], "index %d", i)
	}
}

func TestDecodeMissingSkyLightDefaultsToFullBrightness(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections":    []any{airPaletteSection(0)},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)

	idx := sectionIndex(0)
	require.NotNil(t, c.Sections[idx])
	for _, b := range c.Sections[idx].SkyLight {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestDecodeUnknownBiomeNameFallsBackToUnknownID(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections": []any{
			map[string]any{
				"Y": int8(0),
				"block_states": map[string]any{
					"palette": []any{map[string]any{"Name": "minecraft:air"}},
				},
				"biomes": map[string]any{
					"palette": []any{"minecraft:totally_made_up"},
				},
			},
		},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)

	idx := sectionIndex(0)
	require.NotNil(t, c.Sections[idx])
	for _, b := range c.Sections[idx].Biomes {
		assert.Equal(t, uint16(0), b)
	}
}

func TestDecodeMultiEntryBiomePaletteMissingDataSkipsSection(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections": []any{
			map[string]any{
				"Y": int8(0),
				"block_states": map[string]any{
					"palette": []any{map[string]any{"Name": "minecraft:air"}},
				},
				"biomes": map[string]any{
					"palette": []any{"minecraft:plains", "minecraft:forest"},
					// no "data": ambiguous which of the two biomes each cell
					// is, so the whole section must be dropped.
				},
			},
		},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)

	idx := sectionIndex(0)
	assert.Nil(t, c.Sections[idx])
}

func TestDecodeSectionOutOfRangeIsSkippedNotFatal(t *testing.T) {
	raw := encodeNBT(t, map[string]any{
		"DataVersion": int32(3465),
		"xPos":        int32(0),
		"yPos":        int32(-4),
		"zPos":        int32(0),
		"Status":      "full",
		"sections":    []any{airPaletteSection(99)},
	})

	reg := registry.New()
	c, err := Decode(raw, CompressionRaw, reg, nil)
	require.NoError(t, err)
	for _, sec := range c.Sections {
		assert.Nil(t, sec)
	}
}
