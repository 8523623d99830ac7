package chunk

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/sirupsen/logrus"

	"github.com/oriumgames/isotile/biome"
	"github.com/oriumgames/isotile/pos"
	"github.com/oriumgames/isotile/registry"
)

// Compression is the scheme a region-file slot's chunk payload was stored
// with.
type Compression int

const (
	CompressionZlib Compression = iota
	CompressionGzip
	CompressionRaw
)

// MinDataVersion is the lowest DataVersion this decoder accepts: the first
// data version after the Caves & Cliffs world-height rework, which is also
// where the post-1.16 packed-long layout this decoder implements became
// the only layout in use.
const MinDataVersion = 2860

// Decode parses the raw payload of one region-file slot into a Chunk.
// compression selects how raw is decompressed before NBT parsing; reg is
// the shared block-state registry blocks are interned into. log receives
// warnings for recoverable per-section problems; a nil log discards them.
func Decode(raw []byte, compression Compression, reg *registry.Registry, log *logrus.Entry) (*Chunk, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	nbtBytes, err := decompress(raw, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk payload: %w", err)
	}

	var root map[string]any
	if err := nbt.NewDecoderWithEncoding(bytes.NewReader(nbtBytes), nbt.BigEndian).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode chunk NBT: %w", err)
	}

	dataVersion, ok := asInt32(root["DataVersion"])
	if !ok {
		return nil, fmt.Errorf("missing DataVersion tag: %w", ErrCorruptChunk)
	}
	if dataVersion < MinDataVersion {
		return nil, fmt.Errorf("DataVersion %d < %d: %w", dataVersion, MinDataVersion, ErrUnsupportedChunk)
	}

	xPos, ok := asInt32(root["xPos"])
	if !ok {
		return nil, fmt.Errorf("missing xPos tag: %w", ErrCorruptChunk)
	}
	zPos, ok := asInt32(root["zPos"])
	if !ok {
		return nil, fmt.Errorf("missing zPos tag: %w", ErrCorruptChunk)
	}
	if _, ok := asInt32(root["yPos"]); !ok {
		return nil, fmt.Errorf("missing yPos tag: %w", ErrCorruptChunk)
	}

	status, _ := root["Status"].(string)

	c := &Chunk{Pos: pos.ChunkPos{X: int(xPos), Z: int(zPos)}, Status: status}
	if !RenderableStatuses[status] {
		// Not a decode failure: an unfinished/empty chunk decodes fine,
		// it just has nothing to render.
		return c, nil
	}

	sections, _ := root["sections"].([]any)
	for _, raw := range sections {
		compound, ok := raw.(map[string]any)
		if !ok {
			log.Warn("chunk section entry is not a compound, skipping")
			continue
		}
		if err := decodeSection(c, compound, reg, log); err != nil {
			log.WithError(err).Warn("skipping chunk section")
		}
	}

	return c, nil
}

func decompress(raw []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionRaw:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown compression scheme %d", compression)
	}
}

// decodeSection populates one section of c from its NBT compound,
// allocating registry IDs for every palette entry it sees.
func decodeSection(c *Chunk, compound map[string]any, reg *registry.Registry, log *logrus.Entry) error {
	y, ok := asInt8(compound["Y"])
	if !ok {
		return fmt.Errorf("section missing Y: %w", ErrCorruptChunk)
	}
	if y < ChunkLowest || int(y) >= ChunkLowest+sectionCount {
		return fmt.Errorf("section Y %d out of range [%d,%d): %w", y, ChunkLowest, ChunkLowest+sectionCount, ErrCorruptChunk)
	}

	sec := &Section{Y: y}

	blockStates, _ := compound["block_states"].(map[string]any)
	if blockStates == nil {
		return fmt.Errorf("section %d missing block_states: %w", y, ErrCorruptChunk)
	}
	if err := decodeBlockStates(sec, blockStates, reg); err != nil {
		return fmt.Errorf("section %d block_states: %w", y, err)
	}

	biomes, _ := compound["biomes"].(map[string]any)
	if biomes == nil {
		return fmt.Errorf("section %d missing biomes: %w", y, ErrCorruptChunk)
	}
	if err := decodeBiomes(sec, biomes); err != nil {
		return fmt.Errorf("section %d biomes: %w", y, err)
	}

	if bl, ok := asByteSlice(compound["BlockLight"]); ok && len(bl) == 2048 {
		copy(sec.BlockLight[:], bl)
	}
	if sl, ok := asByteSlice(compound["SkyLight"]); ok && len(sl) == 2048 {
		copy(sec.SkyLight[:], sl)
	} else {
		for i := range sec.SkyLight {
			sec.SkyLight[i] = 0xFF
		}
	}

	c.Sections[int(y)-ChunkLowest] = sec
	return nil
}

// decodeBlockStates resolves the section's block palette into registry
// IDs and unpacks the 4096 per-voxel indices.
func decodeBlockStates(sec *Section, compound map[string]any, reg *registry.Registry) error {
	paletteRaw, _ := compound["palette"].([]any)
	if len(paletteRaw) == 0 {
		return fmt.Errorf("empty palette: %w", ErrCorruptChunk)
	}

	ids := make([]registry.ID, len(paletteRaw))
	for i, entryRaw := range paletteRaw {
		entry, ok := entryRaw.(map[string]any)
		if !ok {
			return fmt.Errorf("palette entry %d is not a compound: %w", i, ErrCorruptChunk)
		}
		name, ok := entry["Name"].(string)
		if !ok {
			return fmt.Errorf("palette entry %d missing Name: %w", i, ErrCorruptChunk)
		}

		var props map[string]string
		if rawProps, ok := entry["Properties"].(map[string]any); ok {
			props = make(map[string]string, len(rawProps))
			for k, v := range rawProps {
				if !reg.IsKnownProperty(name, k) {
					continue
				}
				if s, ok := v.(string); ok {
					props[k] = s
				}
			}
		}
		ids[i] = reg.GetOrCreate(registry.NewBlockState(name, props))
	}

	if len(ids) == 1 {
		for i := range sec.BlockIDs {
			sec.BlockIDs[i] = ids[0]
		}
		return nil
	}

	data, ok := asInt64Slice(compound["data"])
	if !ok {
		return fmt.Errorf("palette size %d but missing data: %w", len(ids), ErrCorruptChunk)
	}
	indices := unpackLongs(data, 4096)
	for i, idx := range indices {
		if int(idx) >= len(ids) {
			return fmt.Errorf("palette index %d exceeds palette length %d: %w", idx, len(ids), ErrCorruptChunk)
		}
		sec.BlockIDs[i] = ids[idx]
	}
	return nil
}

// decodeBiomes resolves the section's biome palette and unpacks the
// 64 per-cell indices, or fills uniformly for a single-entry palette.
// Out-of-range palette indices degrade to the default biome, but a
// palette with more than one entry and no data tag fails the whole
// section per §4.1: there's no way to recover which cell is which biome.
func decodeBiomes(sec *Section, compound map[string]any) error {
	paletteRaw, _ := compound["palette"].([]any)
	names := make([]string, 0, len(paletteRaw))
	for _, entryRaw := range paletteRaw {
		if s, ok := entryRaw.(string); ok {
			names = append(names, s)
		}
	}
	ids := make([]uint16, len(names))
	for i, name := range names {
		if id, ok := biome.LookupByName(name); ok {
			ids[i] = uint16(id)
		}
	}

	if len(ids) == 1 {
		for i := range sec.Biomes {
			sec.Biomes[i] = ids[0]
		}
		return nil
	}
	if len(ids) == 0 {
		return nil // leave zero-valued (default biome)
	}

	data, ok := asInt64Slice(compound["data"])
	if !ok {
		return fmt.Errorf("biome palette size %d but missing data: %w", len(ids), ErrCorruptChunk)
	}
	indices := unpackLongs(data, 64)
	for i, idx := range indices {
		if int(idx) >= len(ids) {
			continue // out-of-range falls back to default biome (0)
		}
		sec.Biomes[i] = ids[idx]
	}
	return nil
}

// asInt32, asInt8, asByteSlice, asInt64Slice coerce the handful of
// concrete Go types gophertunnel's NBT decoder may produce for a given
// NBT tag type into the shape this package wants, regardless of whether
// the decoder chose a signed or unsigned representation.
func asInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	}
	return 0, false
}

func asInt8(v any) (int8, bool) {
	switch n := v.(type) {
	case int8:
		return n, true
	case byte:
		return int8(n), true
	}
	return 0, false
}

func asByteSlice(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case []int8:
		out := make([]byte, len(b))
		for i, x := range b {
			out[i] = byte(x)
		}
		return out, true
	}
	return nil, false
}

func asInt64Slice(v any) ([]int64, bool) {
	s, ok := v.([]int64)
	return s, ok
}
