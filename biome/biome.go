// Package biome holds the static Minecraft biome table and the tint
// calculation the tile renderer uses to color biome-dependent block
// sprites (grass, foliage, water).
package biome

import "math"

// Color is a packed RGBA color, channel order matching the image/color.RGBA
// layout the atlas and compositing code already use.
type Color struct {
	R, G, B, A uint8
}

// Default tint constants used when a biome leaves a tint unspecified and
// no per-block colormap override applies.
var (
	DefaultGrass   = Color{0x7F, 0xB2, 0x38, 0xFF}
	DefaultFoliage = Color{0x00, 0x7C, 0x00, 0xFF}
	DefaultWater   = Color{0x3F, 0x76, 0xE4, 0xFF}
)

// ID is a biome's dense numeric identifier, the same value stored in a
// chunk section's biome array.
type ID uint16

// UnknownID is returned for unrecognized biome names; it indexes the first
// (all-default) table entry.
const UnknownID ID = 0

// Biome describes one Minecraft biome's tinting parameters. temperature and
// rainfall position it on the grass/foliage colormap; swamp_mod and
// forest_mod flag the two biomes that get extra noise-based variation in
// the original renderer (not modeled here — see DESIGN.md).
type Biome struct {
	Name        string
	Temperature float64
	Rainfall    float64
	GrassTint   Color
	FoliageTint Color
	WaterTint   Color
	SwampMod    bool
	ForestMod   bool
}

func b(name string, temp, rain float64) Biome {
	return Biome{Name: name, Temperature: temp, Rainfall: rain, GrassTint: DefaultGrass, FoliageTint: DefaultFoliage, WaterTint: DefaultWater}
}

func bt(name string, temp, rain float64, grass, foliage, water Color) Biome {
	return Biome{Name: name, Temperature: temp, Rainfall: rain, GrassTint: grass, FoliageTint: foliage, WaterTint: water}
}

// Table is the compile-time biome list, indexed by ID. Entry 0 is the
// "unknown" sentinel with all default values. Do not index this slice
// directly from outside the package; use Lookup/LookupByName.
var Table = []Biome{
	{Name: "mapcrafter:unknown", Temperature: 0.5, Rainfall: 0.5, GrassTint: DefaultGrass, FoliageTint: DefaultFoliage, WaterTint: DefaultWater},

	b("minecraft:the_void", 0.5, 0.5),

	b("minecraft:plains", 0.8, 0.4),
	b("minecraft:sunflower_plains", 0.8, 0.4),
	b("minecraft:snowy_plains", 0.0, 0.5),
	b("minecraft:ice_spikes", 0.0, 0.5),
	b("minecraft:desert", 2.0, 0.0),
	func() Biome {
		bi := bt("minecraft:swamp", 0.8, 0.9, Color{0x6a, 0x70, 0x39, 0xff}, Color{0x6a, 0x70, 0x39, 0xff}, Color{0x61, 0x7B, 0x64, 0xff})
		bi.SwampMod = true
		return bi
	}(),
	b("minecraft:forest", 0.6, 0.6),
	b("minecraft:flower_forest", 0.6, 0.6),
	b("minecraft:birch_forest", 0.7, 0.8),
	func() Biome {
		bi := bt("minecraft:dark_forest", 0.7, 0.8, DefaultGrass, DefaultFoliage, DefaultWater)
		bi.ForestMod = true
		return bi
	}(),
	b("minecraft:old_growth_birch_forest", 0.7, 0.8),
	b("minecraft:old_growth_pine_taiga", 0.3, 0.8),
	b("minecraft:old_growth_spruce_taiga", 0.25, 0.8),
	b("minecraft:taiga", 0.25, 0.8),
	bt("minecraft:snowy_taiga", -0.5, 0.4, DefaultGrass, DefaultFoliage, Color{0x3D, 0x57, 0xD6, 0xff}),
	b("minecraft:savanna", 2.0, 0.0),
	b("minecraft:savanna_plateau", 2.0, 0.0),
	b("minecraft:windswept_hills", 0.2, 0.3),
	b("minecraft:windswept_gravelly_hills", 0.2, 0.3),
	b("minecraft:windswept_forest", 0.2, 0.3),
	b("minecraft:windswept_savanna", 2.0, 0.0),
	b("minecraft:jungle", 0.95, 0.9),
	b("minecraft:sparse_jungle", 0.95, 0.8),
	b("minecraft:bamboo_jungle", 0.95, 0.9),
	bt("minecraft:badlands", 2.0, 0, Color{0x90, 0x81, 0x4D, 0xff}, Color{0x9E, 0x81, 0x4D, 0xff}, DefaultWater),
	bt("minecraft:eroded_badlands", 2.0, 0, Color{0x90, 0x81, 0x4D, 0xff}, Color{0x9E, 0x81, 0x4D, 0xff}, DefaultWater),
	bt("minecraft:wooded_badlands", 2.0, 0, Color{0x90, 0x81, 0x4D, 0xff}, Color{0x9E, 0x81, 0x4D, 0xff}, DefaultWater),
	bt("minecraft:meadow", 0.5, 0.8, DefaultGrass, DefaultFoliage, Color{0x0E, 0x4E, 0xCF, 0xff}),
	b("minecraft:grove", -0.2, 0.8),
	b("minecraft:snowy_slopes", -0.3, 0.9),
	b("minecraft:frozen_peaks", -0.7, 0.9),
	b("minecraft:jagged_peaks", -0.7, 0.9),
	b("minecraft:stony_peaks", 1.0, 0.3),
	b("minecraft:river", 0.5, 0.5),
	bt("minecraft:frozen_river", 0.0, 0.5, DefaultGrass, DefaultFoliage, Color{0x39, 0x38, 0xC9, 0xff}),
	b("minecraft:beach", 0.8, 0.4),
	bt("minecraft:snowy_beach", 0.05, 0.3, DefaultGrass, DefaultFoliage, Color{0x3D, 0x57, 0xD6, 0xff}),
	b("minecraft:stony_shore", 0.2, 0.3),
	bt("minecraft:warm_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x43, 0xD5, 0xEE, 0xff}),
	bt("minecraft:lukewarm_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x45, 0xAD, 0xF2, 0xff}),
	bt("minecraft:deep_lukewarm_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x45, 0xAD, 0xF2, 0xff}),
	b("minecraft:ocean", 0.5, 0.5),
	b("minecraft:deep_ocean", 0.5, 0.5),
	bt("minecraft:cold_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x3D, 0x57, 0xD6, 0xff}),
	bt("minecraft:deep_cold_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x3D, 0x57, 0xD6, 0xff}),
	bt("minecraft:frozen_ocean", 0.0, 0.5, DefaultGrass, DefaultFoliage, Color{0x39, 0x38, 0xC9, 0xff}),
	bt("minecraft:deep_frozen_ocean", 0.5, 0.5, DefaultGrass, DefaultFoliage, Color{0x39, 0x38, 0xC9, 0xff}),
	b("minecraft:mushroom_fields", 0.9, 1.0),
	b("minecraft:dripstone_caves", 0.8, 0.4),
	b("minecraft:lush_caves", 0.5, 0.5),

	b("minecraft:nether_wastes", 2.0, 0.0),
	b("minecraft:warped_forest", 2.0, 0.0),
	b("minecraft:crimson_forest", 2.0, 0.0),
	b("minecraft:soul_sand_valley", 2.0, 0.0),
	b("minecraft:basalt_deltas", 2.0, 0.0),

	b("minecraft:the_end", 0.5, 0.5),
	b("minecraft:end_highlands", 0.5, 0.5),
	b("minecraft:end_midlands", 0.5, 0.5),
	b("minecraft:small_end_islands", 0.5, 0.5),
	b("minecraft:end_barrens", 0.5, 0.5),
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(Table))
	for i, bi := range Table {
		m[bi.Name] = ID(i)
	}
	return m
}()

// Lookup returns the Biome for id, or the unknown sentinel if out of range.
func Lookup(id ID) Biome {
	if int(id) >= len(Table) {
		return Table[UnknownID]
	}
	return Table[id]
}

// LookupByName resolves a biome name to its ID. Unrecognized names return
// UnknownID and false; this function does not log them, and reporting
// them is left to the caller.
func LookupByName(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Selector picks which of a biome's colors a block-image consults.
type Selector int

const (
	Grass Selector = iota
	Foliage
	FoliageFlipped
	Water
)

// elevationScale converts a block-height delta into the colormap's
// temperature adjustment, matching the platform's established per-block
// elevation falloff above sea level (y=64).
const elevationScale = 0.00166667

// Tint computes the biome tint for a block at world height y under
// selector, consulting cm if non-nil for a per-block colormap override.
// WATER selection returns the biome's water tint directly, bypassing the
// colormap entirely.
func Tint(bi Biome, y int, sel Selector, cm *ColorMap) Color {
	if sel == Water {
		return bi.WaterTint
	}

	elevation := y - 64
	if elevation < 0 {
		elevation = 0
	}
	xAxis := clamp01(bi.Temperature - float64(elevation)*elevationScale)
	yAxis := clamp01(bi.Rainfall) * xAxis

	base := bi.GrassTint
	if sel == Foliage || sel == FoliageFlipped {
		base = bi.FoliageTint
	}
	if sel == FoliageFlipped {
		xAxis, yAxis = yAxis, xAxis
	}

	if cm == nil {
		return base
	}
	sampled := cm.Sample(xAxis, yAxis)
	return average(sampled, base)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func average(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: uint8((int(a.A) + int(b.A)) / 2),
	}
}
