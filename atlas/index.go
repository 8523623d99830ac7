package atlas

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/segmentio/fasthash/fnv1a"

	"github.com/oriumgames/isotile/biome"
	"github.com/oriumgames/isotile/registry"
)

// Catalog is the fully prepared, immutable block-image catalog: the
// atlas pixel data plus one BlockImage per distinct block-state seen in
// the index, keyed by the block-state registry's dense ID.
type Catalog struct {
	Atlas  *Atlas
	images map[registry.ID]*BlockImage
	// byNameHash lets render-mode code and tests resolve a block image by
	// name alone (without a property set) without growing the registry;
	// a distinct hash space from the registry's own canonical-form
	// interning, since this one only ever keys on the bare name.
	byNameHash map[uint64][]registry.ID
}

// Get returns the block image registered for id, if any.
func (c *Catalog) Get(id registry.ID) (*BlockImage, bool) {
	bi, ok := c.images[id]
	return bi, ok
}

// ByName returns every block-state ID whose name matches exactly,
// across all of its property variants.
func (c *Catalog) ByName(name string) []registry.ID {
	return c.byNameHash[fnv1a.HashString64(name)]
}

// LoadCatalog parses indexText and png via Load, then builds the
// block-image table, registering every block-state it mentions (and its
// known property keys) into reg.
func LoadCatalog(indexText string, pngReader io.Reader, reg *registry.Registry) (*Catalog, error) {
	a, lines, err := Load(indexText, pngReader)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Atlas:      a,
		images:     make(map[registry.ID]*BlockImage),
		byNameHash: make(map[uint64][]registry.ID),
	}

	byName := make(map[string]*BlockImage)

	for lineNo, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, props, bi, err := parseIndexLine(line, reg)
		if err != nil {
			return nil, fmt.Errorf("atlas index line %d: %w", lineNo+2, err)
		}

		id := reg.GetOrCreate(registry.NewBlockState(name, props))
		c.images[id] = bi
		byName[fullKey(name, props)] = bi
		h := fnv1a.HashString64(name)
		c.byNameHash[h] = append(c.byNameHash[h], id)

		if bi.IsWaterloggable {
			wetProps := make(map[string]string, len(props)+1)
			for k, v := range props {
				wetProps[k] = v
			}
			wetProps["waterlogged"] = "true"
			wetBI := *bi
			wetBI.IsWaterlogged = true
			wetID := reg.GetOrCreate(registry.NewBlockState(name, wetProps))
			c.images[wetID] = &wetBI
			c.byNameHash[h] = append(c.byNameHash[h], wetID)
		}
	}

	ShadeFaces(c)
	completeCatalog(c, byName)
	return c, nil
}

func fullKey(name string, props map[string]string) string {
	return registry.NewBlockState(name, props).Canonical()
}

// parseIndexLine parses one "<block_name> <variant> <key=value;...>"
// index line into a block name, its variant property map, and a
// partially-built BlockImage (color/uv/weight and the recognized flag
// keys from the table in the index format).
func parseIndexLine(line string, reg *registry.Registry) (string, map[string]string, *BlockImage, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", nil, nil, fmt.Errorf("expected at least 2 fields, got %d", len(fields))
	}
	name := fields[0]
	variant := fields[1]
	var infoField string
	if len(fields) > 2 {
		infoField = strings.Join(fields[2:], " ")
	}

	props := parseVariant(variant)
	for k := range props {
		reg.RegisterKnownProperty(name, k)
	}

	bi := &BlockImage{Name: name}

	for _, kv := range strings.Split(infoField, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, val, _ := strings.Cut(kv, "=")
		switch key {
		case "color":
			bi.Variants = appendIndices(bi.Variants, val, func(v *Variant, idx int) { v.Color = idx })
		case "uv":
			bi.Variants = appendIndices(bi.Variants, val, func(v *Variant, idx int) { v.UV = idx })
		case "weight":
			for i, w := range strings.Split(val, ":") {
				n, err := strconv.Atoi(w)
				if err != nil {
					return "", nil, nil, fmt.Errorf("weight %q: %w", w, err)
				}
				if i < len(bi.Variants) {
					bi.Variants[i].Weight = n
				}
			}
		case "biome_type":
			bi.IsBiome = true
			if val == "masked" {
				bi.IsMaskedBiome = true
			}
		case "biome_colors":
			switch val {
			case "grass":
				bi.BiomeColor = biome.Grass
			case "foliage":
				bi.BiomeColor = biome.Foliage
			case "foliage_flipped":
				bi.BiomeColor = biome.FoliageFlipped
			case "water":
				bi.BiomeColor = biome.Water
			}
		case "biome_colormap":
			cm, err := biome.ParseColorMap(val)
			if err != nil {
				return "", nil, nil, fmt.Errorf("biome_colormap %q: %w", val, err)
			}
			bi.BiomeColormap = &cm
		case "lighting_type":
			switch val {
			case "none":
				bi.LightingType = LightingNone
			case "simple":
				bi.LightingType = LightingSimple
			case "smooth":
				bi.LightingType = LightingSmooth
			case "smooth_bottom":
				bi.LightingType = LightingSmoothBottom
			}
			bi.lightingTypeExplicit = true
		case "faulty_lighting":
			bi.FaultyLighting = true
		case "partial":
			if val == "true" || val == "" {
				bi.CanPartial = true
			}
		case "shadow_edges":
			n, err := strconv.Atoi(val)
			if err != nil {
				return "", nil, nil, fmt.Errorf("shadow_edges %q: %w", val, err)
			}
			bi.ShadowEdges = n
			bi.shadowEdgesExplicit = true
		case "inherently_waterlogged":
			bi.InherentlyWet = true
			bi.IsWaterlogged = true
		case "is_waterloggable":
			bi.IsWaterloggable = true
		}
	}

	for i := range bi.Variants {
		if bi.Variants[i].Weight == 0 {
			bi.Variants[i].Weight = 1
		}
	}
	if len(bi.Variants) == 0 {
		bi.Variants = []Variant{{Weight: 1}}
	}

	return name, props, bi, nil
}

func appendIndices(variants []Variant, val string, set func(*Variant, int)) []Variant {
	for i, s := range strings.Split(val, ":") {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		for len(variants) <= i {
			variants = append(variants, Variant{Weight: 1})
		}
		set(&variants[i], n)
	}
	return variants
}

// parseVariant splits a "key=value,key=value" descriptor into a
// property map; an empty or "default" descriptor yields no properties.
func parseVariant(v string) map[string]string {
	if v == "" || v == "default" {
		return nil
	}
	props := make(map[string]string)
	for _, pair := range strings.Split(v, ",") {
		k, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		props[k] = val
	}
	return props
}
