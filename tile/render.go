package tile

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/sirupsen/logrus"

	"github.com/oriumgames/isotile/atlas"
	"github.com/oriumgames/isotile/biome"
	"github.com/oriumgames/isotile/chunk"
	"github.com/oriumgames/isotile/pos"
	"github.com/oriumgames/isotile/registry"
)

// waterMaskLevelFull and waterMaskLevelShore are the property values the
// catalog's water overlay entries are expected under: a full-coverage
// water surface and a slightly lower "shore" surface, selected by
// render_blocks step 8 depending on what's above the waterlogged block.
// Grounded on the reference renderer's two water_mask variants (there
// named level=0 / level=2); see DESIGN.md.
const (
	waterMaskName       = "minecraft:water_mask"
	waterMaskLevelFull  = "0"
	waterMaskLevelShore = "2"
)

// Renderer walks one tile's projected columns and composites the
// sprites for each voxel, per §4.5. A Renderer is not safe for
// concurrent use: §5 dedicates one instance (with its own scratch
// buffers and chunk cursor) to each worker.
type Renderer struct {
	reg     *registry.Registry
	catalog *atlas.Catalog
	cache   chunkSource
	view    View
	log     *logrus.Entry

	waterFull, waterShore   *atlas.BlockImage
	haveWaterMasks          bool
	warnedMissingWaterMasks bool
	warnedUnknownBlock      map[registry.ID]bool

	current *chunk.Chunk
}

// NewRenderer constructs a Renderer drawing from cache and catalog. log
// defaults to the standard logger if nil.
func NewRenderer(reg *registry.Registry, catalog *atlas.Catalog, cache chunkSource, view View, log *logrus.Entry) *Renderer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	r := &Renderer{
		reg:                reg,
		catalog:            catalog,
		cache:              cache,
		view:               view,
		log:                log,
		warnedUnknownBlock: make(map[registry.ID]bool),
	}

	fullID, fullOK := reg.Find(registry.NewBlockState(waterMaskName, map[string]string{"level": waterMaskLevelFull}))
	shoreID, shoreOK := reg.Find(registry.NewBlockState(waterMaskName, map[string]string{"level": waterMaskLevelShore}))
	if fullOK && shoreOK {
		if full, ok := catalog.Get(fullID); ok {
			if shore, ok := catalog.Get(shoreID); ok {
				r.waterFull, r.waterShore = full, shore
				r.haveWaterMasks = true
			}
		}
	}
	return r
}

// RenderColumn walks one projected column (§4.5 steps 1-10), starting
// at top and stepping by dir until leaving the chunk's height range,
// appending one Image per emitted voxel to out.
func (r *Renderer) RenderColumn(drawX, drawY int, top pos.BlockPos, dir pos.BlockPos, rotation pos.Rotation, out []Image) []Image {
	vecs := pos.VectorsFor(rotation)

	for p := top; p.Y >= chunk.ChunkLowest*16; p = p.Add(dir) {
		cp := p.Chunk()
		if r.current == nil || r.current.Pos != cp {
			c, err := r.cache.Chunk(cp)
			if err != nil {
				r.log.WithError(err).WithField("chunk", cp).Warn("chunk fetch failed during column render")
				r.current = nil
				continue
			}
			r.current = c
		}
		if r.current == nil {
			continue
		}

		local := p.Local()
		id := r.current.BlockIDAt(local, false, r.reg.NoopID(), chunk.WorldCrop{}, nil)
		if id == r.reg.NoopID() {
			continue
		}

		bi := r.resolveBlockImage(id)
		if bi == nil {
			continue
		}
		if bi.IsEmpty && !bi.IsWaterlogged {
			continue
		}

		topLocal := pos.LocalBlockPos{X: local.X, Y: local.Y + 1, Z: local.Z}
		idTop := r.current.BlockIDAt(topLocal, true, r.reg.NoopID(), chunk.WorldCrop{}, nil)
		idSouth := r.blockIDAtWorld(p.Add(vecs.South))
		idWest := r.blockIDAtWorld(p.Add(vecs.West))

		var waterTop, waterSouth, waterWest, solidTop bool
		if bi.IsWaterlogged {
			biTop := r.resolveBlockImage(idTop)
			biSouth := r.resolveBlockImage(idSouth)
			biWest := r.resolveBlockImage(idWest)

			waterTop = biTop != nil && biTop.IsWaterlogged
			waterSouth = biSouth != nil && biSouth.IsWaterlogged
			waterWest = biWest != nil && biWest.IsWaterlogged

			fullWater := bi.IsEmpty && bi.IsWaterlogged
			if fullWater && waterTop && waterSouth && waterWest {
				continue
			}
			solidTop = biTop != nil && !biTop.IsTransparent
		}

		weights := make([]int, len(bi.Variants))
		for i, v := range bi.Variants {
			weights[i] = v.Weight
		}
		variantIdx := 0
		if len(bi.Variants) > 1 {
			rng := newVariantRNG(p)
			variantIdx = pickVariant(&rng, weights)
		}
		variant := bi.Variants[variantIdx]

		scratch := r.catalog.Atlas.Clone(variant.Color)
		uv := r.catalog.Atlas.Sprite(variant.UV).RGBA

		if !bi.IsEmpty {
			if bi.CanPartial {
				// Matches the reference renderer's face-vs-neighbour naming:
				// "right" tests the south neighbour, "left" the west one.
				stripUp := id == idTop
				stripRight := id == idSouth
				stripLeft := id == idWest
				if stripUp || stripLeft || stripRight {
					eraseFaces(scratch, uv, stripUp, stripLeft, stripRight)
				}
			}

			if bi.IsBiome && r.view.RenderBiomes {
				tint := averageBiomeWindow(p, bi, r.current, r.cache)
				if bi.IsMaskedBiome && bi.HasBiomeMask {
					mask := r.catalog.Atlas.Sprite(bi.BiomeMaskSprite).RGBA
					atlas.TintMasked(scratch, uv, mask, toColorRGBA(tint))
				} else {
					atlas.Tint(scratch, uv, toColorRGBA(tint))
				}
			}

			if bi.ShadowEdges > 0 {
				edgeOpen := func(dirVec pos.BlockPos) bool {
					nbi := r.resolveBlockImage(r.blockIDAtWorld(p.Add(dirVec)))
					return nbi != nil && nbi.ShadowEdges == 0
				}
				north := r.view.ShadowEdgeStrength[0] != 0 && edgeOpen(vecs.North)
				south := r.view.ShadowEdgeStrength[1] != 0 && edgeOpen(vecs.South)
				east := r.view.ShadowEdgeStrength[2] != 0 && edgeOpen(vecs.East)
				west := r.view.ShadowEdgeStrength[3] != 0 && edgeOpen(vecs.West)
				bottom := r.view.ShadowEdgeStrength[4] != 0 && edgeOpen(vecs.Bottom)
				if north || south || east || west || bottom {
					atlas.ShadowEdges(scratch, uv, north, south, east, west, bottom, bottom, bi.ShadowEdges)
				}
			}

			if r.view.RenderLighting {
				r.applyLighting(scratch, uv, bi, p, vecs)
			}
		} else {
			clearRGBA(scratch)
		}

		if bi.IsWaterlogged && r.haveWaterMasks {
			waterBI := r.waterShore
			if waterTop || solidTop {
				waterBI = r.waterFull
			}
			if len(waterBI.Variants) > 0 {
				wv := waterBI.Variants[0]
				waterSprite := r.catalog.Atlas.Clone(wv.Color)
				waterUV := r.catalog.Atlas.Sprite(wv.UV).RGBA

				waterRef := &atlas.BlockImage{BiomeColor: biome.Water}
				tint := averageBiomeWindow(p, waterRef, r.current, r.cache)
				tintRGBA := toColorRGBA(tint)
				tintRGBA.A = uint8(clamp01(r.view.WaterOpacity) * 255)

				if waterTop || waterSouth || waterWest {
					eraseFaces(waterSprite, waterUV, waterTop, waterWest, waterSouth)
				}
				atlas.Tint(waterSprite, waterUV, tintRGBA)
				atlas.BlendZBuffered(scratch, uv, waterSprite, waterUV)
			}
		} else if bi.IsWaterlogged && !r.haveWaterMasks && !r.warnedMissingWaterMasks {
			r.warnedMissingWaterMasks = true
			r.log.Warn("catalog has no minecraft:water_mask entries; waterlog overlay disabled")
		}

		out = append(out, Image{X: drawX, Y: drawY, Pos: p, Sprite: scratch})

		if !bi.IsTransparent {
			break
		}
	}
	return out
}

// resolveBlockImage looks up id's block image, falling back to the same
// block-state with waterlogged=false, then to minecraft:unknown_block,
// logging the miss once per distinct id (§7 UnknownBlockState).
func (r *Renderer) resolveBlockImage(id registry.ID) *atlas.BlockImage {
	if bi, ok := r.catalog.Get(id); ok {
		return bi
	}
	if bs, ok := r.reg.Lookup(id); ok {
		if _, has := bs.Property("waterlogged"); has {
			dry := bs.WithProperty("waterlogged", "false")
			if dryID, ok := r.reg.Find(dry); ok {
				if bi, ok := r.catalog.Get(dryID); ok {
					return bi
				}
			}
		}
	}
	if !r.warnedUnknownBlock[id] {
		r.warnedUnknownBlock[id] = true
		r.log.WithField("block_id", id).Warn("unknown block-state during render")
	}
	ids := r.catalog.ByName("minecraft:unknown_block")
	if len(ids) > 0 {
		if bi, ok := r.catalog.Get(ids[0]); ok {
			return bi
		}
	}
	return nil
}

// blockIDAtWorld resolves the block-state ID at an absolute world
// position, fetching its chunk from the cache if it isn't the column
// renderer's current chunk. Always bypasses crop/hider (force=true):
// neighbour lookups must see true geometry.
func (r *Renderer) blockIDAtWorld(p pos.BlockPos) registry.ID {
	cp := p.Chunk()
	c := r.current
	if c == nil || c.Pos != cp {
		fetched, err := r.cache.Chunk(cp)
		if err != nil || fetched == nil {
			return r.reg.NoopID()
		}
		c = fetched
	}
	return c.BlockIDAt(p.Local(), true, r.reg.NoopID(), chunk.WorldCrop{}, nil)
}

// applyLighting is the render mode's lighting step (§4.5 step 7's "let
// the render mode apply lighting"), consuming the chunk's stored block-
// and sky-light nibbles through the §4.3 multiply primitives. FaultyLighting
// blocks (whose stored light data is known-unreliable) skip the step
// entirely rather than darken from bad samples. LightingSmooth variants
// sample a corner per face from the blocks touching that corner, giving
// a cheap voxel ambient-occlusion effect; LightingSimple and the "simple"
// half of LightingSmoothTopRemainingSimple instead sample one light level
// per face and apply it uniformly via MultiplyScalar/a constant corner.
func (r *Renderer) applyLighting(scratch, uv *image.RGBA, bi *atlas.BlockImage, p pos.BlockPos, vecs pos.Vectors) {
	if bi.FaultyLighting {
		return
	}
	switch bi.LightingType {
	case atlas.LightingNone:
		return
	case atlas.LightingSimple:
		atlas.MultiplyScalar(scratch, uv, r.lightFactorAt(p.Add(vecs.Top)))
	case atlas.LightingSmooth, atlas.LightingSmoothBottom:
		left := r.faceCornerLight(p.Add(vecs.West), vecs.North, vecs.South, vecs.Top, vecs.Bottom)
		right := r.faceCornerLight(p.Add(vecs.South), vecs.East, vecs.West, vecs.Top, vecs.Bottom)
		up := r.faceCornerLight(p.Add(vecs.Top), vecs.North, vecs.South, vecs.West, vecs.East)
		atlas.Multiply(scratch, uv, left, up, right)
	case atlas.LightingSmoothTopRemainingSimple:
		up := r.faceCornerLight(p.Add(vecs.Top), vecs.North, vecs.South, vecs.West, vecs.East)
		left := uniformCorner(r.lightFactorAt(p.Add(vecs.West)))
		right := uniformCorner(r.lightFactorAt(p.Add(vecs.South)))
		atlas.Multiply(scratch, uv, left, up, right)
	}
}

// faceCornerLight samples the light level at the four blocks diagonally
// touching each corner of the face plane through base, which is spanned
// by axisA and axisB (e.g. north/south and west/east for a horizontal
// up-face plane, or north/south and top/bottom for a vertical side-face
// plane).
func (r *Renderer) faceCornerLight(base pos.BlockPos, axisAPos, axisANeg, axisBPos, axisBNeg pos.BlockPos) atlas.CornerValues {
	tl := r.lightFactorAt(base.Add(axisAPos).Add(axisBPos))
	tr := r.lightFactorAt(base.Add(axisAPos).Add(axisBNeg))
	bl := r.lightFactorAt(base.Add(axisANeg).Add(axisBPos))
	br := r.lightFactorAt(base.Add(axisANeg).Add(axisBNeg))
	return atlas.CornerValues{tl, tr, bl, br}
}

func uniformCorner(v float32) atlas.CornerValues {
	return atlas.CornerValues{v, v, v, v}
}

// lightFactorAt returns max(block_light, sky_light) at p as a 0..1
// fraction, fetching p's chunk from the cache if it isn't the column
// renderer's current chunk. An unreachable chunk is treated as fully
// lit, matching SkyLightAt's own out-of-range default.
func (r *Renderer) lightFactorAt(p pos.BlockPos) float32 {
	cp := p.Chunk()
	c := r.current
	if c == nil || c.Pos != cp {
		fetched, err := r.cache.Chunk(cp)
		if err != nil || fetched == nil {
			return 1
		}
		c = fetched
	}
	local := p.Local()
	level := c.BlockLightAt(local)
	if sky := c.SkyLightAt(local); sky > level {
		level = sky
	}
	return float32(level) / 15
}

// eraseFaces zeroes sprite pixels under the UV mask's up/left/right
// faces where the corresponding flag is set (§4.5 step 7/8's face
// stripping for can_partial blocks and waterlog neighbour clipping).
func eraseFaces(sprite, uv *image.RGBA, up, left, right bool) {
	if !up && !left && !right {
		return
	}
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := uv.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			switch atlas.FaceOf(px.B) {
			case atlas.FaceUp:
				if up {
					sprite.Set(x, y, color.Transparent)
				}
			case atlas.FaceLeft:
				if left {
					sprite.Set(x, y, color.Transparent)
				}
			case atlas.FaceRight:
				if right {
					sprite.Set(x, y, color.Transparent)
				}
			}
		}
	}
}

func clearRGBA(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func toColorRGBA(c biome.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
