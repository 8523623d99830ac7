package atlas

// biomeMaskSuffix is the naming convention a masked-biome block image's
// companion mask sprite is found under.
const biomeMaskSuffix = "_biome_mask"

// completeCatalog runs the post-load completion pass over every block
// image in c: deriving is_empty, is_transparent, side_mask and a default
// lighting_type where the index left it unspecified, and resolving each
// masked-biome block's companion mask sprite.
func completeCatalog(c *Catalog, byName map[string]*BlockImage) {
	airBI, hasAir := byName["minecraft:air"]

	for _, bi := range c.images {
		deriveEmpty(bi, airBI, hasAir, c.Atlas)
		deriveTransparentAndSideMask(bi, c.Atlas)
		deriveDefaultLighting(bi)
		if bi.ShadowEdgesUnset() {
			if bi.IsTransparent {
				bi.ShadowEdges = 0
			} else {
				bi.ShadowEdges = 1
			}
		}
		if bi.IsBiome && bi.IsMaskedBiome {
			if mask, ok := findBiomeMask(byName, bi.Name); ok {
				bi.BiomeMaskSprite = mask
				bi.HasBiomeMask = true
			}
		}
	}
}

// ShadowEdgesUnset reports whether the index never set shadow_edges,
// the signal completeCatalog uses to apply the !is_transparent default.
// A block-state that explicitly specified shadow_edges=0 is not unset:
// shadowEdgesExplicit tells the two apart (see DESIGN.md).
func (bi *BlockImage) ShadowEdgesUnset() bool {
	return bi.ShadowEdges == 0 && !bi.shadowEdgesExplicit
}

func deriveEmpty(bi *BlockImage, airBI *BlockImage, hasAir bool, a *Atlas) {
	if !hasAir {
		return
	}
	for _, v := range bi.Variants {
		matches := false
		for _, av := range airBI.Variants {
			if spritesEqual(a, v.Color, av.Color) {
				matches = true
				break
			}
		}
		if !matches {
			return
		}
	}
	bi.IsEmpty = true
}

func spritesEqual(a *Atlas, i, j int) bool {
	if i == j {
		return true
	}
	if i < 0 || j < 0 || i >= a.Count() || j >= a.Count() {
		return false
	}
	si, sj := a.Sprite(i), a.Sprite(j)
	b := si.Bounds()
	if b != sj.Bounds() {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if si.RGBAAt(x, y) != sj.RGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

func deriveTransparentAndSideMask(bi *BlockImage, a *Atlas) {
	for _, v := range bi.Variants {
		if v.UV < 0 || v.UV >= a.Count() || v.Color < 0 || v.Color >= a.Count() {
			continue
		}
		uv := a.Sprite(v.UV).RGBA
		color := a.Sprite(v.Color).RGBA
		b := uv.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				_, _, face, alpha := uvAt(uv, x, y)
				if alpha == 0 {
					continue
				}
				switch face {
				case FaceLeft:
					bi.SideMask.Left = true
				case FaceUp:
					bi.SideMask.Up = true
				case FaceRight:
					bi.SideMask.Right = true
				}
				if color.RGBAAt(x, y).A < 255 {
					bi.IsTransparent = true
				}
			}
		}
	}
}

func deriveDefaultLighting(bi *BlockImage) {
	if bi.lightingTypeExplicit {
		return
	}
	switch {
	case bi.IsWaterlogged:
		bi.LightingType = LightingSmoothTopRemainingSimple
	case !bi.IsTransparent:
		bi.LightingType = LightingSmooth
	default:
		bi.LightingType = LightingSimple
	}
}

func findBiomeMask(byName map[string]*BlockImage, name string) (int, bool) {
	mask, ok := byName[name+biomeMaskSuffix]
	if !ok || len(mask.Variants) == 0 {
		return 0, false
	}
	return mask.Variants[0].Color, true
}
