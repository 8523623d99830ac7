package atlas

import "image/color"

// darkenLeft and darkenRight are the static per-face multipliers the
// one-time face-shading pass applies before any per-tile compositing:
// FACE_UP keeps full brightness, the two side faces are preshaded to
// approximate directional light without a per-pixel light calculation.
const (
	darkenLeft  = 0.6
	darkenRight = 0.8
)

// ShadeFaces applies the static per-face darkening multiply to every
// variant's color sprite, skipping sprites already shaded (tracked by
// index) and any block whose name is a biome-mask companion (those hold
// raw alpha masks, not color data).
func ShadeFaces(c *Catalog) {
	shaded := make(map[int]bool)
	for _, bi := range c.images {
		if bi.IsWaterlogged && !bi.InherentlyWet {
			continue
		}
		if isBiomeMaskName(bi.Name) {
			continue
		}
		for _, v := range bi.Variants {
			if shaded[v.Color] {
				continue
			}
			shadeSprite(c.Atlas, v.Color, v.UV)
			shaded[v.Color] = true
		}
	}
}

func isBiomeMaskName(name string) bool {
	return len(name) > len(biomeMaskSuffix) && name[len(name)-len(biomeMaskSuffix):] == biomeMaskSuffix
}

func shadeSprite(a *Atlas, colorIdx, uvIdx int) {
	if colorIdx < 0 || colorIdx >= a.Count() || uvIdx < 0 || uvIdx >= a.Count() {
		return
	}
	colorSprite := a.Sprite(colorIdx).RGBA
	uv := a.Sprite(uvIdx).RGBA
	b := colorSprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, face, alpha := uvAt(uv, x, y)
			if alpha == 0 {
				continue
			}
			var factor float64
			switch face {
			case FaceLeft:
				factor = darkenLeft
			case FaceRight:
				factor = darkenRight
			default:
				continue
			}
			px := colorSprite.RGBAAt(x, y)
			colorSprite.SetRGBA(x, y, color.RGBA{
				R: scaleChannel(px.R, factor),
				G: scaleChannel(px.G, factor),
				B: scaleChannel(px.B, factor),
				A: px.A,
			})
		}
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := float64(v) * factor
	if scaled > 255 {
		return 255
	}
	if scaled < 0 {
		return 0
	}
	return uint8(scaled)
}
