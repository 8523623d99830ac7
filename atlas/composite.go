package atlas

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// CornerValues holds the four corner light (or tint) scalars of one cube
// face, in the order (top-left, top-right, bottom-left, bottom-right),
// the per-face smooth-lighting multiply bilinearly interpolates between.
type CornerValues = mgl32.Vec4

// Multiply applies the per-face smooth-light multiply: for each UV
// pixel belonging to left/up/right, bilinearly interpolate that face's
// corner values using (u, v) read from the UV mask's red/green channels
// and multiply the sprite's RGB channels by the result.
func Multiply(sprite *image.RGBA, uv *image.RGBA, left, up, right CornerValues) {
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			u8, v8, face, alpha := uvAt(uv, x, y)
			if alpha == 0 {
				continue
			}
			var corners CornerValues
			switch face {
			case FaceLeft:
				corners = left
			case FaceUp:
				corners = up
			case FaceRight:
				corners = right
			default:
				continue
			}
			factor := bilinear(corners, float32(u8)/255, float32(v8)/255)
			applyFactor(sprite, x, y, factor)
		}
	}
}

// bilinear interpolates the four corner values (tl, tr, bl, br) at
// face-local coordinate (u, v) in [0,1].
func bilinear(c CornerValues, u, v float32) float32 {
	top := c[0]*(1-u) + c[1]*u
	bottom := c[2]*(1-u) + c[3]*u
	return top*(1-v) + bottom*v
}

// MultiplyScalar applies a uniform darkening factor to every UV-covered
// pixel of sprite.
func MultiplyScalar(sprite *image.RGBA, uv *image.RGBA, factor float32) {
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, alpha := uvAt(uv, x, y); alpha == 0 {
				continue
			}
			applyFactor(sprite, x, y, factor)
		}
	}
}

func applyFactor(sprite *image.RGBA, x, y int, factor float32) {
	px := sprite.RGBAAt(x, y)
	sprite.SetRGBA(x, y, color.RGBA{
		R: scaleChannel(px.R, float64(factor)),
		G: scaleChannel(px.G, float64(factor)),
		B: scaleChannel(px.B, float64(factor)),
		A: px.A,
	})
}

// Tint multiplies the RGB channels of every UV-covered pixel by tint's
// channels (as 0..1 fractions).
func Tint(sprite *image.RGBA, uv *image.RGBA, tint color.RGBA) {
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, alpha := uvAt(uv, x, y); alpha == 0 {
				continue
			}
			px := sprite.RGBAAt(x, y)
			sprite.SetRGBA(x, y, color.RGBA{
				R: mulChannel(px.R, tint.R),
				G: mulChannel(px.G, tint.G),
				B: mulChannel(px.B, tint.B),
				A: px.A,
			})
		}
	}
}

func mulChannel(a, b uint8) uint8 {
	return uint8((int(a)*int(b) + 127) / 255)
}

// TintMasked blends tint onto sprite wherever mask's alpha is nonzero,
// weighted by that alpha, leaving pixels outside the mask untouched.
func TintMasked(sprite *image.RGBA, uv *image.RGBA, mask *image.RGBA, tint color.RGBA) {
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, alpha := uvAt(uv, x, y); alpha == 0 {
				continue
			}
			maskAlpha := mask.RGBAAt(x, y).A
			if maskAlpha == 0 {
				continue
			}
			px := sprite.RGBAAt(x, y)
			w := float64(maskAlpha) / 255
			sprite.SetRGBA(x, y, color.RGBA{
				R: blendChannel(px.R, mulChannel(px.R, tint.R), w),
				G: blendChannel(px.G, mulChannel(px.G, tint.G), w),
				B: blendChannel(px.B, mulChannel(px.B, tint.B), w),
				A: px.A,
			})
		}
	}
}

func blendChannel(base, over uint8, w float64) uint8 {
	return clampByteF(float64(base)*(1-w) + float64(over)*w)
}

func clampByteF(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// highContrastAlphaFactor is the denominator §4.3 specifies for
// deriving a high-contrast tint's chroma offset from its luminance.
const highContrastAlphaFactor = 3

// TintHighContrast applies the additive high-contrast tint primitive:
// luminance = (10R+3G+B)/14, offset = (color-luminance)/3, added to
// each UV-covered pixel (optionally restricted to a single face) and
// clamped.
func TintHighContrast(sprite *image.RGBA, uv *image.RGBA, tint color.RGBA, restrictTo Face, restrict bool) {
	luminance := (10*float64(tint.R) + 3*float64(tint.G) + float64(tint.B)) / 14
	nr := (float64(tint.R) - luminance) / highContrastAlphaFactor
	ng := (float64(tint.G) - luminance) / highContrastAlphaFactor
	nb := (float64(tint.B) - luminance) / highContrastAlphaFactor

	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, face, alpha := uvAt(uv, x, y)
			if alpha == 0 {
				continue
			}
			if restrict && face != restrictTo {
				continue
			}
			px := sprite.RGBAAt(x, y)
			sprite.SetRGBA(x, y, color.RGBA{
				R: addClamped(px.R, nr),
				G: addClamped(px.G, ng),
				B: addClamped(px.B, nb),
				A: px.A,
			})
		}
	}
}

func addClamped(v uint8, delta float64) uint8 {
	return clampByteF(float64(v)+delta)
}

// BlendZBuffered composites overlay onto base using each's UV alpha as
// a depth key: where the base pixel's UV alpha is less than the
// overlay's, the overlay pixel is drawn over the base; otherwise the
// base pixel is drawn over the overlay. Used to composite a water surface sprite
// against the solid block sprite it shares a tile cell with.
func BlendZBuffered(base *image.RGBA, baseUV *image.RGBA, overlay *image.RGBA, overlayUV *image.RGBA) {
	b := base.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, baseDepth := uvAt(baseUV, x, y)
			_, _, _, overlayDepth := uvAt(overlayUV, x, y)
			if overlayDepth == 0 {
				continue
			}
			op := overlay.RGBAAt(x, y)
			if op.A == 0 {
				continue
			}
			if baseDepth < overlayDepth {
				base.SetRGBA(x, y, alphaOver(op, base.RGBAAt(x, y)))
			} else {
				base.SetRGBA(x, y, alphaOver(base.RGBAAt(x, y), op))
			}
		}
	}
}

// alphaOver composites src over dst using src's alpha.
func alphaOver(src, dst color.RGBA) color.RGBA {
	a := float64(src.A) / 255
	return color.RGBA{
		R: blend8(dst.R, src.R, a),
		G: blend8(dst.G, src.G, a),
		B: blend8(dst.B, src.B, a),
		A: maxByte(src.A, dst.A),
	}
}

func blend8(dst, src uint8, a float64) uint8 {
	return clampByteF(float64(dst)*(1-a)+float64(src)*a)
}

func maxByte(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// ShadowEdges darkens sprite pixels near the UV-mask face edges,
// strength scaled by each side's edge flag (drawn when the
// corresponding neighbour reports no shadow edges of its own) and by
// the block image's overall shadow_edges strength (1..3).
func ShadowEdges(sprite *image.RGBA, uv *image.RGBA, north, south, east, west, bottomLeft, bottomRight bool, strength int) {
	if strength <= 0 {
		return
	}
	b := sprite.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			u8, v8, face, alpha := uvAt(uv, x, y)
			if alpha == 0 {
				continue
			}
			u := float64(u8) / 255
			v := float64(v8) / 255

			var edgeAlpha float64
			switch face {
			case FaceUp:
				if west {
					edgeAlpha = maxF(edgeAlpha, edgeFalloff(u, strength))
				}
				if east {
					edgeAlpha = maxF(edgeAlpha, edgeFalloff(1-u, strength))
				}
				if north {
					edgeAlpha = maxF(edgeAlpha, edgeFalloff(v, strength))
				}
				if south {
					edgeAlpha = maxF(edgeAlpha, edgeFalloff(1-v, strength))
				}
			case FaceLeft, FaceRight:
				if bottomLeft || bottomRight {
					edgeAlpha = maxF(edgeAlpha, edgeFalloff(1-v, strength))
				}
			}
			if edgeAlpha <= 0 {
				continue
			}
			px := sprite.RGBAAt(x, y)
			factor := (255 - edgeAlpha*255) / 255
			sprite.SetRGBA(x, y, color.RGBA{
				R: scaleChannel(px.R, factor),
				G: scaleChannel(px.G, factor),
				B: scaleChannel(px.B, factor),
				A: px.A,
			})
		}
	}
}

// edgeFalloff is the darkening strength at distance d from a face's
// edge, scaled by the block's edge strength (1..3): closer to 0
// (the edge) means darker.
func edgeFalloff(d float64, strength int) float64 {
	const band = 1.0 / 16
	if d >= band {
		return 0
	}
	return (1 - d/band) * float64(strength) / 3
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
