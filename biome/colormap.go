package biome

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorMap is a 3-color triangle sampled by barycentric coordinates derived
// from (temperature, rainfall). It is the per-block override a catalog
// entry's "biome_colormap" key specifies, parsed from three
// "#RRGGBBAA"-style corners.
type ColorMap struct {
	Top, Left, Right Color
}

// ParseColorMap parses the "#RRGGBBAA|#RRGGBBAA|#RRGGBBAA" form used by the
// block-image index file's biome_colormap key.
func ParseColorMap(s string) (ColorMap, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return ColorMap{}, fmt.Errorf("biome_colormap %q: want 3 |-separated colors, got %d", s, len(parts))
	}
	colors := make([]Color, 3)
	for i, p := range parts {
		c, err := parseHexColor(p)
		if err != nil {
			return ColorMap{}, fmt.Errorf("biome_colormap %q: corner %d: %w", s, i, err)
		}
		colors[i] = c
	}
	return ColorMap{Top: colors[0], Left: colors[1], Right: colors[2]}, nil
}

func parseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 8 {
		return Color{}, fmt.Errorf("want #RRGGBBAA, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, err
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Sample evaluates the colormap at barycentric position (x,y) (x,y in
// [0,1]) using the triangle (x-y, 1-x, y) over (Top, Left, Right), the
// weighting the platform's colormap triangle uses.
func (cm ColorMap) Sample(x, y float64) Color {
	wTop := x - y
	wLeft := 1 - x
	wRight := y

	sum := wTop + wLeft + wRight
	if sum <= 0 {
		return cm.Top
	}
	wTop /= sum
	wLeft /= sum
	wRight /= sum

	mix := func(a, b, c uint8) uint8 {
		v := float64(a)*wTop + float64(b)*wLeft + float64(c)*wRight
		return clampByte(v)
	}
	return Color{
		R: mix(cm.Top.R, cm.Left.R, cm.Right.R),
		G: mix(cm.Top.G, cm.Left.G, cm.Right.G),
		B: mix(cm.Top.B, cm.Left.B, cm.Right.B),
		A: mix(cm.Top.A, cm.Left.A, cm.Right.A),
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
