// Package atlas loads the block sprite atlas (a PNG grid plus a text
// index) and prepares the per-block-state image data the tile renderer
// composites: color variants, UV/face masks, biome and lighting flags,
// and pre-shaded faces.
package atlas

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io"
	"strings"
)

// Sprite is one RGBA cell cut out of the atlas, addressable by grid
// index. Sprites are shared by reference: a BlockImage variant stores an
// index, never a copy.
type Sprite struct {
	*image.RGBA
}

// Atlas holds the full sliced sprite grid. Width/Height are the
// per-sprite pixel dimensions declared by the index file's first line.
type Atlas struct {
	Width, Height int
	Columns, Rows int
	sprites       []Sprite
}

// Sprite returns the sprite at grid index idx. A caller must not mutate
// the returned image unless it owns the only reference to that index
// (see Atlas.Clone for renderer scratch buffers).
func (a *Atlas) Sprite(idx int) Sprite {
	return a.sprites[idx]
}

// Count returns the number of sprites in the grid.
func (a *Atlas) Count() int { return len(a.sprites) }

// Clone copies sprite idx into a fresh RGBA buffer the caller owns,
// suitable for in-place compositing without disturbing the shared atlas.
func (a *Atlas) Clone(idx int) *image.RGBA {
	src := a.sprites[idx]
	dst := image.NewRGBA(image.Rect(0, 0, a.Width, a.Height))
	draw.Draw(dst, dst.Bounds(), src.RGBA, src.Bounds().Min, draw.Src)
	return dst
}

// Load parses indexText's first line ("W H C": sprite width, height,
// declared column count) and slices png into a row-major sprite grid.
// The remaining index lines (one per block-image descriptor) are
// returned unparsed for ParseIndex to consume. Load fails if the image's
// actual sprite-grid width exceeds the declared column count.
func Load(indexText string, png io.Reader) (*Atlas, []string, error) {
	lines := strings.Split(strings.ReplaceAll(indexText, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("atlas index: empty")
	}
	var w, h, cols int
	if _, err := fmt.Sscanf(lines[0], "%d %d %d", &w, &h, &cols); err != nil {
		return nil, nil, fmt.Errorf("atlas index: parse header %q: %w", lines[0], err)
	}

	img, _, err := image.Decode(png)
	if err != nil {
		return nil, nil, fmt.Errorf("atlas png: %w", err)
	}

	b := img.Bounds()
	actualCols := b.Dx() / w
	rows := b.Dy() / h
	if actualCols > cols {
		return nil, nil, fmt.Errorf("atlas png: grid width %d exceeds declared columns %d", actualCols, cols)
	}

	a := &Atlas{Width: w, Height: h, Columns: cols, Rows: rows}
	a.sprites = make([]Sprite, 0, actualCols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < actualCols; col++ {
			rect := image.Rect(col*w, row*h, (col+1)*w, (row+1)*h).Add(b.Min)
			sprite := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.Draw(sprite, sprite.Bounds(), img, rect.Min, draw.Src)
			a.sprites = append(a.sprites, Sprite{sprite})
		}
	}
	return a, lines[1:], nil
}

// Face identifies which of a cube's rendered faces a UV-mask pixel
// belongs to, encoded in the mask's blue channel.
type Face int

const (
	FaceNone Face = iota
	FaceLeft
	FaceUp
	FaceRight
)

// Blue channel magic constants a UV mask pixel carries for each face:
// 255/6 * {1, 2, 4}.
const (
	blueLeft  = 42
	blueUp    = 85
	blueRight = 170
)

// FaceOf decodes the UV mask's blue channel into a Face. Values that
// match none of the three known constants (including fully transparent
// background pixels) report FaceNone.
func FaceOf(blue uint8) Face {
	switch {
	case blue == blueLeft:
		return FaceLeft
	case blue == blueUp:
		return FaceUp
	case blue == blueRight:
		return FaceRight
	default:
		return FaceNone
	}
}

// uvAt reads the (u, v, face, alpha) tuple encoded at a UV mask pixel.
func uvAt(mask *image.RGBA, x, y int) (u, v uint8, face Face, alpha uint8) {
	c := mask.RGBAAt(x, y)
	return c.R, c.G, FaceOf(c.B), c.A
}
