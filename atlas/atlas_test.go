package atlas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestLoadSlicesGridByDeclaredSize(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 4, 2))
	sheet.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	sheet.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	sheet.SetRGBA(2, 0, color.RGBA{0, 0, 255, 255})
	sheet.SetRGBA(3, 0, color.RGBA{255, 255, 0, 255})

	a, body, err := Load("1 1 4\nminecraft:air default color=0;uv=0", bytes.NewReader(encodePNG(t, sheet)))
	require.NoError(t, err)
	require.Equal(t, 1, a.Width)
	require.Equal(t, 8, a.Count())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, a.Sprite(0).RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, a.Sprite(1).RGBAAt(0, 0))
	require.Len(t, body, 1)
}

func TestLoadRejectsGridWiderThanDeclaredColumns(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 4, 1))
	_, _, err := Load("1 1 2\n", bytes.NewReader(encodePNG(t, sheet)))
	require.Error(t, err)
}

func TestFaceOfDecodesMagicBlueConstants(t *testing.T) {
	assert.Equal(t, FaceLeft, FaceOf(42))
	assert.Equal(t, FaceUp, FaceOf(85))
	assert.Equal(t, FaceRight, FaceOf(170))
	assert.Equal(t, FaceNone, FaceOf(0))
}
