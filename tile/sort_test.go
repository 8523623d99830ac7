package tile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/isotile/pos"
)

func imageAt(x, y, z int) Image {
	return Image{Pos: pos.BlockPos{X: x, Y: y, Z: z}}
}

func TestSortImagesOrdersByRotationTable(t *testing.T) {
	cases := []struct {
		rotation pos.Rotation
		in       []Image
		want     []Image
	}{
		{
			rotation: pos.TopLeft,
			in:       []Image{imageAt(1, 0, 0), imageAt(0, 0, 0)},
			want:     []Image{imageAt(1, 0, 0), imageAt(0, 0, 0)},
		},
		{
			rotation: pos.TopRight,
			in:       []Image{imageAt(1, 0, 0), imageAt(0, 0, 0)},
			want:     []Image{imageAt(0, 0, 0), imageAt(1, 0, 0)},
		},
		{
			rotation: pos.BottomRight,
			in:       []Image{imageAt(0, 0, 1), imageAt(0, 0, 0)},
			want:     []Image{imageAt(0, 0, 1), imageAt(0, 0, 0)},
		},
		{
			rotation: pos.BottomLeft,
			in:       []Image{imageAt(0, 0, 0), imageAt(0, 0, 1)},
			want:     []Image{imageAt(0, 0, 1), imageAt(0, 0, 0)},
		},
	}

	for _, c := range cases {
		t.Run(c.rotation.String(), func(t *testing.T) {
			sortImages(c.in, c.rotation)
			assert.Equal(t, c.want, c.in)
		})
	}
}

func TestSortImagesIsStrictWeakOrderUnderShuffle(t *testing.T) {
	var images []Image
	for x := -2; x <= 2; x++ {
		for y := 0; y <= 2; y++ {
			for z := -2; z <= 2; z++ {
				images = append(images, imageAt(x, y, z))
			}
		}
	}

	for _, r := range []pos.Rotation{pos.TopLeft, pos.TopRight, pos.BottomRight, pos.BottomLeft} {
		shuffled := make([]Image, len(images))
		copy(shuffled, images)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		sortImages(shuffled, r)
		cmp := less(r)
		for i := 1; i < len(shuffled); i++ {
			assert.False(t, cmp(shuffled[i], shuffled[i-1]), "rotation %s: out of order at %d", r, i)
		}
	}
}
