package tile

import (
	"sort"

	"github.com/oriumgames/isotile/pos"
)

// less returns a strict weak order over Images for rotation r (§4.8):
// farther-from-camera blocks sort first so the final blit draws in
// back-to-front painter's order.
func less(r pos.Rotation) func(a, b Image) bool {
	switch r {
	case pos.TopLeft:
		return func(a, b Image) bool {
			if a.Pos.Y != b.Pos.Y {
				return a.Pos.Y < b.Pos.Y
			}
			if a.Pos.Z != b.Pos.Z {
				return a.Pos.Z < b.Pos.Z
			}
			return a.Pos.X > b.Pos.X
		}
	case pos.TopRight:
		return func(a, b Image) bool {
			if a.Pos.Y != b.Pos.Y {
				return a.Pos.Y < b.Pos.Y
			}
			if a.Pos.X != b.Pos.X {
				return a.Pos.X < b.Pos.X
			}
			return a.Pos.Z < b.Pos.Z
		}
	case pos.BottomRight:
		return func(a, b Image) bool {
			if a.Pos.Y != b.Pos.Y {
				return a.Pos.Y < b.Pos.Y
			}
			if a.Pos.Z != b.Pos.Z {
				return a.Pos.Z > b.Pos.Z
			}
			return a.Pos.X < b.Pos.X
		}
	default: // BottomLeft
		return func(a, b Image) bool {
			if a.Pos.Y != b.Pos.Y {
				return a.Pos.Y < b.Pos.Y
			}
			if a.Pos.X != b.Pos.X {
				return a.Pos.X > b.Pos.X
			}
			return a.Pos.Z > b.Pos.Z
		}
	}
}

// sortImages orders images in place for painter's-order blitting under
// rotation r. Stable so ties (none expected for distinct world
// positions) keep iterator emission order.
func sortImages(images []Image, r pos.Rotation) {
	cmp := less(r)
	sort.SliceStable(images, func(i, j int) bool { return cmp(images[i], images[j]) })
}
