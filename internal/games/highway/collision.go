package highway

import "github.com/vovakirdan/highway-runner/internal/core"

// center lifts a feet position by half the visual height.
func center(pos core.Vec2, height float64) core.Vec2 {
	return core.Vec2{X: pos.X, Y: pos.Y - height/2}
}

// overlaps is the single hit test used for every pair: the centers are
// closer than radius. Radii are tuning values, not sprite bounds.
func overlaps(a core.Vec2, aHeight float64, b core.Vec2, bHeight, radius float64) bool {
	return core.WithinRadius(center(a, aHeight), center(b, bHeight), radius)
}
