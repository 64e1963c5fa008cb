package snake

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/snake/grid"
)

// SelfHit reports whether tip lies within width/2 of any body cell other than
// the head (the last coordinate).
func SelfHit(tip r2.Vec, bodies []grid.Coord, step, width float64) bool {
	if len(bodies) < 2 {
		return false
	}
	limit := width / 2
	for _, c := range bodies[:len(bodies)-1] {
		p := r2.Vec{X: float64(c.X) * step, Y: float64(c.Y) * step}
		if r2.Norm(r2.Sub(tip, p)) < limit {
			return true
		}
	}
	return false
}

// HitsObstacle reports whether the cell containing tip is Blocked.
func HitsObstacle(tiles grid.Map, tip r2.Vec, step float64) bool {
	return tiles.Tile(grid.Round(tip.X/step, tip.Y/step)) == grid.Blocked
}

// Box is an axis-aligned square used for pickup contact.
type Box struct {
	Center r2.Vec
	Size   float64
}

// Overlaps reports whether a and o intersect.
func (a Box) Overlaps(o Box) bool {
	reach := (a.Size + o.Size) / 2
	return math.Abs(a.Center.X-o.Center.X) < reach && math.Abs(a.Center.Y-o.Center.Y) < reach
}
