// Package snake implements the locomotion, growth and lifecycle core of the snake.
//
// World space is y-up: Up is (0, 1). A grid cell c sits at world position c*step.
package snake

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/snake/grid"
)

// Direction is a cardinal unit step.
type Direction struct {
	X, Y int
}

var (
	Right = Direction{X: 1}
	Left  = Direction{X: -1}
	Up    = Direction{Y: 1}
	Down  = Direction{Y: -1}
)

// Cardinal reports whether d is one of the four unit directions.
func (d Direction) Cardinal() bool {
	return d.X*d.X+d.Y*d.Y == 1
}

// Dot returns the dot product of d and o.
func (d Direction) Dot(o Direction) int {
	return d.X*o.X + d.Y*o.Y
}

// Neg returns the opposite direction.
func (d Direction) Neg() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// Vec returns d as a world-space vector.
func (d Direction) Vec() r2.Vec {
	return r2.Vec{X: float64(d.X), Y: float64(d.Y)}
}

// Coord returns d as a grid offset.
func (d Direction) Coord() grid.Coord {
	return grid.Coord{X: d.X, Y: d.Y}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// between returns the unit direction from a to b, or ok=false when they coincide.
func between(a, b grid.Coord) (Direction, bool) {
	d := Direction{X: sign(b.X - a.X), Y: sign(b.Y - a.Y)}
	return d, d != Direction{}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// ResolveSwipe maps a pointer drag (screen space, y down) to a direction once
// the drag exceeds threshold as a fraction of screenSize.
func ResolveSwipe(dx, dy, screenSize, threshold float64) (Direction, bool) {
	if screenSize <= 0 {
		return Direction{}, false
	}
	if math.Abs(dx)/screenSize <= threshold && math.Abs(dy)/screenSize <= threshold {
		return Direction{}, false
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}
	if dy > 0 {
		return Down, true
	}
	return Up, true
}
