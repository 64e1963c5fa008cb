package snake

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/snake/grid"
)

// Waypoint is a vertex of the rendered body polyline.
type Waypoint struct {
	Position r2.Vec
	Width    float64
}

// BodyPath is the body as grid coordinates plus fractional head and tail offsets.
//
// bodies[0] is the tail cell and the last entry is the head cell. There is one
// more waypoint than coordinates: the two ends are the interpolated tips, the
// inner waypoints sit on bodies[1:len-1]. The tile directly ahead of the head is
// claimed as Body as soon as the head commits to it.
type BodyPath struct {
	tiles grid.Map
	input *InputBuffer

	step  float64
	width float64

	bodies    []grid.Coord
	waypoints []Waypoint

	headDir  Direction
	headMove float64
	tailMove float64
	length   float64

	ahead    grid.Coord
	hasAhead bool

	// Offsets from before the last Reverse, valid until the body moves again.
	undo    [2]float64
	hasUndo bool
}

// NewBodyPath lays out n cells ending at head and facing heading, and marks
// them on tiles. input may be nil.
func NewBodyPath(tiles grid.Map, input *InputBuffer, head grid.Coord, heading Direction, n int, step, width float64) *BodyPath {
	if n < 1 {
		n = 1
	}
	if !heading.Cardinal() {
		heading = Right
	}
	b := &BodyPath{
		tiles:     tiles,
		input:     input,
		step:      step,
		width:     width,
		bodies:    make([]grid.Coord, 0, n),
		waypoints: make([]Waypoint, n+1),
		headDir:   heading,
		length:    float64(n) * step,
	}
	back := heading.Neg().Coord()
	tail := head
	for i := 1; i < n; i++ {
		tail = tail.Add(back)
	}
	for c, i := tail, 0; i < n; i++ {
		b.bodies = append(b.bodies, c)
		if tiles.Tile(c) == grid.Empty {
			tiles.SetTile(c, grid.Body)
		}
		c = c.Add(heading.Coord())
	}
	b.claimAhead()
	b.UpdateMesh()
	return b
}

func (b *BodyPath) pos(c grid.Coord) r2.Vec {
	return r2.Vec{X: float64(c.X) * b.step, Y: float64(c.Y) * b.step}
}

func (b *BodyPath) claimAhead() {
	c := b.Head().Add(b.headDir.Coord())
	if b.tiles.Tile(c) == grid.Empty {
		b.tiles.SetTile(c, grid.Body)
		b.ahead, b.hasAhead = c, true
		return
	}
	b.ahead, b.hasAhead = c, b.tiles.Tile(c) == grid.Body && b.ownsCell(c)
}

func (b *BodyPath) ownsCell(c grid.Coord) bool {
	for _, o := range b.bodies {
		if o == c {
			return true
		}
	}
	return false
}

func (b *BodyPath) releaseAhead() {
	if b.hasAhead && !b.ownsCell(b.ahead) && b.tiles.Tile(b.ahead) == grid.Body {
		b.tiles.SetTile(b.ahead, grid.Empty)
	}
	b.hasAhead = false
}

// AdvanceHead moves the head forward by d, committing to new cells as it crosses them.
func (b *BodyPath) AdvanceHead(d float64) {
	if len(b.bodies) == 0 || len(b.waypoints) == 0 {
		return
	}
	if d != 0 {
		b.hasUndo = false
	}
	b.headMove += d
	b.length += d
	for b.headMove >= b.step {
		next := b.Head().Add(b.headDir.Coord())
		b.bodies = append(b.bodies, next)
		if b.tiles.Tile(next) == grid.Empty {
			b.tiles.SetTile(next, grid.Body)
		}
		if b.input != nil {
			if turn, ok := b.input.Next(b.headDir); ok {
				b.headDir = turn
			}
		}
		b.claimAhead()

		b.waypoints[len(b.waypoints)-1] = Waypoint{Position: b.pos(next), Width: b.width}
		b.waypoints = append(b.waypoints, Waypoint{Width: b.width})
		b.headMove -= b.step
	}
	b.placeHead()
}

// AdvanceTail pulls the tail forward by d, releasing cells it leaves.
func (b *BodyPath) AdvanceTail(d float64) {
	if len(b.bodies) == 0 || len(b.waypoints) == 0 || d <= 0 {
		return
	}
	b.hasUndo = false
	b.length -= d
	for d > 0 {
		if b.tailMove+d < b.step {
			b.tailMove += d
			break
		}
		d -= b.step - b.tailMove
		tail := b.bodies[0]
		b.bodies = b.bodies[1:]
		b.waypoints = b.waypoints[1:]
		b.tailMove = 0
		if b.tiles.Tile(tail) == grid.Body && !b.ownsCell(tail) && !(b.hasAhead && b.ahead == tail) {
			b.tiles.SetTile(tail, grid.Empty)
		}
		if len(b.bodies) == 0 {
			b.releaseAhead()
			b.waypoints = nil
			b.length = 0
			return
		}
	}
	b.placeTail()
}

// UpdateMesh recomputes every waypoint from the coordinates and offsets.
func (b *BodyPath) UpdateMesh() {
	n := len(b.bodies)
	if n == 0 {
		b.waypoints = b.waypoints[:0]
		return
	}
	if len(b.waypoints) != n+1 {
		b.waypoints = make([]Waypoint, n+1)
	}
	for i := 1; i < n; i++ {
		b.waypoints[i] = Waypoint{Position: b.pos(b.bodies[i]), Width: b.width}
	}
	b.placeTail()
	b.placeHead()
}

func (b *BodyPath) placeHead() {
	tip := r2.Add(b.pos(b.Head()), r2.Scale(b.width/2+b.headMove, b.headDir.Vec()))
	b.waypoints[len(b.waypoints)-1] = Waypoint{Position: tip, Width: b.width}
}

func (b *BodyPath) placeTail() {
	tip := r2.Add(b.pos(b.bodies[0]), r2.Scale(b.tailMove-b.width/2, b.TailDir().Vec()))
	b.waypoints[0] = Waypoint{Position: tip, Width: b.width}
}

// Reverse swaps head and tail in place. Both tips keep their positions and the
// set of claimed tiles is unchanged. Reversing twice with no movement in
// between restores the offsets bit for bit.
func (b *BodyPath) Reverse() {
	if len(b.bodies) == 0 || len(b.waypoints) == 0 {
		return
	}
	heading := b.TailDir().Neg()
	ahead := b.Head().Add(b.headDir.Coord())

	// Shift the claim window: the cell ahead becomes the new tail cell and the
	// old tail cell becomes the new cell ahead.
	b.bodies = append(b.bodies[1:], ahead)
	reverseCoords(b.bodies)
	reverseWaypoints(b.waypoints)

	b.headDir = heading
	prev := [2]float64{b.headMove, b.tailMove}
	if b.hasUndo {
		b.headMove, b.tailMove = b.undo[0], b.undo[1]
	} else {
		b.headMove, b.tailMove = b.step-b.tailMove, b.step-b.headMove
	}
	b.undo, b.hasUndo = prev, true
	b.ahead = b.Head().Add(b.headDir.Coord())
	b.hasAhead = b.tiles.Tile(b.ahead) == grid.Body
	b.UpdateMesh()
}

func reverseCoords(s []grid.Coord) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseWaypoints(s []Waypoint) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Release frees every tile the body holds and empties it.
func (b *BodyPath) Release() {
	for _, c := range b.bodies {
		if b.tiles.Tile(c) == grid.Body {
			b.tiles.SetTile(c, grid.Empty)
		}
	}
	if b.hasAhead && b.tiles.Tile(b.ahead) == grid.Body {
		b.tiles.SetTile(b.ahead, grid.Empty)
	}
	b.hasAhead = false
	b.hasUndo = false
	b.bodies = b.bodies[:0]
	b.waypoints = b.waypoints[:0]
	b.headMove, b.tailMove, b.length = 0, 0, 0
}

// Empty reports whether every coordinate has been released.
func (b *BodyPath) Empty() bool { return len(b.bodies) == 0 }

// Head returns the head cell. It panics on an empty body.
func (b *BodyPath) Head() grid.Coord { return b.bodies[len(b.bodies)-1] }

// Tail returns the tail cell. It panics on an empty body.
func (b *BodyPath) Tail() grid.Coord { return b.bodies[0] }

// HeadDir returns the current heading.
func (b *BodyPath) HeadDir() Direction { return b.headDir }

// TailDir returns the direction the tail moves in.
func (b *BodyPath) TailDir() Direction {
	if len(b.bodies) < 2 {
		return b.headDir
	}
	if d, ok := between(b.bodies[0], b.bodies[1]); ok {
		return d
	}
	return b.headDir
}

// Ahead returns the cell in front of the head and whether the body holds it.
func (b *BodyPath) Ahead() (grid.Coord, bool) { return b.ahead, b.hasAhead }

// HeadMove returns the fractional head offset into the next cell.
func (b *BodyPath) HeadMove() float64 { return b.headMove }

// TailMove returns the fractional tail offset.
func (b *BodyPath) TailMove() float64 { return b.tailMove }

// Length returns the continuous body length.
func (b *BodyPath) Length() float64 { return b.length }

// Step returns the world size of one cell.
func (b *BodyPath) Step() float64 { return b.step }

// Width returns the body width.
func (b *BodyPath) Width() float64 { return b.width }

// Bodies returns a copy of the coordinates, tail first.
func (b *BodyPath) Bodies() []grid.Coord {
	out := make([]grid.Coord, len(b.bodies))
	copy(out, b.bodies)
	return out
}

// Waypoints returns a copy of the polyline, tail first.
func (b *BodyPath) Waypoints() []Waypoint {
	out := make([]Waypoint, len(b.waypoints))
	copy(out, b.waypoints)
	return out
}

// HeadTip returns the world position of the leading edge of the head.
func (b *BodyPath) HeadTip() r2.Vec {
	if len(b.waypoints) == 0 {
		return r2.Vec{}
	}
	return b.waypoints[len(b.waypoints)-1].Position
}

// HeadCenter returns the interpolated center of the head.
func (b *BodyPath) HeadCenter() r2.Vec {
	if len(b.bodies) == 0 {
		return r2.Vec{}
	}
	return r2.Add(b.pos(b.Head()), r2.Scale(b.headMove, b.headDir.Vec()))
}
