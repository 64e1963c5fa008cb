// Package grid provides the tile map the snake moves on.
package grid

import "math"

// Tile is the occupancy state of a single cell.
type Tile uint8

const (
	Empty Tile = iota
	Body
	Blocked
)

// String returns the tile name used in logs and frames.
func (t Tile) String() string {
	switch t {
	case Body:
		return "body"
	case Blocked:
		return "blocked"
	default:
		return "empty"
	}
}

// Coord is an integer cell address.
type Coord struct {
	X, Y int
}

// Add returns c offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c - d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{X: c.X - d.X, Y: c.Y - d.Y}
}

// Round returns the cell whose center is nearest to (x, y).
func Round(x, y float64) Coord {
	return Coord{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// Map is the tile store shared between the simulation and the map owner.
type Map interface {
	Tile(c Coord) Tile
	SetTile(c Coord, t Tile)
}

// Sparse is a Map backed by a hash map. Cells never written are Empty.
type Sparse struct {
	tiles map[Coord]Tile
}

// NewSparse creates an empty sparse map.
func NewSparse() *Sparse {
	return &Sparse{tiles: make(map[Coord]Tile)}
}

// Tile returns the state of c.
func (s *Sparse) Tile(c Coord) Tile {
	return s.tiles[c]
}

// SetTile writes the state of c. Writing Empty drops the entry.
func (s *Sparse) SetTile(c Coord, t Tile) {
	if t == Empty {
		delete(s.tiles, c)
		return
	}
	s.tiles[c] = t
}

// Count returns the number of cells in state t. Empty is not counted.
func (s *Sparse) Count(t Tile) int {
	n := 0
	for _, v := range s.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty cell.
func (s *Sparse) Each(fn func(c Coord, t Tile)) {
	for c, t := range s.tiles {
		fn(c, t)
	}
}
