package grid

import "golang.org/x/exp/rand"

// Arena is a rectangular playfield surrounded by a wall of Blocked tiles.
// Playable cells span [0, Width) x [0, Height).
type Arena struct {
	*Sparse
	Width  int
	Height int
}

// NewArena builds the border walls and scatters single-cell obstacles.
// Cells listed in reserved (and their direct neighbours) never receive an obstacle.
func NewArena(width, height, obstacles int, rng *rand.Rand, reserved []Coord) *Arena {
	a := &Arena{Sparse: NewSparse(), Width: width, Height: height}

	for x := -1; x <= width; x++ {
		a.SetTile(Coord{X: x, Y: -1}, Blocked)
		a.SetTile(Coord{X: x, Y: height}, Blocked)
	}
	for y := 0; y < height; y++ {
		a.SetTile(Coord{X: -1, Y: y}, Blocked)
		a.SetTile(Coord{X: width, Y: y}, Blocked)
	}

	keep := make(map[Coord]bool, len(reserved)*5)
	for _, c := range reserved {
		keep[c] = true
		for _, d := range []Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			keep[c.Add(d)] = true
		}
	}

	if rng == nil || width <= 0 || height <= 0 {
		return a
	}
	// Bounded retries so a crowded arena cannot spin forever.
	for placed, tries := 0, 0; placed < obstacles && tries < obstacles*20; tries++ {
		c := Coord{X: rng.Intn(width), Y: rng.Intn(height)}
		if keep[c] || a.Tile(c) != Empty {
			continue
		}
		a.SetTile(c, Blocked)
		placed++
	}
	return a
}

// Contains reports whether c is a playable cell.
func (a *Arena) Contains(c Coord) bool {
	return c.X >= 0 && c.X < a.Width && c.Y >= 0 && c.Y < a.Height
}

// RandomEmpty picks a playable Empty cell accepted by ok, or false after a bounded search.
func (a *Arena) RandomEmpty(rng *rand.Rand, ok func(Coord) bool) (Coord, bool) {
	if a.Width <= 0 || a.Height <= 0 {
		return Coord{}, false
	}
	for tries := 0; tries < 64; tries++ {
		c := Coord{X: rng.Intn(a.Width), Y: rng.Intn(a.Height)}
		if a.Tile(c) == Empty && (ok == nil || ok(c)) {
			return c, true
		}
	}
	// Fall back to a scan from a random offset.
	start := rng.Intn(a.Width * a.Height)
	for i := 0; i < a.Width*a.Height; i++ {
		idx := (start + i) % (a.Width * a.Height)
		c := Coord{X: idx % a.Width, Y: idx / a.Width}
		if a.Tile(c) == Empty && (ok == nil || ok(c)) {
			return c, true
		}
	}
	return Coord{}, false
}
