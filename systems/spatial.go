// Package systems provides ECS systems for the game.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snake/grid"
)

// CellIndex maps grid cells to the entity standing on them.
type CellIndex struct {
	cells map[grid.Coord]ecs.Entity
}

// NewCellIndex creates an empty index.
func NewCellIndex() *CellIndex {
	return &CellIndex{cells: make(map[grid.Coord]ecs.Entity)}
}

// Insert records e at c, replacing any previous entry.
func (ix *CellIndex) Insert(c grid.Coord, e ecs.Entity) {
	ix.cells[c] = e
}

// Remove forgets whatever stands at c.
func (ix *CellIndex) Remove(c grid.Coord) {
	delete(ix.cells, c)
}

// At returns the entity at c.
func (ix *CellIndex) At(c grid.Coord) (ecs.Entity, bool) {
	e, ok := ix.cells[c]
	return e, ok
}

// Has reports whether anything stands at c.
func (ix *CellIndex) Has(c grid.Coord) bool {
	_, ok := ix.cells[c]
	return ok
}

// Len returns the number of indexed cells.
func (ix *CellIndex) Len() int { return len(ix.cells) }

// Clear removes every entry.
func (ix *CellIndex) Clear() {
	for c := range ix.cells {
		delete(ix.cells, c)
	}
}

// QueryRadius appends the entities within r cells (Chebyshev distance) of
// center to out and returns it.
func (ix *CellIndex) QueryRadius(center grid.Coord, r int, out []ecs.Entity) []ecs.Entity {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if e, ok := ix.cells[center.Add(grid.Coord{X: dx, Y: dy})]; ok {
				out = append(out, e)
			}
		}
	}
	return out
}
