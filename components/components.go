// Package components defines ECS components for the game.
package components

import "github.com/pthm-cable/snake/chain"

// Cell is the grid cell an entity occupies.
type Cell struct {
	X, Y int
}

// Position is the world position of an entity's cell center.
type Position struct {
	X, Y float32
}

// Food holds pickup data. Kind indexes the configured food kinds.
type Food struct {
	Kind     uint8
	Score    int
	Size     float32 // box size in cells
	Identity chain.Hash
}

// Lifetime counts down to removal. Total of zero never expires.
type Lifetime struct {
	Remaining float32
	Total     float32
}

// Fraction returns the share of the lifetime left, 1 for immortal entities.
func (l Lifetime) Fraction() float32 {
	if l.Total <= 0 {
		return 1
	}
	return l.Remaining / l.Total
}
