package game

import (
	"sort"

	"github.com/pthm-cable/snake/grid"
	"github.com/pthm-cable/snake/snake"
	"github.com/pthm-cable/snake/systems"
)

const autopilotMaxIterations = 4000

// Autopilot steers a snake toward the nearest reachable food. Plans start at
// the cell ahead of the head because a queued turn applies on entering it.
type Autopilot struct {
	planner *systems.AStarPlanner
	targets []systems.FoodView

	planned    grid.Coord
	plannedDir snake.Direction
	hasPlanned bool
}

// NewAutopilot creates an autopilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{planner: systems.NewAStarPlanner()}
}

// Steer queues at most one turn. It does nothing while a turn is pending.
func (a *Autopilot) Steer(s *snake.Snake, tiles grid.Map, foods []systems.FoodView) {
	if s.State() != snake.Alive || s.PendingInputs() > 0 || s.Body().Empty() {
		return
	}
	body := s.Body()
	heading := body.HeadDir()
	from, _ := body.Ahead()
	if a.hasPlanned && a.planned == from && a.plannedDir == heading {
		return
	}
	a.planned, a.plannedDir, a.hasPlanned = from, heading, true

	passable := func(c grid.Coord) bool { return tiles.Tile(c) == grid.Empty }

	want, ok := a.towardFood(from, foods, passable)
	if !ok {
		if passable(from.Add(heading.Coord())) {
			return
		}
		want, ok = escape(from, heading, passable)
		if !ok {
			return
		}
	}
	if want != heading && want.Dot(heading) == 0 {
		s.Input(want)
	}
}

// towardFood returns the first step of the shortest path to the nearest
// reachable food.
func (a *Autopilot) towardFood(from grid.Coord, foods []systems.FoodView, passable func(grid.Coord) bool) (snake.Direction, bool) {
	a.targets = append(a.targets[:0], foods...)
	sort.Slice(a.targets, func(i, j int) bool {
		return distance(from, a.targets[i].Cell) < distance(from, a.targets[j].Cell)
	})
	for _, f := range a.targets {
		if f.Cell == from {
			continue
		}
		path := a.planner.FindPath(from, f.Cell, passable, autopilotMaxIterations)
		if len(path) < 2 {
			continue
		}
		d := snake.Direction{X: path[1].X - from.X, Y: path[1].Y - from.Y}
		return d, true
	}
	return snake.Direction{}, false
}

// escape picks the perpendicular turn with the most open neighbours.
func escape(from grid.Coord, heading snake.Direction, passable func(grid.Coord) bool) (snake.Direction, bool) {
	best, bestScore := snake.Direction{}, -1
	for _, d := range []snake.Direction{{X: heading.Y, Y: heading.X}, {X: -heading.Y, Y: -heading.X}} {
		next := from.Add(d.Coord())
		if !passable(next) {
			continue
		}
		score := 0
		for _, n := range []snake.Direction{snake.Right, snake.Left, snake.Up, snake.Down} {
			if passable(next.Add(n.Coord())) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best, bestScore >= 0
}

func distance(a, b grid.Coord) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
