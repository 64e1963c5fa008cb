package game

import (
	"testing"

	"github.com/pthm-cable/snake/grid"
	"github.com/pthm-cable/snake/snake"
	"github.com/pthm-cable/snake/systems"
)

// Head at (3,0) facing right, so plans start from (4,0).
func newPilotSnake(tiles grid.Map) *snake.Snake {
	return snake.New(tiles, grid.Coord{X: 3, Y: 0}, snake.Right, 1, snake.DefaultConfig())
}

// enterAhead steps until the head has entered the cell ahead.
func enterAhead(s *snake.Snake) {
	for i := 0; i < 25; i++ {
		s.Step(1.0 / 60)
	}
}

func TestAutopilotSteer(t *testing.T) {
	tests := []struct {
		name    string
		blocked []grid.Coord
		foods   []grid.Coord
		queued  int
		heading snake.Direction
	}{
		{"food straight ahead", nil, []grid.Coord{{X: 8, Y: 0}}, 0, snake.Right},
		{"food above", nil, []grid.Coord{{X: 4, Y: 3}}, 1, snake.Up},
		{"food behind and below", nil, []grid.Coord{{X: 0, Y: -3}}, 1, snake.Down},
		{"wall ahead without food", []grid.Coord{{X: 5, Y: 0}}, nil, 1, snake.Up},
		{"open field without food", nil, nil, 0, snake.Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := grid.NewSparse()
			for _, c := range tt.blocked {
				tiles.SetTile(c, grid.Blocked)
			}
			s := newPilotSnake(tiles)
			var foods []systems.FoodView
			for _, c := range tt.foods {
				foods = append(foods, systems.FoodView{Cell: c, Kind: "food"})
			}

			NewAutopilot().Steer(s, tiles, foods)

			if got := s.PendingInputs(); got != tt.queued {
				t.Fatalf("queued %d turns, want %d", got, tt.queued)
			}
			enterAhead(s)
			if got := s.Body().HeadDir(); got != tt.heading {
				t.Errorf("heading = %v, want %v", got, tt.heading)
			}
		})
	}
}

func TestAutopilotWaitsForPendingTurn(t *testing.T) {
	tiles := grid.NewSparse()
	s := newPilotSnake(tiles)
	s.Input(snake.Down)

	NewAutopilot().Steer(s, tiles, []systems.FoodView{{Cell: grid.Coord{X: 4, Y: 3}}})

	if got := s.PendingInputs(); got != 1 {
		t.Errorf("queued %d turns, want the player's single turn", got)
	}
}
