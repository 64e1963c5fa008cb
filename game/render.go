package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snake/grid"
	"github.com/pthm-cable/snake/snake"
	"github.com/pthm-cable/snake/ui"
)

var (
	colorFloor   = rl.Color{R: 24, G: 28, B: 34, A: 255}
	colorWall    = rl.Color{R: 70, G: 78, B: 90, A: 255}
	colorClaimed  = rl.Color{R: 40, G: 60, B: 48, A: 255}
	colorBody    = rl.Color{R: 90, G: 200, B: 110, A: 255}
	colorDying   = rl.Color{R: 200, G: 90, B: 80, A: 255}
)

const controlsLegend = "Arrows/WASD/drag: turn | Space: pause | R: restart | P: autopilot | </>: speed | wheel: zoom"

var foodColors = map[string]rl.Color{
	"food":      {R: 230, G: 80, B: 80, A: 255},
	"color":     {R: 220, G: 120, B: 230, A: 255},
	"boost":     {R: 250, G: 200, B: 60, A: 255},
	"blackhole": {R: 120, G: 90, B: 220, A: 255},
}

// Update handles input and advances the simulation for one rendered frame.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.Step(g.cfg.Physics.DT)
		}
	}

	if !g.snake.Body().Empty() {
		c := g.snake.Body().HeadCenter()
		g.camera.Follow(float32(c.X), float32(c.Y), rl.GetFrameTime())
	}
}

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawTiles()
	g.drawFoods()
	g.drawBody()

	g.hud.Draw(ui.HUDData{
		Title:          "Snake",
		Session:        g.session,
		State:          g.snake.State().String(),
		Length:         g.snake.Body().Length(),
		ActualLength:   g.snake.ActualLength(),
		Score:          g.sessionScore,
		Speed:          g.snake.Speed(),
		BaseSpeed:      g.cfg.Snake.Speed,
		Boosting:       g.snake.Boosting(),
		Foods:          g.foods.Count(),
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Autopilot:      g.pilot != nil,
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	if g.lastEnd != nil && g.snake.State() == snake.Dead {
		if g.hud.DrawGameOver(int32(g.screenWidth), int32(g.screenHeight), *g.lastEnd) {
			g.Restart()
		}
	}

	rl.EndDrawing()
}

// drawTiles fills the floor and draws walls and claimed cells.
func (g *Game) drawTiles() {
	step := float32(g.cfg.Snake.Step)
	half := step / 2
	x0, y0 := g.camera.WorldToScreen(-half, float32(g.arena.Height-1)*step+half)
	size := g.camera.WorldLength(step)
	rl.DrawRectangleV(rl.Vector2{X: x0, Y: y0},
		rl.Vector2{X: size * float32(g.arena.Width), Y: size * float32(g.arena.Height)}, colorFloor)

	g.arena.Each(func(c grid.Coord, t grid.Tile) {
		wx, wy := float32(c.X)*step, float32(c.Y)*step
		if !g.camera.IsVisible(wx, wy, step) {
			return
		}
		color := colorWall
		if t == grid.Body {
			color = colorClaimed
		}
		sx, sy := g.camera.WorldToScreen(wx-half, wy+half)
		rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, color)
	})
}

func (g *Game) drawFoods() {
	for _, f := range g.foods.Foods() {
		if !g.camera.IsVisible(float32(f.Position.X), float32(f.Position.Y), 1) {
			continue
		}
		color, ok := foodColors[f.Kind]
		if !ok {
			color = rl.White
		}
		// Fade out over the last third of the lifetime.
		if f.Remaining < 1.0/3 {
			color.A = uint8(80 + 175*f.Remaining*3)
		}
		sx, sy := g.camera.WorldToScreen(float32(f.Position.X), float32(f.Position.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, g.camera.WorldLength(float32(f.Size*g.cfg.Snake.Step))/2, color)
	}
}

// drawBody draws the waypoint polyline with round joints.
func (g *Game) drawBody() {
	wps := g.snake.Body().Waypoints()
	if len(wps) == 0 {
		return
	}
	color := colorBody
	if g.snake.State() != snake.Alive {
		color = colorDying
	}
	prev := rl.Vector2{}
	for i, w := range wps {
		sx, sy := g.camera.WorldToScreen(float32(w.Position.X), float32(w.Position.Y))
		p := rl.Vector2{X: sx, Y: sy}
		thick := g.camera.WorldLength(float32(w.Width))
		if i > 0 {
			rl.DrawLineEx(prev, p, thick, color)
		}
		rl.DrawCircleV(p, thick/2, color)
		prev = p
	}
}
