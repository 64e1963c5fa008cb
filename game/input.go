package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snake/snake"
)

// swipeState tracks a mouse drag until it resolves to a turn.
type swipeState struct {
	active bool
	start  rl.Vector2
}

var turnKeys = []struct {
	keys []int32
	dir  snake.Direction
}{
	{[]int32{rl.KeyRight, rl.KeyD}, snake.Right},
	{[]int32{rl.KeyLeft, rl.KeyA}, snake.Left},
	{[]int32{rl.KeyUp, rl.KeyW}, snake.Up},
	{[]int32{rl.KeyDown, rl.KeyS}, snake.Down},
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		if g.pilot == nil {
			g.pilot = NewAutopilot()
		} else {
			g.pilot = nil
		}
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logSummary()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	for _, tk := range turnKeys {
		for _, k := range tk.keys {
			if rl.IsKeyPressed(k) {
				g.Input(tk.dir)
			}
		}
	}

	g.handleSwipe()
	g.handleCameraInput()
}

// handleSwipe turns a mouse drag into at most one turn per press.
func (g *Game) handleSwipe() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.swipe = swipeState{active: true, start: rl.GetMousePosition()}
	}
	if !g.swipe.active {
		return
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.swipe.active = false
		return
	}
	pos := rl.GetMousePosition()
	d, ok := snake.ResolveSwipe(
		float64(pos.X-g.swipe.start.X), float64(pos.Y-g.swipe.start.Y),
		float64(g.screenHeight), g.cfg.Snake.TouchThreshold,
	)
	if ok {
		g.Input(d)
		g.swipe.active = false
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}

// handleCameraInput processes zoom controls.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
