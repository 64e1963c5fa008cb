package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Session        int
	State          string
	Length         float64
	ActualLength   float64
	Score          int
	Speed          float64
	BaseSpeed      float64
	Boosting       bool
	Foods          int
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Autopilot      bool
}

// GameOverData is shown once a session reaches Dead.
type GameOverData struct {
	Cause       string
	FinalLength int
	Eats        int
	Blocks      int
	ChainHead   string
}

// HUD renders the heads-up display and the game-over panel.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    220,
	}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	x, y := pad, pad

	r.DrawPanel(x-4, y-4, h.width, 9*r.Theme.LineHeight+r.Theme.HeaderFontSize+pad)
	rl.DrawText(data.Title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.HeaderFontSize + 4

	y = r.DrawLabelValue(x, y, "Session", fmt.Sprintf("%d", data.Session))
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawLabelValue(x, y, "Length", fmt.Sprintf("%.2f / %.0f", data.Length, data.ActualLength))
	y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", data.Score))
	y = r.DrawLabelValue(x, y, "Foods", fmt.Sprintf("%d", data.Foods))

	fill := r.Theme.BarFill
	if data.Boosting {
		fill = r.Theme.BarFillBoost
	}
	ratio := float32(0.5)
	if data.BaseSpeed > 0 {
		// Base speed fills half the bar.
		ratio = float32(data.Speed / data.BaseSpeed / 2)
	}
	y = r.DrawBar(x, y, "Speed", ratio, h.width-2*pad, fill)

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d (%dx)", data.Tick, data.StepsPerUpdate))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))

	status := "Running"
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Autopilot:
		status = "Autopilot"
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawGameOver renders the centered game-over panel and reports whether the
// restart button was pressed.
func (h *HUD) DrawGameOver(screenWidth, screenHeight int32, data GameOverData) bool {
	r := h.renderer
	const w, ht = 320, 190
	x := (screenWidth - w) / 2
	y := (screenHeight - ht) / 2

	r.DrawPanel(x, y, w, ht)
	pad := r.Theme.Padding
	tx, ty := x+pad, y+pad

	rl.DrawText("GAME OVER", tx, ty, r.Theme.HeaderFontSize, rl.Red)
	ty += r.Theme.HeaderFontSize + 6
	ty = r.DrawLabelValue(tx, ty, "Cause", data.Cause)
	ty = r.DrawLabelValue(tx, ty, "Length", fmt.Sprintf("%d", data.FinalLength))
	ty = r.DrawLabelValue(tx, ty, "Eaten", fmt.Sprintf("%d", data.Eats))
	ty = r.DrawLabelValue(tx, ty, "Blocks", fmt.Sprintf("%d", data.Blocks))

	head := data.ChainHead
	if len(head) > 16 {
		head = head[:16]
	}
	gui.Label(rl.Rectangle{X: float32(tx), Y: float32(ty), Width: float32(w - 2*pad), Height: 20}, "Chain head "+head)

	return gui.Button(rl.Rectangle{X: float32(x + pad), Y: float32(y + ht - 40), Width: float32(w - 2*pad), Height: 30}, "Restart")
}
