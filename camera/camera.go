// Package camera provides a 2D follow camera for the viewer.
//
// World space is y-up and measured in cells; screen space is y-down pixels.
package camera

import "math"

// Camera controls the viewport into the arena.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom multiplies Scale (1.0 = Scale pixels per world unit)
	Zoom  float32
	Scale float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World bounds the center is kept inside
	MinX, MinY, MaxX, MaxY float32

	// Damping is the follow rate in 1/s; 0 snaps to the target.
	Damping float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on a world spanning [0, worldW] x [0, worldH].
func New(viewportW, viewportH, worldW, worldH, scale float32) *Camera {
	if scale <= 0 {
		scale = 1
	}
	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		Scale:     scale,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MaxX:      worldW,
		MaxY:      worldH,
		Damping:   6,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

func (c *Camera) ppu() float32 { return c.Scale * c.Zoom }

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.ppu()
	sy = c.ViewportH/2 - (wy-c.Y)*c.ppu()
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.ppu()
	wy = c.Y - (sy-c.ViewportH/2)/c.ppu()
	return wx, wy
}

// WorldLength converts a world distance to pixels.
func (c *Camera) WorldLength(d float32) float32 { return d * c.ppu() }

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.ppu()) + radius
	halfH := c.ViewportH/(2*c.ppu()) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Follow moves the center toward (tx, ty) with exponential damping and keeps
// it inside the world bounds.
func (c *Camera) Follow(tx, ty, dt float32) {
	if c.Damping <= 0 || dt <= 0 {
		c.X, c.Y = tx, ty
	} else {
		k := 1 - float32(math.Exp(-float64(c.Damping*dt)))
		c.X += (tx - c.X) * k
		c.Y += (ty - c.Y) * k
	}
	c.clampCenter()
}

// clampCenter keeps the view inside the world when the world is larger than
// the view, and centers the world otherwise.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.ppu())
	halfH := c.ViewportH / (2 * c.ppu())
	c.X = clampAxis(c.X, c.MinX, c.MaxX, halfW)
	c.Y = clampAxis(c.Y, c.MinY, c.MaxY, halfH)
}

func clampAxis(v, lo, hi, half float32) float32 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return clamp(v, lo+half, hi-half)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.ppu()
	c.Y -= dy / c.ppu()
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the world center at zoom 1.
func (c *Camera) Reset() {
	c.X = (c.MinX + c.MaxX) / 2
	c.Y = (c.MinY + c.MaxY) / 2
	c.Zoom = 1.0
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
