package camera

import (
	"math"
	"testing"
)

// 40x30 cell world at 32 px per cell seen through a 640x480 viewport:
// the view spans 20x15 cells.
func newTestCamera() *Camera {
	return New(640, 480, 40, 30, 32)
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if cam.X != 20 || cam.Y != 15 {
		t.Errorf("expected camera at (20, 15), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := newTestCamera()

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"center", 20, 15, 320, 240},
		{"right", 21, 15, 352, 240},
		{"up is screen up", 20, 16, 320, 208},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{320, 240},
		{10, 10},
		{600, 450},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestFollowSnapsAndClamps(t *testing.T) {
	cam := newTestCamera()
	cam.Damping = 0

	cam.Follow(25, 20, 1.0/60)
	if cam.X != 25 || cam.Y != 20 {
		t.Errorf("expected (25, 20), got (%f, %f)", cam.X, cam.Y)
	}

	// Half the view is 10x7.5 cells, so the corner clamps there.
	cam.Follow(0, 0, 1.0/60)
	if cam.X != 10 || cam.Y != 7.5 {
		t.Errorf("expected clamp to (10, 7.5), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestFollowDamped(t *testing.T) {
	cam := newTestCamera()

	cam.Follow(25, 15, 1.0/60)
	if cam.X <= 20 || cam.X >= 25 {
		t.Errorf("damped follow should move part way, got X=%f", cam.X)
	}

	for i := 0; i < 600; i++ {
		cam.Follow(25, 15, 1.0/60)
	}
	if !near(cam.X, 25) {
		t.Errorf("follow should converge, got X=%f", cam.X)
	}
}

func TestSmallWorldStaysCentered(t *testing.T) {
	cam := New(640, 480, 10, 10, 32)
	cam.Damping = 0

	cam.Follow(9, 1, 1.0/60)
	if cam.X != 5 || cam.Y != 5 {
		t.Errorf("expected world center (5, 5), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(0.1)
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()

	if !cam.IsVisible(20, 15, 0.5) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(39, 29, 0.5) {
		t.Error("far corner should not be visible")
	}
	if !cam.IsVisible(10.2, 15, 0.5) {
		t.Error("edge point with radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.X = 12
	cam.Y = 9
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 20 || cam.Y != 15 {
		t.Errorf("expected position (20, 15), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
