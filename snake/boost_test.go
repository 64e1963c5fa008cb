package snake

import (
	"math"
	"testing"
)

func TestBoostTimeline(t *testing.T) {
	b := NewBoost(DefaultBoostConfig())
	b.Start(3, 3)
	peak := math.Sqrt(19)

	tests := []struct {
		at   float64
		want float64
	}{
		{0, 3},
		{0.5, (3 + peak) / 2},
		{1, peak},
		{5, peak},
		{9, (peak + 3) / 2},
		{10, 3},
		{12, 3},
	}
	for _, tt := range tests {
		if got := b.At(tt.at); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%v): expected %f, got %f", tt.at, tt.want, got)
		}
	}

	if v := b.Advance(4); math.Abs(v-peak) > 1e-9 || !b.Active() {
		t.Errorf("expected peak while active, got %f (%v)", v, b.Active())
	}
	if v := b.Advance(7); v != 3 || b.Active() {
		t.Errorf("expected base and inactive, got %f (%v)", v, b.Active())
	}
}

func TestBoostRestart(t *testing.T) {
	b := NewBoost(DefaultBoostConfig())
	b.Start(3, 3)
	b.Advance(5)
	current := b.At(5)
	b.Start(current, 3)
	if got := b.At(1); math.Abs(got-math.Sqrt(current*current+10)) > 1e-9 {
		t.Errorf("restart should ramp from the current speed, got %f", got)
	}
}
