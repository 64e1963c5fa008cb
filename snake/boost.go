package snake

import "math"

// BoostConfig shapes the speed timeline played after eating boost food.
type BoostConfig struct {
	RampUp float64
	Hold   float64
	End    float64
	Extra  float64
}

// DefaultBoostConfig returns a 1s ramp to sqrt(v²+10), held until 8s, back to base at 10s.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{RampUp: 1, Hold: 8, End: 10, Extra: 10}
}

// Keyframe is a speed at a point on the timeline.
type Keyframe struct {
	At    float64
	Speed float64
}

// Boost plays a piecewise linear speed timeline.
type Boost struct {
	cfg     BoostConfig
	frames  []Keyframe
	elapsed float64
	active  bool
}

// NewBoost creates an idle boost.
func NewBoost(cfg BoostConfig) *Boost {
	return &Boost{cfg: cfg}
}

// Start (re)starts the timeline from the current speed, settling on base.
func (b *Boost) Start(current, base float64) {
	peak := math.Sqrt(current*current + b.cfg.Extra)
	b.frames = []Keyframe{
		{At: 0, Speed: current},
		{At: b.cfg.RampUp, Speed: peak},
		{At: b.cfg.Hold, Speed: peak},
		{At: b.cfg.End, Speed: base},
	}
	b.elapsed = 0
	b.active = true
}

// Stop abandons the timeline.
func (b *Boost) Stop() {
	b.active = false
	b.elapsed = 0
}

// Active reports whether a timeline is playing.
func (b *Boost) Active() bool { return b.active }

// Advance moves the timeline forward by dt and returns the speed at the new time.
// The timeline deactivates once it passes the last keyframe.
func (b *Boost) Advance(dt float64) float64 {
	if !b.active {
		return 0
	}
	b.elapsed += dt
	last := b.frames[len(b.frames)-1]
	if b.elapsed >= last.At {
		b.active = false
		return last.Speed
	}
	return b.At(b.elapsed)
}

// At samples the timeline at t seconds.
func (b *Boost) At(t float64) float64 {
	if len(b.frames) == 0 {
		return 0
	}
	if t <= b.frames[0].At {
		return b.frames[0].Speed
	}
	for i := 1; i < len(b.frames); i++ {
		k0, k1 := b.frames[i-1], b.frames[i]
		if t > k1.At {
			continue
		}
		span := k1.At - k0.At
		if span <= 0 {
			return k1.Speed
		}
		return k0.Speed + (k1.Speed-k0.Speed)*(t-k0.At)/span
	}
	return b.frames[len(b.frames)-1].Speed
}
