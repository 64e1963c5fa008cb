package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	eats          int
	scoreGained   int
	boosts        int
	blackHoles    int
	deaths        int
	sessionsEnded int
	finalLengths  []float64

	// Input counters are cumulative in the snake; windows store deltas.
	lastAccepted int
	lastDropped  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record folds a game event into the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventEat:
		c.eats++
		c.scoreGained += ev.Score
		switch ev.Food {
		case "boost":
			c.boosts++
		case "blackhole":
			c.blackHoles++
		}
	case EventDeath:
		c.deaths++
	case EventSessionEnd:
		c.sessionsEnded++
		c.finalLengths = append(c.finalLengths, ev.Length)
	}
}

// ResetInputBaseline restarts turn counting, used when a new snake is created.
func (c *Collector) ResetInputBaseline() {
	c.lastAccepted = 0
	c.lastDropped = 0
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot is the live state sampled at window end.
type Snapshot struct {
	Session       int
	Length        float64
	ActualLength  float64
	Speed         float64
	Distance      float64
	TurnsAccepted int // cumulative for the current snake
	TurnsDropped  int // cumulative for the current snake
	FoodsOnField  int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	mean, p50, p90 := ComputeLengthStats(c.finalLengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Session:      snap.Session,
		Length:       snap.Length,
		ActualLength: snap.ActualLength,
		Speed:        snap.Speed,
		Distance:     snap.Distance,
		FoodsOnField: snap.FoodsOnField,

		Eats:        c.eats,
		ScoreGained: c.scoreGained,
		Boosts:      c.boosts,
		BlackHoles:  c.blackHoles,
		Deaths:      c.deaths,

		TurnsAccepted: snap.TurnsAccepted - c.lastAccepted,
		TurnsDropped:  snap.TurnsDropped - c.lastDropped,

		SessionsEnded:   c.sessionsEnded,
		FinalLengthMean: mean,
		FinalLengthP50:  p50,
		FinalLengthP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.eats = 0
	c.scoreGained = 0
	c.boosts = 0
	c.blackHoles = 0
	c.deaths = 0
	c.sessionsEnded = 0
	c.finalLengths = c.finalLengths[:0]
	c.lastAccepted = snap.TurnsAccepted
	c.lastDropped = snap.TurnsDropped

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
