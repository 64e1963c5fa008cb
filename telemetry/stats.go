package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Snake state at window end
	Session      int     `csv:"session"`
	Length       float64 `csv:"length"`
	ActualLength float64 `csv:"actual_length"`
	Speed        float64 `csv:"speed"`
	Distance     float64 `csv:"distance"`
	FoodsOnField int     `csv:"foods"`

	// Events during window
	Eats        int `csv:"eats"`
	ScoreGained int `csv:"score"`
	Boosts      int `csv:"boosts"`
	BlackHoles  int `csv:"black_holes"`
	Deaths      int `csv:"deaths"`

	// Input
	TurnsAccepted int `csv:"turns_accepted"`
	TurnsDropped  int `csv:"turns_dropped"`

	// Sessions that reached Dead during the window
	SessionsEnded   int     `csv:"sessions_ended"`
	FinalLengthMean float64 `csv:"final_length_mean"`
	FinalLengthP50  float64 `csv:"final_length_p50"`
	FinalLengthP90  float64 `csv:"final_length_p90"`
}

// SessionStats summarises one snake from spawn to Dead.
type SessionStats struct {
	Session     int     `csv:"session"`
	StartTick   int32   `csv:"start_tick"`
	EndTick     int32   `csv:"end_tick"`
	Cause       string  `csv:"cause"`
	FinalLength int     `csv:"final_length"`
	Eats        int     `csv:"eats"`
	Score       int     `csv:"score"`
	Distance    float64 `csv:"distance"`
	ChainHead   string  `csv:"chain_head"`
}

// EatRecord is one row of eats.csv.
type EatRecord struct {
	Session int     `csv:"session"`
	Tick    int32   `csv:"tick"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Food    string  `csv:"food"`
	Score   int     `csv:"score"`
	Length  float64 `csv:"length"`
	Block   string  `csv:"block"`
}

// NewEatRecord flattens an eat event for CSV output.
func NewEatRecord(ev Event) EatRecord {
	return EatRecord{
		Session: ev.Session,
		Tick:    ev.Tick,
		X:       ev.X,
		Y:       ev.Y,
		Food:    ev.Food,
		Score:   ev.Score,
		Length:  ev.Length,
		Block:   ev.Block.String(),
	}
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLengthStats calculates the mean, median and 90th percentile of final lengths.
func ComputeLengthStats(values []float64) (mean, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("session", s.Session),
		slog.Float64("length", s.Length),
		slog.Float64("actual_length", s.ActualLength),
		slog.Float64("speed", s.Speed),
		slog.Int("eats", s.Eats),
		slog.Int("deaths", s.Deaths),
		slog.Int("sessions_ended", s.SessionsEnded),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"session", s.Session,
		"length", s.Length,
		"actual_length", s.ActualLength,
		"speed", s.Speed,
		"distance", s.Distance,
		"foods", s.FoodsOnField,
		"eats", s.Eats,
		"score", s.ScoreGained,
		"boosts", s.Boosts,
		"black_holes", s.BlackHoles,
		"deaths", s.Deaths,
		"turns_accepted", s.TurnsAccepted,
		"turns_dropped", s.TurnsDropped,
		"sessions_ended", s.SessionsEnded,
		"final_length_mean", s.FinalLengthMean,
		"final_length_p50", s.FinalLengthP50,
	)
}
