package telemetry

import (
	"testing"

	"github.com/pthm-cable/snake/chain"
)

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(1, 0.25)
	if got := c.WindowDurationTicks(); got != 4 {
		t.Fatalf("WindowDurationTicks = %d, want 4", got)
	}
	if c.ShouldFlush(3) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(4) {
		t.Error("no flush at window end")
	}
	c.Flush(4, Snapshot{})
	if c.ShouldFlush(7) {
		t.Error("flush before second window end")
	}
	if !c.ShouldFlush(8) {
		t.Error("no flush at second window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 0.5)

	c.Record(NewEatEvent(1, 0, 1, 2, "food", 1, 5, chain.Hash{}))
	c.Record(NewEatEvent(2, 0, 1, 2, "color", 3, 8, chain.Hash{}))
	c.Record(NewEatEvent(3, 0, 1, 2, "boost", 0, 8, chain.Hash{}))
	c.Record(NewEatEvent(4, 0, 1, 2, "blackhole", 0, 8, chain.Hash{}))
	c.Record(NewDeathEvent(5, 0, "self", 8))
	c.Record(NewSessionEndEvent(6, 0, SessionEnd{FinalLength: 8}))

	stats := c.Flush(20, Snapshot{Session: 1, TurnsAccepted: 5, TurnsDropped: 2, FoodsOnField: 3})

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"eats", stats.Eats, 4},
		{"score", stats.ScoreGained, 4},
		{"boosts", stats.Boosts, 1},
		{"black holes", stats.BlackHoles, 1},
		{"deaths", stats.Deaths, 1},
		{"sessions ended", stats.SessionsEnded, 1},
		{"turns accepted", stats.TurnsAccepted, 5},
		{"turns dropped", stats.TurnsDropped, 2},
		{"foods", stats.FoodsOnField, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
	if stats.FinalLengthMean != 8 {
		t.Errorf("FinalLengthMean = %v, want 8", stats.FinalLengthMean)
	}
	if stats.SimTimeSec != 10 {
		t.Errorf("SimTimeSec = %v, want 10", stats.SimTimeSec)
	}

	next := c.Flush(40, Snapshot{Session: 1, TurnsAccepted: 6, TurnsDropped: 2})
	if next.Eats != 0 || next.SessionsEnded != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.TurnsAccepted != 1 || next.TurnsDropped != 0 {
		t.Errorf("turn deltas = %d/%d, want 1/0", next.TurnsAccepted, next.TurnsDropped)
	}
	if next.WindowStartTick != 20 {
		t.Errorf("WindowStartTick = %d, want 20", next.WindowStartTick)
	}
}

func TestCollectorInputBaselineReset(t *testing.T) {
	c := NewCollector(10, 0.5)
	c.Flush(20, Snapshot{TurnsAccepted: 9})
	c.ResetInputBaseline()

	stats := c.Flush(40, Snapshot{TurnsAccepted: 2})
	if stats.TurnsAccepted != 2 {
		t.Errorf("TurnsAccepted = %d, want 2", stats.TurnsAccepted)
	}
}
