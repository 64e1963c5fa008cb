package game

import (
	"log/slog"

	"github.com/pthm-cable/snake/chain"
	"github.com/pthm-cable/snake/feed"
	"github.com/pthm-cable/snake/snake"
	"github.com/pthm-cable/snake/telemetry"
	"github.com/pthm-cable/snake/ui"
)

func (g *Game) onEat(meal snake.Meal, kind string, block chain.Hash) {
	ev := telemetry.NewEatEvent(g.tick, g.session, meal.Position.X, meal.Position.Y,
		kind, meal.Score, g.snake.ActualLength(), block)
	g.collector.Record(ev)

	if err := g.outputManager.WriteEat(telemetry.NewEatRecord(ev)); err != nil {
		slog.Error("failed to write eat", "error", err)
	}
	slog.Debug("eat",
		"session", g.session,
		"tick", g.tick,
		"food", kind,
		"score", meal.Score,
		"length", g.snake.ActualLength(),
		"block", block.String(),
	)
	g.publish(ev)
}

func (g *Game) onDeath(cause snake.DeathCause) {
	ev := telemetry.NewDeathEvent(g.tick, g.session, cause.String(), g.snake.ActualLength())
	g.collector.Record(ev)

	slog.Info("death",
		"session", g.session,
		"tick", g.tick,
		"cause", cause.String(),
		"length", g.snake.ActualLength(),
	)
	g.publish(ev)
}

// onSessionEnd publishes the transcript once the snake reaches Dead.
func (g *Game) onSessionEnd() {
	tr, err := g.snake.Transcript()
	if err != nil {
		slog.Error("transcript failed", "error", err)
		return
	}
	foods := make([]chain.Record, len(g.eaten))
	copy(foods, g.eaten)
	end := telemetry.SessionEnd{FinalLength: g.finalLength(), Transcript: tr, Foods: foods}
	cause := g.snake.Cause().String()
	head := g.snake.Chain().Head().Hash().String()

	ev := telemetry.NewSessionEndEvent(g.tick, g.session, end)
	g.collector.Record(ev)

	stats := telemetry.SessionStats{
		Session:     g.session,
		StartTick:   g.sessionStart,
		EndTick:     g.tick,
		Cause:       cause,
		FinalLength: end.FinalLength,
		Eats:        g.sessionEats,
		Score:       g.sessionScore,
		Distance:    g.snake.Distance(),
		ChainHead:   head,
	}
	if err := g.outputManager.WriteSession(stats); err != nil {
		slog.Error("failed to write session", "error", err)
	}

	st := telemetry.NewSessionTranscript(g.session, g.sessionSeed, cause, g.sessionStart, g.tick, end)
	if path, err := g.outputManager.WriteTranscript(st); err != nil {
		slog.Error("failed to write transcript", "error", err)
	} else if path != "" {
		slog.Info("transcript saved", "path", path, "session", g.session)
	}

	if g.opts.Feed != nil {
		err := g.opts.Feed.PublishSessionEnd(feed.SessionEnd{
			Session:     g.session,
			Cause:       cause,
			FinalLength: end.FinalLength,
			Transcript:  tr,
			Foods:       foods,
		})
		if err != nil {
			slog.Error("feed session end failed", "error", err)
		}
	}

	g.lastEnd = &ui.GameOverData{
		Cause:       cause,
		FinalLength: end.FinalLength,
		Eats:        g.sessionEats,
		Blocks:      len(tr),
		ChainHead:   head,
	}

	slog.Info("session end",
		"session", g.session,
		"tick", g.tick,
		"cause", cause,
		"final_length", end.FinalLength,
		"eats", g.sessionEats,
		"blocks", len(tr),
	)
	g.publish(ev)
}

// flushTelemetry writes and logs a stats window when one is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	in := g.snake.InputStats()
	stats := g.collector.Flush(g.tick, telemetry.Snapshot{
		Session:       g.session,
		Length:        g.snake.Body().Length(),
		ActualLength:  g.snake.ActualLength(),
		Speed:         g.snake.Speed(),
		Distance:      g.snake.Distance(),
		TurnsAccepted: in.Accepted,
		TurnsDropped:  in.Dropped,
		FoodsOnField:  g.foods.Count(),
	})

	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteWindow(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}
