// Package game runs snake sessions: arena, food, the snake itself, telemetry
// and the optional raylib viewer.
package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/exp/rand"

	"github.com/pthm-cable/snake/camera"
	"github.com/pthm-cable/snake/chain"
	"github.com/pthm-cable/snake/config"
	"github.com/pthm-cable/snake/feed"
	"github.com/pthm-cable/snake/grid"
	"github.com/pthm-cable/snake/snake"
	"github.com/pthm-cable/snake/systems"
	"github.com/pthm-cable/snake/telemetry"
	"github.com/pthm-cable/snake/ui"
)

// Options configures a game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Autopilot      bool
	AutoRestart    bool      // start the next session as soon as one ends
	Feed           *feed.Hub // optional spectator feed
}

// Listener receives game events after the tick that produced them.
type Listener func(telemetry.Event)

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	opts Options

	world *ecs.World
	arena *grid.Arena
	rng   *rand.Rand
	foods *systems.FoodSystem
	snake *snake.Snake
	pilot *Autopilot

	tick         int32
	session      int
	sessionStart int32
	sessionSeed  int64
	eaten        []chain.Record
	sessionEats  int
	sessionScore int
	lastEnd      *ui.GameOverData

	listeners []Listener

	// Telemetry
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Viewer
	paused         bool
	stepsPerUpdate int
	camera         *camera.Camera
	hud            *ui.HUD
	swipe          swipeState
	screenWidth    float32
	screenHeight   float32
}

// NewGameWithOptions creates a game and starts its first session.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		cfg:            cfg,
		opts:           opts,
		world:          ecs.NewWorld(),
		rng:            rand.New(rand.NewSource(uint64(opts.Seed))),
		logStats:       opts.LogStats,
		stepsPerUpdate: opts.StepsPerUpdate,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
	}

	kinds, err := foodKinds(cfg)
	if err != nil {
		return nil, err
	}

	g.arena = grid.NewArena(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.Obstacles, g.rng, g.spawnReserve())
	g.foods = systems.NewFoodSystem(g.world, g.arena, kinds, cfg.Food.MaxCount, cfg.Snake.Step, uint64(opts.Seed))

	if opts.Autopilot {
		g.pilot = NewAutopilot()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	if !opts.Headless {
		g.screenWidth = cfg.Derived.ScreenW32
		g.screenHeight = cfg.Derived.ScreenH32
		step := float32(cfg.Snake.Step)
		g.camera = camera.New(g.screenWidth, g.screenHeight,
			float32(cfg.Arena.Width-1)*step, float32(cfg.Arena.Height-1)*step, float32(cfg.Screen.CellPixels))
		g.camera.MinX, g.camera.MinY = -step/2, -step/2
		g.camera.MaxX += step / 2
		g.camera.MaxY += step / 2
		g.hud = ui.NewHUD()
	}

	g.startSession()
	return g, nil
}

func foodKinds(cfg *config.Config) ([]systems.FoodKind, error) {
	kinds := make([]systems.FoodKind, 0, len(cfg.Food.Kinds))
	for _, k := range cfg.Food.Kinds {
		effect, err := systems.ParseEffect(k.Effect)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, systems.FoodKind{
			Name:     k.Name,
			Effect:   effect,
			Score:    k.Score,
			Size:     k.Size,
			Lifetime: k.Lifetime,
			Weight:   k.Weight,
		})
	}
	return kinds, nil
}

// snakeConfig builds the core tuning from the loaded config.
func snakeConfig(cfg *config.Config) snake.Config {
	return snake.Config{
		Speed:          cfg.Snake.Speed,
		Width:          cfg.Snake.Width,
		Step:           cfg.Snake.Step,
		InputCacheSize: cfg.Snake.InputCacheSize,
		InitialLength:  cfg.Snake.InitialLength,
		DeathDuration:  cfg.Snake.DeathDuration,
		DeathGrace:     cfg.Snake.DeathGrace,
		ShrinkTime:     cfg.Food.ShrinkTime,
		Boost: snake.BoostConfig{
			RampUp: cfg.Boost.RampUp,
			Hold:   cfg.Boost.Hold,
			End:    cfg.Boost.End,
			Extra:  cfg.Boost.Extra,
		},
	}
}

// spawnHead is where every session starts, facing right.
func (g *Game) spawnHead() grid.Coord {
	return grid.Coord{X: g.cfg.Arena.Width / 2, Y: g.cfg.Arena.Height / 2}
}

// spawnReserve lists the start cells plus a short runway, kept free of obstacles.
func (g *Game) spawnReserve() []grid.Coord {
	head := g.spawnHead()
	var cells []grid.Coord
	for x := head.X - g.cfg.Snake.InitialLength + 1; x <= head.X+3; x++ {
		cells = append(cells, grid.Coord{X: x, Y: head.Y})
	}
	return cells
}

// startSession places a fresh snake and refills the food.
func (g *Game) startSession() {
	g.session++
	g.sessionStart = g.tick
	g.sessionSeed = g.opts.Seed + int64(g.session)
	g.eaten = g.eaten[:0]
	g.sessionEats = 0
	g.sessionScore = 0
	g.lastEnd = nil

	g.snake = snake.New(g.arena, g.spawnHead(), snake.Right, g.sessionSeed, snakeConfig(g.cfg))
	g.collector.ResetInputBaseline()
	if _, err := g.foods.Update(0); err != nil {
		slog.Error("food refill failed", "error", err)
	}

	if g.camera != nil {
		tip := g.snake.Body().HeadCenter()
		g.camera.X, g.camera.Y = float32(tip.X), float32(tip.Y)
	}

	slog.Info("session start",
		"session", g.session,
		"tick", g.tick,
		"seed", g.sessionSeed,
		"genesis", g.snake.Chain().Genesis().Hash().String(),
	)
}

// Restart abandons the current session, if any, and starts a new one.
func (g *Game) Restart() {
	if g.snake != nil && g.snake.State() != snake.Dead {
		g.snake.Body().Release()
	}
	g.foods.Clear()
	g.startSession()
}

// Step runs one simulation tick of dt seconds.
func (g *Game) Step(dt float64) {
	if g.pilot != nil {
		g.pilot.Steer(g.snake, g.arena, g.foods.Foods())
	}

	if _, err := g.foods.Update(dt); err != nil {
		slog.Error("food update failed", "error", err)
	}

	out := g.snake.Step(dt)
	if out.Death != snake.CauseNone {
		g.onDeath(out.Death)
	}
	if g.snake.State() == snake.Alive {
		g.checkEat()
	}

	g.tick++

	if out.Finished {
		g.onSessionEnd()
	}
	g.publishFrame()
	g.flushTelemetry()

	if out.Finished && g.opts.AutoRestart {
		g.Restart()
	}
}

// checkEat resolves contact between the head and at most one food.
func (g *Game) checkEat() {
	e, meal, ok := g.foods.Contact(g.snake.HeadBox())
	if !ok {
		return
	}
	kind := g.foods.Kind(e)

	blk, err := g.snake.Eat(meal)
	if err != nil {
		slog.Error("eat failed", "error", err)
		return
	}
	if spawn, ok := g.foods.Block(meal.Identity); ok {
		rec, err := chain.NewRecord(spawn)
		if err != nil {
			slog.Error("food record failed", "error", err)
		} else {
			g.eaten = append(g.eaten, rec)
		}
	}
	g.foods.Consume(e)

	g.sessionEats++
	g.sessionScore += meal.Score
	g.onEat(meal, kind.Name, blk.Hash())
}

// UpdateHeadless runs StepsPerUpdate ticks at the configured dt.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.cfg.Physics.DT)
	}
}

// Input queues a turn for the current snake.
func (g *Game) Input(d snake.Direction) {
	g.snake.Input(d)
}

// Subscribe registers l for every future event.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

func (g *Game) publish(ev telemetry.Event) {
	for _, l := range g.listeners {
		l(ev)
	}
}

// Frame builds a spectator frame of the current state.
func (g *Game) Frame() feed.Frame {
	wps := g.snake.Body().Waypoints()
	points := make([][2]float64, len(wps))
	for i, w := range wps {
		points[i] = [2]float64{w.Position.X, w.Position.Y}
	}
	views := g.foods.Foods()
	foods := make([]feed.Food, len(views))
	for i, f := range views {
		foods[i] = feed.Food{X: f.Cell.X, Y: f.Cell.Y, Kind: f.Kind, Remaining: f.Remaining}
	}
	return feed.Frame{
		Tick:      g.tick,
		Session:   g.session,
		State:     g.snake.State().String(),
		Length:    g.snake.Body().Length(),
		Width:     g.snake.Body().Width(),
		Waypoints: points,
		Foods:     foods,
	}
}

func (g *Game) publishFrame() {
	if g.opts.Feed == nil {
		return
	}
	every := int32(g.cfg.Feed.FrameEvery)
	if every > 1 && g.tick%every != 0 {
		return
	}
	if err := g.opts.Feed.PublishFrame(g.Frame()); err != nil {
		slog.Error("feed frame failed", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// Session returns the 1-based session number.
func (g *Game) Session() int { return g.session }

// Snake returns the current snake.
func (g *Game) Snake() *snake.Snake { return g.snake }

// Foods returns a snapshot of every live food.
func (g *Game) Foods() []systems.FoodView { return g.foods.Foods() }

// Arena returns the playfield.
func (g *Game) Arena() *grid.Arena { return g.arena }

// finalLength rounds the target length for reporting.
func (g *Game) finalLength() int {
	return int(math.Round(g.snake.ActualLength()))
}

// Unload flushes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output failed", "error", err)
	}
}
