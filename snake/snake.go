package snake

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/snake/chain"
	"github.com/pthm-cable/snake/grid"
)

// State is the lifecycle phase of a snake.
type State uint8

const (
	Alive State = iota
	Dying
	Dead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// DeathCause says what ended a run.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseSelf
	CauseObstacle
)

// String returns the cause name.
func (c DeathCause) String() string {
	switch c {
	case CauseSelf:
		return "self"
	case CauseObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// ErrNotAlive is returned when a dying or dead snake is asked to eat.
var ErrNotAlive = errors.New("snake: not alive")

// Effect is what a meal does to the snake.
type Effect uint8

const (
	EffectGrow Effect = iota
	EffectBoost
	EffectBlackHole
)

// Config holds the tunables of a single snake.
type Config struct {
	Speed          float64
	Width          float64
	Step           float64
	InputCacheSize int
	InitialLength  int
	DeathDuration  float64
	DeathGrace     float64
	ShrinkTime     float64 // black hole shrink duration
	Boost          BoostConfig
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Speed:          3,
		Width:          0.6,
		Step:           1,
		InputCacheSize: DefaultInputCacheSize,
		InitialLength:  4,
		DeathDuration:  3,
		DeathGrace:     0.5,
		ShrinkTime:     1,
		Boost:          DefaultBoostConfig(),
	}
}

// Meal is the view of a food item the snake needs to eat it.
type Meal struct {
	Position r2.Vec
	Score    int
	Effect   Effect
	Identity chain.Hash
}

// Outcome reports lifecycle transitions that happened during a Step.
type Outcome struct {
	Death    DeathCause // set on the step that started dying
	Finished bool       // set on the step that reached Dead
}

// Snake ties the body, its growth queue, input and event chain together.
type Snake struct {
	cfg   Config
	tiles grid.Map

	body   *BodyPath
	growth *GrowthQueue
	input  *InputBuffer
	boost  *Boost
	events *chain.Chain

	speed        float64
	actualLength float64
	distance     float64

	state      State
	cause      DeathCause
	deathTimer float64
}

// New creates a live snake of cfg.InitialLength cells ending at head. The
// genesis block records the length and seed.
func New(tiles grid.Map, head grid.Coord, heading Direction, seed int64, cfg Config) *Snake {
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	if cfg.InitialLength < 1 {
		cfg.InitialLength = 1
	}
	input := NewInputBuffer(cfg.InputCacheSize)
	s := &Snake{
		cfg:          cfg,
		tiles:        tiles,
		input:        input,
		growth:       NewGrowthQueue(),
		boost:        NewBoost(cfg.Boost),
		body:         NewBodyPath(tiles, input, head, heading, cfg.InitialLength, cfg.Step, cfg.Width),
		speed:        cfg.Speed,
		actualLength: float64(cfg.InitialLength) * cfg.Step,
		events:       chain.New(chain.InitialData{Length: int64(cfg.InitialLength), Seed: seed}),
	}
	return s
}

// Step integrates dt seconds of motion and runs the contact checks.
func (s *Snake) Step(dt float64) Outcome {
	var out Outcome
	if s.state == Dead || dt <= 0 {
		return out
	}
	if s.state == Alive && s.boost.Active() {
		s.speed = s.boost.Advance(dt)
	}

	h, t := s.growth.Movement(s.body.Length(), s.speed, dt)
	s.body.AdvanceHead(h)
	s.body.AdvanceTail(t)
	s.body.UpdateMesh()
	s.distance += h

	switch s.state {
	case Alive:
		if cause := s.contact(); cause != CauseNone {
			s.Die(cause)
			out.Death = cause
		}
	case Dying:
		s.deathTimer -= dt
		if s.body.Empty() || s.deathTimer <= 0 {
			s.finish()
			out.Finished = true
		}
	}
	return out
}

// contact checks obstacles before the body.
func (s *Snake) contact() DeathCause {
	if s.body.Empty() {
		return CauseNone
	}
	tip := s.body.HeadTip()
	if HitsObstacle(s.tiles, tip, s.cfg.Step) {
		return CauseObstacle
	}
	if SelfHit(tip, s.body.bodies, s.cfg.Step, s.cfg.Width) {
		return CauseSelf
	}
	return CauseNone
}

// Die starts the death sequence: the body reverses and the new tail shrinks
// into the point of impact. Only a live snake can die.
func (s *Snake) Die(cause DeathCause) {
	if s.state != Alive {
		return
	}
	s.state = Dying
	s.cause = cause
	s.input.Clear()
	s.boost.Stop()
	s.speed = s.cfg.Speed

	s.growth.Clear()
	s.body.Reverse()

	length := s.body.Length()
	duration := s.cfg.DeathDuration
	if duration <= 0 {
		duration = 3
	}
	spd := math.Max(s.cfg.Speed, length/duration)
	rates := Rates{Head: 0, Tail: spd / s.cfg.Speed}
	s.growth.Enqueue(Growth{TargetLength: 0, HeadRate: rates.Head, TailRate: rates.Tail})
	s.growth.SetFallback(rates)
	s.deathTimer = length/spd + s.cfg.DeathGrace
}

func (s *Snake) finish() {
	s.state = Dead
	s.body.Release()
	s.growth.Clear()
}

// Eat records meal on the event chain and applies its effect.
func (s *Snake) Eat(meal Meal) (*chain.Block, error) {
	if s.state != Alive {
		return nil, ErrNotAlive
	}
	blk, err := s.events.Extend(chain.EatEvent{
		X:        meal.Position.X,
		Y:        meal.Position.Y,
		FoodHash: append([]byte(nil), meal.Identity[:]...),
	})
	if err != nil {
		return nil, fmt.Errorf("record eat: %w", err)
	}
	switch meal.Effect {
	case EffectBoost:
		s.boost.Start(s.speed, s.cfg.Speed)
	case EffectBlackHole:
		s.BlackHole()
	default:
		score := float64(meal.Score)
		s.GrowTail(score, score+1)
	}
	return blk, nil
}

// GrowTail raises the target length by delta. The growth is spread over steps
// cells of head travel by slowing the tail down.
func (s *Snake) GrowTail(delta, steps float64) {
	s.actualLength += delta
	tail := 0.0
	if steps > 0 {
		tail = (steps - delta) / steps
	}
	s.growth.Enqueue(Growth{TargetLength: s.actualLength, HeadRate: 1, TailRate: tail})
}

// BlackHole pulls the body down to two cells over the shrink time and then
// lets it regrow to its previous target.
func (s *Snake) BlackHole() {
	if s.actualLength <= 2 {
		return
	}
	shrink := s.cfg.ShrinkTime
	if shrink <= 0 {
		shrink = 1
	}
	s.growth.Clear()
	s.growth.Enqueue(Growth{TargetLength: 2, HeadRate: 0, TailRate: (s.actualLength - 2) / shrink / s.speed})
	s.growth.Enqueue(Growth{TargetLength: s.actualLength, HeadRate: 1, TailRate: 0})
}

// Input queues a requested turn. Ignored unless alive.
func (s *Snake) Input(d Direction) {
	if s.state != Alive {
		return
	}
	s.input.Push(d)
}

// State returns the lifecycle phase.
func (s *Snake) State() State { return s.state }

// Cause returns why the snake died, or CauseNone.
func (s *Snake) Cause() DeathCause { return s.cause }

// Body returns the body path.
func (s *Snake) Body() *BodyPath { return s.body }

// Growth returns the growth queue.
func (s *Snake) Growth() *GrowthQueue { return s.growth }

// InputStats returns the input buffer counters.
func (s *Snake) InputStats() InputStats { return s.input.Stats() }

// PendingInputs returns the number of queued turns.
func (s *Snake) PendingInputs() int { return s.input.Len() }

// Speed returns the current base speed including any boost.
func (s *Snake) Speed() float64 { return s.speed }

// Boosting reports whether a boost timeline is playing.
func (s *Snake) Boosting() bool { return s.boost.Active() }

// ActualLength returns the target length.
func (s *Snake) ActualLength() float64 { return s.actualLength }

// Distance returns the total head travel.
func (s *Snake) Distance() float64 { return s.distance }

// Chain returns the snake's event chain.
func (s *Snake) Chain() *chain.Chain { return s.events }

// Transcript returns the chain in its serialized form.
func (s *Snake) Transcript() (chain.Transcript, error) { return s.events.Transcript() }

// HeadBox returns the pickup box around the interpolated head.
func (s *Snake) HeadBox() Box {
	return Box{Center: s.body.HeadCenter(), Size: s.cfg.Width}
}
