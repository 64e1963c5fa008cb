package snake

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/snake/chain"
	"github.com/pthm-cable/snake/grid"
)

const dt = 1.0 / 60

func newTestSnake(length int) (*grid.Sparse, *Snake) {
	cfg := DefaultConfig()
	cfg.InitialLength = length
	tiles := grid.NewSparse()
	return tiles, New(tiles, grid.Coord{X: length - 1}, Right, 42, cfg)
}

func TestNewSnakeGenesis(t *testing.T) {
	_, s := newTestSnake(4)
	if s.State() != Alive {
		t.Fatalf("expected alive, got %v", s.State())
	}
	if s.Chain().Len() != 1 {
		t.Fatalf("expected genesis only, got %d blocks", s.Chain().Len())
	}
	data, ok := s.Chain().Genesis().Payload().(chain.InitialData)
	if !ok || data.Length != 4 || data.Seed != 42 {
		t.Errorf("unexpected genesis payload %+v", s.Chain().Genesis().Payload())
	}
}

func TestGrowthDrainsToTarget(t *testing.T) {
	_, s := newTestSnake(4)
	s.GrowTail(3, 4)
	if s.ActualLength() != 7 {
		t.Fatalf("expected actual length 7, got %f", s.ActualLength())
	}

	for i := 0; i < 600 && s.Growth().Len() > 0; i++ {
		s.Step(dt)
	}
	if s.Growth().Len() != 0 {
		t.Fatal("growth queue did not drain")
	}
	if !scalar.EqualWithinAbs(s.Body().Length(), 7, 1e-6) {
		t.Errorf("expected length 7, got %f", s.Body().Length())
	}

	// Idle movement keeps the length.
	for i := 0; i < 60; i++ {
		s.Step(dt)
	}
	if !scalar.EqualWithinAbs(s.Body().Length(), 7, 1e-6) {
		t.Errorf("expected length 7 after idling, got %f", s.Body().Length())
	}
}

func TestGrowTailZeroSteps(t *testing.T) {
	_, s := newTestSnake(4)
	s.GrowTail(2, 0)
	e := s.Growth().Entries()
	if len(e) != 1 || e[0].TailRate != 0 || e[0].TargetLength != 6 {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestEatRecordsAndGrows(t *testing.T) {
	_, s := newTestSnake(4)
	food := chain.New(chain.InitialData{Seed: 1})
	spawn, err := food.Extend(chain.SpawnEvent{X: 6, Y: 0, Food: "food", Score: 1})
	if err != nil {
		t.Fatal(err)
	}

	blk, err := s.Eat(Meal{Score: 1, Effect: EffectGrow, Identity: spawn.Hash()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Chain().Len() != 2 || s.Chain().Head() != blk {
		t.Fatalf("eat block not appended")
	}
	ev, ok := blk.Payload().(chain.EatEvent)
	if !ok {
		t.Fatalf("unexpected payload %T", blk.Payload())
	}
	id := spawn.Hash()
	if string(ev.FoodHash) != string(id[:]) {
		t.Error("eat event should reference the spawn block")
	}

	e := s.Growth().Entries()
	if len(e) != 1 || e[0].TargetLength != 5 || e[0].HeadRate != 1 || e[0].TailRate != 0.5 {
		t.Errorf("unexpected growth %+v", e)
	}
}

func TestBlackHole(t *testing.T) {
	_, s := newTestSnake(6)
	s.BlackHole()
	e := s.Growth().Entries()
	if len(e) != 2 {
		t.Fatalf("expected shrink and regrow entries, got %+v", e)
	}
	if e[0].TargetLength != 2 || e[0].HeadRate != 0 || math.Abs(e[0].TailRate-4.0/3) > 1e-9 {
		t.Errorf("unexpected shrink entry %+v", e[0])
	}
	if e[1].TargetLength != 6 || e[1].HeadRate != 1 || e[1].TailRate != 0 {
		t.Errorf("unexpected regrow entry %+v", e[1])
	}

	for i := 0; i < 600 && s.Growth().Len() > 0; i++ {
		s.Step(dt)
	}
	if !scalar.EqualWithinAbs(s.Body().Length(), 6, 1e-6) {
		t.Errorf("expected regrown length 6, got %f", s.Body().Length())
	}

	_, small := newTestSnake(2)
	small.BlackHole()
	if small.Growth().Len() != 0 {
		t.Error("black hole should not affect a two cell snake")
	}
}

func TestBoostChangesSpeed(t *testing.T) {
	_, s := newTestSnake(4)
	if _, err := s.Eat(Meal{Effect: EffectBoost}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		s.Step(dt)
	}
	if !s.Boosting() || s.Speed() <= 3 {
		t.Errorf("expected boosted speed, got %f", s.Speed())
	}
	if s.ActualLength() != 4 {
		t.Errorf("boost must not change length, got %f", s.ActualLength())
	}
}

func TestSelfCollisionKills(t *testing.T) {
	_, s := newTestSnake(5)
	s.Input(Up)
	s.Input(Left)
	s.Input(Down)

	var out Outcome
	for i := 0; i < 600 && s.State() == Alive; i++ {
		out = s.Step(dt)
	}
	if s.State() != Dying || s.Cause() != CauseSelf || out.Death != CauseSelf {
		t.Fatalf("expected self death, got %v / %v", s.State(), s.Cause())
	}
}

func TestObstacleKills(t *testing.T) {
	tiles, s := newTestSnake(4)
	tiles.SetTile(grid.Coord{X: 6}, grid.Blocked)

	for i := 0; i < 600 && s.State() == Alive; i++ {
		s.Step(dt)
	}
	if s.Cause() != CauseObstacle {
		t.Fatalf("expected obstacle death, got %v", s.Cause())
	}
	if tiles.Tile(grid.Coord{X: 6}) != grid.Blocked {
		t.Error("obstacle tile was claimed")
	}
}

func TestDeathShrinksToDead(t *testing.T) {
	tiles, s := newTestSnake(10)
	s.Die(CauseSelf)
	if s.State() != Dying {
		t.Fatalf("expected dying, got %v", s.State())
	}

	limit := math.Max(3, 10.0/3) + 0.1
	finished := false
	for elapsed := 0.0; elapsed < limit && s.State() != Dead; elapsed += dt {
		if out := s.Step(dt); out.Finished {
			finished = true
		}
	}
	if s.State() != Dead || !finished {
		t.Fatalf("expected dead within %fs, got %v", limit, s.State())
	}
	if !s.Body().Empty() {
		t.Errorf("expected empty body, got %v", s.Body().Bodies())
	}
	if n := tiles.Count(grid.Body); n != 0 {
		t.Errorf("expected all tiles released, %d left", n)
	}

	// Dead snakes do not move, eat or die again.
	s.Step(dt)
	s.Die(CauseObstacle)
	if s.Cause() != CauseSelf {
		t.Error("cause changed after death")
	}
	if _, err := s.Eat(Meal{Score: 1}); !errors.Is(err, ErrNotAlive) {
		t.Errorf("expected ErrNotAlive, got %v", err)
	}
}

func TestDyingHeadStaysPut(t *testing.T) {
	_, s := newTestSnake(6)
	for i := 0; i < 20; i++ {
		s.Step(dt)
	}
	s.Die(CauseSelf)
	head := s.Body().HeadTip()
	for i := 0; i < 30; i++ {
		s.Step(dt)
	}
	if got := s.Body().HeadTip(); !vecNear(got, head) {
		t.Errorf("head moved while dying: %v -> %v", head, got)
	}
}

func TestOccupancyFollowsBody(t *testing.T) {
	tiles, s := newTestSnake(5)
	for i := 0; i < 240; i++ {
		switch i {
		case 30:
			s.Input(Up)
		case 90:
			s.Input(Right)
		case 150:
			s.Input(Down)
		}
		s.Step(dt)
		if s.State() != Alive {
			t.Fatalf("unexpected death at step %d: %v", i, s.Cause())
		}
		checkOccupancy(t, tiles, s.Body())
	}
}
