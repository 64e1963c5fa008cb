package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/snake/chain"
	"github.com/pthm-cable/snake/components"
	"github.com/pthm-cable/snake/grid"
	"github.com/pthm-cable/snake/snake"
)

// FoodKind is a spawnable pickup type.
type FoodKind struct {
	Name     string
	Effect   snake.Effect
	Score    int
	Size     float64
	Lifetime float64 // seconds, 0 never expires
	Weight   float64
}

// ParseEffect maps a configured effect name to a snake effect.
func ParseEffect(name string) (snake.Effect, error) {
	switch name {
	case "grow", "":
		return snake.EffectGrow, nil
	case "boost":
		return snake.EffectBoost, nil
	case "blackhole":
		return snake.EffectBlackHole, nil
	default:
		return 0, fmt.Errorf("unknown food effect %q", name)
	}
}

// FoodView is a read-only snapshot of one food entity.
type FoodView struct {
	Entity    ecs.Entity
	Cell      grid.Coord
	Position  r2.Vec
	Kind      string
	Score     int
	Size      float64
	Remaining float64 // fraction of lifetime left
	Identity  chain.Hash
}

// FoodSystem keeps the arena stocked with food entities. Every spawn is
// recorded on the system's own chain and the spawn block hash becomes the
// food's identity.
type FoodSystem struct {
	world   *ecs.World
	mapper  *ecs.Map4[components.Cell, components.Position, components.Food, components.Lifetime]
	filter  *ecs.Filter4[components.Cell, components.Position, components.Food, components.Lifetime]
	foodMap *ecs.Map1[components.Food]
	cellMap *ecs.Map1[components.Cell]
	posMap  *ecs.Map1[components.Position]

	arena *grid.Arena
	index *CellIndex
	rng   *rand.Rand

	kinds       []FoodKind
	totalWeight float64
	maxCount    int
	step        float64

	spawns *chain.Chain
	blocks map[chain.Hash]*chain.Block

	expired  []ecs.Entity
	nearby   []ecs.Entity
	consumed int
}

// NewFoodSystem creates a food system over arena. The spawn chain's genesis
// records seed.
func NewFoodSystem(world *ecs.World, arena *grid.Arena, kinds []FoodKind, maxCount int, step float64, seed uint64) *FoodSystem {
	fs := &FoodSystem{
		world:    world,
		mapper:   ecs.NewMap4[components.Cell, components.Position, components.Food, components.Lifetime](world),
		filter:   ecs.NewFilter4[components.Cell, components.Position, components.Food, components.Lifetime](world),
		foodMap:  ecs.NewMap1[components.Food](world),
		cellMap:  ecs.NewMap1[components.Cell](world),
		posMap:   ecs.NewMap1[components.Position](world),
		arena:    arena,
		index:    NewCellIndex(),
		rng:      rand.New(rand.NewSource(seed)),
		kinds:    kinds,
		maxCount: maxCount,
		step:     step,
		spawns:   chain.New(chain.InitialData{Length: 0, Seed: int64(seed)}),
		blocks:   make(map[chain.Hash]*chain.Block),
	}
	for _, k := range kinds {
		fs.totalWeight += k.Weight
	}
	return fs
}

// Update ages every food, removes expired ones and refills the arena.
// It returns the number of foods spawned.
func (fs *FoodSystem) Update(dt float64) (int, error) {
	fs.expired = fs.expired[:0]
	query := fs.filter.Query()
	for query.Next() {
		_, _, _, life := query.Get()
		if life.Total <= 0 {
			continue
		}
		life.Remaining -= float32(dt)
		if life.Remaining <= 0 {
			fs.expired = append(fs.expired, query.Entity())
		}
	}
	for _, e := range fs.expired {
		fs.remove(e)
	}

	spawned := 0
	for fs.index.Len() < fs.maxCount {
		ok, err := fs.Spawn()
		if err != nil {
			return spawned, err
		}
		if !ok {
			break
		}
		spawned++
	}
	return spawned, nil
}

// Spawn places one food of a weighted random kind on a free cell. It returns
// false when there is no kind to spawn or no free cell.
func (fs *FoodSystem) Spawn() (bool, error) {
	kind, ok := fs.pickKind()
	if !ok {
		return false, nil
	}
	c, ok := fs.arena.RandomEmpty(fs.rng, func(c grid.Coord) bool { return !fs.index.Has(c) })
	if !ok {
		return false, nil
	}
	_, err := fs.SpawnAt(c, kind)
	return err == nil, err
}

// SpawnAt places a food of kinds[kind] at c.
func (fs *FoodSystem) SpawnAt(c grid.Coord, kind int) (ecs.Entity, error) {
	k := fs.kinds[kind]
	blk, err := fs.spawns.Extend(chain.SpawnEvent{X: int64(c.X), Y: int64(c.Y), Food: k.Name, Score: int64(k.Score)})
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("record spawn: %w", err)
	}
	fs.blocks[blk.Hash()] = blk

	cell := components.Cell{X: c.X, Y: c.Y}
	pos := components.Position{X: float32(float64(c.X) * fs.step), Y: float32(float64(c.Y) * fs.step)}
	food := components.Food{Kind: uint8(kind), Score: k.Score, Size: float32(k.Size), Identity: blk.Hash()}
	life := components.Lifetime{Remaining: float32(k.Lifetime), Total: float32(k.Lifetime)}
	e := fs.mapper.NewEntity(&cell, &pos, &food, &life)
	fs.index.Insert(c, e)
	return e, nil
}

func (fs *FoodSystem) pickKind() (int, bool) {
	if len(fs.kinds) == 0 || fs.totalWeight <= 0 {
		return 0, false
	}
	r := fs.rng.Float64() * fs.totalWeight
	for i, k := range fs.kinds {
		r -= k.Weight
		if r < 0 {
			return i, true
		}
	}
	return len(fs.kinds) - 1, true
}

// Contact returns the first food whose box overlaps box, as a meal.
func (fs *FoodSystem) Contact(box snake.Box) (ecs.Entity, snake.Meal, bool) {
	center := grid.Round(box.Center.X/fs.step, box.Center.Y/fs.step)
	fs.nearby = fs.index.QueryRadius(center, 1, fs.nearby[:0])
	for _, e := range fs.nearby {
		food := fs.foodMap.Get(e)
		pos := fs.posMap.Get(e)
		at := r2.Vec{X: float64(pos.X), Y: float64(pos.Y)}
		if !box.Overlaps(snake.Box{Center: at, Size: float64(food.Size) * fs.step}) {
			continue
		}
		k := fs.kinds[food.Kind]
		return e, snake.Meal{Position: at, Score: food.Score, Effect: k.Effect, Identity: food.Identity}, true
	}
	return ecs.Entity{}, snake.Meal{}, false
}

// Kind returns the kind of a live food.
func (fs *FoodSystem) Kind(e ecs.Entity) FoodKind {
	return fs.kinds[fs.foodMap.Get(e).Kind]
}

// Consume removes an eaten food.
func (fs *FoodSystem) Consume(e ecs.Entity) {
	if !fs.world.Alive(e) {
		return
	}
	fs.remove(e)
	fs.consumed++
}

func (fs *FoodSystem) remove(e ecs.Entity) {
	cell := fs.cellMap.Get(e)
	fs.index.Remove(grid.Coord{X: cell.X, Y: cell.Y})
	fs.world.RemoveEntity(e)
}

// Clear removes every food entity. The spawn chain is kept.
func (fs *FoodSystem) Clear() {
	var all []ecs.Entity
	query := fs.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		fs.remove(e)
	}
}

// Count returns the number of live foods.
func (fs *FoodSystem) Count() int { return fs.index.Len() }

// Consumed returns the number of foods eaten.
func (fs *FoodSystem) Consumed() int { return fs.consumed }

// Occupied reports whether a food stands at c.
func (fs *FoodSystem) Occupied(c grid.Coord) bool { return fs.index.Has(c) }

// Chain returns the spawn chain.
func (fs *FoodSystem) Chain() *chain.Chain { return fs.spawns }

// Block returns the spawn block for a food identity.
func (fs *FoodSystem) Block(id chain.Hash) (*chain.Block, bool) {
	b, ok := fs.blocks[id]
	return b, ok
}

// Foods returns a snapshot of every live food.
func (fs *FoodSystem) Foods() []FoodView {
	out := make([]FoodView, 0, fs.index.Len())
	query := fs.filter.Query()
	for query.Next() {
		cell, pos, food, life := query.Get()
		out = append(out, FoodView{
			Entity:    query.Entity(),
			Cell:      grid.Coord{X: cell.X, Y: cell.Y},
			Position:  r2.Vec{X: float64(pos.X), Y: float64(pos.Y)},
			Kind:      fs.kinds[food.Kind].Name,
			Score:     food.Score,
			Size:      float64(food.Size),
			Remaining: float64(life.Fraction()),
			Identity:  food.Identity,
		})
	}
	return out
}
