package systems

import (
	"container/heap"

	"github.com/pthm-cable/snake/grid"
)

// AStarPlanner finds 4-connected paths over a tile map.
type AStarPlanner struct {
	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[grid.Coord]struct{}
	cameFrom  map[grid.Coord]grid.Coord
	gScore    map[grid.Coord]int
}

// astarNode is a node in the A* search.
type astarNode struct {
	c     grid.Coord
	f     int // f = g + h (priority)
	index int // Heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

var cardinals = [4]grid.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// NewAStarPlanner creates an A* planner.
func NewAStarPlanner() *AStarPlanner {
	return &AStarPlanner{
		openHeap:  &nodeHeap{},
		closedSet: make(map[grid.Coord]struct{}, 256),
		cameFrom:  make(map[grid.Coord]grid.Coord, 256),
		gScore:    make(map[grid.Coord]int, 256),
	}
}

// FindPath returns the cells from start to goal inclusive, or nil when goal
// cannot be reached within maxIterations expansions. start itself does not
// need to be passable.
func (a *AStarPlanner) FindPath(start, goal grid.Coord, passable func(grid.Coord) bool, maxIterations int) []grid.Coord {
	if start == goal {
		return []grid.Coord{start}
	}
	if !passable(goal) {
		return nil
	}

	// Clear reusable data structures
	*a.openHeap = (*a.openHeap)[:0]
	for k := range a.closedSet {
		delete(a.closedSet, k)
	}
	for k := range a.cameFrom {
		delete(a.cameFrom, k)
	}
	for k := range a.gScore {
		delete(a.gScore, k)
	}

	a.gScore[start] = 0
	heap.Push(a.openHeap, &astarNode{c: start, f: manhattan(start, goal)})

	for iterations := 0; a.openHeap.Len() > 0 && iterations < maxIterations; iterations++ {
		current := heap.Pop(a.openHeap).(*astarNode)
		if current.c == goal {
			return a.reconstructPath(start, goal)
		}
		if _, done := a.closedSet[current.c]; done {
			continue
		}
		a.closedSet[current.c] = struct{}{}

		for _, d := range cardinals {
			n := current.c.Add(d)
			if _, done := a.closedSet[n]; done || !passable(n) {
				continue
			}
			tentativeG := a.gScore[current.c] + 1
			if existing, ok := a.gScore[n]; ok && tentativeG >= existing {
				continue
			}
			a.cameFrom[n] = current.c
			a.gScore[n] = tentativeG
			heap.Push(a.openHeap, &astarNode{c: n, f: tentativeG + manhattan(n, goal)})
		}
	}

	// No path found
	return nil
}

func manhattan(a, b grid.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// reconstructPath builds the path from the cameFrom map.
func (a *AStarPlanner) reconstructPath(start, goal grid.Coord) []grid.Coord {
	var path []grid.Coord
	for current := goal; ; {
		path = append(path, current)
		if current == start {
			break
		}
		prev, ok := a.cameFrom[current]
		if !ok {
			return nil
		}
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
