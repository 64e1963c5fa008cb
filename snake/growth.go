package snake

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// netEpsilon is the smallest net movement the crossing time is computed for.
	netEpsilon = 1e-9
	// lengthTolerance decides when a stalled entry's target counts as reached.
	lengthTolerance = 1e-6
)

// Growth is a pending length target. Rates multiply the base speed.
type Growth struct {
	TargetLength float64
	HeadRate     float64
	TailRate     float64
}

// Rates is a head/tail speed multiplier pair.
type Rates struct {
	Head, Tail float64
}

// GrowthQueue holds length transitions in arrival order. Only the front entry
// drives movement; with no entries the fallback rates apply.
type GrowthQueue struct {
	entries  []Growth
	fallback Rates
}

// NewGrowthQueue creates an empty queue with unit fallback rates.
func NewGrowthQueue() *GrowthQueue {
	return &GrowthQueue{fallback: Rates{Head: 1, Tail: 1}}
}

// Enqueue appends g.
func (q *GrowthQueue) Enqueue(g Growth) {
	q.entries = append(q.entries, g)
}

// Clear drops every pending entry.
func (q *GrowthQueue) Clear() {
	q.entries = q.entries[:0]
}

// Len returns the number of pending entries.
func (q *GrowthQueue) Len() int { return len(q.entries) }

// Entries returns a copy of the pending entries.
func (q *GrowthQueue) Entries() []Growth {
	out := make([]Growth, len(q.entries))
	copy(out, q.entries)
	return out
}

// SetFallback sets the rates used while the queue is empty.
func (q *GrowthQueue) SetFallback(r Rates) { q.fallback = r }

// Rates returns the rates currently in force.
func (q *GrowthQueue) Rates() Rates {
	if len(q.entries) == 0 {
		return q.fallback
	}
	g := q.entries[0]
	return Rates{Head: g.HeadRate, Tail: g.TailRate}
}

func (q *GrowthQueue) pop() {
	q.entries = q.entries[1:]
}

// Movement integrates dt seconds at speed and returns how far the head and the
// tail advance. Entries whose target is reached inside the slice are popped and
// the rest of the slice continues with the next entry.
func (q *GrowthQueue) Movement(length, speed, dt float64) (head, tail float64) {
	remaining := dt
	for remaining > 0 {
		r := q.Rates()
		h := r.Head * speed * remaining
		t := r.Tail * speed * remaining
		if len(q.entries) == 0 {
			return head + h, tail + t
		}

		target := q.entries[0].TargetLength
		net := h - t
		if math.Abs(net) < netEpsilon {
			// No usable crossing time; pop only if already there.
			if scalar.EqualWithinAbs(target, length, lengthTolerance) {
				q.pop()
				continue
			}
			return head + h, tail + t
		}

		frac := (target - length) / net
		if frac > 1 {
			return head + h, tail + t
		}
		if frac < 0 {
			frac = 0
		}
		head += h * frac
		tail += t * frac
		length += net * frac
		remaining -= remaining * frac
		q.pop()
	}
	return head, tail
}
