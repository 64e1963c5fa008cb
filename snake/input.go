package snake

// DefaultInputCacheSize is the number of turns remembered ahead of the head.
const DefaultInputCacheSize = 3

// InputStats counts what happened to queued turns.
type InputStats struct {
	Accepted int
	Dropped  int
}

// InputBuffer is a bounded FIFO of requested turns. Legality is decided when a
// turn is consumed, against the heading at that moment.
type InputBuffer struct {
	queue    []Direction
	capacity int
	stats    InputStats
}

// NewInputBuffer creates a buffer holding at most capacity turns.
func NewInputBuffer(capacity int) *InputBuffer {
	if capacity < 1 {
		capacity = DefaultInputCacheSize
	}
	return &InputBuffer{queue: make([]Direction, 0, capacity+1), capacity: capacity}
}

// Push queues a turn. Non-cardinal values are ignored; on overflow the oldest turn is dropped.
func (b *InputBuffer) Push(d Direction) {
	if !d.Cardinal() {
		return
	}
	b.queue = append(b.queue, d)
	if over := len(b.queue) - b.capacity; over > 0 {
		b.stats.Dropped += over
		b.queue = append(b.queue[:0], b.queue[over:]...)
	}
}

// Next pops turns until one is not a reversal of heading and returns it.
// A repeat of the current heading is returned too and uses up the boundary.
func (b *InputBuffer) Next(heading Direction) (Direction, bool) {
	for len(b.queue) > 0 {
		d := b.queue[0]
		b.queue = b.queue[1:]
		if d.Dot(heading) >= 0 {
			b.stats.Accepted++
			return d, true
		}
		b.stats.Dropped++
	}
	return Direction{}, false
}

// Len returns the number of queued turns.
func (b *InputBuffer) Len() int { return len(b.queue) }

// Pending returns a copy of the queued turns, oldest first.
func (b *InputBuffer) Pending() []Direction {
	out := make([]Direction, len(b.queue))
	copy(out, b.queue)
	return out
}

// Clear discards every queued turn.
func (b *InputBuffer) Clear() { b.queue = b.queue[:0] }

// Stats returns the running counters.
func (b *InputBuffer) Stats() InputStats { return b.stats }
