// Package telemetry provides session statistics, CSV output and transcript persistence.
package telemetry

import "github.com/pthm-cable/snake/chain"

// EventType identifies game events.
type EventType uint8

const (
	EventEat EventType = iota
	EventDeath
	EventSessionEnd
)

// String returns the event name used in logs and feed messages.
func (t EventType) String() string {
	switch t {
	case EventEat:
		return "eat"
	case EventDeath:
		return "death"
	case EventSessionEnd:
		return "session_end"
	default:
		return "unknown"
	}
}

// SessionEnd is published once when a snake reaches Dead.
type SessionEnd struct {
	FinalLength int              `json:"final_length"`
	Transcript  chain.Transcript `json:"transcript"`
	Foods       []chain.Record   `json:"foods"` // spawn records of every eaten food
}

// Event represents a single game event.
type Event struct {
	Type    EventType
	Tick    int32
	Session int

	// Optional fields depending on event type
	X, Y   float64     // eat position
	Food   string      // food kind name
	Score  int         // food score
	Length float64     // actual length after the event
	Cause  string      // death cause
	Block  chain.Hash  // eat block hash
	End    *SessionEnd // session end payload
}

// NewEatEvent creates an eat event.
func NewEatEvent(tick int32, session int, x, y float64, food string, score int, length float64, block chain.Hash) Event {
	return Event{
		Type:    EventEat,
		Tick:    tick,
		Session: session,
		X:       x,
		Y:       y,
		Food:    food,
		Score:   score,
		Length:  length,
		Block:   block,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int32, session int, cause string, length float64) Event {
	return Event{
		Type:    EventDeath,
		Tick:    tick,
		Session: session,
		Cause:   cause,
		Length:  length,
	}
}

// NewSessionEndEvent creates a session end event.
func NewSessionEndEvent(tick int32, session int, end SessionEnd) Event {
	return Event{
		Type:    EventSessionEnd,
		Tick:    tick,
		Session: session,
		Length:  float64(end.FinalLength),
		End:     &end,
	}
}
