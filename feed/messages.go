// Package feed streams read-only game state to websocket spectators.
package feed

import "github.com/pthm-cable/snake/chain"

// Message types.
const (
	TypeFrame      = "frame"
	TypeSessionEnd = "session_end"
)

// Frame is a snapshot of the arena after a tick.
type Frame struct {
	Type      string       `json:"type"`
	Tick      int32        `json:"tick"`
	Session   int          `json:"session"`
	State     string       `json:"state"`
	Length    float64      `json:"length"`
	Width     float64      `json:"width"`
	Waypoints [][2]float64 `json:"waypoints"` // tail first
	Foods     []Food       `json:"foods"`
}

// Food is one pickup in a frame.
type Food struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Kind      string  `json:"kind"`
	Remaining float64 `json:"remaining"`
}

// SessionEnd is sent once when a snake reaches Dead.
type SessionEnd struct {
	Type        string           `json:"type"`
	Session     int              `json:"session"`
	Cause       string           `json:"cause"`
	FinalLength int              `json:"final_length"`
	Transcript  chain.Transcript `json:"transcript"`
	Foods       []chain.Record   `json:"foods"`
}
