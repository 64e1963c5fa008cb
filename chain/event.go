package chain

import (
	"encoding/binary"
	"math"
)

// Kind discriminates block payloads.
type Kind uint8

const (
	KindInitial Kind = iota + 1
	KindEat
	KindSpawn
)

// String returns the transcript name of the payload kind.
func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindEat:
		return "eat"
	case KindSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Event is a block payload. The canonical encoding is what gets hashed.
type Event interface {
	Kind() Kind
	appendCanonical(b []byte) []byte
}

// InitialData is the genesis payload of a session.
type InitialData struct {
	Length int64 `json:"length"`
	Seed   int64 `json:"seed"`
}

// Kind implements Event.
func (InitialData) Kind() Kind { return KindInitial }

func (e InitialData) appendCanonical(b []byte) []byte {
	b = append(b, byte(KindInitial))
	b = binary.BigEndian.AppendUint64(b, uint64(e.Length))
	b = binary.BigEndian.AppendUint64(b, uint64(e.Seed))
	return b
}

// EatEvent records the head reaching a food. FoodHash is the food's identity block hash.
type EatEvent struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FoodHash []byte  `json:"food_hash"`
}

// Kind implements Event.
func (EatEvent) Kind() Kind { return KindEat }

func (e EatEvent) appendCanonical(b []byte) []byte {
	b = append(b, byte(KindEat))
	b = binary.BigEndian.AppendUint64(b, math.Float64bits(e.X))
	b = binary.BigEndian.AppendUint64(b, math.Float64bits(e.Y))
	b = binary.BigEndian.AppendUint32(b, uint32(len(e.FoodHash)))
	b = append(b, e.FoodHash...)
	return b
}

// SpawnEvent records a food entering the arena on the food generator's chain.
type SpawnEvent struct {
	X     int64  `json:"x"`
	Y     int64  `json:"y"`
	Food  string `json:"food"`
	Score int64  `json:"score"`
}

// Kind implements Event.
func (SpawnEvent) Kind() Kind { return KindSpawn }

func (e SpawnEvent) appendCanonical(b []byte) []byte {
	b = append(b, byte(KindSpawn))
	b = binary.BigEndian.AppendUint64(b, uint64(e.X))
	b = binary.BigEndian.AppendUint64(b, uint64(e.Y))
	b = binary.BigEndian.AppendUint32(b, uint32(len(e.Food)))
	b = append(b, e.Food...)
	b = binary.BigEndian.AppendUint64(b, uint64(e.Score))
	return b
}
