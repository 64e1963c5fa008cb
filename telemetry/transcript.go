package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/snake/chain"
)

// TranscriptVersion is incremented when the format changes.
const TranscriptVersion = 1

// ErrUnknownFood is returned when an eat record names a food with no matching spawn record.
var ErrUnknownFood = errors.New("telemetry: eat references unknown food")

// SessionTranscript is the persisted history of one snake: its event chain plus
// the spawn records of every food it ate.
type SessionTranscript struct {
	Version     int              `json:"version"`
	Session     int              `json:"session"`
	Seed        int64            `json:"seed"`
	Cause       string           `json:"cause"`
	StartTick   int32            `json:"start_tick"`
	EndTick     int32            `json:"end_tick"`
	FinalLength int              `json:"final_length"`
	Events      chain.Transcript `json:"events"`
	Foods       []chain.Record   `json:"foods"`
}

// NewSessionTranscript wraps a session end payload.
func NewSessionTranscript(session int, seed int64, cause string, startTick, endTick int32, end SessionEnd) *SessionTranscript {
	return &SessionTranscript{
		Version:     TranscriptVersion,
		Session:     session,
		Seed:        seed,
		Cause:       cause,
		StartTick:   startTick,
		EndTick:     endTick,
		FinalLength: end.FinalLength,
		Events:      end.Transcript,
		Foods:       end.Foods,
	}
}

// Verify checks the event chain and that every eat points at an intact spawn record.
func (st *SessionTranscript) Verify() error {
	if err := chain.Verify(st.Events); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	foods := make(map[chain.Hash]struct{}, len(st.Foods))
	for i, r := range st.Foods {
		if r.PayloadType != chain.KindSpawn.String() {
			return fmt.Errorf("food %d: payload type %q, want %q", i, r.PayloadType, chain.KindSpawn)
		}
		h, err := chain.VerifyRecord(r)
		if err != nil {
			return fmt.Errorf("food %d: %w", i, err)
		}
		foods[h] = struct{}{}
	}

	for i, r := range st.Events {
		payload, err := r.DecodePayload()
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		eat, ok := payload.(chain.EatEvent)
		if !ok {
			continue
		}
		var id chain.Hash
		if len(eat.FoodHash) != chain.HashSize {
			return fmt.Errorf("event %d: %w", i, ErrUnknownFood)
		}
		copy(id[:], eat.FoodHash)
		if _, ok := foods[id]; !ok {
			return fmt.Errorf("event %d: %w: %s", i, ErrUnknownFood, id)
		}
	}
	return nil
}

// Eats returns the number of eat records.
func (st *SessionTranscript) Eats() int {
	n := 0
	for _, r := range st.Events {
		if r.PayloadType == chain.KindEat.String() {
			n++
		}
	}
	return n
}

// SaveTranscript writes st to dir as session_<n>.json.
// Returns the filepath where it was saved.
func SaveTranscript(st *SessionTranscript, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session_%03d.json", st.Session))

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}

// LoadTranscript reads a transcript from disk. Unknown fields are rejected.
func LoadTranscript(path string) (*SessionTranscript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var st SessionTranscript
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	if st.Version != TranscriptVersion {
		return nil, fmt.Errorf("transcript version %d, want %d", st.Version, TranscriptVersion)
	}

	return &st, nil
}
