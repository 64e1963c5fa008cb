package chain

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrHashMismatch is returned by Verify when a recomputed hash differs from the record.
	ErrHashMismatch = errors.New("chain: hash mismatch")
	// ErrBrokenLink is returned by Verify when a record does not point at its predecessor.
	ErrBrokenLink = errors.New("chain: broken parent link")
	// ErrUnknownPayload is returned for an unrecognised payload type.
	ErrUnknownPayload = errors.New("chain: unknown payload type")
)

// Record is the persisted form of a block.
type Record struct {
	Hash        string          `json:"hash" jsonschema:"required,pattern=^[0-9a-f]{64}$"`
	ParentHash  *string         `json:"parent_hash" jsonschema:"required"`
	PayloadType string          `json:"payload_type" jsonschema:"required,enum=initial,enum=eat,enum=spawn"`
	Payload     json.RawMessage `json:"payload" jsonschema:"required"`
}

// Transcript is an ordered list of records, genesis first.
type Transcript []Record

// NewRecord converts a block to its persisted form.
func NewRecord(b *Block) (Record, error) {
	payload, err := json.Marshal(b.payload)
	if err != nil {
		return Record{}, fmt.Errorf("marshal %s payload: %w", b.Kind(), err)
	}
	r := Record{
		Hash:        b.hash.String(),
		PayloadType: b.Kind().String(),
		Payload:     payload,
	}
	if b.parent != nil {
		p := b.parent.String()
		r.ParentHash = &p
	}
	return r, nil
}

// Transcript returns the persisted form of every block in order.
func (c *Chain) Transcript() (Transcript, error) {
	out := make(Transcript, 0, len(c.blocks))
	for _, b := range c.blocks {
		r, err := NewRecord(b)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodePayload parses the payload of r into its concrete event type.
func (r Record) DecodePayload() (Event, error) {
	switch r.PayloadType {
	case KindInitial.String():
		var e InitialData
		err := json.Unmarshal(r.Payload, &e)
		return e, err
	case KindEat.String():
		var e EatEvent
		err := json.Unmarshal(r.Payload, &e)
		return e, err
	case KindSpawn.String():
		var e SpawnEvent
		err := json.Unmarshal(r.Payload, &e)
		return e, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayload, r.PayloadType)
	}
}

// ParseHash decodes a hex block address.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode hash: %w", err)
	}
	if len(raw) != HashSize {
		return h, fmt.Errorf("decode hash: got %d bytes, want %d", len(raw), HashSize)
	}
	copy(h[:], raw)
	return h, nil
}

// Verify recomputes every hash of t and checks that it forms a single linear
// history rooted at an initial-data genesis record.
func Verify(t Transcript) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: missing genesis", ErrBrokenLink)
	}
	var prev *Hash
	for i, r := range t {
		payload, err := r.DecodePayload()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if (i == 0) != (payload.Kind() == KindInitial) {
			return fmt.Errorf("record %d: %w: initial data must be genesis only", i, ErrBrokenLink)
		}

		switch {
		case prev == nil && r.ParentHash != nil:
			return fmt.Errorf("record %d: %w: genesis has a parent", i, ErrBrokenLink)
		case prev != nil && r.ParentHash == nil:
			return fmt.Errorf("record %d: %w: missing parent", i, ErrBrokenLink)
		case prev != nil:
			parent, err := ParseHash(*r.ParentHash)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			if parent != *prev {
				return fmt.Errorf("record %d: %w", i, ErrBrokenLink)
			}
		}

		want, err := ParseHash(r.Hash)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		got := Digest(prev, payload)
		if got != want {
			return fmt.Errorf("record %d: %w", i, ErrHashMismatch)
		}
		prev = &got
	}
	return nil
}

// VerifyRecord checks a single detached record against its own parent field
// and returns its hash. It does not check ancestry.
func VerifyRecord(r Record) (Hash, error) {
	payload, err := r.DecodePayload()
	if err != nil {
		return Hash{}, err
	}
	var parent *Hash
	if r.ParentHash != nil {
		p, err := ParseHash(*r.ParentHash)
		if err != nil {
			return Hash{}, err
		}
		parent = &p
	}
	want, err := ParseHash(r.Hash)
	if err != nil {
		return Hash{}, err
	}
	if Digest(parent, payload) != want {
		return Hash{}, ErrHashMismatch
	}
	return want, nil
}
