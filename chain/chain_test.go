package chain

import (
	"encoding/json"
	"errors"
	"testing"
)

func eats() []EatEvent {
	return []EatEvent{
		{X: 3, Y: 4, FoodHash: []byte{0x01, 0x02}},
		{X: 7.5, Y: -1, FoodHash: []byte{0xaa}},
		{X: 0, Y: 12, FoodHash: nil},
	}
}

func buildChain(t *testing.T, events []EatEvent) *Chain {
	t.Helper()
	c := New(InitialData{Length: 5, Seed: 0})
	for i, e := range events {
		if _, err := c.Append(e, c.Head()); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	return c
}

func hashes(c *Chain) []Hash {
	out := make([]Hash, 0, c.Len())
	for _, b := range c.Blocks() {
		out = append(out, b.Hash())
	}
	return out
}

func TestChainDeterministic(t *testing.T) {
	a := hashes(buildChain(t, eats()))
	b := hashes(buildChain(t, eats()))

	if len(a) != 4 {
		t.Fatalf("chain length = %d, want 4", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("block %d hash differs between identical builds", i)
		}
	}
}

func TestChainLinks(t *testing.T) {
	c := buildChain(t, eats())
	blocks := c.Blocks()

	if blocks[0].ParentHash() != nil {
		t.Error("genesis should have no parent")
	}
	for i := 1; i < len(blocks); i++ {
		p := blocks[i].ParentHash()
		if p == nil || *p != blocks[i-1].Hash() {
			t.Errorf("block %d does not reference block %d", i, i-1)
		}
		if got := Digest(p, blocks[i].Payload()); got != blocks[i].Hash() {
			t.Errorf("block %d hash is not Digest(parent, payload)", i)
		}
	}
}

func TestChainMutationPropagates(t *testing.T) {
	base := hashes(buildChain(t, eats()))

	tests := []struct {
		name   string
		index  int // block index whose payload changes
		mutate func(e []EatEvent)
	}{
		{"first x", 1, func(e []EatEvent) { e[0].X = 3.25 }},
		{"second food hash", 2, func(e []EatEvent) { e[1].FoodHash = []byte{0xab} }},
		{"third y", 3, func(e []EatEvent) { e[2].Y = 11 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := eats()
			tt.mutate(events)
			got := hashes(buildChain(t, events))

			for i := range got {
				changed := got[i] != base[i]
				if i < tt.index && changed {
					t.Errorf("ancestor block %d changed", i)
				}
				if i >= tt.index && !changed {
					t.Errorf("block %d did not change", i)
				}
			}
		})
	}
}

func TestGenesisDependsOnPayload(t *testing.T) {
	a := New(InitialData{Length: 5, Seed: 0}).Head().Hash()
	b := New(InitialData{Length: 5, Seed: 1}).Head().Hash()
	if a == b {
		t.Error("different seeds produced the same genesis hash")
	}
}

func TestAppendInvalidParent(t *testing.T) {
	c := buildChain(t, eats())
	stale := c.Blocks()[1]
	before := hashes(c)

	_, err := c.Append(EatEvent{X: 1, Y: 1}, stale)
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("err = %v, want ErrInvalidParent", err)
	}
	_, err = c.Append(EatEvent{X: 1, Y: 1}, nil)
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("nil parent err = %v, want ErrInvalidParent", err)
	}

	after := hashes(c)
	if len(after) != len(before) {
		t.Fatalf("chain length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("block %d changed after failed append", i)
		}
	}
}

func TestAppendRejectsGenesisPayload(t *testing.T) {
	c := New(InitialData{Length: 3})
	if _, err := c.Extend(InitialData{Length: 4}); !errors.Is(err, ErrGenesisPayload) {
		t.Errorf("err = %v, want ErrGenesisPayload", err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestTranscriptVerify(t *testing.T) {
	c := buildChain(t, eats())
	if _, err := c.Extend(SpawnEvent{X: 4, Y: 2, Food: "color", Score: 3}); err != nil {
		t.Fatalf("extend spawn: %v", err)
	}

	tr, err := c.Transcript()
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if tr[0].ParentHash != nil || tr[0].PayloadType != "initial" {
		t.Errorf("genesis record = %+v", tr[0])
	}

	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var loaded Transcript
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := Verify(loaded); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if loaded[len(loaded)-1].Hash != c.Head().Hash().String() {
		t.Error("last record hash does not match chain head")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	c := buildChain(t, eats())

	tests := []struct {
		name   string
		tamper func(tr Transcript) Transcript
		want   error
	}{
		{
			name: "payload edited",
			tamper: func(tr Transcript) Transcript {
				tr[2].Payload = json.RawMessage(`{"x":99,"y":-1,"food_hash":"qg=="}`)
				return tr
			},
			want: ErrHashMismatch,
		},
		{
			name: "record dropped",
			tamper: func(tr Transcript) Transcript {
				copy(tr[1:], tr[2:])
				return tr
			},
			want: ErrBrokenLink,
		},
		{
			name: "unknown type",
			tamper: func(tr Transcript) Transcript {
				tr[1].PayloadType = "teleport"
				return tr
			},
			want: ErrUnknownPayload,
		},
		{
			name: "empty",
			tamper: func(tr Transcript) Transcript {
				return Transcript{}
			},
			want: ErrBrokenLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := c.Transcript()
			if err != nil {
				t.Fatalf("Transcript: %v", err)
			}
			if err := Verify(tt.tamper(tr)); !errors.Is(err, tt.want) {
				t.Errorf("Verify err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyRecord(t *testing.T) {
	c := New(InitialData{Seed: 9})
	spawn, err := c.Extend(SpawnEvent{X: 1, Y: 2, Food: "food", Score: 1})
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRecord(spawn)
	if err != nil {
		t.Fatal(err)
	}

	h, err := VerifyRecord(r)
	if err != nil {
		t.Fatalf("VerifyRecord: %v", err)
	}
	if h != spawn.Hash() {
		t.Error("returned hash differs from block hash")
	}

	r.Payload = json.RawMessage(`{"x":1,"y":2,"food":"food","score":5}`)
	if _, err := VerifyRecord(r); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
}
