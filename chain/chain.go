// Package chain records gameplay events as an append-only, hash-linked list of blocks.
//
// Each block's hash is SHA-256 over its parent's hash followed by the canonical
// encoding of its payload, so changing any payload changes that block's hash and
// every hash after it while leaving earlier blocks untouched.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// HashSize is the length of a block hash in bytes.
const HashSize = sha256.Size

// Hash is a block address.
type Hash [HashSize]byte

// String returns the lowercase hex form of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

var (
	// ErrInvalidParent is returned when appending to a block that is not the chain head.
	ErrInvalidParent = errors.New("chain: parent is not the chain head")
	// ErrGenesisPayload is returned when InitialData is appended after genesis.
	ErrGenesisPayload = errors.New("chain: initial data is only valid as genesis")
	// ErrNilPayload is returned when appending a nil event.
	ErrNilPayload = errors.New("chain: nil payload")
)

// Block is an immutable chain node.
type Block struct {
	hash    Hash
	parent  *Hash
	payload Event
}

// Hash returns the block address.
func (b *Block) Hash() Hash { return b.hash }

// ParentHash returns the predecessor's address, or nil for genesis.
func (b *Block) ParentHash() *Hash {
	if b.parent == nil {
		return nil
	}
	p := *b.parent
	return &p
}

// Payload returns the event carried by the block.
func (b *Block) Payload() Event { return b.payload }

// Kind returns the payload discriminant.
func (b *Block) Kind() Kind { return b.payload.Kind() }

// Digest computes the block hash for payload under parent (nil for genesis).
func Digest(parent *Hash, payload Event) Hash {
	buf := make([]byte, 0, HashSize+64)
	if parent != nil {
		buf = append(buf, parent[:]...)
	}
	buf = payload.appendCanonical(buf)
	return sha256.Sum256(buf)
}

func newBlock(parent *Hash, payload Event) *Block {
	b := &Block{payload: payload}
	if parent != nil {
		p := *parent
		b.parent = &p
	}
	b.hash = Digest(b.parent, payload)
	return b
}

// Chain is a strictly linear sequence of blocks starting at a genesis block.
// It has a single writer; readers take a copy with Blocks.
type Chain struct {
	blocks []*Block
}

// New creates a chain whose genesis block carries data.
func New(data InitialData) *Chain {
	return &Chain{blocks: []*Block{newBlock(nil, data)}}
}

// Genesis returns the first block.
func (c *Chain) Genesis() *Block {
	return c.blocks[0]
}

// Head returns the latest block.
func (c *Chain) Head() *Block {
	return c.blocks[len(c.blocks)-1]
}

// Len returns the number of blocks including genesis.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the block list.
func (c *Chain) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Append links payload after parent, which must be the current head.
func (c *Chain) Append(payload Event, parent *Block) (*Block, error) {
	if payload == nil {
		return nil, ErrNilPayload
	}
	if payload.Kind() == KindInitial {
		return nil, ErrGenesisPayload
	}
	if parent == nil || parent.hash != c.Head().hash {
		return nil, ErrInvalidParent
	}
	h := parent.hash
	b := newBlock(&h, payload)
	c.blocks = append(c.blocks, b)
	return b, nil
}

// Extend appends payload to the current head.
func (c *Chain) Extend(payload Event) (*Block, error) {
	return c.Append(payload, c.Head())
}
