// Package block implements the block record, its canonical hash, and the
// proof of work search that produces new blocks for the chain.
package block

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/ardanlabs/hashchain/foundation/hashchain/digest"
)

// GenesisPrevHash is the previous hash sentinel carried by the genesis block.
const GenesisPrevHash = "0"

// genesisData is the payload the genesis block is mined with. The seed fields
// are fixed so every conforming process computes the identical genesis block.
const genesisData = "initial data"

// ErrNonceExhausted is returned when the nonce counter reaches the maximum
// uint64 value without finding a satisfying hash. The search fails with this
// distinct condition rather than wrapping the counter.
var ErrNonceExhausted = errors.New("nonce space exhausted")

// ErrAttemptLimit is returned by MineWithLimit when the attempt bound is
// reached before a satisfying hash is found.
var ErrAttemptLimit = errors.New("mining attempt limit reached")

// =============================================================================

// Block represents one record in the chain. A block is a value: once mined it
// is never mutated, and any field change must flow through a fresh
// WithComputedHash or Mine to produce a new block.
type Block struct {
	Index     uint64
	PrevHash  string
	TimeStamp uint64
	Data      string
	Nonce     uint64
	Hash      string
}

// preImage returns the canonical byte sequence the block's hash is computed
// over: the decimal form of each integer field and the raw string fields,
// concatenated in fixed order with no separators.
//
// CORE NOTE: The missing separators make the raw bytes ambiguous when a
// payload ends in digits, but nothing reads this format back; every party
// recomputes it from the structured fields. The exact concatenation is
// frozen for hash compatibility and must not change.
func (b Block) preImage() []byte {
	buf := make([]byte, 0, 20+len(b.PrevHash)+20+len(b.Data)+20)
	buf = strconv.AppendUint(buf, b.Index, 10)
	buf = append(buf, b.PrevHash...)
	buf = strconv.AppendUint(buf, b.TimeStamp, 10)
	buf = append(buf, b.Data...)
	buf = strconv.AppendUint(buf, b.Nonce, 10)

	return buf
}

// ComputeHash returns the hex digest of the block's canonical pre-image. The
// stored Hash field takes no part in the computation.
func ComputeHash(b Block) string {
	return digest.Sum(b.preImage()).Hex()
}

// WithComputedHash returns a copy of the block with the Hash field set to the
// freshly computed hash of its own content. Pure, no search.
func WithComputedHash(b Block) Block {
	b.Hash = ComputeHash(b)
	return b
}

// =============================================================================

// Mine performs the proof of work search: starting from the block's current
// nonce, compute the hash and increment the nonce by 1 until the hash
// satisfies the difficulty target. The search is sequential, CPU bound, and
// unbounded; it blocks the caller for its full duration. Identical non-nonce
// fields always yield the identical winning nonce.
func Mine(b Block) (Block, error) {
	return MineWithLimit(b, 0)
}

// MineWithLimit performs the same search as Mine with an upper bound on the
// number of attempts. A maxAttempts of 0 means unlimited and is the
// production default; tests use a small bound so they never run a true proof
// of work search.
func MineWithLimit(b Block, maxAttempts uint64) (Block, error) {
	target := digest.DifficultyTarget()

	var attempts uint64
	for {
		attempts++

		hash := ComputeHash(b)
		ok, err := digest.SatisfiesTarget(hash, target)
		if err != nil {
			return Block{}, fmt.Errorf("checking difficulty: %w", err)
		}
		if ok {
			b.Hash = hash
			return b, nil
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			return Block{}, fmt.Errorf("stopping after %d attempts: %w", attempts, ErrAttemptLimit)
		}
		if b.Nonce == math.MaxUint64 {
			return Block{}, ErrNonceExhausted
		}
		b.Nonce++
	}
}

// Extend builds the successor of the specified last block with the supplied
// timestamp and payload and mines it. This is the sole construction path for
// new blocks besides the genesis block; callers never supply a hash or a
// nonce.
func Extend(last Block, timeStamp uint64, data string) (Block, error) {
	nb := Block{
		Index:     last.Index + 1,
		PrevHash:  last.Hash,
		TimeStamp: timeStamp,
		Data:      data,
		Nonce:     0,
	}

	return Mine(nb)
}

// =============================================================================

var (
	genesisOnce  sync.Once
	genesisBlock Block
)

// Genesis returns the fixed first block of every valid chain. The block is
// mined once from constant seed fields and is subject to the same proof of
// work as any other block, so every conforming process computes the
// identical value.
func Genesis() Block {
	genesisOnce.Do(func() {
		seed := Block{
			Index:     0,
			PrevHash:  GenesisPrevHash,
			TimeStamp: 0,
			Data:      genesisData,
			Nonce:     0,
		}

		gb, err := Mine(seed)
		if err != nil {

			// Mining can only fail here if the hashing layer is broken.
			// That is a startup defect, not a runtime condition.
			panic(fmt.Sprintf("mining genesis block: %s", err))
		}

		genesisBlock = gb
	})

	return genesisBlock
}
