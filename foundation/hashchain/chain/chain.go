// Package chain implements the validity rules for a sequence of blocks. The
// rules re-derive every hash from block content; stored fields are never
// trusted.
package chain

import (
	"fmt"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/digest"
)

// IsValidSuccessor reports whether next is the valid successor of prev: the
// index advances by exactly 1, next's previous hash matches prev's hash,
// next's stored hash equals the hash recomputed from its own content, and
// that recomputed hash satisfies the difficulty target. Any single failure
// makes the result false. The error return carries only the malformed digest
// defect from the hashing layer; it is nil for every ordinary false.
func IsValidSuccessor(prev block.Block, next block.Block) (bool, error) {
	if next.Index != prev.Index+1 {
		return false, nil
	}

	if next.PrevHash != prev.Hash {
		return false, nil
	}

	// Recompute the hash from the block's own content. A stored hash that
	// does not match, malformed or not, is an invalid block, so the
	// difficulty predicate below only ever sees a well formed digest.
	hash := block.ComputeHash(next)
	if next.Hash != hash {
		return false, nil
	}

	ok, err := digest.SatisfiesTarget(hash, digest.DifficultyTarget())
	if err != nil {
		return false, fmt.Errorf("block %d: %w", next.Index, err)
	}

	return ok, nil
}

// IsValid reports whether the sequence of blocks forms a valid chain. An
// empty sequence is valid. A non-empty sequence must start with the genesis
// block, compared by full value equality, and every consecutive pair must
// satisfy IsValidSuccessor. Invalidity is an ordinary result for callers to
// handle, not a failure.
func IsValid(blocks []block.Block) (bool, error) {
	if len(blocks) == 0 {
		return true, nil
	}

	if blocks[0] != block.Genesis() {
		return false, nil
	}

	for i := 1; i < len(blocks); i++ {
		ok, err := IsValidSuccessor(blocks[i-1], blocks[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
