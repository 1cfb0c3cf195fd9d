package state

import (
	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlocksByIndex returns the set of blocks for the inclusive index
// range. The QueryLatest sentinel on either bound resolves to the index
// of the latest block.
func (s *State) QueryBlocksByIndex(from uint64, to uint64) []block.Block {
	latest := s.RetrieveLatestBlock()

	if from == QueryLatest {
		from = latest.Index
		to = from
	}
	if to == QueryLatest {
		to = latest.Index
	}

	var out []block.Block
	for i := from; i <= to; i++ {
		record, err := s.storage.GetBlock(i)
		if err != nil {
			s.evHandler("state: getblock: ERROR: %s", err)
			return nil
		}
		out = append(out, storage.ToBlock(record))
	}

	return out
}
