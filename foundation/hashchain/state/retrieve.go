package state

import (
	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/mempool"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
)

// RetrieveHost returns a copy of host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveGenesis returns the fixed first block of the chain.
func (s *State) RetrieveGenesis() block.Block {
	return block.Genesis()
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() block.Block {

	// The store is seeded with the genesis record at construction, so
	// there is always a latest block.
	latest, _ := s.storage.Latest()

	return storage.ToBlock(latest)
}

// RetrieveChain returns a copy of the full chain in index order.
func (s *State) RetrieveChain() []block.Block {
	records := s.storage.Records()

	blocks := make([]block.Block, len(records))
	for i, record := range records {
		blocks[i] = storage.ToBlock(record)
	}

	return blocks
}

// RetrieveMempool returns a copy of the pending payloads in submission order.
func (s *State) RetrieveMempool() []mempool.Pending {
	return s.mempool.Copy()
}
