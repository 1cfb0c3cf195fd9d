package state

import (
	"errors"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/mempool"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
)

// ErrNoPendingPayloads is returned when a block is requested to be mined
// and the pool is empty.
var ErrNoPendingPayloads = errors.New("no payloads in mempool")

// =============================================================================

// SubmitPayload queues the payload for asynchronous mining and signals the
// mining worker that there is work waiting.
func (s *State) SubmitPayload(data string) mempool.Pending {
	pending := s.mempool.Add(data)

	s.evHandler("state: SubmitPayload: queued: payload[%s]", pending.ID)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return pending
}

// MineNewBlock pops the oldest pending payload and mines it into the next
// block of the chain.
func (s *State) MineNewBlock() (block.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	pending, exists := s.mempool.Pop()
	if !exists {
		return block.Block{}, ErrNoPendingPayloads
	}

	s.evHandler("state: MineNewBlock: MINING: payload[%s]", pending.ID)

	return s.ExtendChain(pending.Data)
}

// ExtendChain mines the payload into a new block on the end of the chain
// and stores it. This is the only write path into the chain.
func (s *State) ExtendChain(data string) (block.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: ExtendChain: MINING: perform POW")

	latest, exists := s.storage.Latest()
	if !exists {
		return block.Block{}, errors.New("chain store has no genesis block")
	}

	b, err := block.Extend(storage.ToBlock(latest), uint64(s.now().Unix()), data)
	if err != nil {
		return block.Block{}, err
	}

	s.evHandler("state: ExtendChain: MINING: solved: block[%s] nonce[%d]", b.Hash, b.Nonce)

	if err := s.storage.Append(storage.NewBlockRecord(b)); err != nil {
		return block.Block{}, err
	}

	return b, nil
}
