package state

import (
	"github.com/ardanlabs/hashchain/foundation/hashchain/chain"
)

// ValidateChain checks the node's own chain from the genesis block forward.
func (s *State) ValidateChain() (bool, error) {
	s.evHandler("state: ValidateChain: started")
	defer s.evHandler("state: ValidateChain: completed")

	return chain.IsValid(s.RetrieveChain())
}
