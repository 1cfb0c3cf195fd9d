// Package state is the core API for the hash chain and implements all the
// business rules and processing.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/chain"
	"github.com/ardanlabs/hashchain/foundation/hashchain/mempool"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining new blocks.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start
// the chain node.
type Config struct {
	Host      string
	Storage   *storage.Memory
	Now       func() time.Time
	EvHandler EventHandler
}

// State manages the hash chain node.
type State struct {
	mu sync.Mutex

	host      string
	evHandler EventHandler
	now       func() time.Time

	mempool *mempool.Pool
	storage *storage.Memory

	Worker Worker
}

// New constructs a new state for chain management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The core never reads the wall clock directly. Injecting the time
	// source gives tests full control over block timestamps.
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	strg := cfg.Storage
	if strg == nil {
		var err error
		strg, err = storage.NewMemory()
		if err != nil {
			return nil, err
		}
	}

	// Seed an empty store with the genesis block. A store handed over with
	// existing records is fully validated before it is trusted.
	switch strg.Count() {
	case 0:
		ev("state: New: seeding genesis block")
		if err := strg.Append(storage.NewBlockRecord(block.Genesis())); err != nil {
			return nil, err
		}

	default:
		records := strg.Records()
		blocks := make([]block.Block, len(records))
		for i, record := range records {
			blocks[i] = storage.ToBlock(record)
		}

		valid, err := chain.IsValid(blocks)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, errors.New("stored chain is invalid")
		}

		ev("state: New: loaded chain: blocks[%d]", len(blocks))
	}

	state := State{
		host:      cfg.Host,
		evHandler: ev,
		now:       now,
		mempool:   mempool.NewWithClock(now),
		storage:   strg,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Stop all chain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
