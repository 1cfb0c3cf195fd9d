package worker

import (
	"errors"
	"time"

	"github.com/ardanlabs/hashchain/foundation/hashchain/state"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines pending payloads into blocks until the pool is
// empty or a shutdown is signaled. A block search that has begun is never
// abandoned part way; payloads still pooled at shutdown stay pooled.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	for !w.isShutdown() {
		t := time.Now()
		block, err := w.state.MineNewBlock()
		duration := time.Since(t)

		if err != nil {
			if errors.Is(err, state.ErrNoPendingPayloads) {
				w.evHandler("worker: runMiningOperation: MINING: no payloads to mine")
				return
			}

			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
			return
		}

		w.evHandler("worker: runMiningOperation: MINING: mined block: index[%d] nonce[%d] duration[%v]", block.Index, block.Nonce, duration)
	}
}
