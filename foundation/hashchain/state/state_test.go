package state_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/state"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/google/uuid"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// stubWorker records the signals the state sends to its worker.
type stubWorker struct {
	signals   int
	shutdowns int
}

func (w *stubWorker) Shutdown()          { w.shutdowns++ }
func (w *stubWorker) SignalStartMining() { w.signals++ }

func fixedClock(sec int64) func() time.Time {
	return func() time.Time {
		return time.Unix(sec, 0)
	}
}

func newTestState(t *testing.T, sec int64) *state.State {
	t.Helper()

	st, err := state.New(state.Config{
		Host: "localhost:8080",
		Now:  fixedClock(sec),
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct state: %s", failed, err)
	}

	return st
}

func TestStateGenesisSeeding(t *testing.T) {
	t.Log("Given the need to start a node from nothing.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen constructing state with an empty store.", testID)
		{
			st := newTestState(t, 1000)

			gen := st.RetrieveGenesis()
			if gen != block.Genesis() {
				t.Fatalf("\t%s\tTest %d:\tShould retrieve the fixed genesis block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould retrieve the fixed genesis block.", success, testID)

			latest := st.RetrieveLatestBlock()
			if latest != gen {
				t.Fatalf("\t%s\tTest %d:\tShould report genesis as latest: got index %d.", failed, testID, latest.Index)
			}
			t.Logf("\t%s\tTest %d:\tShould report genesis as latest.", success, testID)

			blocks := st.RetrieveChain()
			if len(blocks) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould hold exactly the genesis block: got %d.", failed, testID, len(blocks))
			}
			t.Logf("\t%s\tTest %d:\tShould hold exactly the genesis block.", success, testID)

			valid, err := st.ValidateChain()
			if err != nil || !valid {
				t.Fatalf("\t%s\tTest %d:\tShould start with a valid chain: ok[%v] err[%v].", failed, testID, valid, err)
			}
			t.Logf("\t%s\tTest %d:\tShould start with a valid chain.", success, testID)

			if host := st.RetrieveHost(); host != "localhost:8080" {
				t.Fatalf("\t%s\tTest %d:\tShould carry the configured host: got %q.", failed, testID, host)
			}
			t.Logf("\t%s\tTest %d:\tShould carry the configured host.", success, testID)
		}
	}
}

func TestStateExtendChain(t *testing.T) {
	t.Log("Given the need to grow the chain with new payloads.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen extending the chain directly.", testID)
		{
			st := newTestState(t, 1000)

			b, err := st.ExtendChain("hello")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to extend the chain: %s.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to extend the chain.", success, testID)

			if b.Index != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould mine block index 1: got %d.", failed, testID, b.Index)
			}
			if b.TimeStamp != 1000 {
				t.Fatalf("\t%s\tTest %d:\tShould stamp the block from the injected clock: got %d.", failed, testID, b.TimeStamp)
			}
			if b.Data != "hello" {
				t.Fatalf("\t%s\tTest %d:\tShould carry the payload: got %q.", failed, testID, b.Data)
			}
			if b.PrevHash != block.Genesis().Hash {
				t.Fatalf("\t%s\tTest %d:\tShould link to the genesis block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould mine a linked, stamped block.", success, testID)

			if latest := st.RetrieveLatestBlock(); latest != b {
				t.Fatalf("\t%s\tTest %d:\tShould report the mined block as latest.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report the mined block as latest.", success, testID)

			valid, err := st.ValidateChain()
			if err != nil || !valid {
				t.Fatalf("\t%s\tTest %d:\tShould keep the chain valid: ok[%v] err[%v].", failed, testID, valid, err)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the chain valid.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen submitting payloads for asynchronous mining.", testID)
		{
			st := newTestState(t, 1000)

			var wkr stubWorker
			st.Worker = &wkr

			pending := st.SubmitPayload("queued work")
			if pending.ID == uuid.Nil {
				t.Fatalf("\t%s\tTest %d:\tShould assign an id to the submission.", failed, testID)
			}
			if wkr.signals != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould signal the worker once: got %d.", failed, testID, wkr.signals)
			}
			t.Logf("\t%s\tTest %d:\tShould queue the payload and signal the worker.", success, testID)

			if l := st.QueryMempoolLength(); l != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report one pending payload: got %d.", failed, testID, l)
			}
			if mp := st.RetrieveMempool(); len(mp) != 1 || mp[0].Data != "queued work" {
				t.Fatalf("\t%s\tTest %d:\tShould expose the pending payload: got %+v.", failed, testID, mp)
			}
			t.Logf("\t%s\tTest %d:\tShould expose the pending payload.", success, testID)

			b, err := st.MineNewBlock()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould mine the pending payload: %s.", failed, testID, err)
			}
			if b.Data != "queued work" {
				t.Fatalf("\t%s\tTest %d:\tShould mine the submitted payload: got %q.", failed, testID, b.Data)
			}
			if l := st.QueryMempoolLength(); l != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould drain the pool: got %d.", failed, testID, l)
			}
			t.Logf("\t%s\tTest %d:\tShould mine the pending payload and drain the pool.", success, testID)

			if _, err := st.MineNewBlock(); !errors.Is(err, state.ErrNoPendingPayloads) {
				t.Fatalf("\t%s\tTest %d:\tShould report an empty pool: got %v.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould report an empty pool.", success, testID)

			if err := st.Shutdown(); err != nil || wkr.shutdowns != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould shut the worker down once: err[%v] count[%d].", failed, testID, err, wkr.shutdowns)
			}
			t.Logf("\t%s\tTest %d:\tShould shut the worker down once.", success, testID)
		}
	}
}

func TestStateQueries(t *testing.T) {
	t.Log("Given the need to query ranges of the chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen querying a three block chain.", testID)
		{
			st := newTestState(t, 1000)
			for _, data := range []string{"one", "two"} {
				if _, err := st.ExtendChain(data); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to extend the chain: %s.", failed, testID, err)
				}
			}

			if blocks := st.QueryBlocksByIndex(0, 0); len(blocks) != 1 || blocks[0] != block.Genesis() {
				t.Fatalf("\t%s\tTest %d:\tShould query the genesis block by index.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould query the genesis block by index.", success, testID)

			blocks := st.QueryBlocksByIndex(state.QueryLatest, state.QueryLatest)
			if len(blocks) != 1 || blocks[0].Index != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould resolve the latest sentinel: got %+v.", failed, testID, blocks)
			}
			t.Logf("\t%s\tTest %d:\tShould resolve the latest sentinel.", success, testID)

			if blocks := st.QueryBlocksByIndex(0, state.QueryLatest); len(blocks) != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould query the whole chain: got %d.", failed, testID, len(blocks))
			}
			t.Logf("\t%s\tTest %d:\tShould query the whole chain.", success, testID)

			if blocks := st.QueryBlocksByIndex(5, 9); blocks != nil {
				t.Fatalf("\t%s\tTest %d:\tShould return nothing past the end: got %d.", failed, testID, len(blocks))
			}
			t.Logf("\t%s\tTest %d:\tShould return nothing past the end.", success, testID)
		}
	}
}

func TestStateReload(t *testing.T) {
	t.Log("Given the need to adopt a previously built chain store.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen reloading a valid store.", testID)
		{
			store, err := storage.NewMemory()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct a store: %s.", failed, testID, err)
			}

			first, err := state.New(state.Config{Storage: store, Now: fixedClock(1000)})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct state: %s.", failed, testID, err)
			}
			mined, err := first.ExtendChain("carried over")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to extend the chain: %s.", failed, testID, err)
			}

			second, err := state.New(state.Config{Storage: store, Now: fixedClock(2000)})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould adopt the existing store: %s.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould adopt the existing store.", success, testID)

			if latest := second.RetrieveLatestBlock(); latest != mined {
				t.Fatalf("\t%s\tTest %d:\tShould resume from the stored latest block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould resume from the stored latest block.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen reloading a tampered store.", testID)
		{
			store, err := storage.NewMemory()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct a store: %s.", failed, testID, err)
			}

			first, err := state.New(state.Config{Storage: store, Now: fixedClock(1000)})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct state: %s.", failed, testID, err)
			}
			if _, err := first.ExtendChain("will be edited"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to extend the chain: %s.", failed, testID, err)
			}

			tampered, err := store.GetBlock(1)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould read back block 1: %s.", failed, testID, err)
			}
			tampered.Data = "edited"

			store.Reset()
			store.Append(storage.NewBlockRecord(block.Genesis()))
			store.Append(tampered)

			if _, err := state.New(state.Config{Storage: store, Now: fixedClock(1000)}); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould reject the tampered store.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the tampered store.", success, testID)
		}
	}
}
