// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/hashchain/business/sys/metrics"
	"github.com/ardanlabs/hashchain/business/sys/validate"
	v1 "github.com/ardanlabs/hashchain/business/web/v1"
	"github.com/ardanlabs/hashchain/foundation/events"
	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/chain"
	"github.com/ardanlabs/hashchain/foundation/hashchain/state"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/ardanlabs/hashchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis block record.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := storage.NewBlockRecord(h.State.RetrieveGenesis())
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Chain returns the full set of block records from genesis forward.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	records := make([]storage.BlockRecord, len(blocks))
	for i, blk := range blocks {
		records[i] = storage.NewBlockRecord(blk)
	}

	return web.Respond(ctx, w, records, http.StatusOK)
}

// BlocksByIndex returns the block records for the specified from/to range.
func (h Handlers) BlocksByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if from > to {
		return v1.NewRequestError(errors.New("from greater than to"), http.StatusBadRequest)
	}

	blocks := h.State.QueryBlocksByIndex(from, to)
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	records := make([]storage.BlockRecord, len(blocks))
	for i, blk := range blocks {
		records[i] = storage.NewBlockRecord(blk)
	}

	return web.Respond(ctx, w, records, http.StatusOK)
}

// Mempool returns the set of payloads waiting to be mined.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.RetrieveMempool()
	return web.Respond(ctx, w, pool, http.StatusOK)
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	st := status{
		Host:        h.State.RetrieveHost(),
		LatestIndex: latest.Index,
		LatestHash:  latest.Hash,
		Uncommitted: h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// MineBlock takes a payload and mines it into the next block before
// responding. The client waits for the proof of work.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var pld payload
	if err := web.Decode(r, &pld); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(pld); err != nil {
		return err
	}

	h.Log.Infow("mine block", "traceid", v.TraceID, "data", pld.Data)
	blk, err := h.State.ExtendChain(pld.Data)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	metrics.AddBlocksMined(ctx)

	return web.Respond(ctx, w, storage.NewBlockRecord(blk), http.StatusOK)
}

// SubmitPayload queues a payload for the mining worker and responds without
// waiting for the proof of work.
func (h Handlers) SubmitPayload(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var pld payload
	if err := web.Decode(r, &pld); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(pld); err != nil {
		return err
	}

	pending := h.State.SubmitPayload(pld.Data)
	h.Log.Infow("submit payload", "traceid", v.TraceID, "payload", pending.ID)

	resp := struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}{
		ID:     pending.ID.String(),
		Status: "payload added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// ValidateChain re-validates the node's own chain from the genesis block
// forward.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	valid, err := h.State.ValidateChain()
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, validity{Valid: valid}, http.StatusOK)
}

// ValidateBlocks checks a posted chain of block records against the chain
// rules. A chain that fails the rules is a normal result, not an error.
func (h Handlers) ValidateBlocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var records []storage.BlockRecord
	if err := web.Decode(r, &records); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	blocks := make([]block.Block, len(records))
	for i, record := range records {
		blocks[i] = storage.ToBlock(record)
	}

	valid, err := chain.IsValid(blocks)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, validity{Valid: valid}, http.StatusOK)
}
