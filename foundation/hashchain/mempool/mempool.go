// Package mempool maintains the pool of payloads waiting to be mined
// into blocks.
package mempool

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pending represents a payload sitting in the pool waiting to be mined.
type Pending struct {
	ID          uuid.UUID `json:"id"`
	Data        string    `json:"data"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Pool represents a FIFO cache of payloads submitted for mining. Payloads
// leave the pool in submission order; there is no selection strategy.
type Pool struct {
	mu      sync.RWMutex
	now     func() time.Time
	pending []Pending
}

// New constructs a new pool using the wall clock.
func New() *Pool {
	return NewWithClock(time.Now)
}

// NewWithClock constructs a new pool with the specified time source.
func NewWithClock(now func() time.Time) *Pool {
	if now == nil {
		now = time.Now
	}

	return &Pool{now: now}
}

// Count returns the current number of payloads in the pool.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.pending)
}

// Add assigns an id to the payload and places it at the back of the pool.
func (p *Pool) Add(data string) Pending {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending := Pending{
		ID:          uuid.New(),
		Data:        data,
		SubmittedAt: p.now(),
	}

	p.pending = append(p.pending, pending)

	return pending
}

// Pop removes and returns the oldest payload in the pool. The boolean
// reports whether the pool had anything to give.
func (p *Pool) Pop() (Pending, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) == 0 {
		return Pending{}, false
	}

	pending := p.pending[0]
	p.pending = p.pending[1:]

	return pending, true
}

// Copy returns a copy of the pool in submission order.
func (p *Pool) Copy() []Pending {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pending := make([]Pending, len(p.pending))
	copy(pending, p.pending)

	return pending
}

// Truncate clears all the payloads from the pool.
func (p *Pool) Truncate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = nil
}
