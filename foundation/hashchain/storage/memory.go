package storage

import (
	"errors"
	"sync"
)

var (
	// ErrOutOfOrder is returned when an appended record does not carry the
	// next expected index.
	ErrOutOfOrder = errors.New("block is out of order")

	// ErrNotExist is returned when the requested block is not in the store.
	ErrNotExist = errors.New("block does not exist")
)

// Memory represents the implementation for reading and storing the chain
// in memory using a slice. Records are dense: the record at slice position
// i always carries index i, starting with the genesis record at 0.
type Memory struct {
	mu      sync.RWMutex
	records []BlockRecord
}

// NewMemory constructs a Memory value for use.
func NewMemory() (*Memory, error) {
	return &Memory{}, nil
}

// Append takes the specified record and stores it in memory. The record
// must carry the next index in sequence.
func (m *Memory) Append(record BlockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.records)) != record.Index {
		return ErrOutOfOrder
	}

	m.records = append(m.records, record)

	return nil
}

// GetBlock locates and returns the record with the specified index.
func (m *Memory) GetBlock(index uint64) (BlockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index >= uint64(len(m.records)) {
		return BlockRecord{}, ErrNotExist
	}

	return m.records[index], nil
}

// Latest returns the most recently appended record. The boolean reports
// whether the store holds any records at all.
func (m *Memory) Latest() (BlockRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.records) == 0 {
		return BlockRecord{}, false
	}

	return m.records[len(m.records)-1], true
}

// Count returns the number of records in the store.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// Records returns a copy of the stored chain in index order.
func (m *Memory) Records() []BlockRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]BlockRecord, len(m.records))
	copy(records, m.records)

	return records
}

// Reset clears out the stored chain.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = []BlockRecord{}
}
