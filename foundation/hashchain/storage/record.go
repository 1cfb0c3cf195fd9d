// Package storage handles the representation of blocks outside the core:
// record conversion for transport and serialization plus an in memory
// chain store.
package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
)

// recordVersion is the first byte of every binary encoded record. Bump it
// when the layout changes so old payloads are rejected instead of misread.
const recordVersion = 0x1

// ErrRecordFormat is returned when a binary payload cannot be decoded
// into a block record.
var ErrRecordFormat = errors.New("malformed binary block record")

// BlockRecord represents a block as it travels over the wire and sits in
// storage. The JSON field names are a compatibility contract with existing
// chain files and clients.
type BlockRecord struct {
	Index     uint64 `json:"index"`
	PrevHash  string `json:"previousHash"`
	TimeStamp uint64 `json:"timestamp"`
	Data      string `json:"blockData"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"blockHash"`
}

// NewBlockRecord constructs the storage representation of the specified
// block.
func NewBlockRecord(b block.Block) BlockRecord {
	return BlockRecord{
		Index:     b.Index,
		PrevHash:  b.PrevHash,
		TimeStamp: b.TimeStamp,
		Data:      b.Data,
		Nonce:     b.Nonce,
		Hash:      b.Hash,
	}
}

// ToBlock converts a BlockRecord back into a core block. No validation is
// performed here; trust decisions belong to the chain package.
func ToBlock(record BlockRecord) block.Block {
	return block.Block{
		Index:     record.Index,
		PrevHash:  record.PrevHash,
		TimeStamp: record.TimeStamp,
		Data:      record.Data,
		Nonce:     record.Nonce,
		Hash:      record.Hash,
	}
}

// =============================================================================

// MarshalBinary encodes the record into the fixed wire layout: one version
// byte, the three counters as big endian 64 bit values, then the three
// string fields each prefixed with a big endian 32 bit length.
func (r BlockRecord) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(recordVersion)

	for _, v := range []uint64{r.Index, r.TimeStamp, r.Nonce} {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}

	for _, s := range []string{r.PrevHash, r.Data, r.Hash} {
		if len(s) > math.MaxUint32 {
			return nil, fmt.Errorf("field of %d bytes exceeds the length prefix", len(s))
		}
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(s))); err != nil {
			return nil, err
		}
		buf.WriteString(s)
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary. Any
// truncation, trailing garbage, or unknown version yields ErrRecordFormat.
func (r *BlockRecord) UnmarshalBinary(data []byte) error {
	rd := bytes.NewReader(data)

	version, err := rd.ReadByte()
	if err != nil {
		return fmt.Errorf("empty payload: %w", ErrRecordFormat)
	}
	if version != recordVersion {
		return fmt.Errorf("unknown version 0x%x: %w", version, ErrRecordFormat)
	}

	var rec BlockRecord
	for _, v := range []*uint64{&rec.Index, &rec.TimeStamp, &rec.Nonce} {
		if err := binary.Read(rd, binary.BigEndian, v); err != nil {
			return fmt.Errorf("truncated counters: %w", ErrRecordFormat)
		}
	}

	for _, s := range []*string{&rec.PrevHash, &rec.Data, &rec.Hash} {
		var length uint32
		if err := binary.Read(rd, binary.BigEndian, &length); err != nil {
			return fmt.Errorf("truncated length prefix: %w", ErrRecordFormat)
		}

		// Bound the allocation by what is actually left to read.
		if int64(length) > int64(rd.Len()) {
			return fmt.Errorf("field length %d exceeds remaining %d bytes: %w", length, rd.Len(), ErrRecordFormat)
		}

		raw := make([]byte, length)
		if _, err := io.ReadFull(rd, raw); err != nil {
			return fmt.Errorf("truncated field: %w", ErrRecordFormat)
		}
		*s = string(raw)
	}

	if rd.Len() != 0 {
		return fmt.Errorf("%d trailing bytes: %w", rd.Len(), ErrRecordFormat)
	}

	*r = rec

	return nil
}
