// Package digest implements the hashing layer for the hashchain: 256 bit
// digests, their fixed-length hex form, and the proof of work difficulty
// predicate shared by mining and validation.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

// HexLen is the exact length of the hex form of a Digest.
const HexLen = 64

// ErrMalformedDigest indicates a hex digest that is not HexLen hex
// characters. This represents a defect in the hashing layer, not an invalid
// block, and must surface to the caller rather than read as false.
var ErrMalformedDigest = errors.New("malformed hex digest")

// targetHex is the fixed difficulty target for the chain. A digest read as
// an unsigned 256 bit integer must be strictly less than this value. Four
// leading zero hex digits keeps the expected search near 2^16 attempts.
const targetHex = "0000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

// difficultyTarget is initialized once at startup and never mutated. Access
// goes through DifficultyTarget, which hands out copies.
var difficultyTarget = func() *big.Int {
	t, ok := new(big.Int).SetString(targetHex, 16)
	if !ok {
		panic(fmt.Sprintf("parsing difficulty target %q", targetHex))
	}
	return t
}()

// =============================================================================

// Digest represents the output of the 256 bit hashing function.
type Digest [32]byte

// Sum hashes the specified data with SHA-256. It is deterministic and has no
// failure path for any input.
func Sum(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Hex returns the lowercase hex encoding of the digest, always HexLen
// characters with no prefix.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Parse converts a HexLen character hex string back into a Digest. A string
// of the wrong length or with non-hex characters returns ErrMalformedDigest.
func Parse(hexDigest string) (Digest, error) {
	if len(hexDigest) != HexLen {
		return Digest{}, fmt.Errorf("digest length %d: %w", len(hexDigest), ErrMalformedDigest)
	}

	var d Digest
	if _, err := hex.Decode(d[:], []byte(hexDigest)); err != nil {
		return Digest{}, fmt.Errorf("digest not hex: %w", ErrMalformedDigest)
	}

	return d, nil
}

// =============================================================================

// DifficultyTarget returns a copy of the process wide difficulty target. The
// copy keeps callers from mutating the shared value through the pointer.
func DifficultyTarget() *big.Int {
	return new(big.Int).Set(difficultyTarget)
}

// SatisfiesTarget reports whether the hex digest, read as an unsigned 256
// bit integer, is strictly less than the specified target. A malformed
// digest is a contract violation in the hashing layer and returns
// ErrMalformedDigest, never a silent false.
func SatisfiesTarget(hexDigest string, target *big.Int) (bool, error) {
	d, err := Parse(hexDigest)
	if err != nil {
		return false, err
	}

	value := new(big.Int).SetBytes(d[:])
	return value.Cmp(target) < 0, nil
}
