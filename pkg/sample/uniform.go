package sample

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"
)

// AlgorithmID names the derivation pinned by Uniform. Any change to the
// hash, HMAC construction, byte order, or bit-width breaks cross-
// implementation verification and requires a new identifier.
const AlgorithmID = "hmac-sha256-le/v1"

// maxAttempts caps the rejection loop. The probability of rejecting this
// many consecutive draws is below 2^-64 for any bound, so reaching the
// cap indicates a broken derivation rather than bad luck.
const maxAttempts = 1000

// Errors returned by Uniform. Check with errors.Is.
var (
	// ErrInvalidBound is returned when the requested bound is not positive.
	ErrInvalidBound = errors.New("sample: bound must be positive")

	// ErrExhausted is returned when the rejection loop hits its attempt
	// ceiling. It signals an internal-invariant violation and must not be
	// retried.
	ErrExhausted = errors.New("sample: rejection sampling attempts exhausted")
)

// Uniform deterministically maps entropy onto an integer uniformly
// distributed over [0, n). It is a pure function: identical inputs always
// produce identical outputs, across processes and implementations.
//
// The entropy is first normalized to a 32-byte key with SHA-256, which
// also domain-separates raw beacon output from the sampling procedure.
// Draws are then derived as HMAC-SHA256(key, counter) with the counter
// encoded as a little-endian uint64, taking the first 8 bytes of each tag
// as a little-endian uint64. Draws falling in the biased tail of the
// 64-bit space are rejected and the counter incremented, so the accepted
// value is exactly uniform with no modulo bias.
func Uniform(entropy []byte, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}

	key := sha256.Sum256(entropy)
	bound := uint64(n)
	limit := uint64(math.MaxUint64) - math.MaxUint64%bound

	var msg [8]byte
	for c := uint64(0); c <= maxAttempts; c++ {
		binary.LittleEndian.PutUint64(msg[:], c)

		mac := hmac.New(sha256.New, key[:])
		mac.Write(msg[:])
		tag := mac.Sum(nil)

		v := binary.LittleEndian.Uint64(tag[:8])
		if v < limit {
			return int(v % bound), nil
		}
	}
	return 0, ErrExhausted
}
