// Package util contains the exact verification step of the seeding
// pipeline: candidate offsets reported by the seed scanners are confirmed by
// counting equal positions between the pattern and the reference slice.
package util

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrLengthMismatch is returned by HammingMatches when the two sequences
	// have different lengths.
	ErrLengthMismatch = errors.New("sequences have different lengths")
	// ErrBelowThreshold is returned by HammingMatches when the number of
	// equal positions is below the threshold.
	ErrBelowThreshold = errors.New("matches below threshold")
)

const (
	bytesPerWord = 8
	lowBits      = uint64(math.MaxUint64 / 255) // 0x0101010101010101
)

// Mismatches returns the number of positions at which a and b differ.  Bytes
// are compared exactly; no case folding is done.
// It panics if len(a) != len(b).
func Mismatches(a, b []byte) int {
	n := len(a)
	if len(b) != n {
		panic("util.Mismatches: len(a) != len(b)")
	}
	count := 0
	i := 0
	for ; i+bytesPerWord <= n; i += bytesPerWord {
		x := binary.LittleEndian.Uint64(a[i:]) ^ binary.LittleEndian.Uint64(b[i:])
		// Fold each byte onto its low bit.
		x |= x >> 1
		x |= x >> 2
		x |= x >> 4
		count += bits.OnesCount64(x & lowBits)
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			count++
		}
	}
	return count
}

// Hamming returns the number of positions at which a and b are equal.  The
// bool is false if the lengths differ, or if the count is below threshold; in
// both cases the count should be ignored.
//
// Use HammingMatches to tell the two failure cases apart.
func Hamming(a, b []byte, threshold int) (int, bool) {
	matches, err := HammingMatches(a, b, threshold)
	return matches, err == nil
}

// HammingMatches is like Hamming, but reports failures as errors whose cause
// is ErrLengthMismatch or ErrBelowThreshold.  With ErrBelowThreshold the
// returned count is still valid.
func HammingMatches(a, b []byte, threshold int) (int, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrLengthMismatch, "util.HammingMatches: %d vs %d", len(a), len(b))
	}
	matches := len(a) - Mismatches(a, b)
	if matches < threshold {
		return matches, errors.Wrapf(ErrBelowThreshold, "util.HammingMatches: %d < %d", matches, threshold)
	}
	return matches, nil
}
