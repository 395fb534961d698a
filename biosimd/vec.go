// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"fmt"

	"github.com/grailbio/simdna/seed"
)

const (
	// BytesPerVec is the number of lanes in a Vec.
	BytesPerVec = 16

	// WindowBases is the number of reference bases encoded by one
	// LoadReference call: one dinucleotide code per lane.
	WindowBases = BytesPerVec + 1

	// OutOfRange is stored by LoadReference in lanes without a base pair.
	// Shuffle maps any index >= BytesPerVec to zero.
	OutOfRange = 0xff

	// SeedLane marks lanes accepted by FillSeedLanes.
	SeedLane = 0xff
)

// Vec is a 16-lane vector of bytes.
type Vec [BytesPerVec]byte

// Engine is the set of lane operations the vector seed scanner is built on.
// Implementations must be stateless and agree bit-for-bit with Portable.
type Engine interface {
	// Name identifies the engine, e.g. in Lookup.
	Name() string

	// LoadPattern returns the fingerprint of pattern with one lane per
	// dinucleotide code; it is the same table as seed.NewFingerprint.
	LoadPattern(pattern []byte) Vec

	// LoadReference returns the dinucleotide codes of the consecutive base
	// pairs of window, one per lane.  Lanes past the last pair are set to
	// OutOfRange.  It panics if len(window) > WindowBases.
	LoadReference(window []byte) Vec

	// Shuffle returns r with r[i] = table[indices[i]] if indices[i] <
	// BytesPerVec, and r[i] = 0 otherwise.
	Shuffle(table, indices Vec) Vec

	// ShiftLanes realigns the looked-up fingerprint bits onto the lane where
	// a pattern occurrence would start:
	//
	//   r[k] = OR over j < 8, k+j < 16 of (v[k+j] & (1 << j))
	ShiftLanes(v Vec) Vec

	// FillSeedLanes sets every lane whose population count is at least
	// threshold to SeedLane, and every other lane to zero.
	FillSeedLanes(v Vec, threshold uint8) Vec

	// Find returns offset+i for the first lane i < n equal to SeedLane.
	Find(v Vec, offset, n int) (int, bool)
}

// shiftLeft[j][k] = k+j, or OutOfRange when k+j falls off the vector.
// laneBit[j] holds bit j in every lane.
var (
	shiftLeft [seed.MaxPositions]Vec
	laneBit   [seed.MaxPositions]Vec
)

func init() {
	for j := 0; j < seed.MaxPositions; j++ {
		for k := 0; k < BytesPerVec; k++ {
			if k+j < BytesPerVec {
				shiftLeft[j][k] = byte(k + j)
			} else {
				shiftLeft[j][k] = OutOfRange
			}
			laneBit[j][k] = 1 << uint(j)
		}
	}
}

// loadPattern is shared by all engines; patterns are loaded once per query,
// so there is nothing to gain from a vectorized version.
func loadPattern(pattern []byte) Vec {
	return Vec(seed.NewFingerprint(pattern))
}

// loadReference is the only place where a slice of reference bytes becomes a
// Vec.  Callers pass at most WindowBases bytes.
func loadReference(window []byte) (v Vec) {
	if len(window) > WindowBases {
		panic(fmt.Sprintf("biosimd: reference window of %d bytes, at most %d allowed", len(window), WindowBases))
	}
	n := seed.Encode(v[:], window)
	for i := n; i < BytesPerVec; i++ {
		v[i] = OutOfRange
	}
	return v
}

func and(a, b Vec) (r Vec) {
	for i := range r {
		r[i] = a[i] & b[i]
	}
	return r
}

func or(a, b Vec) (r Vec) {
	for i := range r {
		r[i] = a[i] | b[i]
	}
	return r
}

// seedLanes returns the number of lanes of the window starting at start which
// may hold a seed: a seed at o must satisfy o+patternLen <= refLen.
func seedLanes(start, patternLen, refLen int) int {
	n := refLen - patternLen + 1 - start
	if n > BytesPerVec {
		n = BytesPerVec
	}
	return n
}
