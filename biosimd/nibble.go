// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"bytes"

	"github.com/grailbio/base/simd"
	"github.com/grailbio/simdna/seed"
)

// Nibble implements the table lookups with base/simd nibble lookup tables.
// On amd64, PackedNibbleLookup is PSHUFB-based, so a 16-entry table lookup
// is the Shuffle primitive; population counts are nibble lookups into a
// 16-entry bit count table.
var Nibble Engine = nibbleEngine{}

type nibbleEngine struct{}

var popcnt4Table = simd.MakeNibbleLookupTable([16]byte{
	0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4})

func (nibbleEngine) Name() string { return "nibble" }

func (nibbleEngine) LoadPattern(pattern []byte) Vec { return loadPattern(pattern) }

func (nibbleEngine) LoadReference(window []byte) Vec { return loadReference(window) }

func (nibbleEngine) Shuffle(table, indices Vec) (r Vec) {
	nlt := simd.MakeNibbleLookupTable(table)
	// buf[2*i] is table[indices[i]&15]; the odd bytes look up the high
	// nibble and are ignored.
	var buf [2 * BytesPerVec]byte
	simd.PackedNibbleLookup(buf[:], indices[:], &nlt)
	for i, idx := range indices {
		if idx < BytesPerVec {
			r[i] = buf[2*i]
		}
	}
	return r
}

func (e nibbleEngine) ShiftLanes(v Vec) (r Vec) {
	for j := 0; j < seed.MaxPositions; j++ {
		r = or(r, e.Shuffle(and(v, laneBit[j]), shiftLeft[j]))
	}
	return r
}

func (nibbleEngine) FillSeedLanes(v Vec, threshold uint8) (r Vec) {
	// counts[2*i] and counts[2*i+1] are the bit counts of the two nibbles of
	// lane i.
	var counts [2 * BytesPerVec]byte
	simd.PackedNibbleLookup(counts[:], v[:], &popcnt4Table)
	for i := range r {
		if counts[2*i]+counts[2*i+1] >= threshold {
			r[i] = SeedLane
		}
	}
	return r
}

func (nibbleEngine) Find(v Vec, offset, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	if n > BytesPerVec {
		n = BytesPerVec
	}
	i := bytes.IndexByte(v[:n], SeedLane)
	if i < 0 {
		return 0, false
	}
	return offset + i, true
}
