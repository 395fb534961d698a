// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"math/bits"

	"github.com/grailbio/simdna/seed"
)

// Portable emulates every lane operation one byte at a time.  It is the
// reference implementation for the other engines.
var Portable Engine = portableEngine{}

type portableEngine struct{}

func (portableEngine) Name() string { return "portable" }

func (portableEngine) LoadPattern(pattern []byte) Vec { return loadPattern(pattern) }

func (portableEngine) LoadReference(window []byte) Vec { return loadReference(window) }

func (portableEngine) Shuffle(table, indices Vec) (r Vec) {
	for i, idx := range indices {
		if idx < BytesPerVec {
			r[i] = table[idx]
		}
	}
	return r
}

func (e portableEngine) ShiftLanes(v Vec) (r Vec) {
	for j := 0; j < seed.MaxPositions; j++ {
		r = or(r, e.Shuffle(and(v, laneBit[j]), shiftLeft[j]))
	}
	return r
}

func (portableEngine) FillSeedLanes(v Vec, threshold uint8) (r Vec) {
	for i, b := range v {
		if bits.OnesCount8(b) >= int(threshold) {
			r[i] = SeedLane
		}
	}
	return r
}

func (portableEngine) Find(v Vec, offset, n int) (int, bool) {
	if n > BytesPerVec {
		n = BytesPerVec
	}
	for i := 0; i < n; i++ {
		if v[i] == SeedLane {
			return offset + i, true
		}
	}
	return 0, false
}
