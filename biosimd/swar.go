// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/grailbio/simdna/seed"
)

// SWAR treats a Vec as two little-endian 64-bit words, so lane k lives in
// bits 8*(k&7) .. 8*(k&7)+7 of word k>>3.  Lane shifts become 128-bit word
// shifts, and population counts are computed for 8 lanes at once.
var SWAR Engine = swarEngine{}

type swarEngine struct{}

const (
	lanes01 = uint64(math.MaxUint64 / 255) // 0x0101010101010101
	lanes7f = lanes01 * 0x7f
	lanes80 = lanes01 * 0x80
	lanes55 = lanes01 * 0x55
	lanes33 = lanes01 * 0x33
	lanes0f = lanes01 * 0x0f
)

// words is a Vec reinterpreted as two 64-bit words.
type words struct {
	lo, hi uint64
}

func toWords(v *Vec) words {
	return words{
		lo: binary.LittleEndian.Uint64(v[0:]),
		hi: binary.LittleEndian.Uint64(v[8:]),
	}
}

func (w words) vec() (v Vec) {
	binary.LittleEndian.PutUint64(v[0:], w.lo)
	binary.LittleEndian.PutUint64(v[8:], w.hi)
	return v
}

// shiftDown moves lane k+j to lane k, filling the top j lanes with zero.
// Go defines shifts by >= 64 bits to yield zero, so j == 0 needs no special
// case.
func (w words) shiftDown(j uint) words {
	s := 8 * j
	return words{
		lo: w.lo>>s | w.hi<<(64-s),
		hi: w.hi >> s,
	}
}

// popcnt8 replaces every byte of x with its population count.
func popcnt8(x uint64) uint64 {
	x -= (x >> 1) & lanes55
	x = (x & lanes33) + ((x >> 2) & lanes33)
	return (x + (x >> 4)) & lanes0f
}

// geq8 returns 0xff in every byte of counts which is >= threshold, where all
// bytes of counts are at most 8 and 1 <= threshold <= 8.  Adding 0x80 -
// threshold cannot carry into the next byte.
func geq8(counts uint64, threshold uint8) uint64 {
	high := (counts + lanes01*uint64(0x80-threshold)) & lanes80
	return (high >> 7) * 0xff
}

// findFF returns a word with the top bit set in every byte of x equal to 0xff.
func findFF(x uint64) uint64 {
	x = ^x
	return ^((x&lanes7f + lanes7f) | x) & lanes80
}

func (swarEngine) Name() string { return "swar" }

func (swarEngine) LoadPattern(pattern []byte) Vec { return loadPattern(pattern) }

func (swarEngine) LoadReference(window []byte) Vec { return loadReference(window) }

func (swarEngine) Shuffle(table, indices Vec) Vec {
	t := toWords(&table)
	var r words
	for i, idx := range indices {
		if idx >= BytesPerVec {
			continue
		}
		word := t.lo
		if idx >= 8 {
			word = t.hi
		}
		lane := (word >> (8 * uint(idx&7))) & 0xff
		if i < 8 {
			r.lo |= lane << (8 * uint(i))
		} else {
			r.hi |= lane << (8 * uint(i-8))
		}
	}
	return r.vec()
}

func (swarEngine) ShiftLanes(v Vec) Vec {
	w := toWords(&v)
	var r words
	for j := uint(0); j < seed.MaxPositions; j++ {
		bit := lanes01 << j
		shifted := words{lo: w.lo & bit, hi: w.hi & bit}.shiftDown(j)
		r.lo |= shifted.lo
		r.hi |= shifted.hi
	}
	return r.vec()
}

func (swarEngine) FillSeedLanes(v Vec, threshold uint8) Vec {
	switch {
	case threshold == 0:
		return Vec{
			SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane,
			SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane, SeedLane}
	case threshold > 8:
		return Vec{}
	}
	w := toWords(&v)
	return words{
		lo: geq8(popcnt8(w.lo), threshold),
		hi: geq8(popcnt8(w.hi), threshold),
	}.vec()
}

func (swarEngine) Find(v Vec, offset, n int) (int, bool) {
	if n > BytesPerVec {
		n = BytesPerVec
	}
	w := toWords(&v)
	lane := BytesPerVec
	if m := findFF(w.lo); m != 0 {
		lane = bits.TrailingZeros64(m) >> 3
	} else if m := findFF(w.hi); m != 0 {
		lane = 8 + bits.TrailingZeros64(m)>>3
	}
	if lane >= n {
		return 0, false
	}
	return offset + lane, true
}
