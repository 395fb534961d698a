// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seed

import "math/bits"

// MaxPositions is the number of leading dinucleotide positions of a pattern
// which are represented in a Fingerprint.  It equals the width of one mask.
const MaxPositions = 8

// Fingerprint maps each dinucleotide code to a bitmask of pattern positions:
// bit i of entry c is set iff the pattern's i-th dinucleotide has code c.
// Only the first MaxPositions dinucleotides take part, so exactly
// min(len(pattern)-1, MaxPositions) bits are set across the whole table.
//
// A Fingerprint is a value; it is never modified after NewFingerprint returns
// it.
type Fingerprint [NumCodes]byte

// NumPositions returns the number of dinucleotide positions of a length-n
// pattern that a Fingerprint represents.
func NumPositions(n int) int {
	if n < 2 {
		return 0
	}
	if n-1 > MaxPositions {
		return MaxPositions
	}
	return n - 1
}

// NewFingerprint builds the fingerprint of pattern.  Patterns shorter than two
// bases produce an empty table.
func NewFingerprint(pattern []byte) (fp Fingerprint) {
	n := NumPositions(len(pattern))
	for i := 0; i < n; i++ {
		fp[Code(pattern[i], pattern[i+1])] |= 1 << uint(i)
	}
	return fp
}

// Positions returns the total number of set bits in the table.
func (fp *Fingerprint) Positions() int {
	n := 0
	for _, mask := range fp {
		n += bits.OnesCount8(mask)
	}
	return n
}
