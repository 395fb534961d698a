// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seed

// baseMask selects the two bits which distinguish 'A', 'C', 'G' and 'T' in
// ASCII (0, 2, 6 and 4 respectively).  Lowercase letters share these bits.
const baseMask = 0x06

// NumCodes is the number of distinct dinucleotide codes.
const NumCodes = 16

// Code returns the 4-bit dinucleotide code of the base pair (b0, b1).
//
// The result is always in [0, NumCodes).  Bytes outside {A,C,G,T,a,c,g,t} are
// hashed onto the same 16 codes; this is deterministic, but such inputs are
// not distinguished from real bases.
func Code(b0, b1 byte) byte {
	return ((b0 & baseMask) << 1) | ((b1 & baseMask) >> 1)
}

// Encode sets dst[i] := Code(src[i], src[i+1]) for every consecutive pair in
// src that fits in dst, and returns the number of codes written.
func Encode(dst, src []byte) int {
	n := len(src) - 1
	if n <= 0 {
		return 0
	}
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Code(src[i], src[i+1])
	}
	return n
}
