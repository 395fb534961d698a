// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

// Pattern preparation kernels.  These run once per query, so they are plain
// table lookups.

var (
	// revComp8Table maps 'A'/'a' to 'T', 'C'/'c' to 'G', 'G'/'g' to 'C',
	// 'T'/'t' to 'A', and everything else to 'N'.
	revComp8Table [256]byte
	// cleanASCIISeqTable capitalizes ACGT and maps everything else to 'N'.
	cleanASCIISeqTable [256]byte
	// isNotCapitalACGTNTable is false exactly for 'A', 'C', 'G', 'T', 'N'.
	isNotCapitalACGTNTable [256]bool
)

func init() {
	for i := range revComp8Table {
		revComp8Table[i] = 'N'
		cleanASCIISeqTable[i] = 'N'
		isNotCapitalACGTNTable[i] = true
	}
	const bases, comps = "ACGT", "TGCA"
	for i := 0; i < len(bases); i++ {
		upper, lower := bases[i], bases[i]+('a'-'A')
		revComp8Table[upper] = comps[i]
		revComp8Table[lower] = comps[i]
		cleanASCIISeqTable[upper] = upper
		cleanASCIISeqTable[lower] = upper
		isNotCapitalACGTNTable[upper] = false
	}
	isNotCapitalACGTNTable['N'] = false
}

// ReverseComp8Inplace reverse-complements an ASCII sequence: 'A'/'a' becomes
// 'T', 'C'/'c' becomes 'G', 'G'/'g' becomes 'C', 'T'/'t' becomes 'A', and
// every other byte becomes 'N'.
func ReverseComp8Inplace(seq []byte) {
	for i, j := 0, len(seq)-1; i <= j; i, j = i+1, j-1 {
		seq[i], seq[j] = revComp8Table[seq[j]], revComp8Table[seq[i]]
	}
}

// ReverseComp8 writes the reverse complement of src to dst, mapping bases as
// ReverseComp8Inplace does.  It panics if len(dst) != len(src).
func ReverseComp8(dst, src []byte) {
	if len(dst) != len(src) {
		panic("biosimd.ReverseComp8: len(dst) != len(src)")
	}
	last := len(src) - 1
	for i, b := range src {
		dst[last-i] = revComp8Table[b]
	}
}

// CleanASCIISeqInplace upper-cases acgt and replaces every other non-ACGT
// byte with 'N'.
func CleanASCIISeqInplace(seq []byte) {
	for i, b := range seq {
		seq[i] = cleanASCIISeqTable[b]
	}
}

// IsNonACGTNPresent reports whether seq contains a byte other than 'A', 'C',
// 'G', 'T' or 'N'.  Lower-case bases count as non-ACGTN.
func IsNonACGTNPresent(seq []byte) bool {
	for _, b := range seq {
		if isNotCapitalACGTNTable[b] {
			return true
		}
	}
	return false
}
