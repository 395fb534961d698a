// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package seed finds candidate occurrences ("seeds") of a short query pattern
// in a longer nucleotide reference, using a per-pattern dinucleotide
// fingerprint instead of exact string comparison.
//
// Each pair of consecutive bases is reduced to a 4-bit dinucleotide code.  The
// fingerprint records, for every code, which of the pattern's first 8
// dinucleotide positions carry it.  Scanning a reference then amounts to one
// table lookup per reference position, plus a diagonal OR over the last 8
// positions; a reference offset whose accumulated mask has enough bits set is
// reported as a seed.  Seeds are approximate and are meant to be confirmed by
// an exact check such as util.Hamming.
//
// This is the portable scalar form of the algorithm.  biosimd contains the
// 16-lane vector form.
package seed
