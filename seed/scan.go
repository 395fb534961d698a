// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seed

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/grailbio/base/errors"
)

const (
	// MinPatternLen is the shortest pattern with at least one dinucleotide.
	MinPatternLen = 2
	// MaxScalarPatternLen is the longest pattern Scanner accepts.  Windows
	// advance by windowCodes - len(pattern) bases, which must stay positive.
	MaxScalarPatternLen = windowCodes - 1

	// windowCodes is the number of dinucleotide codes (and accumulator cells)
	// per window; a full window spans windowCodes+1 reference bases.
	windowCodes = 16
)

// Scanner is the scalar seed scanner for one pattern.  It is immutable, so a
// single Scanner may be shared by any number of goroutines.
type Scanner struct {
	fp         Fingerprint
	threshold  int
	patternLen int
}

// New returns a Scanner for pattern.  sensitivity divides the number of
// fingerprint bits a reference position must match before it is reported;
// larger values accept weaker seeds.  The derived threshold is
//
//   NumPositions(len(pattern)) * len(pattern) / sensitivity / 2
//
// New returns an errors.Invalid error for patterns outside
// [MinPatternLen, MaxScalarPatternLen] or sensitivity < 1.
func New(pattern []byte, sensitivity int) (*Scanner, error) {
	n := len(pattern)
	if n < MinPatternLen || n > MaxScalarPatternLen {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("seed.New: pattern length %d outside [%d, %d]", n, MinPatternLen, MaxScalarPatternLen))
	}
	if sensitivity < 1 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("seed.New: sensitivity must be positive, got %d", sensitivity))
	}
	return &Scanner{
		fp:         NewFingerprint(pattern),
		threshold:  NumPositions(n) * n / sensitivity / 2,
		patternLen: n,
	}, nil
}

// Threshold returns the minimum number of matching fingerprint positions.
func (s *Scanner) Threshold() int { return s.threshold }

// PatternLen returns the length of the pattern s was built from.
func (s *Scanner) PatternLen() int { return s.patternLen }

// Fingerprint returns a copy of the pattern fingerprint.
func (s *Scanner) Fingerprint() Fingerprint { return s.fp }

// Seed returns the seed offsets of the pattern in ref, in discovery order.
//
// ref is processed in overlapping windows of windowCodes+1 bases, advancing
// by windowCodes-PatternLen() bases, followed by a pass over the remaining
// tail.  Offsets found by two windows are reported twice; see Unique.  Every
// returned offset o satisfies o+PatternLen() <= len(ref).
func (s *Scanner) Seed(ref []byte) []int {
	var seeds []int
	if len(ref) <= windowCodes {
		return s.extractSeeds(seeds, ref, 0, len(ref))
	}
	stride := windowCodes - s.patternLen
	start := 0
	for ; start < len(ref)-windowCodes; start += stride {
		seeds = s.extractSeeds(seeds, ref[start:start+windowCodes+1], start, len(ref))
	}
	if start < len(ref) {
		seeds = s.extractSeeds(seeds, ref[start:], start, len(ref))
	}
	return seeds
}

// extractSeeds scans one window, whose first base is at ref offset offset,
// and appends the accepted offsets to dst.
//
// Cell k accumulates bit j of fingerprint[code(k+j)] for j < MaxPositions:
// bit j survives iff the pattern's j-th dinucleotide lines up with the
// reference dinucleotide at k+j.  A cell is final once MaxPositions later
// pairs have been seen; the remaining cells are flushed after the loop.
func (s *Scanner) extractSeeds(dst []int, window []byte, offset, refLen int) []int {
	var cells [windowCodes]byte
	nPair := len(window) - 1
	for i := 0; i < nPair; i++ {
		fp := s.fp[Code(window[i], window[i+1])]
		to := i + 1
		if to > MaxPositions {
			to = MaxPositions
		}
		for j := 0; j < to; j++ {
			cells[i-j] |= fp & (1 << uint(j))
		}
		if i >= to {
			dst = s.accept(dst, cells[i-to], offset+i-to, refLen)
		}
	}
	flushStart := len(window) - MaxPositions - 1
	if flushStart < 0 {
		flushStart = 0
	}
	for i := flushStart; i < nPair; i++ {
		dst = s.accept(dst, cells[i], offset+i, refLen)
	}
	return dst
}

func (s *Scanner) accept(dst []int, cell byte, pos, refLen int) []int {
	if bits.OnesCount8(cell) >= s.threshold && pos+s.patternLen <= refLen {
		dst = append(dst, pos)
	}
	return dst
}

// Unique returns the distinct values of offsets in increasing order.  offsets
// is not modified.
func Unique(offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	sorted := append([]int(nil), offsets...)
	sort.Ints(sorted)
	n := 1
	for _, o := range sorted[1:] {
		if o != sorted[n-1] {
			sorted[n] = o
			n++
		}
	}
	return sorted[:n]
}
