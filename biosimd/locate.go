// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/simdna/seed"
)

const (
	// Stride is the distance between consecutive full windows when no seed
	// is found.  Lane Stride-1 still sees 7 consecutive pairs, so every
	// position is compared against up to 7 pattern dinucleotides before the
	// window moves past it.
	Stride = 10

	// TailThreshold caps the threshold used for the final, shorter window,
	// whose lanes have fewer look-ahead pairs available.
	TailThreshold = 3

	// MaxPatternLen is the longest pattern a Locator accepts: a pattern must
	// fit in one window.
	MaxPatternLen = BytesPerVec
)

// Locate returns the first seed of pattern (as returned by
// e.LoadPattern) in ref at or after *cursor.
//
// ref is scanned in windows of WindowBases bases, starting at *cursor and
// advancing by Stride until fewer than WindowBases bases are left; the
// remaining tail is scanned once with threshold min(threshold,
// TailThreshold).  Only offsets o with o+patternLen <= len(ref) are reported.
//
// On success, *cursor is set to the returned offset + 1, so calling Locate
// again yields the next seed.  When no seed is left, *cursor is set to
// len(ref).
func Locate(e Engine, pattern Vec, patternLen int, ref []byte, threshold uint8, cursor *int) (int, bool) {
	refLen := len(ref)
	if *cursor < 0 {
		*cursor = 0
	}
	if refLen < 2 || *cursor >= refLen {
		*cursor = refLen
		return 0, false
	}
	for *cursor < refLen-BytesPerVec {
		start := *cursor
		n := seedLanes(start, patternLen, refLen)
		if n <= 0 {
			// Later windows start further right.
			*cursor = refLen
			return 0, false
		}
		if pos, ok := locateWindow(e, pattern, ref[start:start+WindowBases], start, n, threshold); ok {
			*cursor = pos + 1
			return pos, true
		}
		*cursor += Stride
	}
	if start := *cursor; start < refLen {
		tailThreshold := threshold
		if tailThreshold > TailThreshold {
			tailThreshold = TailThreshold
		}
		if pos, ok := locateWindow(e, pattern, ref[start:], start, seedLanes(start, patternLen, refLen), tailThreshold); ok {
			*cursor = pos + 1
			return pos, true
		}
	}
	*cursor = refLen
	return 0, false
}

func locateWindow(e Engine, pattern Vec, window []byte, offset, n int, threshold uint8) (int, bool) {
	v := e.Shuffle(pattern, e.LoadReference(window))
	v = e.FillSeedLanes(e.ShiftLanes(v), threshold)
	return e.Find(v, offset, n)
}

// Locator iterates over the seeds of one pattern in a reference.  It owns its
// cursor, so it must not be used by more than one goroutine at a time; the
// pattern vector itself is read-only.
type Locator struct {
	engine     Engine
	pattern    Vec
	patternLen int
	threshold  uint8

	ref    []byte
	cursor int
}

// NewLocator returns a Locator for pattern using the given engine (nil
// selects Default()).  threshold is the number of fingerprint positions a
// seed must match; see Engine.FillSeedLanes.
//
// NewLocator returns an errors.Invalid error if len(pattern) is outside
// [seed.MinPatternLen, MaxPatternLen] or threshold is zero.
func NewLocator(e Engine, pattern []byte, threshold uint8) (*Locator, error) {
	if n := len(pattern); n < seed.MinPatternLen || n > MaxPatternLen {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("biosimd.NewLocator: pattern length %d outside [%d, %d]", n, seed.MinPatternLen, MaxPatternLen))
	}
	if threshold == 0 {
		return nil, errors.E(errors.Invalid, "biosimd.NewLocator: threshold must be positive")
	}
	if e == nil {
		e = Default()
	}
	return &Locator{
		engine:     e,
		pattern:    e.LoadPattern(pattern),
		patternLen: len(pattern),
		threshold:  threshold,
	}, nil
}

// Reset starts a new scan of ref from offset 0.
func (l *Locator) Reset(ref []byte) {
	l.ref = ref
	l.cursor = 0
}

// Seek moves the cursor to pos; the next seed reported is at or after pos.
func (l *Locator) Seek(pos int) {
	l.cursor = pos
}

// Cursor returns the offset at which the next scan resumes.
func (l *Locator) Cursor() int { return l.cursor }

// PatternLen returns the length of the pattern.
func (l *Locator) PatternLen() int { return l.patternLen }

// Engine returns the engine l runs on.
func (l *Locator) Engine() Engine { return l.engine }

// Next returns the next seed offset, in increasing order.  It returns false
// once the reference is exhausted, and keeps returning false until Reset or
// Seek.
func (l *Locator) Next() (int, bool) {
	return Locate(l.engine, l.pattern, l.patternLen, l.ref, l.threshold, &l.cursor)
}

// All resets l to ref and returns every seed offset.
func (l *Locator) All(ref []byte) []int {
	l.Reset(ref)
	var seeds []int
	for {
		pos, ok := l.Next()
		if !ok {
			return seeds
		}
		seeds = append(seeds, pos)
	}
}
