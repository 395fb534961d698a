// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package search runs a seeded approximate search of one short pattern over
// every record of a FASTA, FASTQ or BAM file.  Candidate offsets come from a
// seed scanner (biosimd.Locator or seed.Scanner) and are confirmed with an
// exact Hamming count; hits are written as TSV.
package search

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/simdna/biosimd"
	"github.com/grailbio/simdna/seed"
	"github.com/grailbio/simdna/util"
)

// Strands, as written in the STRAND column.
const (
	Forward byte = '+'
	Reverse byte = '-'
)

// Hit is one confirmed occurrence of the pattern.
type Hit struct {
	// Name is the name of the record.
	Name string
	// Strand is Forward, or Reverse if the reverse complement of the pattern
	// matched.
	Strand byte
	// Pos is the 0-based offset of the leftmost matched base in the record.
	Pos int
	// Matches is the number of equal positions.
	Matches int
}

type strand struct {
	sign    byte
	pattern []byte
	scanner *seed.Scanner // scalar mode only
}

// Searcher holds a compiled query.  It is read-only after New, so SearchSeq
// may be called from any number of goroutines.
type Searcher struct {
	mode       string
	engine     biosimd.Engine
	threshold  uint8
	minMatches int
	strands    []strand
}

// New validates opts and compiles the query pattern.
func New(opts Opts) (*Searcher, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	upper := bytes.ToUpper([]byte(opts.Pattern))
	if biosimd.IsNonACGTNPresent(upper) {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("search: pattern %q contains non-ACGTN characters", opts.Pattern))
	}
	pattern := []byte(opts.Pattern)
	biosimd.CleanASCIISeqInplace(pattern)

	s := &Searcher{
		mode:       opts.Mode,
		threshold:  uint8(opts.LocateThreshold),
		minMatches: opts.minMatches(),
		strands:    []strand{{sign: Forward, pattern: pattern}},
	}
	if opts.BothStrands {
		rc := make([]byte, len(pattern))
		biosimd.ReverseComp8(rc, pattern)
		// A reverse-complement palindrome would report every hit twice.
		if !bytes.Equal(rc, pattern) {
			s.strands = append(s.strands, strand{sign: Reverse, pattern: rc})
		}
	}
	switch s.mode {
	case ModeVector:
		engine, err := biosimd.Lookup(opts.Engine)
		if err != nil {
			return nil, err
		}
		s.engine = engine
		// Validate the pattern once; SearchSeq builds its own Locators.
		if _, err := biosimd.NewLocator(engine, pattern, s.threshold); err != nil {
			return nil, err
		}
	case ModeScalar:
		for i := range s.strands {
			scanner, err := seed.New(s.strands[i].pattern, opts.Sensitivity)
			if err != nil {
				return nil, err
			}
			s.strands[i].scanner = scanner
		}
	}
	return s, nil
}

// Pattern returns the cleaned forward pattern.
func (s *Searcher) Pattern() []byte { return s.strands[0].pattern }

// SearchSeq returns the hits of the pattern in seq, ordered by position and
// then strand.  seq is not modified; lower-case bases are matched as
// upper-case and every other non-ACGT byte becomes 'N'.
func (s *Searcher) SearchSeq(name string, seq []byte) []Hit {
	ref := append([]byte(nil), seq...)
	biosimd.CleanASCIISeqInplace(ref)
	var hits []Hit
	for _, st := range s.strands {
		for _, o := range s.candidates(&st, ref) {
			matches, ok := util.Hamming(st.pattern, ref[o:o+len(st.pattern)], s.minMatches)
			if !ok {
				continue
			}
			hits = append(hits, Hit{Name: name, Strand: st.sign, Pos: o, Matches: matches})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Pos < hits[j].Pos })
	return hits
}

func (s *Searcher) candidates(st *strand, ref []byte) []int {
	if st.scanner != nil {
		return seed.Unique(st.scanner.Seed(ref))
	}
	l, err := biosimd.NewLocator(s.engine, st.pattern, s.threshold)
	if err != nil {
		// The same arguments were accepted by New.
		panic(err)
	}
	return l.All(ref)
}
