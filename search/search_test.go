// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/simdna/biosimd"
	"github.com/grailbio/simdna/search"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPattern = "CAGAGC"

func opts(mode string, bothStrands bool) search.Opts {
	o := search.DefaultOpts
	o.Pattern = testPattern
	o.Mode = mode
	o.BothStrands = bothStrands
	return o
}

func TestSearchSeq(t *testing.T) {
	fwd := func(pos, matches int) search.Hit {
		return search.Hit{Name: "r", Strand: search.Forward, Pos: pos, Matches: matches}
	}
	rev := func(pos, matches int) search.Hit {
		return search.Hit{Name: "r", Strand: search.Reverse, Pos: pos, Matches: matches}
	}
	tests := []struct {
		seq         string
		bothStrands bool
		want        []search.Hit
	}{
		{"TTTTTTCAGAGCTTTTTTTTGCTCTGTTTTTT", false, []search.Hit{fwd(6, 6)}},
		{"TTTTTTCAGAGCTTTTTTTTGCTCTGTTTTTT", true, []search.Hit{fwd(6, 6), rev(20, 6)}},
		{"TATAAGGCCTGTCTCTTATACACATCTCCGAGCCCA", false, []search.Hit{fwd(27, 5)}},
		{"TATAAGGCCTGTCTCTTATACACATCTCCGAGCCCA", true, []search.Hit{fwd(27, 5)}},
		{"tttcagagcttt", false, []search.Hit{fwd(3, 6)}},
		{"ACGTACGTACGTACGTACGT", true, nil},
		{"", true, nil},
		{"CAGAG", true, nil},
	}
	for _, mode := range []string{search.ModeVector, search.ModeScalar} {
		for _, tt := range tests {
			s, err := search.New(opts(mode, tt.bothStrands))
			require.NoError(t, err)
			seq := []byte(tt.seq)
			assert.Equal(t, tt.want, s.SearchSeq("r", seq), "%s %s", mode, tt.seq)
			assert.Equal(t, tt.seq, string(seq))
		}
	}
}

func TestSearchSeqEngines(t *testing.T) {
	seq := []byte("TTTTTTCAGAGCTTTTTTTTGCTCTGTTTTTTTATAAGGCCTGTCTCTTATACACATCTCCGAGCCCA")
	var want []search.Hit
	for i, name := range biosimd.Engines() {
		o := opts(search.ModeVector, true)
		o.Engine = name
		s, err := search.New(o)
		require.NoError(t, err)
		got := s.SearchSeq("r", seq)
		if i == 0 {
			want = got
			expect.EQ(t, len(want), 3)
		}
		expect.EQ(t, got, want, name)
	}
}

func TestPalindrome(t *testing.T) {
	o := opts(search.ModeVector, true)
	o.Pattern = "ACGT"
	o.MinMatches = 4
	s, err := search.New(o)
	require.NoError(t, err)
	expect.EQ(t, s.SearchSeq("r", []byte("TTACGTTT")), []search.Hit{{Name: "r", Strand: search.Forward, Pos: 2, Matches: 4}})
}

func TestPatternN(t *testing.T) {
	for _, mode := range []string{search.ModeVector, search.ModeScalar} {
		o := opts(mode, false)
		o.Pattern = "CANAGC"
		s, err := search.New(o)
		require.NoError(t, err)
		// N seeds like G but verifies only against N.
		expect.EQ(t, s.SearchSeq("r", []byte("TTTCAGAGCTTT")),
			[]search.Hit{{Name: "r", Strand: search.Forward, Pos: 3, Matches: 5}}, mode)
		expect.EQ(t, s.SearchSeq("r", []byte("TTTCANAGCTTT")),
			[]search.Hit{{Name: "r", Strand: search.Forward, Pos: 3, Matches: 6}}, mode)
	}
}

func TestMinMatches(t *testing.T) {
	o := opts(search.ModeVector, false)
	o.MinMatches = 6
	s, err := search.New(o)
	require.NoError(t, err)
	expect.EQ(t, len(s.SearchSeq("r", []byte("TATAAGGCCTGTCTCTTATACACATCTCCGAGCCCA"))), 0)
	expect.EQ(t, string(s.Pattern()), testPattern)
}

func TestNewInvalid(t *testing.T) {
	for _, tt := range []struct {
		name   string
		modify func(o *search.Opts)
	}{
		{"chars", func(o *search.Opts) { o.Pattern = "CAGXGC" }},
		{"short", func(o *search.Opts) { o.Pattern = "C" }},
		{"long", func(o *search.Opts) { o.Pattern = "ACGTACGTACGTACGTA" }},
		{"scalar-long", func(o *search.Opts) { o.Mode = search.ModeScalar; o.Pattern = "ACGTACGTACGTACGT" }},
		{"sensitivity", func(o *search.Opts) { o.Mode = search.ModeScalar; o.Sensitivity = 0 }},
		{"mode", func(o *search.Opts) { o.Mode = "simd" }},
		{"threshold-zero", func(o *search.Opts) { o.LocateThreshold = 0 }},
		{"threshold-big", func(o *search.Opts) { o.LocateThreshold = 9 }},
		{"min-matches", func(o *search.Opts) { o.MinMatches = 7 }},
		{"format", func(o *search.Opts) { o.Format = "sam" }},
	} {
		o := opts(search.ModeVector, false)
		tt.modify(&o)
		_, err := search.New(o)
		assert.True(t, errors.Is(errors.Invalid, err), "%s: %v", tt.name, err)
	}
	o := opts(search.ModeVector, false)
	o.Engine = "avx512"
	_, err := search.New(o)
	assert.True(t, errors.Is(errors.NotExist, err), "%v", err)

	// Lower case is accepted.
	o = opts(search.ModeScalar, false)
	o.Pattern = "cagagc"
	_, err = search.New(o)
	assert.NoError(t, err)
}

func TestInferFormat(t *testing.T) {
	for path, want := range map[string]string{
		"a.fa":              search.FormatFASTA,
		"s3://b/a.fasta.gz": search.FormatFASTA,
		"a.FNA":             search.FormatFASTA,
		"a.fq.zst":          search.FormatFASTQ,
		"a.fastq.bz2":       search.FormatFASTQ,
		"a.bam":             search.FormatBAM,
	} {
		got, err := search.InferFormat(path)
		assert.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := search.InferFormat("a.txt.gz")
	assert.True(t, errors.Is(errors.Invalid, err))
}
