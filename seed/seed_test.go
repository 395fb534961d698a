// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seed_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/simdna/seed"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

var acgt = []byte("ACGT")

func randomSeq(r *rand.Rand, n int) []byte {
	seq := make([]byte, n)
	for i := range seq {
		seq[i] = acgt[r.Intn(len(acgt))]
	}
	return seq
}

func TestCode(t *testing.T) {
	tests := []struct {
		pair string
		want byte
	}{
		{"AA", 0},
		{"AC", 1},
		{"AT", 2},
		{"AG", 3},
		{"CA", 4},
		{"TA", 8},
		{"GA", 12},
		{"GG", 15},
		{"ca", 4},
		{"gT", 14},
	}
	for _, tt := range tests {
		expect.EQ(t, seed.Code(tt.pair[0], tt.pair[1]), tt.want, "pair %s", tt.pair)
	}
	// Every byte pair maps into the code range.
	for b0 := 0; b0 < 256; b0++ {
		for b1 := 0; b1 < 256; b1++ {
			if c := seed.Code(byte(b0), byte(b1)); c >= seed.NumCodes {
				t.Fatalf("Code(%d, %d) = %d", b0, b1, c)
			}
		}
	}
}

func TestEncode(t *testing.T) {
	dst := make([]byte, 16)
	expect.EQ(t, seed.Encode(dst, []byte("CAGAGC")), 5)
	expect.EQ(t, dst[:5], []byte{4, 3, 12, 3, 13})
	expect.EQ(t, seed.Encode(dst, []byte("C")), 0)
	expect.EQ(t, seed.Encode(dst, nil), 0)
	expect.EQ(t, seed.Encode(dst[:2], []byte("CAGAGC")), 2)
}

func TestFingerprint(t *testing.T) {
	fp := seed.NewFingerprint([]byte("CAGAGC"))
	var want seed.Fingerprint
	want[4] = 1 << 0      // CA
	want[3] = 1<<1 | 1<<3 // AG, AG
	want[12] = 1 << 2     // GA
	want[13] = 1 << 4     // GC
	expect.EQ(t, fp, want)
	expect.EQ(t, fp.Positions(), 5)

	// Construction is idempotent, and exactly min(len-1, 8) bits are set.
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 200; iter++ {
		pattern := randomSeq(r, r.Intn(20))
		fp1 := seed.NewFingerprint(pattern)
		fp2 := seed.NewFingerprint(pattern)
		expect.EQ(t, fp1, fp2)
		expect.EQ(t, fp1.Positions(), seed.NumPositions(len(pattern)))
	}
}

func TestNewInvalid(t *testing.T) {
	for _, tt := range []struct {
		pattern     string
		sensitivity int
	}{
		{"", 6},
		{"A", 6},
		{"ACGTACGTACGTACGT", 6},
		{"CAGAGC", 0},
		{"CAGAGC", -1},
	} {
		_, err := seed.New([]byte(tt.pattern), tt.sensitivity)
		require.Error(t, err, "pattern %q sensitivity %d", tt.pattern, tt.sensitivity)
		expect.True(t, errors.Is(errors.Invalid, err))
	}
}

func TestSeed(t *testing.T) {
	s, err := seed.New([]byte("CAGAGC"), 6)
	require.NoError(t, err)
	expect.EQ(t, s.Threshold(), 2)
	expect.EQ(t, s.PatternLen(), 6)
	expect.EQ(t, s.Seed([]byte("TATAAGGCCTGTCTCTTATACACATCTCCGAGCCCA")), []int{27})
}

func TestSeedShortReferences(t *testing.T) {
	s, err := seed.New([]byte("CAGAGC"), 6)
	require.NoError(t, err)
	for n := 0; n <= 20; n++ {
		ref := []byte("CAGAGCCAGAGCCAGAGCCAGAGC")[:n]
		for _, o := range s.Seed(ref) {
			expect.True(t, o >= 0 && o+s.PatternLen() <= len(ref), "len %d offset %d", n, o)
		}
	}
	expect.EQ(t, len(s.Seed([]byte("CAGAG"))), 0)
	expect.EQ(t, seed.Unique(s.Seed([]byte("CAGAGC"))), []int{0})
}

// TestSeedBounds checks that no seed claims bases past the end of the
// reference, on arbitrary (not only ACGT) bytes.
func TestSeedBounds(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		pattern := randomSeq(r, seed.MinPatternLen+r.Intn(seed.MaxScalarPatternLen-seed.MinPatternLen+1))
		s, err := seed.New(pattern, 1+r.Intn(8))
		require.NoError(t, err)
		ref := make([]byte, r.Intn(300))
		for i := range ref {
			ref[i] = byte(r.Intn(256))
		}
		got := s.Seed(ref)
		for _, o := range got {
			if o < 0 || o+len(pattern) > len(ref) {
				t.Fatalf("pattern %q ref len %d: offset %d out of bounds", pattern, len(ref), o)
			}
		}
		expect.EQ(t, s.Seed(ref), got)
	}
}

// An exact occurrence matches every fingerprint position, so it is always
// reported when the threshold does not exceed the number of positions.
func TestSeedFindsExactOccurrence(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for iter := 0; iter < 500; iter++ {
		pattern := randomSeq(r, 6+r.Intn(7))
		ref := randomSeq(r, len(pattern)+r.Intn(200))
		pos := r.Intn(len(ref) - len(pattern) + 1)
		copy(ref[pos:], pattern)
		s, err := seed.New(pattern, 6)
		require.NoError(t, err)
		require.True(t, s.Threshold() <= seed.NumPositions(len(pattern)))

		found := false
		for _, o := range s.Seed(ref) {
			if o == pos {
				found = true
			}
		}
		if !found {
			t.Fatalf("pattern %s not found at %d in %s", pattern, pos, ref)
		}
	}
}

// seedCellSlow recomputes the accumulator value of reference offset pos
// directly from its definition, looking ahead at most MaxPositions pairs
// without crossing end.
func seedCellSlow(fp *seed.Fingerprint, ref []byte, pos, end int) int {
	var cell byte
	for j := 0; j < seed.MaxPositions && pos+j+1 < end; j++ {
		cell |= fp[seed.Code(ref[pos+j], ref[pos+j+1])] & (1 << uint(j))
	}
	return bits.OnesCount8(cell)
}

func TestSeedAgainstDefinition(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 300; iter++ {
		pattern := randomSeq(r, 6+r.Intn(5))
		ref := randomSeq(r, r.Intn(100))
		s, err := seed.New(pattern, 6)
		require.NoError(t, err)
		fp := s.Fingerprint()
		for _, o := range s.Seed(ref) {
			// Cells are never credited with more bits than the full look-ahead
			// allows.
			if got := seedCellSlow(&fp, ref, o, len(ref)); got < s.Threshold() {
				t.Fatalf("pattern %s ref %s: offset %d has %d bits, threshold %d", pattern, ref, o, got, s.Threshold())
			}
		}
	}
}

func TestUnique(t *testing.T) {
	expect.EQ(t, len(seed.Unique(nil)), 0)
	in := []int{27, 3, 27, 5, 3}
	expect.EQ(t, seed.Unique(in), []int{3, 5, 27})
	expect.EQ(t, in, []int{27, 3, 27, 5, 3})
}

func BenchmarkSeed(b *testing.B) {
	r := rand.New(rand.NewSource(4))
	ref := randomSeq(r, 1<<16)
	s, err := seed.New([]byte("CAGAGC"), 6)
	require.NoError(b, err)
	b.SetBytes(int64(len(ref)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Seed(ref)
	}
}
