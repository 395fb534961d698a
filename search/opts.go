// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/simdna/seed"
)

// Seeding modes.
const (
	ModeVector = "vector"
	ModeScalar = "scalar"
)

// Input formats.
const (
	FormatFASTA = "fasta"
	FormatFASTQ = "fastq"
	FormatBAM   = "bam"
)

// Opts configures a search.
type Opts struct {
	// Pattern is the query, 2 to 16 bases (15 in scalar mode).  Lower-case
	// bases are accepted; anything other than ACGTN is an error.  An N seeds
	// as G, since the dinucleotide code does not tell them apart, but it is
	// counted as a match only against an N in the read.
	Pattern string
	// Sensitivity derives the scalar seed threshold; larger values accept
	// weaker seeds.
	Sensitivity int
	// LocateThreshold is the number of fingerprint positions a vector seed
	// must match, in [1, seed.MaxPositions].
	LocateThreshold int
	// MinMatches is the minimum number of equal positions a candidate must
	// have to be reported.  0 means len(Pattern)-1.
	MinMatches int
	// Engine names the biosimd engine; "" selects the best one for this CPU.
	Engine string
	// Mode is ModeVector or ModeScalar.
	Mode string
	// BothStrands also searches for the reverse complement of the pattern.
	BothStrands bool
	// Format is FormatFASTA, FormatFASTQ, FormatBAM, or "" to infer it from
	// the input path.
	Format string
	// Parallelism is the number of records searched concurrently.  0 means
	// runtime.NumCPU().
	Parallelism int
	// MatchedOut, if set, is the path of a FASTQ file that receives every
	// input read with at least one hit.  FASTA input cannot be written back
	// as FASTQ.
	MatchedOut string
}

// DefaultOpts holds the default search options.
var DefaultOpts = Opts{
	Sensitivity:     6,
	LocateThreshold: 3,
	MinMatches:      0,
	Mode:            ModeVector,
	BothStrands:     false,
	Parallelism:     0,
}

func (o *Opts) minMatches() int {
	if o.MinMatches == 0 {
		return len(o.Pattern) - 1
	}
	return o.MinMatches
}

func (o *Opts) parallelism() int {
	if o.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return o.Parallelism
}

func (o *Opts) validate() error {
	switch o.Mode {
	case ModeVector:
		if o.LocateThreshold < 1 || o.LocateThreshold > seed.MaxPositions {
			return errors.E(errors.Invalid,
				fmt.Sprintf("search: locate threshold %d outside [1, %d]", o.LocateThreshold, seed.MaxPositions))
		}
	case ModeScalar:
	default:
		return errors.E(errors.Invalid, fmt.Sprintf("search: unknown mode %q", o.Mode))
	}
	if m := o.MinMatches; m < 0 || m > len(o.Pattern) {
		return errors.E(errors.Invalid,
			fmt.Sprintf("search: min matches %d outside [0, %d]", m, len(o.Pattern)))
	}
	switch o.Format {
	case "", FormatFASTA, FormatFASTQ, FormatBAM:
	default:
		return errors.E(errors.Invalid, fmt.Sprintf("search: unknown format %q", o.Format))
	}
	return nil
}

// compressionSuffixes are stripped before a format is inferred from a path.
var compressionSuffixes = []string{".gz", ".bz2", ".zst"}

// InferFormat returns the input format implied by path's extension, ignoring
// a trailing compression suffix.
func InferFormat(path string) (string, error) {
	p := strings.ToLower(path)
	for _, suffix := range compressionSuffixes {
		p = strings.TrimSuffix(p, suffix)
	}
	switch filepath.Ext(p) {
	case ".fa", ".fasta", ".fna":
		return FormatFASTA, nil
	case ".fq", ".fastq":
		return FormatFASTQ, nil
	case ".bam":
		return FormatBAM, nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("search: cannot infer the format of %s; set the format explicitly", path))
}
