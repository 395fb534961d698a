// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/simdna/encoding/fastq"
	"github.com/klauspost/compress/gzip"
)

// Header is the first line written by Run.
const Header = "NAME\tSTRAND\tPOS\tMATCHES"

// Run searches every record of the file at inPath and writes the hits to out
// as TSV, preceded by Header.  Rows appear in input order.
func Run(ctx context.Context, opts Opts, inPath string, out io.Writer) (err error) {
	s, err := New(opts)
	if err != nil {
		return err
	}
	format := opts.Format
	if format == "" {
		if format, err = InferFormat(inPath); err != nil {
			return err
		}
	}
	if opts.MatchedOut != "" && format == FormatFASTA {
		return errors.E(errors.Invalid, "search: FASTA input cannot be written as FASTQ; unset the matched reads output")
	}
	recs, err := readRecords(ctx, inPath, format)
	if err != nil {
		return err
	}
	log.Printf("search: read %d %s records from %s", len(recs), format, inPath)

	hits, err := searchAll(s, recs, opts.parallelism())
	if err != nil {
		return err
	}
	nHit := 0
	for _, h := range hits {
		nHit += len(h)
	}
	log.Printf("search: %d hits of %s", nHit, s.Pattern())

	if err = writeHits(out, hits); err != nil {
		return err
	}
	if opts.MatchedOut != "" {
		err = createOutput(ctx, opts.MatchedOut, func(w io.Writer) error {
			return writeMatched(w, recs, hits)
		})
	}
	return err
}

// RunFiles is Run with the output written to outPath, or to stdout if outPath
// is "" or "-".  A ".gz" output path is gzip-compressed.
func RunFiles(ctx context.Context, opts Opts, inPath, outPath string) error {
	if outPath == "" || outPath == "-" {
		return Run(ctx, opts, inPath, os.Stdout)
	}
	return createOutput(ctx, outPath, func(w io.Writer) error {
		return Run(ctx, opts, inPath, w)
	})
}

// searchAll splits recs into contiguous shards, one per job.
func searchAll(s *Searcher, recs []record, parallelism int) ([][]Hit, error) {
	hits := make([][]Hit, len(recs))
	if len(recs) == 0 {
		return hits, nil
	}
	if parallelism > len(recs) {
		parallelism = len(recs)
	}
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(recs)) / parallelism
		endIdx := ((jobIdx + 1) * len(recs)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			hits[i] = s.SearchSeq(recs[i].name, recs[i].seq)
			log.Debug.Printf("search: %s: %d hits", recs[i].name, len(hits[i]))
		}
		return nil
	})
	return hits, err
}

func writeHits(out io.Writer, hits [][]Hit) error {
	w := tsv.NewWriter(out)
	w.WriteString(Header)
	if err := w.EndLine(); err != nil {
		return err
	}
	for _, recHits := range hits {
		for _, h := range recHits {
			w.WriteString(h.Name)
			w.WriteByte(h.Strand)
			w.WriteUint32(uint32(h.Pos))
			w.WriteUint32(uint32(h.Matches))
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// writeMatched writes the reads with at least one hit.
func writeMatched(out io.Writer, recs []record, hits [][]Hit) error {
	w := fastq.NewWriter(out)
	for i, rec := range recs {
		if len(hits[i]) == 0 {
			continue
		}
		if err := w.Write(rec.read); err != nil {
			return err
		}
	}
	return nil
}

// createOutput creates path, gzip-compressing it if it ends in ".gz", and
// passes its writer to fn.
func createOutput(ctx context.Context, path string, fn func(io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if !strings.HasSuffix(path, ".gz") {
		return fn(out.Writer(ctx))
	}
	gz := gzip.NewWriter(out.Writer(ctx))
	if err = fn(gz); err != nil {
		return err
	}
	return gz.Close()
}
