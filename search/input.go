// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/simdna/encoding/fasta"
	"github.com/grailbio/simdna/encoding/fastq"
	"github.com/klauspost/compress/zstd"
)

// phredOffset converts BAM base qualities to FASTQ quality characters.
const phredOffset = 33

// record is one input sequence.  read is nil for FASTA input.
type record struct {
	name string
	seq  []byte
	read *fastq.Read
}

// zstdReader adapts a zstd decoder to io.ReadCloser.
type zstdReader struct{ *zstd.Decoder }

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}

// newDecompressor returns a reader that decompresses r according to path's
// suffix, or nil if path names an uncompressed file.
func newDecompressor(r io.Reader, path string) (io.ReadCloser, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReader{d}, nil
	}
	return compress.NewReaderPath(r, path), nil
}

// readRecords reads every record of the file at path.  Compressed FASTA and
// FASTQ files are decompressed according to their suffix.
func readRecords(ctx context.Context, path, format string) (recs []record, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if format != FormatBAM {
		var u io.ReadCloser
		if u, err = newDecompressor(r, in.Name()); err != nil {
			return nil, errors.E(err, fmt.Sprintf("search: reading %s", path))
		}
		if u != nil {
			defer func() {
				if e := u.Close(); e != nil && err == nil {
					recs, err = nil, errors.E(e, fmt.Sprintf("search: reading %s", path))
				}
			}()
			r = u
		}
	}
	switch format {
	case FormatFASTA:
		recs, err = readFASTA(r)
	case FormatFASTQ:
		recs, err = readFASTQ(r)
	case FormatBAM:
		recs, err = readBAM(r)
	default:
		panic(format)
	}
	if err != nil {
		return nil, errors.E(err, fmt.Sprintf("search: reading %s", path))
	}
	return recs, nil
}

func readFASTA(r io.Reader) ([]record, error) {
	var (
		recs []record
		rec  fasta.Record
	)
	s := fasta.NewScanner(r)
	for s.Scan(&rec) {
		recs = append(recs, record{name: rec.Name, seq: rec.Seq})
	}
	return recs, s.Err()
}

func readFASTQ(r io.Reader) ([]record, error) {
	var recs []record
	s := fastq.NewScanner(r, fastq.All)
	for {
		read := new(fastq.Read)
		if !s.Scan(read) {
			break
		}
		recs = append(recs, record{name: read.Name(), seq: read.Seq, read: read})
	}
	return recs, s.Err()
}

// readBAM reads the primary alignments of an unindexed BAM stream.  Sequences
// are searched as stored, i.e. on the reference strand for reverse-mapped
// reads.
func readBAM(r io.Reader) ([]record, error) {
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return nil, err
	}
	defer br.Close() // nolint: errcheck
	var recs []record
	for {
		rec, err := br.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		seq := rec.Seq.Expand()
		qual := make([]byte, len(rec.Qual))
		for i, q := range rec.Qual {
			if q == 0xff {
				// Missing qualities.
				q = 0
			}
			qual[i] = q + phredOffset
		}
		recs = append(recs, record{
			name: rec.Name,
			seq:  seq,
			read: &fastq.Read{ID: "@" + rec.Name, Seq: seq, Qual: qual},
		})
	}
}
