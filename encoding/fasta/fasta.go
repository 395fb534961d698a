// Package fasta contains a streaming parser for FASTA files.  Briefly, FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxLineLen is the longest line the scanner accepts.
	MaxLineLen = 1024 * 1024 * 300 // 300 MB
)

// ErrInvalid is returned when sequence data appears before the first
// '>' header line.
var ErrInvalid = errors.New("malformed FASTA file")

// Record is one named FASTA sequence.  Line breaks are removed from Seq; no
// other transformation is applied.
type Record struct {
	Name string
	Seq  []byte
}

// Scanner reads FASTA records one at a time, so that memory use is bounded by
// the longest sequence rather than the size of the file.  Scanners are not
// threadsafe.
type Scanner struct {
	b        *bufio.Scanner
	err      error
	line     int
	name     string // name of the next record, if haveNext
	haveNext bool
}

// NewScanner constructs a Scanner that reads raw (uncompressed) FASTA data
// from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, MaxLineLen)
	return &Scanner{b: b}
}

// Scan reads the next record into rec.  Scan returns a boolean indicating
// whether the scan succeeded.  Once Scan returns false, it never returns
// true again; the user should then check Err.
//
// rec.Seq is freshly allocated on every call, so records may be retained.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for !s.haveNext {
		line, ok := s.next()
		if !ok {
			return false
		}
		if len(line) == 0 {
			continue
		}
		if line[0] != '>' {
			s.err = errors.Wrapf(ErrInvalid, "line %d: sequence data before the first header", s.line)
			return false
		}
		s.setName(line)
	}
	rec.Name = s.name
	rec.Seq = nil
	s.haveNext = false
	for {
		line, ok := s.next()
		if !ok {
			// EOF terminates the current record; it is reported on the
			// next call.
			return s.err == io.EOF
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			s.setName(line)
			return true
		}
		rec.Seq = append(rec.Seq, line...)
	}
}

func (s *Scanner) setName(header []byte) {
	s.name = strings.Split(string(header[1:]), " ")[0]
	s.haveNext = true
}

// next returns the next line without its terminator.  The slice is valid
// until the next call.
func (s *Scanner) next() ([]byte, bool) {
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = io.EOF
		} else {
			s.err = errors.Wrap(s.err, "couldn't read FASTA data")
		}
		return nil, false
	}
	s.line++
	return bytes.TrimRight(s.b.Bytes(), "\r"), true
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	var (
		recs []Record
		rec  Record
	)
	s := NewScanner(r)
	for s.Scan(&rec) {
		recs = append(recs, rec)
	}
	return recs, s.Err()
}
