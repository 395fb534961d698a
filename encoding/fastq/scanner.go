// Package fastq reads and writes FASTQ read data.
package fastq

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// MaxLineLen is the longest line the scanner accepts.
const MaxLineLen = 1 << 20

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.  ID and Unk keep their leading '@' and
// '+'.
type Read struct {
	ID, Unk   string
	Seq, Qual []byte
}

// Name returns the read name: the ID without its '@' and without anything
// after the first space.
func (r *Read) Name() string {
	id := r.ID
	if len(id) > 0 && id[0] == '@' {
		id = id[1:]
	}
	if i := strings.IndexByte(id, ' '); i >= 0 {
		id = id[:i]
	}
	return id
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading FASTQ read
// data. The Scan method returns the next read, returning a boolean
// indicating whether the read succeeded. Scanners are not
// threadsafe.
//
// Scanner requires ID lines to begin with "@", line 3 to begin with "+",
// and, when both Seq and Qual are read, the two to have equal length.  It
// does not check that the data is in range.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field
	reads  int
}

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read. A typical value
// would be All or ID|Seq.
func NewScanner(r io.Reader, fields Field) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, MaxLineLen)
	return &Scanner{b: b, fields: fields}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
//
// Seq and Qual are freshly allocated for every read.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	id := f.b.Bytes()
	if len(id) == 0 || id[0] != '@' {
		f.err = errors.Wrapf(ErrInvalid, "read %d: ID line must start with '@'", f.reads)
		return false
	}
	if f.fields&ID != 0 {
		read.ID = string(id)
	}
	if !f.scan() {
		return false
	}
	if f.fields&Seq != 0 {
		read.Seq = append([]byte(nil), f.b.Bytes()...)
	}
	if !f.scan() {
		return false
	}
	unk := f.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		f.err = errors.Wrapf(ErrInvalid, "read %d: line 3 must start with '+'", f.reads)
		return false
	}
	if f.fields&Unk != 0 {
		read.Unk = string(unk)
	}
	if !f.scan() {
		return false
	}
	if f.fields&Qual != 0 {
		read.Qual = append([]byte(nil), f.b.Bytes()...)
		if f.fields&Seq != 0 && len(read.Qual) != len(read.Seq) {
			f.err = errors.Wrapf(ErrInvalid, "read %d: %d bases but %d qualities", f.reads, len(read.Seq), len(read.Qual))
			return false
		}
	}
	f.reads++
	return true
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}
