// internal/fastq/reader.go
package fastq

import (
	"bufio"
	"fmt"
	"io"
)

// Reader pulls FASTQ records off a stream one at a time.
type Reader struct {
	name string
	rc   io.ReadCloser
	sc   *bufio.Scanner
	n    int // records delivered so far
}

// NewReader reads FASTQ from r. name appears in error messages only.
func NewReader(r io.Reader, name string) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long reads (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)
	return &Reader{name: name, sc: sc}
}

// Open opens path ("-" for stdin, gzip auto-detected) for record pulling.
func Open(path string) (*Reader, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	rd := NewReader(rc, path)
	rd.rc = rc
	return rd, nil
}

// Next returns the next record, io.EOF at a clean end of stream, or a
// framing error. There is no partial-record recovery: the first
// malformed line poisons the stream.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return rec, fmt.Errorf("fastq %s: scan: %w", r.name, err)
		}
		return rec, io.EOF
	}
	header := r.sc.Text()
	if len(header) == 0 || header[0] != '@' {
		return rec, r.framingErr("header line does not start with '@'")
	}
	rec.Desc = header[1:]

	seq, err := r.line("sequence")
	if err != nil {
		return rec, err
	}
	rec.Seq = seq

	sep, err := r.line("separator")
	if err != nil {
		return rec, err
	}
	if len(sep) == 0 || sep[0] != '+' {
		return rec, r.framingErr("separator line does not start with '+'")
	}

	qual, err := r.line("quality")
	if err != nil {
		return rec, err
	}
	rec.Qual = qual

	r.n++
	return rec, nil
}

// line fetches one more line of the current record, treating EOF as a
// truncated record.
func (r *Reader) line(what string) ([]byte, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, fmt.Errorf("fastq %s: scan: %w", r.name, err)
		}
		return nil, r.framingErr("truncated record: missing " + what + " line")
	}
	return append([]byte(nil), r.sc.Bytes()...), nil
}

func (r *Reader) framingErr(msg string) error {
	return fmt.Errorf("fastq %s: record %d: %s", r.name, r.n+1, msg)
}

// Close releases the underlying stream. It is a no-op for readers built
// with NewReader.
func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}
