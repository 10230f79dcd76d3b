// internal/fastq/writer.go
package fastq

import (
	"bufio"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"go.uber.org/multierr"
)

// Writer serializes records in canonical 4-line FASTQ form.
type Writer struct {
	bw      *bufio.Writer
	closers []io.Closer
	n       int
}

// NewWriter writes FASTQ text to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Create opens path for writing. A .gz suffix selects gzip output at
// gzipLevel.
func Create(path string, gzipLevel int) (*Writer, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gw, err := gzip.NewWriterLevel(fh, gzipLevel)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		w := NewWriter(gw)
		w.closers = []io.Closer{gw, fh}
		return w, nil
	}
	w := NewWriter(fh)
	w.closers = []io.Closer{fh}
	return w, nil
}

// Write emits rec as "@<desc>\n<seq>\n+\n<qual>\n". Sequence and
// quality bytes pass through unchanged.
func (w *Writer) Write(rec Record) error {
	if _, err := w.bw.WriteString("@" + rec.Desc + "\n"); err != nil {
		return err
	}
	if _, err := w.bw.Write(rec.Seq); err != nil {
		return err
	}
	if _, err := w.bw.WriteString("\n+\n"); err != nil {
		return err
	}
	if _, err := w.bw.Write(rec.Qual); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.n }

// Close flushes buffered output and closes the gzip and file layers,
// keeping every error.
func (w *Writer) Close() error {
	err := w.bw.Flush()
	for _, c := range w.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
