// internal/fastq/writer_test.go
package fastq

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCanonicalForm(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	rec := Record{Desc: "SEQ1 BC:Z:GGGG", Seq: []byte("ACGT"), Qual: []byte("IIII")}
	if err := w.Write(rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	want := "@SEQ1 BC:Z:GGGG\nACGT\n+\nIIII\n"
	if buf.String() != want {
		t.Fatalf("serialized = %q, want %q", buf.String(), want)
	}
	if w.Count() != 1 {
		t.Fatalf("count = %d, want 1", w.Count())
	}
}

func TestCreatePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fq")
	w, err := Create(path, 5)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.Write(Record{Desc: "SEQ1", Seq: []byte("AC"), Qual: []byte("II")}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "@SEQ1\nAC\n+\nII\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestCreateGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fq.gz")
	w, err := Create(path, 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	in := Record{Desc: "SEQ1 BC:Z:GGGG", Seq: []byte("ACGT"), Qual: []byte("IIII")}
	if err := w.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Fatalf("output is not gzip, starts with % x", raw[:2])
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = r.Close() }()
	out, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if out.Desc != in.Desc || string(out.Seq) != string(in.Seq) || string(out.Qual) != string(in.Qual) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
}

func TestCreateBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fq.gz")
	if _, err := Create(path, 42); err == nil {
		t.Fatalf("expected error for invalid gzip level")
	}
}
