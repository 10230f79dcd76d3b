// internal/fastq/record.go
package fastq

import "strings"

// Record is one 4-line FASTQ record. Desc holds the full header text
// after the '@' marker; Seq and Qual pass through verbatim.
type Record struct {
	Desc string
	Seq  []byte
	Qual []byte
}

// ID returns the token before the first whitespace of Desc. A header
// without whitespace is its own identifier.
func (r Record) ID() string {
	if i := strings.IndexAny(r.Desc, " \t"); i >= 0 {
		return r.Desc[:i]
	}
	return r.Desc
}
