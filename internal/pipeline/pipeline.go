// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"

	"bcsync/internal/fastq"
)

// DefaultTag marks the injected index sequence in a header's comment
// field.
const DefaultTag = "BC:Z"

// Config controls the merge loop.
type Config struct {
	// Tag is the header comment tag; DefaultTag when empty.
	Tag string
	// Strict errors on a length mismatch between the inputs instead of
	// stopping silently at the shortest stream.
	Strict bool
	// Log receives progress messages; discarded when unset.
	Log logr.Logger
}

// Source yields FASTQ records. *fastq.Reader satisfies it.
type Source interface {
	Next() (fastq.Record, error)
}

// Sink consumes rewritten records. *fastq.Writer satisfies it.
type Sink interface {
	Write(fastq.Record) error
}

// Stats summarizes one run.
type Stats struct {
	// Pairs is the number of synchronized triplets written to each
	// output.
	Pairs int
	// Exhausted names the inputs that ended before the others, empty
	// when all three ended together.
	Exhausted []string
}

// MismatchError reports identifiers that differ within one synchronized
// step.
type MismatchError struct {
	Step       int
	R1, R2, I1 string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("record %d: identifiers do not match: R1=%q R2=%q I1=%q",
		e.Step, e.R1, e.R2, e.I1)
}

// TruncatedError reports a length mismatch between the three inputs.
// Only strict mode produces it.
type TruncatedError struct {
	Step      int
	Exhausted []string
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("record %d: input length mismatch: %s exhausted early",
		e.Step, strings.Join(e.Exhausted, ", "))
}

// Run advances r1, r2 and i1 in lock-step. For every triplet it asserts
// identifier equality across all three records, appends
// " <tag>:<index sequence>" to both read headers, and writes the
// rewritten records to out1 and out2.
//
// By default the run ends normally as soon as any input is exhausted;
// records remaining on the other inputs are dropped. With cfg.Strict the
// same condition is a TruncatedError. No state is kept across steps.
func Run(ctx context.Context, cfg Config, r1, r2, i1 Source, out1, out2 Sink) (Stats, error) {
	tag := cfg.Tag
	if tag == "" {
		tag = DefaultTag
	}
	log := cfg.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	var st Stats
	for step := 1; ; step++ {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}

		rec1, err1 := r1.Next()
		rec2, err2 := r2.Next()
		rec3, err3 := i1.Next()

		// Exhaustion is checked before parse errors: once any stream
		// ends, the remaining streams are no longer examined.
		var ended []string
		if err1 == io.EOF {
			ended = append(ended, "R1")
		}
		if err2 == io.EOF {
			ended = append(ended, "R2")
		}
		if err3 == io.EOF {
			ended = append(ended, "I1")
		}
		if len(ended) == 3 {
			return st, nil
		}
		if len(ended) > 0 {
			if cfg.Strict {
				return st, &TruncatedError{Step: step, Exhausted: ended}
			}
			st.Exhausted = ended
			log.V(1).Info("input exhausted, stopping at shortest stream",
				"exhausted", ended, "pairs", st.Pairs)
			return st, nil
		}

		for _, err := range []error{err1, err2, err3} {
			if err != nil {
				return st, err
			}
		}

		id1, id2, id3 := rec1.ID(), rec2.ID(), rec3.ID()
		if id1 != id2 || id1 != id3 {
			return st, &MismatchError{Step: step, R1: id1, R2: id2, I1: id3}
		}

		comment := " " + tag + ":" + string(rec3.Seq)
		rec1.Desc += comment
		rec2.Desc += comment

		if err := out1.Write(rec1); err != nil {
			return st, err
		}
		if err := out2.Write(rec2); err != nil {
			return st, err
		}
		st.Pairs++
	}
}
