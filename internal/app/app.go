// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"bcsync/internal/cli"
	"bcsync/internal/fastq"
	"bcsync/internal/pipeline"
	"bcsync/internal/version"
)

// RunContext parses argv, wires the logger and the five file handles,
// and runs the merge pipeline. It returns the process exit code: 0 on
// success, 1 on any usage, I/O or validation failure.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("bcsync")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 1
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "bcsync version %s\n", version.Version)
		return 0
	}

	log := newLogger(stderr, opts.Verbose)
	log.Info("bcsync starting", "version", version.Version)
	log.Info("settings",
		"input_R1", opts.InputR1,
		"input_R2", opts.InputR2,
		"input_I1", opts.InputI1,
		"output_R1", opts.OutputR1,
		"output_R2", opts.OutputR2,
		"index_tag", opts.IndexTag,
		"compression_level", opts.CompressionLevel,
		"strict", opts.Strict,
		"verbose", opts.Verbose,
	)

	start := time.Now()
	stats, err := run(parent, opts, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		var mm *pipeline.MismatchError
		if errors.As(err, &mm) {
			log.Error(err, "FASTQ records do not match",
				"R1", mm.R1, "R2", mm.R2, "I1", mm.I1)
		} else {
			log.Error(err, "run failed")
		}
		return 1
	}
	if len(stats.Exhausted) > 0 {
		log.V(1).Info("inputs differed in length", "exhausted_first", stats.Exhausted)
	}
	log.Info("finished", "pairs", stats.Pairs, "elapsed", time.Since(start).String())
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// run opens the three inputs and two outputs, releases them on every
// exit path, and drives the pipeline.
func run(ctx context.Context, opts cli.Options, log logr.Logger) (stats pipeline.Stats, err error) {
	log.V(1).Info("opening input and output handles")

	var closers []io.Closer
	defer func() {
		log.V(1).Info("closing file handles")
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i].Close())
		}
	}()

	open := func(path string) (*fastq.Reader, error) {
		r, oerr := fastq.Open(path)
		if oerr != nil {
			return nil, oerr
		}
		closers = append(closers, r)
		return r, nil
	}
	create := func(path string) (*fastq.Writer, error) {
		w, cerr := fastq.Create(path, opts.CompressionLevel)
		if cerr != nil {
			return nil, cerr
		}
		closers = append(closers, w)
		return w, nil
	}

	r1, err := open(opts.InputR1)
	if err != nil {
		return stats, err
	}
	r2, err := open(opts.InputR2)
	if err != nil {
		return stats, err
	}
	i1, err := open(opts.InputI1)
	if err != nil {
		return stats, err
	}
	out1, err := create(opts.OutputR1)
	if err != nil {
		return stats, err
	}
	out2, err := create(opts.OutputR2)
	if err != nil {
		return stats, err
	}

	log.V(1).Info("starting merge loop")
	return pipeline.Run(ctx, pipeline.Config{
		Tag:    opts.IndexTag,
		Strict: opts.Strict,
		Log:    log.WithName("pipeline"),
	}, r1, r2, i1, out1, out2)
}

func newLogger(out io.Writer, verbose bool) logr.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    true,
	}
	zl := zerolog.New(cw).Level(level).With().Timestamp().Logger()
	return zerologr.New(&zl)
}
