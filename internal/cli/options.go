// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"bcsync/internal/pipeline"
	"bcsync/internal/version"
)

// Options holds all CLI flags.
type Options struct {
	// Input / output paths
	InputR1  string
	InputR2  string
	InputI1  string
	OutputR1 string
	OutputR2 string

	// Behavior
	IndexTag         string
	CompressionLevel int
	Strict           bool

	// Misc
	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: synchronize linked-read barcodes into FASTQ headers

Copies each record's index sequence from a separate index FASTQ into the
header comment of the matching read-1/read-2 records (tag %q), so that
assemblers expecting inline barcodes can consume the data.

Version: %s

Usage of %s:
`, name, pipeline.DefaultTag, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs / outputs
	fs.StringVar(&opt.InputR1, "input_R1", "", "input read-1 FASTQ (.gz auto-detected) [*]")
	fs.StringVar(&opt.InputR1, "i", "", "alias of --input_R1")
	fs.StringVar(&opt.InputR2, "input_R2", "", "input read-2 FASTQ [*]")
	fs.StringVar(&opt.InputR2, "j", "", "alias of --input_R2")
	fs.StringVar(&opt.InputI1, "input_I1", "", "input index FASTQ [*]")
	fs.StringVar(&opt.InputI1, "k", "", "alias of --input_I1")
	fs.StringVar(&opt.OutputR1, "output_R1", "", "output read-1 FASTQ (.gz writes gzip) [*]")
	fs.StringVar(&opt.OutputR1, "o", "", "alias of --output_R1")
	fs.StringVar(&opt.OutputR2, "output_R2", "", "output read-2 FASTQ [*]")
	fs.StringVar(&opt.OutputR2, "p", "", "alias of --output_R2")

	// Behavior
	fs.StringVar(&opt.IndexTag, "index_tag", pipeline.DefaultTag,
		"header tag for the index sequence ["+pipeline.DefaultTag+"]")
	fs.StringVar(&opt.IndexTag, "x", pipeline.DefaultTag, "alias of --index_tag")
	fs.IntVar(&opt.CompressionLevel, "compression_level", 5, "gzip level 0-9 for .gz outputs [5]")
	fs.IntVar(&opt.CompressionLevel, "c", 5, "alias of --compression_level")
	fs.BoolVar(&opt.Strict, "strict", false, "error when input lengths differ instead of stopping at the shortest [false]")

	// Misc
	fs.BoolVar(&opt.Verbose, "verbose", false, "enable debug-level logging [false]")
	fs.BoolVar(&opt.Verbose, "v", false, "alias of --verbose")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	switch {
	case o.InputR1 == "":
		return errors.New("--input_R1 is required")
	case o.InputR2 == "":
		return errors.New("--input_R2 is required")
	case o.InputI1 == "":
		return errors.New("--input_I1 is required")
	case o.OutputR1 == "":
		return errors.New("--output_R1 is required")
	case o.OutputR2 == "":
		return errors.New("--output_R2 is required")
	}
	if o.IndexTag == "" {
		return errors.New("--index_tag must not be empty")
	}
	if o.CompressionLevel < 0 || o.CompressionLevel > 9 {
		return fmt.Errorf("--compression_level must be between 0 and 9, got %d", o.CompressionLevel)
	}
	return nil
}
