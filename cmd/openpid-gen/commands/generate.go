package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/scaffold"
	"github.com/openpid/openpid-go/pkg/schemaparse"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitCompile      = 2
)

// GenerateOptions configures the generate command.
type GenerateOptions struct {
	Schema  string
	Output  string
	Verbose bool
}

// RunGenerate compiles a schema file and writes the generated crate.
func RunGenerate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseGenerateArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	log := newLogger(stderr, opts.Verbose)

	s, err := schemaparse.Load(opts.Schema)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompile
	}

	art, err := codegen.NewGenerator(s).CompileSchema()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompile
	}

	if err := scaffold.New(opts.Output, log).Write(art); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	fmt.Fprintf(stdout, "Generated %s (%d structs, %d payloads) in %s\n",
		scaffold.CrateName(art.Device.Name), len(art.Structs), len(art.Payloads), opts.Output)
	return exitSuccess
}

func parseGenerateArgs(args []string, stderr io.Writer) (*GenerateOptions, error) {
	opts := &GenerateOptions{}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Output, "o", "out", "output directory for the generated crate")
	fs.BoolVar(&opts.Verbose, "verbose", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: openpid-gen generate [options] <schema file>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one schema file, got %d", fs.NArg())
	}
	opts.Schema = fs.Arg(0)
	return opts, nil
}

// newLogger builds a console logger for command output. Schema
// compilation itself never logs; only the scaffolder and commands do.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
