package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/schemaparse"
)

// RunCheck compiles a schema without writing anything, reporting the
// first compile error if any.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: openpid-gen check <schema file>")
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one schema file")
		fs.Usage()
		return exitCommandError
	}

	s, err := schemaparse.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompile
	}

	art, err := codegen.NewGenerator(s).CompileSchema()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompile
	}

	fmt.Fprintf(stdout, "OK: %d structs, %d payloads compile\n", len(art.Structs), len(art.Payloads))
	return exitSuccess
}
