package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/schema"
	"github.com/openpid/openpid-go/pkg/schemaparse"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Schema string
	Code   bool
}

// RunShow prints a human-readable summary of a parsed schema, and with
// -code the compiled fragments themselves.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts := &ShowOptions{}
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.Code, "code", false, "print compiled code fragments")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: openpid-gen show [options] <schema file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one schema file")
		fs.Usage()
		return exitCommandError
	}
	opts.Schema = fs.Arg(0)

	s, err := schemaparse.Load(opts.Schema)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompile
	}

	printDevice(stdout, s.Device)

	gen := codegen.NewGenerator(s)

	for _, name := range s.SortedStructNames() {
		chunk, err := gen.CompileStructDef(name)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCompile
		}
		fmt.Fprintf(stdout, "struct %s: fields [%s]\n", name, strings.Join(codegen.FieldNames(chunk.Inputs), ", "))
		if opts.Code {
			fmt.Fprintln(stdout, chunk.Code)
		}
	}

	for _, name := range s.SortedPayloadNames() {
		chunk, err := gen.CompilePayload(name, s.Payloads[name])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCompile
		}
		fmt.Fprintf(stdout, "payload %s: params [%s]\n", name, strings.Join(codegen.FieldNames(chunk.Inputs), ", "))
		if opts.Code {
			fmt.Fprintln(stdout, chunk.Code)
		}
	}

	return exitSuccess
}

func printDevice(w io.Writer, d schema.DeviceInfo) {
	fmt.Fprintf(w, "device %s", d.Name)
	if d.DocVersion != "" {
		fmt.Fprintf(w, " (doc version %s)", d.DocVersion)
	}
	fmt.Fprintln(w)
	if d.Description != "" {
		fmt.Fprintf(w, "  %s\n", d.Description)
	}
}
