// openpid-gen compiles OpenPID protocol schemas into embedded driver
// crates.
package main

import (
	"fmt"
	"os"

	"github.com/openpid/openpid-go/cmd/openpid-gen/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitCompile      = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "generate":
		exitCode = commands.RunGenerate(args, os.Stdout, os.Stderr)
	case "check":
		exitCode = commands.RunCheck(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("openpid-gen version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`openpid-gen - OpenPID schema compiler

Usage:
  openpid-gen <command> [options] <schema file>

Commands:
  generate   Compile a schema and write the generated crate
  check      Compile a schema without writing output
  show       Display a parsed schema summary
  version    Print the tool version
  help       Print this help

Run 'openpid-gen <command> -h' for command options.`)
}
