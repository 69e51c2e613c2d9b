// Package main provides the CLI entrypoint for member-binder.
//
// member-binder demonstrates name-based member access on the people sample
// types:
//   - inspect lists the members a type exposes under a set of binding flags
//   - map runs YAML map profiles between sample objects and reports the result
package main

import (
	"fmt"
	"io"
	"os"
)

const usage = `member-binder - name-based member access and object mapping

Usage:
  member-binder inspect [--flags list] <Type>
  member-binder map --profile file.yaml [--out report.yaml]

Types: %s
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "member-binder:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintf(stdout, usage, sampleNames())
		return nil
	}

	switch args[0] {
	case "inspect":
		return runInspect(args[1:], stdout)
	case "map":
		return runMap(args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprintf(stdout, usage, sampleNames())
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
