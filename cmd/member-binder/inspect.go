package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"member-binder/flags"
)

func runInspect(args []string, stdout io.Writer) error {
	var rawFlags string

	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	fs.StringVarP(&rawFlags, "flags", "f", "default",
		"binding flags: public, nonpublic, instance, static, declaredonly, trim, instanceany, staticany, all, default")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("inspect takes exactly one type, got %d", fs.NArg())
	}

	fl, ok := flags.Parse(rawFlags)
	if !ok {
		return fmt.Errorf("--flags: invalid binding flags %q", rawFlags)
	}

	s, err := lookupSample(fs.Arg(0))
	if err != nil {
		return err
	}

	e, err := newEngine()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s members with %s\n", s.typ, fl)
	fmt.Fprint(stdout, e.Dump(s.typ, fl))

	return nil
}
