package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nwscript-tools/ncs/assembler"
)

type assembleCmd struct {
	define string
	output string
}

func (*assembleCmd) Name() string     { return "assemble" }
func (*assembleCmd) Synopsis() string { return "Encode OXA text into an NCS binary" }
func (*assembleCmd) Usage() string {
	return `assemble <input> [--define FILE] [-o OUT]:
  Encode OXA text into an NCS binary.
`
}

func (c *assembleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.define, "define", "", "routine definitions file used to resolve symbolic ACTION references")
	f.StringVar(&c.output, "o", "", "output file (defaults to stdout)")
}

func (c *assembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "missing input file")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	table, err := loadRoutineTable(c.define)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading definitions: %v\n", err)
		return subcommands.ExitFailure
	}

	out, closeOut, err := openOutput(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening output file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeOut()

	a := assembler.New(table)
	if err := a.Run(in, out); err != nil {
		fmt.Fprintf(os.Stderr, "assembly error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
