package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nwscript-tools/ncs/disassembler"
	"github.com/nwscript-tools/ncs/routines"
)

type disassembleCmd struct {
	define string
	output string
}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "Decode an NCS binary into OXA text" }
func (*disassembleCmd) Usage() string {
	return `disassemble <input> [--define FILE] [-o OUT]:
  Decode an NCS binary into OXA text.
`
}

func (c *disassembleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.define, "define", "", "routine definitions file used to resolve ACTION calls")
	f.StringVar(&c.output, "o", "", "output file (defaults to stdout)")
}

func (c *disassembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	d := disassembler.New(in, out, table)
	if err := d.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "disassembly error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func loadRoutineTable(definePath string) (*routines.Table, error) {
	if definePath == "" {
		return nil, nil
	}
	f, err := os.Open(definePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, _, err := routines.LoadDefinitions(f)
	if err != nil {
		return nil, err
	}
	return routines.NewTable(rs)
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
