// Package maincmd implements the command-line front end: flag parsing,
// usage text, and dispatch to the decompile/disassemble entry points, as a
// Cmd struct driven by mainer.Parser.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "unacs"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [-a] [--format=text|yaml] <object-file> [output-file]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [-a] [--format=text|yaml] <object-file> [output-file]
       %[1]s -h|--help
       %[1]s -v|--version

Decompiler for the scripting language's compiled object-file format.

Without -a, the object file is decompiled: its scripts and functions are
recovered and printed back out as source text. With -a, the decoded
instruction stream is dumped instead, one instruction per line, or as a
YAML document when --format=yaml is given.

Without an output file, source (or the disassembly dump) is written to
standard output.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -a                        Disassemble instead of decompiling.
       --format=<name>           Disassembly output format: text (default)
                                 or yaml. Ignored without -a, where
                                 yaml is rejected.
`, binName)
)

// Cmd holds the parsed command line and build metadata. There is no
// dispatch by subcommand name: the grammar has exactly one positional form,
// so Main picks between decompiling and disassembling directly off the -a
// flag.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Disas  bool   `flag:"a"`
	Format string `flag:"format"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no object file specified")
	}
	if len(c.args) > 2 {
		return errors.New("too many arguments")
	}
	if c.Format != "" && c.Format != "text" && c.Format != "yaml" {
		return fmt.Errorf("invalid --format value: %s", c.Format)
	}
	if c.Format == "yaml" && !c.Disas {
		return errors.New("--format=yaml is only valid with -a")
	}
	return nil
}

// Main runs the tool end to end: flag parsing, help/version short-circuits,
// then dispatch to DecompileFile or DisassembleFile.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	inFile := c.args[0]
	outFile := ""
	if len(c.args) > 1 {
		outFile = c.args[1]
	}

	var err error
	if c.Disas {
		format := c.Format
		if format == "" {
			format = "text"
		}
		err = DisassembleFile(ctx, stdio, inFile, outFile, format)
	} else {
		err = DecompileFile(ctx, stdio, inFile, outFile)
	}
	if err != nil {
		return mainer.Failure
	}
	return mainer.Success
}
