package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/annotate"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/emit"
	"github.com/mna/unacs/lang/loader"
	"github.com/mna/unacs/lang/polish"
	"github.com/mna/unacs/lang/recover"
)

// DecompileFile runs the whole pipeline on inFile and
// writes the recovered source text to outFile, or to stdio.Stdout when
// outFile is empty. Diagnostics go to stdio.Stderr; a fatal one aborts the
// run and returns a non-nil error.
func DecompileFile(ctx context.Context, stdio mainer.Stdio, inFile, outFile string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	c, diags, fatal := loader.Load(inFile, data)
	if fatal != nil {
		fmt.Fprintln(stdio.Stderr, fatal.Error())
		return fatal
	}
	printDiags(stdio, diags)

	var prog *ast.Program
	diags2, fatal2 := diag.Run(func(sink *diag.Sink) {
		annotate.Run(c, inFile, sink)
		prog = recover.Run(c, inFile, sink)
		polish.Run(prog)
	})
	printDiags(stdio, diags2)
	if fatal2 != nil {
		fmt.Fprintln(stdio.Stderr, fatal2.Error())
		return fatal2
	}

	out := stdio.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		defer f.Close()
		out = f
	}

	if err := emit.Run(out, prog); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	c.Release()
	return nil
}

func printDiags(stdio mainer.Stdio, diags diag.List) {
	for _, d := range diags {
		fmt.Fprintln(stdio.Stderr, d.Error())
	}
}
