// Package annotate implements the structural recovery pass: it walks
// each loaded script and function body and attaches Note records to the
// instructions that begin a recognizable high-level construct (if, switch,
// loop, do-until, for, return, plain expression statement, break/continue
// jump, or a synthetic internal-function call), so the AST recoverer
// (lang/recover) can build a nested tree without re-simulating the operand
// stack itself.
//
// The recursive block scanner annotates in place rather than emitting a
// tree directly, so the two concerns (finding structure, building nodes)
// stay in separate packages the way lang/loader and lang/annotate already
// separate decoding from structural recovery.
package annotate

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// Run attaches structural notes to every script and user-defined function
// body in c. file is used only to label diagnostics.
func Run(c *object.Container, file string, sink *diag.Sink) {
	for _, sc := range c.Scripts.Items() {
		annotateBody(c, file, sc.BodyStart, sink)
	}
	for _, fn := range c.Functions.Items() {
		if fn.Kind == object.FuncUser {
			annotateBody(c, file, fn.BodyStart, sink)
		}
	}
}

// annotateBody runs the recursive block scanner over one body, starting at
// head and running to the body's TERMINATE sentinel. A body that cannot be
// annotated at some point is not fatal: the scanner simply advances past
// whatever it couldn't recognize, leaving that stretch to lang/recover's
// inline-assembly fallback.
func annotateBody(c *object.Container, file string, head *object.Instruction, sink *diag.Sink) {
	if head == nil {
		return
	}
	s := &scanner{c: c, file: file, sink: sink}
	s.scanBlock(head, nil, nil)
}

func pos(file string, off int) diag.Position { return diag.Position{File: file, Offset: off} }
