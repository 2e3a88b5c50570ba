// Package emit is the pretty-printer: it walks the polished AST and
// prints it back out as source text, one printer method per node family
// dispatching on node type with type switches.
//
// Emission never mutates the tree it walks -- the same *ast.Program printed
// twice produces byte-identical output.
package emit

import (
	"bufio"
	"io"

	"github.com/mna/unacs/lang/ast"
)

// Run prints p to w in source syntax.
func Run(w io.Writer, p *ast.Program) error {
	bw := bufio.NewWriter(w)
	pr := &printer{w: bw}
	pr.program(p)
	if pr.err != nil {
		return pr.err
	}
	return bw.Flush()
}
