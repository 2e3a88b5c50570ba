// Package polish is the readability analyzer: two rewrites over the
// AST lang/recover already built, neither of which changes observable
// behavior. First-assignment promotion turns a local scalar's first plain
// assignment into a variable declaration; named-constant substitution
// rewrites literal operands of well-known built-ins as symbolic names from
// the engine's constant tables.
//
// Neither rewrite attempts arithmetic simplification, dead-code
// elimination, or SSA-style variable coalescing.
package polish

import "github.com/mna/unacs/lang/ast"

// Run applies both rewrites, in place, to every recovered script and
// function body in p.
func Run(p *ast.Program) {
	for _, sc := range p.Scripts {
		runBody(sc.Body)
	}
	for _, fn := range p.Funcs {
		runBody(fn.Body)
	}
}

func runBody(body *ast.Block) {
	if body == nil {
		return
	}
	newPromoter().block(body)
	substituteBlock(body)
}
