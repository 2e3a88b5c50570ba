// Package ast is the recovered-source tree: the expression and statement
// node types lang/recover builds from the annotated bytecode, lang/polish
// rewrites in place, and lang/emit walks to print source text.
//
// Nodes carry no source token positions -- there is no original source to
// point back into, only
// an object-file byte offset the recoverer consumes on the way in. Instead
// every node that came from a recognizable bytecode region keeps nothing
// more than what lang/emit needs to print it and what lang/polish needs to
// rewrite it: this is a write-only AST, not a round-trippable parse tree.
package ast

// Node is the common interface every expression and statement node
// implements, dispatched through the Visitor/Walk pair (see visitor.go) so
// new node kinds extend by adding a case to Walk, not by
// touching every existing visitor.
type Node interface {
	Walk(v Visitor)
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Precedence mirrors the conventional C operator precedence ladder: the
// recoverer tags every binary node with its operator's precedence
// (assignments rank at PrecAssign, see Prec) and wraps a popped operand
// whose precedence is lower than its parent operator's in a ParenExpr,
// which lang/emit prints as parentheses.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssign
	PrecLogOr
	PrecLogAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEq
	PrecRel
	PrecShift
	PrecAdd
	PrecMul
	PrecUnary
	PrecTop
)
