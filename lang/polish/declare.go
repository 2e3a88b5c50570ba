package polish

import (
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// promoter tracks, within one script/function body, which local variables
// have already been read (pushed or subscripted) somewhere earlier in
// source order. A plain assignment to a still-undeclared local only gets
// promoted to a declaration when no such earlier read exists -- "first
// assignment" means "assignment with no dominating use" rather than merely
// "first assignment textually", since an
// earlier read along some other branch (an if without an else, say) means
// the variable's value going into this assignment already mattered.
type promoter struct {
	seenRead map[*object.Variable]bool
}

func newPromoter() *promoter {
	return &promoter{seenRead: map[*object.Variable]bool{}}
}

func (p *promoter) block(blk *ast.Block) {
	for i, stmt := range blk.Stmts {
		blk.Stmts[i] = p.stmt(stmt)
	}
}

// stmt visits one statement in source order, promoting it to a DeclStmt
// when eligible, and otherwise recursing into any nested blocks and marking
// every variable the statement reads along the way.
func (p *promoter) stmt(stmt ast.Stmt) ast.Stmt {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		if decl, ok := p.tryPromote(s.X); ok {
			return decl
		}
		p.markReads(s.X)
	case *ast.DeclStmt:
		p.markReads(s.Init)
	case *ast.IfStmt:
		p.markReads(s.Cond)
		p.block(s.Then)
		if s.Else != nil {
			p.block(s.Else)
		}
	case *ast.SwitchStmt:
		p.markReads(s.Cond)
		for _, c := range s.Cases {
			p.block(c.Body)
		}
	case *ast.LoopStmt:
		p.markReads(s.Cond)
		p.block(s.Body)
	case *ast.DoStmt:
		p.block(s.Body)
		p.markReads(s.Cond)
	case *ast.ForStmt:
		if s.Cond != nil {
			p.markReads(s.Cond)
		}
		p.block(s.Body)
		for _, e := range s.Post {
			p.markReads(e)
		}
	case *ast.ReturnStmt:
		if s.X != nil {
			p.markReads(s.X)
		}
	}
	return stmt
}

// tryPromote recognizes x as a simple assignment (AssignSet) to a local,
// undeclared, not-yet-read scalar, and if so builds the replacement
// DeclStmt. Compound assignments (+=, -=, ...) are never promoted: they
// read the variable's prior value, so they can never be a first use.
func (p *promoter) tryPromote(x ast.Expr) (*ast.DeclStmt, bool) {
	assign, ok := x.(*ast.AssignExpr)
	if !ok || assign.Op != ast.AssignSet {
		return nil, false
	}
	ve, ok := assign.LHS.(*ast.VarExpr)
	if !ok {
		return nil, false
	}
	v := ve.Var
	if v.Scope != opcode.ScopeLocal || v.Array || v.Declared || p.seenRead[v] {
		return nil, false
	}
	p.markReads(assign.RHS)
	v.Declared = true
	return &ast.DeclStmt{Var: v, Init: assign.RHS}, true
}

// markReads records every variable x (an expression in source order, e.g. a
// condition, a return value, an assignment's RHS) reads, so a later
// assignment to any of them is no longer eligible for promotion.
func (p *promoter) markReads(x ast.Expr) {
	if x == nil {
		return
	}
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		switch e := n.(type) {
		case *ast.VarExpr:
			p.seenRead[e.Var] = true
		case *ast.IndexExpr:
			p.seenRead[e.Array] = true
		}
		return v
	}
	ast.Walk(v, x)
}
