package recover

import (
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// stepVar handles the whole scoped-variable opcode family (push, simple and
// compound assignment, increment, decrement, each in a scalar and an array
// form), dispatched by the VarInfo lang/opcode attaches to the opcode
// rather than by a named constant.
func (s *exprSim) stepVar(i *object.Instruction, vi *opcode.VarInfo) {
	b := s.b
	idx := int(i.Args[0])

	switch vi.Op {
	case opcode.VarPush:
		if vi.Array {
			sub := s.pop()
			arr := b.variable(vi.Scope, idx, true)
			s.push(&ast.IndexExpr{Array: arr, Index: sub})
			return
		}
		s.push(&ast.VarExpr{Var: b.variable(vi.Scope, idx, false)})

	case opcode.VarInc, opcode.VarDec:
		op := ast.IncOp
		if vi.Op == opcode.VarDec {
			op = ast.DecOp
		}
		if vi.Array {
			sub := s.pop()
			arr := b.variable(vi.Scope, idx, true)
			// Post-increment detection for arrays (matching a preceding read of
			// the same slot) is not attempted: every array inc/dec recovers as
			// prefix, a documented simplification.
			s.last = &ast.IncDecExpr{Op: op, Pre: true, X: &ast.IndexExpr{Array: arr, Index: sub}}
			return
		}
		v := b.variable(vi.Scope, idx, false)
		if ve, ok := s.top().(*ast.VarExpr); ok && ve.Var == v {
			s.pop()
			s.last = &ast.IncDecExpr{Op: op, Pre: false, X: &ast.VarExpr{Var: v}}
			return
		}
		s.last = &ast.IncDecExpr{Op: op, Pre: true, X: &ast.VarExpr{Var: v}}

	default: // one of the eleven assignment variants
		assignOp := assignOps[vi.Op]
		if vi.Array {
			rhs := s.pop()
			sub := s.pop()
			arr := b.variable(vi.Scope, idx, true)
			s.last = &ast.AssignExpr{Op: assignOp, LHS: &ast.IndexExpr{Array: arr, Index: sub}, RHS: rhs}
			return
		}
		rhs := s.pop()
		v := b.variable(vi.Scope, idx, false)
		s.last = &ast.AssignExpr{Op: assignOp, LHS: &ast.VarExpr{Var: v}, RHS: rhs}
	}
}
