package recover

import (
	"sort"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
)

func (b *builder) recoverExprStmt(n *object.Note) ast.Stmt {
	return &ast.ExprStmt{X: b.recoverExprRange(n.Start, n.End)}
}

func (b *builder) recoverReturn(n *object.Note) ast.Stmt {
	return &ast.ReturnStmt{X: b.recoverExprRange(n.Start, n.End)}
}

func (b *builder) recoverJump(n *object.Note) ast.Stmt {
	if n.JKind == object.JumpBreak {
		return &ast.BreakStmt{}
	}
	return &ast.ContinueStmt{}
}

// negate wraps a condition in a logical-not unary, collapsing a double
// negation back to the bare operand rather than printing "!!cond".
func negate(cond ast.Expr) ast.Expr {
	if u, ok := cond.(*ast.UnaryExpr); ok && u.Op == ast.UnaryNot {
		return u.X
	}
	return &ast.UnaryExpr{Op: ast.UnaryNot, X: wrapForPrec(cond, ast.PrecUnary)}
}

// recoverIf builds an IfStmt from an IF note. Until marks the note as
// having been recognized from an IFGOTO (branch-if-true) rather than an
// IFNOTGOTO (branch-if-false): the bytecode idiom lang/annotate recognizes
// always has the branch skip over the then-body, so an IFGOTO's condition
// must be negated to read as the natural "if (cond) { then }" form.
func (b *builder) recoverIf(n *object.Note) ast.Stmt {
	cond := b.recoverExprRange(n.CondStart, n.CondEnd)
	if n.Until {
		cond = negate(cond)
	}
	stmt := &ast.IfStmt{Cond: cond, Then: b.recoverBlock(n.BodyStart, n.BodyEnd)}
	if n.ElseStart != nil {
		stmt.Else = b.recoverBlock(n.ElseStart, n.ElseEnd)
	}
	return stmt
}

func (b *builder) recoverLoop(n *object.Note) ast.Stmt {
	cond := b.recoverExprRange(n.CondStart, n.CondEnd)
	return &ast.LoopStmt{Cond: cond, Body: b.recoverBlock(n.BodyStart, n.BodyEnd), Until: n.Until}
}

func (b *builder) recoverDo(n *object.Note) ast.Stmt {
	cond := b.recoverExprRange(n.CondStart, n.CondEnd)
	return &ast.DoStmt{Cond: cond, Body: b.recoverBlock(n.BodyStart, n.BodyEnd), Until: n.Until}
}

func (b *builder) recoverFor(n *object.Note) ast.Stmt {
	stmt := &ast.ForStmt{Body: b.recoverBlock(n.BodyStart, n.BodyEnd)}
	if n.CondStart != nil {
		stmt.Cond = b.recoverExprRange(n.CondStart, n.CondEnd)
		if n.Until {
			stmt.Cond = negate(stmt.Cond)
		}
	}
	for _, r := range n.Post {
		stmt.Post = append(stmt.Post, b.recoverExprRange(r.Start, r.End))
	}
	return stmt
}

// caseEntry pairs a CASE note with the instruction it was found on, so the
// arms can be walked in the position order the bytecode actually lays them
// out in rather than in case-table order.
type caseEntry struct {
	inst *object.Instruction
	note *object.Note
}

// recoverSwitch rebuilds a SwitchStmt by following the SWITCH note's own
// case table (a chain of case-jump instructions, or a CASEGOTOSORTED
// table) to find where every arm's CASE note was dropped, then scanning
// those scattered bodies in the order they actually appear in the
// instruction stream: each arm runs from its own case target to the next
// arm's target (or, for the last arm reached, to the switch's Exit).
func (b *builder) recoverSwitch(n *object.Note) ast.Stmt {
	cond := b.recoverExprRange(n.CondStart, n.CondEnd)
	stmt := &ast.SwitchStmt{Cond: cond}

	var entries []caseEntry
	seen := map[*object.Instruction]bool{}
	addTarget := func(target *object.Instruction) {
		if target == nil || seen[target] {
			return
		}
		seen[target] = true
		if cn := noteOfKind(target, object.NoteCase); cn != nil {
			entries = append(entries, caseEntry{inst: target, note: cn})
		}
	}

	for ci := n.CaseTable; ci != nil; ci = ci.CaseNext {
		addTarget(ci.Target)
	}
	if n.SortedJump != nil {
		for _, sc := range n.SortedJump.SortedCases {
			addTarget(sc.Target)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].inst.Pos < entries[j].inst.Pos })

	for idx, e := range entries {
		bodyEnd := n.Exit
		if idx+1 < len(entries) {
			bodyEnd = entries[idx+1].inst
		}
		clause := &ast.CaseClause{
			Value:   e.note.CaseValue,
			Default: e.note.CaseDefault,
			Body:    b.recoverBlock(e.inst, bodyEnd),
		}
		stmt.Cases = append(stmt.Cases, clause)
	}

	return stmt
}
