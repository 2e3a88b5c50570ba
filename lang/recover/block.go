package recover

import (
	"fmt"
	"strings"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// recoverBlock walks the instruction sequence starting at head, appending
// one statement per recognized construct, until it reaches end (exclusive)
// or, when end is nil, the synthetic TERMINATE sentinel every body carries.
// An instruction recoverOne cannot make sense of at all falls back to a raw
// AsmStmt rather than aborting the whole walk.
func (b *builder) recoverBlock(head, end *object.Instruction) *ast.Block {
	blk := &ast.Block{}
	for i := head; i != nil; {
		if i == end {
			break
		}
		if end == nil && i.IsSentinel() {
			break
		}
		stmt, next := b.recoverOne(i)
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		i = next
	}
	return blk
}

// recoverOne recovers the single construct starting at i and returns the
// statement (nil for a pure no-op instruction) plus the instruction to
// resume the enclosing block's walk from. Priority mirrors the order
// lang/annotate itself considers these notes in: a RETURN or EXPRSTMT note
// always describes the same range an IF/SWITCH/LOOP/DO/FOR note would
// otherwise also claim, so they are checked first.
func (b *builder) recoverOne(i *object.Instruction) (ast.Stmt, *object.Instruction) {
	if n := noteOfKind(i, object.NoteReturn); n != nil {
		return b.recoverReturn(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteExprStmt); n != nil {
		return b.recoverExprStmt(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteIf); n != nil {
		return b.recoverIf(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteSwitch); n != nil {
		return b.recoverSwitch(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteFor); n != nil {
		return b.recoverFor(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteDo); n != nil {
		return b.recoverDo(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteLoop); n != nil {
		return b.recoverLoop(n), n.Exit
	}
	if n := noteOfKind(i, object.NoteJump); n != nil {
		return b.recoverJump(n), i.Next
	}
	if stmt, ok := b.ctrlStmt(i); ok {
		return stmt, i.Next
	}
	return b.asmFallback(i), i.Next
}

// ctrlStmt recognizes a bare TERMINATE/RESTART/SUSPEND/RETURNVOID reached
// as an ordinary instruction (not the body's own trailing sentinel, which
// recoverBlock already stops at without calling recoverOne).
func (b *builder) ctrlStmt(i *object.Instruction) (ast.Stmt, bool) {
	switch i.Op {
	case opcode.TERMINATE:
		return &ast.CtrlStmt{Kind: ast.CtrlTerminate}, true
	case opcode.RESTART:
		return &ast.CtrlStmt{Kind: ast.CtrlRestart}, true
	case opcode.SUSPEND:
		return &ast.CtrlStmt{Kind: ast.CtrlSuspend}, true
	case opcode.RETURNVOID:
		return &ast.CtrlStmt{Kind: ast.CtrlReturnVoid}, true
	default:
		return nil, false
	}
}

// asmFallback lowers a single instruction the recoverer found no note or
// control meaning for to inline assembly text: the opcode's own mnemonic
// plus its raw decoded operands, in the same form lang/emit will print
// verbatim.
func (b *builder) asmFallback(i *object.Instruction) ast.Stmt {
	info, ok := opcode.Get(i.Op)
	name := fmt.Sprintf("op%d", i.Op)
	if ok {
		name = info.Name
	}

	var parts []string
	switch i.Class {
	case object.InstJump:
		parts = append(parts, fmt.Sprintf("%d", i.Dest))
	case object.InstCaseJump:
		parts = append(parts, fmt.Sprintf("%d, %d", i.CaseValue, i.Dest))
	default:
		for _, a := range i.Args {
			parts = append(parts, fmt.Sprintf("%d", a))
		}
	}

	text := name
	if len(parts) > 0 {
		text = name + " " + strings.Join(parts, ", ")
	}
	return &ast.AsmStmt{Text: text}
}
