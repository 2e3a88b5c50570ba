package annotate

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// frame carries the break/continue targets of the nearest enclosing loop or
// switch, threaded down the recursive block scan rather than stored on the
// scanner itself, since nested constructs each need their own pair without
// disturbing the enclosing one.
type frame struct {
	parent                      *frame
	breakTarget, continueTarget *object.Instruction
	hasBreak, hasContinue       bool
}

func (f *frame) findBreak() (*object.Instruction, bool) {
	for ; f != nil; f = f.parent {
		if f.hasBreak {
			return f.breakTarget, true
		}
	}
	return nil, false
}

func (f *frame) findContinue() (*object.Instruction, bool) {
	for ; f != nil; f = f.parent {
		if f.hasContinue {
			return f.continueTarget, true
		}
	}
	return nil, false
}

type scanner struct {
	c    *object.Container
	file string
	sink *diag.Sink
}

// scanBlock walks instructions from head up to end (exclusive). end == nil
// means "until this body's own TERMINATE/RESTART/SUSPEND/RETURNVOID
// sentinel", used for the outermost call; nested constructs always pass an
// explicit end since their extent is known from the enclosing branch.
func (s *scanner) scanBlock(head, end *object.Instruction, fr *frame) {
	i := head
	for i != nil && i != end {
		if end == nil && isBodyEnd(i.Op) {
			return
		}
		i = s.scanOne(i, end, fr)
	}
}

func isBodyEnd(op opcode.Opcode) bool {
	switch op {
	case opcode.TERMINATE, opcode.RESTART, opcode.SUSPEND, opcode.RETURNVOID:
		return true
	default:
		return false
	}
}

// scanOne recognizes and annotates the single construct starting at i,
// returning the instruction to resume the enclosing scanBlock's walk from.
// end is that scanBlock's own boundary (nil at the outermost, body-wide
// call): scanOne must not recognize a construct that would reach past it,
// since that would describe something the enclosing construct itself
// already owns.
func (s *scanner) scanOne(i, end *object.Instruction, fr *frame) *object.Instruction {
	if next, ok := tryInternFunc(s.c, i); ok {
		return next
	}
	if i.Op == opcode.GOTO {
		return s.scanBareGoto(i, fr)
	}
	if next, ok := s.tryDoHead(i, end, fr); ok {
		return next
	}

	var exit *object.Instruction
	ok := tryExpr(func() { exit = simulateExpr(s.c, i) })
	if !ok {
		name := "?"
		if info, known := opcode.Get(i.Op); known {
			name = info.Name
		}
		s.sink.Notef(pos(s.file, i.Pos), "could not recover a construct starting at %s; left as raw instructions", name)
		return i.Next
	}
	return s.dispatchExit(i, exit, fr)
}

// scanBareGoto handles a GOTO reached directly at block-scan level, i.e.
// with no preceding expression -- the shape a break or continue statement
// compiles to. Anything else is left unannotated.
func (s *scanner) scanBareGoto(i *object.Instruction, fr *frame) *object.Instruction {
	if bt, has := fr.findBreak(); has && i.Target == bt {
		n := s.c.NewNote()
		n.Kind = object.NoteJump
		n.JKind = object.JumpBreak
		i.PushNote(n)
		return i.Next
	}
	if ct, has := fr.findContinue(); has && i.Target == ct {
		n := s.c.NewNote()
		n.Kind = object.NoteJump
		n.JKind = object.JumpContinue
		i.PushNote(n)
		return i.Next
	}
	return i.Next
}

// dispatchExit decides what construct the expression [start, exit) belongs
// to, based on exit's opcode.
func (s *scanner) dispatchExit(start, exit *object.Instruction, fr *frame) *object.Instruction {
	switch exit.Op {
	case opcode.IFGOTO, opcode.IFNOTGOTO:
		return s.dispatchBranch(start, exit, fr)
	case opcode.GOTO:
		if next, ok := s.tryDispatchSwitch(start, exit, fr); ok {
			return next
		}
		return s.emitExprStmt(start, exit)
	case opcode.RETURNVAL:
		n := s.c.NewNote()
		n.Kind = object.NoteReturn
		n.Start, n.End = start, exit
		n.Exit = exit.Next
		start.PushNote(n)
		return exit.Next
	default:
		return s.emitExprStmt(start, exit)
	}
}

// exprEnd reports the last instruction actually belonging to an expression
// whose simulation returned exit: simulateExpr's exit is always its
// one-past lookahead instruction, whether it settled the stack back to 0 or
// matched a recognized consumer, so the range always stops one instruction
// earlier. The only exit opcode that would instead belong to the range
// itself -- the trailing dispatch GOTO of a switch selector -- never
// reaches here: dispatchExit hands that one to tryDispatchSwitch first, and
// a GOTO that isn't a switch dispatch is, like any other exit, a bare
// lookahead past the expression's real end.
func exprEnd(exit *object.Instruction) *object.Instruction {
	return exit.Prev
}

// emitExprStmt emits a plain EXPRSTMT note over the expression ending at
// exit, folding a trailing DROP (a discarded call result, or an orphan one
// left over from some other construct) into the statement's exit so the
// recoverer doesn't have to special-case it separately.
func (s *scanner) emitExprStmt(start, exit *object.Instruction) *object.Instruction {
	n := s.c.NewNote()
	n.Kind = object.NoteExprStmt
	n.Start = start
	n.End = exprEnd(exit)
	realExit := exit
	if exit != nil && exit.Op == opcode.DROP {
		realExit = exit.Next
	}
	n.Exit = realExit
	start.PushNote(n)
	return realExit
}
