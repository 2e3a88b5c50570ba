package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// chain allocates len(ops) instructions from c, wires them into a doubly
// linked sequence in declaration order and gives each a distinct Pos (its
// index), and returns them. Tests that need a jump set Target/Class
// directly on the returned instructions.
func chain(c *object.Container, ops ...opcode.Opcode) []*object.Instruction {
	insts := make([]*object.Instruction, len(ops))
	for i, op := range ops {
		in := c.NewInstruction()
		in.Op = op
		in.Pos = i
		insts[i] = in
	}
	for i := range insts {
		if i > 0 {
			insts[i].Prev = insts[i-1]
		}
		if i+1 < len(insts) {
			insts[i].Next = insts[i+1]
		}
	}
	return insts
}

func newScanner(c *object.Container) (*scanner, *diag.Sink) {
	sink := &diag.Sink{}
	return &scanner{c: c, file: "t.o", sink: sink}, sink
}

func firstNote(i *object.Instruction, kind object.NoteKind) *object.Note {
	for n := i.Notes; n != nil; n = n.Next {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}

// TestEmitExprStmtEndsAtBodySentinel is a regression test for a body whose
// last statement is a bare call immediately followed by the synthetic
// TERMINATE sentinel -- the ordinary shape of the very last statement in
// any script or function. simulateExpr's lookahead lands exactly on
// TERMINATE in this shape, which must be recognized as a stable exit rather
// than bailed on.
func TestEmitExprStmtEndsAtBodySentinel(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	aspec, ok := catalog.ActionSpecialByID(60) // Light_ForceLightning, one required int
	require.True(t, ok)

	insts := chain(c, opcode.PUSHNUMBER, opcode.LSPEC1, opcode.TERMINATE)
	insts[0].Args = []int32{42}
	insts[1].Args = []int32{int32(aspec.ID)}

	s, sink := newScanner(c)
	s.scanBlock(insts[0], nil, nil)

	require.Empty(t, sink.List())
	n := firstNote(insts[0], object.NoteExprStmt)
	require.NotNil(t, n)
	require.Same(t, insts[1], n.End)
	require.Same(t, insts[2], n.Exit)
}

// TestEmitExprStmtSplitsConsecutiveStatements checks that one EXPRSTMT's End
// never reaches into the next statement's own first instruction -- only
// the real last instruction of the expression it belongs to.
func TestEmitExprStmtSplitsConsecutiveStatements(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	delay, ok := catalog.DedicatedByName("Delay")
	require.True(t, ok)
	tagWait, ok := catalog.DedicatedByName("TagWait")
	require.True(t, ok)

	insts := chain(c, opcode.PUSHNUMBER, delay.Op, opcode.PUSHNUMBER, tagWait.Op, opcode.TERMINATE)
	insts[0].Args = []int32{5}
	insts[2].Args = []int32{6}

	s, sink := newScanner(c)
	s.scanBlock(insts[0], nil, nil)
	require.Empty(t, sink.List())

	first := firstNote(insts[0], object.NoteExprStmt)
	require.NotNil(t, first)
	require.Same(t, insts[1], first.End)
	require.Same(t, insts[2], first.Exit)

	second := firstNote(insts[2], object.NoteExprStmt)
	require.NotNil(t, second)
	require.Same(t, insts[3], second.End)
	require.Same(t, insts[4], second.Exit)
}

// TestEmitExprStmtFoldsOrphanDrop checks the boundary case of an orphan DROP
// immediately following an already-complete expression: it is folded into
// the statement's Exit rather than becoming its own EXPRSTMT (which would
// have nothing of its own to pop).
func TestEmitExprStmtFoldsOrphanDrop(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	insts := chain(c, opcode.PUSHNUMBER, opcode.DROP, opcode.DROP, opcode.TERMINATE)
	insts[0].Args = []int32{7}

	s, sink := newScanner(c)
	s.scanBlock(insts[0], nil, nil)
	require.Empty(t, sink.List())

	n := firstNote(insts[0], object.NoteExprStmt)
	require.NotNil(t, n)
	require.Same(t, insts[1], n.End, "End should be the real DROP, not the orphan one")
	require.Same(t, insts[3], n.Exit, "Exit should skip the orphan DROP entirely")
}

func TestScanBareGotoRecognizesBreakAndContinue(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	insts := chain(c, opcode.GOTO, opcode.GOTO, opcode.TERMINATE)
	insts[0].Class, insts[1].Class = object.InstJump, object.InstJump
	insts[0].Target = insts[2] // break target
	insts[1].Target = insts[0] // continue target

	s, _ := newScanner(c)
	fr := &frame{breakTarget: insts[2], hasBreak: true, continueTarget: insts[0], hasContinue: true}

	next := s.scanBareGoto(insts[0], fr)
	require.Same(t, insts[1], next)
	n := firstNote(insts[0], object.NoteJump)
	require.NotNil(t, n)
	require.Equal(t, object.JumpBreak, n.JKind)

	next = s.scanBareGoto(insts[1], fr)
	require.Same(t, insts[2], next)
	n = firstNote(insts[1], object.NoteJump)
	require.NotNil(t, n)
	require.Equal(t, object.JumpContinue, n.JKind)
}

func TestScanOneFallsBackOnUnrecognizedExit(t *testing.T) {
	// An IFGOTO with no preceding pushed condition underflows the simulated
	// stack immediately: simulateExpr bails, and scanOne must advance past it
	// rather than propagating the failure.
	c := object.NewContainer(object.VariantBigE, nil)
	insts := chain(c, opcode.IFGOTO, opcode.TERMINATE)
	insts[0].Class = object.InstJump
	insts[0].Target = insts[1]

	s, sink := newScanner(c)
	next := s.scanOne(insts[0], nil, nil)
	require.Same(t, insts[1], next)
	require.Len(t, sink.List(), 1)
	require.Equal(t, diag.Note, sink.List()[0].Sev)
}
