package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// TestTryDispatchSwitchLinksCaseChainAndDefault builds a two-case switch with
// no break statements, falling through the CASEGOTO chain into case bodies
// that each reach the shared TERMINATE sentinel, and a trailing default jump
// that also happens to coincide with the switch's own break target:
//
//	0: PUSHNUMBER 5        ; selector
//	1: GOTO       -> 2     ; dispatch
//	2: CASEGOTO   1 -> 5
//	3: CASEGOTO   2 -> 7
//	4: GOTO       -> 9     ; default / break target
//	5: PUSHNUMBER 9        ; case 1 body
//	6: DED_Delay
//	7: PUSHNUMBER 8        ; case 2 body
//	8: DED_Delay
//	9: TERMINATE
func TestTryDispatchSwitchLinksCaseChainAndDefault(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	delay, ok := catalog.DedicatedByName("Delay")
	require.True(t, ok)

	insts := chain(c, opcode.PUSHNUMBER, opcode.GOTO, opcode.CASEGOTO, opcode.CASEGOTO,
		opcode.GOTO, opcode.PUSHNUMBER, delay.Op, opcode.PUSHNUMBER, delay.Op, opcode.TERMINATE)
	insts[0].Args = []int32{5}
	insts[5].Args = []int32{9}
	insts[7].Args = []int32{8}

	insts[1].Class = object.InstJump
	insts[1].Target = insts[2]
	insts[2].Class, insts[3].Class = object.InstCaseJump, object.InstCaseJump
	insts[2].CaseValue, insts[3].CaseValue = 1, 2
	insts[2].Target, insts[3].Target = insts[5], insts[7]
	insts[4].Class = object.InstJump
	insts[4].Target = insts[9]

	s, sink := newScanner(c)
	s.scanBlock(insts[0], nil, nil)
	require.Empty(t, sink.List())

	n := firstNote(insts[0], object.NoteSwitch)
	require.NotNil(t, n)
	require.Same(t, insts[0], n.CondStart)
	require.Same(t, insts[1], n.CondEnd)
	require.Same(t, insts[2], n.CaseTable)
	require.Nil(t, n.SortedJump)
	require.Same(t, insts[9], n.Exit, "the default jump's target becomes the exit once it sits past every real case body")

	case1 := firstNote(insts[5], object.NoteCase)
	require.NotNil(t, case1)
	require.Equal(t, int32(1), case1.CaseValue)
	require.False(t, case1.CaseDefault)

	case2 := firstNote(insts[7], object.NoteCase)
	require.NotNil(t, case2)
	require.Equal(t, int32(2), case2.CaseValue)
	require.False(t, case2.CaseDefault)

	def := firstNote(insts[9], object.NoteCase)
	require.NotNil(t, def)
	require.True(t, def.CaseDefault)

	jmp := firstNote(insts[4], object.NoteJump)
	require.NotNil(t, jmp, "the default jump also targets the switch's own break target, so it reads as a break")
	require.Equal(t, object.JumpBreak, jmp.JKind)

	body1 := firstNote(insts[5], object.NoteExprStmt)
	require.NotNil(t, body1)
	require.Same(t, insts[6], body1.End)
	require.Same(t, insts[7], body1.Exit)
}

// TestTryDispatchSwitchHandlesEmptyBody builds a switch with no case at all
// (the selector is simply dropped): the dispatch GOTO's target is a bare
// DROP rather than a case-jump instruction.
func TestTryDispatchSwitchHandlesEmptyBody(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	insts := chain(c, opcode.PUSHNUMBER, opcode.GOTO, opcode.DROP, opcode.TERMINATE)
	insts[0].Args = []int32{5}
	insts[1].Class = object.InstJump
	insts[1].Target = insts[2]

	s, sink := newScanner(c)
	s.scanBlock(insts[0], nil, nil)
	require.Empty(t, sink.List())

	n := firstNote(insts[0], object.NoteSwitch)
	require.NotNil(t, n)
	require.Nil(t, n.CaseTable)
	require.Nil(t, n.SortedJump)
	require.Same(t, insts[3], n.Exit)
	require.Nil(t, firstNote(insts[3], object.NoteCase), "nothing jumps past the empty body, so there is no default case note")
}
