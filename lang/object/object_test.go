package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/opcode"
)

func TestNewContainerAllocatesInstructions(t *testing.T) {
	c := NewContainer(VariantBigE, []byte{1, 2, 3})
	defer c.Release()

	i1 := c.NewInstruction()
	i1.Op = opcode.NOP
	i2 := c.NewInstruction()
	i2.Op = opcode.GOTO

	require.NotSame(t, i1, i2)
	require.Equal(t, opcode.NOP, i1.Op)
	require.Equal(t, opcode.GOTO, i2.Op)
}

func TestInstructionLinking(t *testing.T) {
	c := NewContainer(VariantLittleE, nil)
	defer c.Release()

	a := c.NewInstruction()
	b := c.NewInstruction()
	a.Next = b
	b.Prev = a

	require.Same(t, b, a.Next)
	require.Same(t, a, b.Prev)
}

func TestSentinelDetection(t *testing.T) {
	c := NewContainer(VariantZero, nil)
	defer c.Release()

	i := c.NewInstruction()
	i.Op = opcode.TERMINATE
	require.True(t, i.IsSentinel())

	i2 := c.NewInstruction()
	i2.Op = opcode.NOP
	require.False(t, i2.IsSentinel())
}

func TestNoteStackOrder(t *testing.T) {
	c := NewContainer(VariantBigE, nil)
	defer c.Release()

	inst := c.NewInstruction()
	n1 := c.NewNote()
	n1.Kind = NoteExprStmt
	n2 := c.NewNote()
	n2.Kind = NoteReturn

	inst.PushNote(n1)
	inst.PushNote(n2)

	require.Equal(t, NoteReturn, inst.Notes.Kind)
	require.Equal(t, NoteExprStmt, inst.Notes.Next.Kind)
	require.Nil(t, inst.Notes.Next.Next)
}

func TestVariantString(t *testing.T) {
	require.Equal(t, "zero-era", VariantZero.String())
	require.Equal(t, "big-E", VariantBigE.String())
	require.Equal(t, "little-e", VariantLittleE.String())
}

func TestCaseJumpChain(t *testing.T) {
	c := NewContainer(VariantLittleE, nil)
	defer c.Release()

	case1 := c.NewInstruction()
	case1.Class = InstCaseJump
	case1.CaseValue = 1
	case2 := c.NewInstruction()
	case2.Class = InstCaseJump
	case2.CaseValue = 2
	case1.CaseNext = case2

	require.Same(t, case2, case1.CaseNext)
	require.Equal(t, int32(2), case1.CaseNext.CaseValue)
}
