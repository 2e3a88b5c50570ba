package maincmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

func TestScriptNameNamedAndNumbered(t *testing.T) {
	require.Equal(t, "open1", scriptName(&object.Script{Name: "open1"}))
	require.Equal(t, "3", scriptName(&object.Script{Number: 3}))
}

func TestDisassembleBodyStopsAtSentinel(t *testing.T) {
	i1 := &object.Instruction{Op: opcode.NOP, Pos: 0}
	term := &object.Instruction{Op: opcode.TERMINATE, Pos: 4}
	i1.Next = term

	insts := disassembleBody(i1)

	require.Len(t, insts, 1)
	require.Equal(t, 0, insts[0].Pos)
}

func TestDisassembleBodyUnknownOpcodeFallback(t *testing.T) {
	i1 := &object.Instruction{Op: opcode.Opcode(0x7fff), Pos: 8, Args: []int32{1, 2}}

	insts := disassembleBody(i1)

	require.Len(t, insts, 1)
	require.Equal(t, "opcode(32767)", insts[0].Op)
	require.Equal(t, []int32{1, 2}, insts[0].Args)
}

func TestWriteTextBodyFormatting(t *testing.T) {
	doc := dumpDoc{
		Variant: "big-E",
		Scripts: []bodyRecord{
			{Name: "1", Insts: []instRecord{{Pos: 0, Op: "NOP"}, {Pos: 1, Op: "PUSHNUMBER", Args: []int32{5}}}},
		},
	}
	var buf bytes.Buffer
	writeText(&buf, doc)

	want := "; variant: big-E\n" +
		"script 1:\n" +
		"  0x000000: NOP\n" +
		"  0x000001: PUSHNUMBER 5\n"
	require.Equal(t, want, buf.String())
}
