package recover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/annotate"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// chain allocates len(ops) instructions from c, wires them into a doubly
// linked sequence in declaration order and gives each a distinct Pos (its
// index). Matches lang/annotate's own test helper of the same name, since
// both packages exercise the same kind of hand-built instruction fixture.
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

// TestRunRecoversActionSpecialCall runs the annotator and recoverer in
// sequence over a single script whose body is "PUSHNUMBER 42; LSPEC1 1"
// (action special 1 is Polyobj_StartLine), and checks the resulting AST is
// a single ExprStmt wrapping a CallExpr to
// that action special with one literal argument.
func TestRunRecoversActionSpecialCall(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)
	aspec, ok := catalog.ActionSpecialByID(1)
	require.True(t, ok)

	insts := chain(c, opcode.PUSHNUMBER, opcode.LSPEC1, opcode.TERMINATE)
	insts[0].Args = []int32{42}
	insts[1].Args = []int32{int32(aspec.ID)}

	sc := &object.Script{Number: 1, Vars: make([]*object.Variable, object.DefaultVarCapacity)}
	sc.BodyStart, sc.BodyEnd = insts[0], insts[2]
	c.Scripts.Append(sc)

	sink := &diag.Sink{}
	annotate.Run(c, "t.o", sink)
	require.Empty(t, sink.List())

	p := Run(c, "t.o", sink)
	require.Empty(t, sink.List())
	require.Len(t, p.Scripts, 1)
	require.True(t, p.UsesBuiltin)

	body := p.Scripts[0].Body
	require.Len(t, body.Stmts, 1)

	exprStmt, ok := body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.X.(*ast.CallExpr)
	require.True(t, ok)
	require.Equal(t, ast.CalleeASpec, call.Callee.Kind)
	require.Same(t, aspec, call.Callee.ASpec)
	require.Len(t, call.Args, 1)

	lit, ok := call.Args[0].(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, ast.LitInt, lit.Kind)
	require.Equal(t, int32(42), lit.Int)
}

// TestRunRecoversBareReturn checks the simplest possible function body:
// RETURNVOID alone, immediately followed by the synthetic TERMINATE
// sentinel, recovers to a single bare CtrlStmt (lang/annotate's scanBlock
// stops at a body-ending opcode without attaching a NoteReturn, so this
// shape never reaches recoverReturn -- see ctrlStmt in block.go).
func TestRunRecoversBareReturn(t *testing.T) {
	c := object.NewContainer(object.VariantBigE, nil)

	insts := chain(c, opcode.RETURNVOID, opcode.TERMINATE)

	fn := &object.Function{Kind: object.FuncUser, Name: "f"}
	fn.BodyStart, fn.BodyEnd = insts[0], insts[1]
	c.Functions.Append(fn)

	sink := &diag.Sink{}
	annotate.Run(c, "t.o", sink)
	require.Empty(t, sink.List())

	p := Run(c, "t.o", sink)
	require.Empty(t, sink.List())
	require.Len(t, p.Funcs, 1)
	require.False(t, p.UsesBuiltin)

	body := p.Funcs[0].Body
	require.Len(t, body.Stmts, 1)
	ctrl, ok := body.Stmts[0].(*ast.CtrlStmt)
	require.True(t, ok)
	require.Equal(t, ast.CtrlReturnVoid, ctrl.Kind)
}
