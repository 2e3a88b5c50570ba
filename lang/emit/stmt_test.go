package emit

import (
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
)

func blockString(t *testing.T, b *ast.Block) string {
	t.Helper()
	var buf bytes.Buffer
	p := &printer{w: &buf, atBOL: true}
	p.block(b)
	p.newline()
	require.NoError(t, p.err)
	return buf.String()
}

// requireEqualText asserts that two multi-line emitter outputs match,
// reporting a unified line diff (rather than testify's default blob dump)
// when they don't.
func requireEqualText(t *testing.T, want, got string) {
	t.Helper()
	if want != got {
		t.Fatalf("emitted text mismatch:\n%s", diff.Diff(want, got))
	}
}

func TestDeclStmtPrinting(t *testing.T) {
	v := &object.Variable{Name: "var0"}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.DeclStmt{Var: v, Init: &ast.Literal{Kind: ast.LitInt, Int: 5}},
	}}
	require.Equal(t, "{\n   int var0 = 5;\n}\n", blockString(t, b))
}

func TestIfElsePrinting(t *testing.T) {
	v := &object.Variable{Name: "var0"}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.IfStmt{
			Cond: &ast.VarExpr{Var: v},
			Then: &ast.Block{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
			Else: &ast.Block{Stmts: []ast.Stmt{&ast.ContinueStmt{}}},
		},
	}}
	want := "{\n" +
		"   if ( var0 ) {\n" +
		"      break;\n" +
		"   } else {\n" +
		"      continue;\n" +
		"   }\n" +
		"}\n"
	requireEqualText(t, want, blockString(t, b))
}

func TestIfNoElsePrinting(t *testing.T) {
	v := &object.Variable{Name: "var0"}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.IfStmt{Cond: &ast.VarExpr{Var: v}, Then: &ast.Block{}},
	}}
	want := "{\n" +
		"   if ( var0 ) { }\n" +
		"}\n"
	requireEqualText(t, want, blockString(t, b))
}

func TestSwitchPrinting(t *testing.T) {
	v := &object.Variable{Name: "var0"}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.SwitchStmt{
			Cond: &ast.VarExpr{Var: v},
			Cases: []*ast.CaseClause{
				{Value: 1, Body: &ast.Block{Stmts: []ast.Stmt{&ast.BreakStmt{}}}},
				{Default: true, Body: &ast.Block{Stmts: []ast.Stmt{&ast.BreakStmt{}}}},
			},
		},
	}}
	want := "{\n" +
		"   switch ( var0 ) {\n" +
		"      case 1:\n" +
		"         break;\n" +
		"      default:\n" +
		"         break;\n" +
		"   }\n" +
		"}\n"
	requireEqualText(t, want, blockString(t, b))
}

func TestLoopWhileUntil(t *testing.T) {
	cond := &ast.Literal{Kind: ast.LitInt, Int: 1}
	whileB := &ast.Block{Stmts: []ast.Stmt{
		&ast.LoopStmt{Cond: cond, Body: &ast.Block{}},
	}}
	untilB := &ast.Block{Stmts: []ast.Stmt{
		&ast.LoopStmt{Cond: cond, Until: true, Body: &ast.Block{}},
	}}
	require.Contains(t, blockString(t, whileB), "while ( 1 ) { }")
	require.Contains(t, blockString(t, untilB), "until ( 1 ) { }")
}

func TestDoWhilePrinting(t *testing.T) {
	cond := &ast.Literal{Kind: ast.LitInt, Int: 0}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.DoStmt{Cond: cond, Body: &ast.Block{}},
	}}
	require.Contains(t, blockString(t, b), "do { } while ( 0 );\n")
}

func TestForStmtPrinting(t *testing.T) {
	v := &object.Variable{Name: "var0"}
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.ForStmt{
			Cond: &ast.VarExpr{Var: v},
			Post: []ast.Expr{&ast.IncDecExpr{Op: ast.IncOp, X: &ast.VarExpr{Var: v}}},
			Body: &ast.Block{},
		},
	}}
	require.Contains(t, blockString(t, b), "for ( ; var0; var0++ ) { }")
}

func TestReturnAndGotoAndLabel(t *testing.T) {
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{X: &ast.Literal{Kind: ast.LitInt, Int: 1}},
		&ast.ReturnStmt{},
		&ast.GotoStmt{Target: 42},
		&ast.LabelStmt{Pos: 42},
	}}
	want := "{\n" +
		"   return 1;\n" +
		"   return;\n" +
		"   goto label_42;\n" +
		"label_42:\n" +
		"}\n"
	requireEqualText(t, want, blockString(t, b))
}

func TestCtrlStmtKinds(t *testing.T) {
	b := &ast.Block{Stmts: []ast.Stmt{
		&ast.CtrlStmt{Kind: ast.CtrlTerminate},
		&ast.CtrlStmt{Kind: ast.CtrlRestart},
		&ast.CtrlStmt{Kind: ast.CtrlSuspend},
		&ast.CtrlStmt{Kind: ast.CtrlReturnVoid},
	}}
	want := "{\n   terminate;\n   restart;\n   suspend;\n   return;\n}\n"
	requireEqualText(t, want, blockString(t, b))
}
