package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

func mapVar(name string) *object.Variable {
	return &object.Variable{Scope: opcode.ScopeMap, Name: name}
}

func TestDirectivesOrder(t *testing.T) {
	prog := &ast.Program{
		Container:      &object.Container{},
		LibraryName:    "mylib",
		Compact:        false,
		WadAuthor:      false,
		EncryptStrings: true,
		UsesBuiltin:    true,
		Imports:        []string{"other"},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	want := "#library \"mylib\"\n" +
		"#nocompact\n" +
		"#nowadauthor\n" +
		"#encryptstrings\n" +
		"#include \"zcommon.acs\"\n" +
		"#import \"other\"\n" +
		"\n"
	require.Equal(t, want, buf.String())
}

func TestGlobalVarsTable(t *testing.T) {
	c := &object.Container{}
	c.MapVars[0] = mapVar("mapvar0")
	c.WorldVars[3] = &object.Variable{Scope: opcode.ScopeWorld, Index: 3, Name: "worldvar3", Array: true, Dim: 10}

	prog := &ast.Program{Container: c}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "int mapvar0;\n")
	require.Contains(t, buf.String(), "world int 3:worldvar3[10];\n")
}

func TestGlobalVarsInitializers(t *testing.T) {
	c := &object.Container{Strings: []string{"zero", "hello"}}
	c.MapVars[0] = &object.Variable{Scope: opcode.ScopeMap, Index: 0, Name: "count", Init: int32(7)}
	c.MapVars[1] = &object.Variable{Scope: opcode.ScopeMap, Index: 1, Name: "greeting", Type: object.VarStr, Init: int32(1)}
	c.MapVars[2] = &object.Variable{
		Scope: opcode.ScopeMap, Index: 2, Name: "table", Array: true, Dim: 5,
		InitList: map[int]any{0: int32(10), 3: int32(40)},
	}
	c.MapVars[4] = &object.Variable{Scope: opcode.ScopeMap, Index: 4, Name: "shared", Imported: true}

	prog := &ast.Program{Container: c}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "int count = 7;\n")
	require.Contains(t, buf.String(), `str greeting = "hello";`)
	require.Contains(t, buf.String(), "int table[5] = { 10, 0, 0, 40 };\n")
	require.Contains(t, buf.String(), "// int shared;\n")
}

func TestGlobalVarsUnnamedSlotFallback(t *testing.T) {
	c := &object.Container{}
	c.GlobalVars[2] = &object.Variable{Scope: opcode.ScopeGlobal, Index: 2, Init: int32(3)}

	prog := &ast.Program{Container: c}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "global int 2:globalvar2 = 3;\n")
}

func TestScriptHeaderNamedAndFlags(t *testing.T) {
	sc := &object.Script{
		Name:  "startup",
		Type:  object.ScriptOpen,
		Flags: object.ScriptFlagNet | object.ScriptFlagClientSide,
	}
	prog := &ast.Program{
		Container: &object.Container{},
		Scripts:   []*ast.ScriptDecl{{Script: sc, Body: &ast.Block{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), `script "startup" open net clientside {`)
}

func TestScriptHeaderNumberedAndParams(t *testing.T) {
	sc := &object.Script{
		Number:     1,
		Type:       object.ScriptClosed,
		ParamCount: 2,
		Vars:       []*object.Variable{{Name: "param0"}, {Name: "param1"}},
	}
	prog := &ast.Program{
		Container: &object.Container{},
		Scripts:   []*ast.ScriptDecl{{Script: sc, Body: &ast.Block{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "script 1 ( int param0, int param1 ) {")
}

// TestScriptHeaderClosedNoParamsVoid: a closed script with no parameters
// prints an explicit "( void )" clause (a non-closed type
// with no parameters prints no parens clause at all; only ScriptClosed
// does).
func TestScriptHeaderClosedNoParamsVoid(t *testing.T) {
	sc := &object.Script{Number: 1, Type: object.ScriptClosed}
	prog := &ast.Program{
		Container: &object.Container{},
		Scripts:   []*ast.ScriptDecl{{Script: sc, Body: &ast.Block{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "script 1 ( void ) {")
}

// TestScriptHeaderOpenNoParamsNoVoid checks the non-closed counterpart: a
// zero-param script of any other type prints no parens clause at all.
func TestScriptHeaderOpenNoParamsNoVoid(t *testing.T) {
	sc := &object.Script{Number: 2, Type: object.ScriptOpen}
	prog := &ast.Program{
		Container: &object.Container{},
		Scripts:   []*ast.ScriptDecl{{Script: sc, Body: &ast.Block{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "script 2 open {")
}

func TestScriptHeaderNumericTypeFallback(t *testing.T) {
	sc := &object.Script{Number: 5, Type: object.ScriptLightning}
	prog := &ast.Program{
		Container: &object.Container{},
		Scripts:   []*ast.ScriptDecl{{Script: sc, Body: &ast.Block{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "script 5 9 {")
}

func TestFuncDeclReturnTypeVoidVsInt(t *testing.T) {
	voidFunc := &object.Function{Index: 0}
	intFunc := &object.Function{Index: 1}

	prog := &ast.Program{
		Container: &object.Container{},
		Funcs: []*ast.FuncDecl{
			{Func: voidFunc, Body: &ast.Block{}},
			{Func: intFunc, Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ReturnStmt{X: &ast.Literal{Kind: ast.LitInt, Int: 1}},
			}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, prog))

	require.Contains(t, buf.String(), "function void func0( void ) {")
	require.Contains(t, buf.String(), "function int func1( void ) {")
}
