package emit

import (
	"fmt"
	"sort"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// program prints a whole recovered module: directives, then global variable
// declarations grouped by storage class, then scripts and functions in
// body-offset order (the order lang/recover already sorted p.Scripts/Funcs
// into).
func (p *printer) program(prog *ast.Program) {
	p.directives(prog)
	p.globalVars(prog.Container)
	for _, sc := range prog.Scripts {
		p.script(sc)
	}
	for _, fn := range prog.Funcs {
		p.funcDecl(fn)
	}
}

func (p *printer) directives(prog *ast.Program) {
	if prog.LibraryName != "" {
		p.line("#library %q", prog.LibraryName)
	}
	if !prog.Compact {
		p.line("#nocompact")
	}
	if !prog.WadAuthor {
		p.line("#nowadauthor")
	}
	if prog.EncryptStrings {
		p.line("#encryptstrings")
	}
	if prog.UsesBuiltin {
		p.line("#include %q", "zcommon.acs")
	}
	for _, imp := range prog.Imports {
		p.line("#import %q", imp)
	}
	p.newline()
}

func varTypeName(v *object.Variable) string {
	if v.Type == object.VarStr {
		return "str"
	}
	return "int"
}

func (p *printer) globalVars(c *object.Container) {
	wrote := false
	wrote = p.varTable(c, c.MapVars[:]) || wrote
	wrote = p.varTable(c, c.WorldVars[:]) || wrote
	wrote = p.varTable(c, c.GlobalVars[:]) || wrote
	if wrote {
		p.newline()
	}
}

// varTable prints one storage class's declarations in slot order. Map
// variables print with no storage keyword; world and global ones carry
// their storage keyword and slot number. An imported variable's
// declaration prints commented out, since the real one lives in the
// library a #import directive names.
func (p *printer) varTable(c *object.Container, vars []*object.Variable) bool {
	wrote := false
	for _, v := range vars {
		if v == nil {
			continue
		}
		wrote = true
		if v.Imported {
			p.raw("// ")
		}
		switch v.Scope {
		case opcode.ScopeWorld:
			p.raw("world ")
		case opcode.ScopeGlobal:
			p.raw("global ")
		}
		p.printf("%s ", varTypeName(v))
		if v.Scope == opcode.ScopeWorld || v.Scope == opcode.ScopeGlobal {
			p.printf("%d:", v.Index)
		}
		p.raw(varDeclName(v))
		if v.Array {
			if v.Dim > 0 {
				p.printf("[%d]", v.Dim)
			} else {
				p.raw("[]")
			}
		}
		p.varInit(c, v)
		p.line(";")
	}
	return wrote
}

// varInit prints a declaration's initializer clause, if any: a single
// scalar value, or an array's value list with zero-filled gaps between the
// sparse entries a chunk actually stored.
func (p *printer) varInit(c *object.Container, v *object.Variable) {
	if v.Init != nil {
		p.raw(" = ")
		p.initValue(c, v.Type, v.Init)
		return
	}
	if len(v.InitList) == 0 {
		return
	}
	keys := make([]int, 0, len(v.InitList))
	for k := range v.InitList {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	p.raw(" = { ")
	next := 0
	for n, k := range keys {
		for ; next < k; next++ {
			p.raw("0, ")
		}
		p.initValue(c, v.Type, v.InitList[k])
		next = k + 1
		if n < len(keys)-1 {
			p.raw(", ")
		}
	}
	p.raw(" }")
}

// initValue prints one initializer value: a raw int32 read off a MINI/AINI
// chunk (resolved through the string table for str-typed variables), or an
// already-recovered expression.
func (p *printer) initValue(c *object.Container, typ object.VarType, val any) {
	switch val := val.(type) {
	case ast.Expr:
		p.expr(val)
	case int32:
		if typ == object.VarStr && c != nil && int(val) >= 0 && int(val) < len(c.Strings) {
			p.printf("%q", c.Strings[val])
		} else {
			p.printf("%d", val)
		}
	default:
		p.printf("%v", val)
	}
}

// varDeclName falls back to a synthesized storage+layout+index name for a
// slot no chunk ever named and no body ever referenced, the same scheme
// lang/recover uses when it materializes a variable on first use.
func varDeclName(v *object.Variable) string {
	if v.Name != "" {
		return v.Name
	}
	prefix := v.Scope.String() + "var"
	if v.Array {
		prefix += "arr"
	}
	return fmt.Sprintf("%s%d", prefix, v.Index)
}

// scriptTypeKeyword reports the textual type keyword for t; the other
// historical trigger types print as a bare
// numeric token instead (the engine's own numeric type code, which the
// loader stores directly as the Go enum's ordinal -- see lang/loader), and
// ScriptClosed prints no type clause at all since it is the implicit
// default.
func scriptTypeKeyword(t object.ScriptType) (string, bool) {
	switch t {
	case object.ScriptOpen:
		return "open", true
	case object.ScriptEnter:
		return "enter", true
	case object.ScriptDeath:
		return "death", true
	case object.ScriptDisconnect:
		return "disconnect", true
	case object.ScriptEvent:
		return "event", true
	}
	return "", false
}

func (p *printer) scriptFlags(f object.ScriptFlag) []string {
	var flags []string
	if f&object.ScriptFlagNet != 0 {
		flags = append(flags, "net")
	}
	if f&object.ScriptFlagClientSide != 0 {
		flags = append(flags, "clientside")
	}
	return flags
}

func (p *printer) script(sc *ast.ScriptDecl) {
	s := sc.Script
	if s.Name != "" {
		p.printf("script %q", s.Name)
	} else {
		p.printf("script %d", s.Number)
	}
	if s.ParamCount > 0 {
		p.raw(" ( ")
		for i := 0; i < s.ParamCount; i++ {
			if i > 0 {
				p.raw(", ")
			}
			p.printf("int %s", paramName(s.Vars, i))
		}
		p.raw(" )")
	} else if s.Type == object.ScriptClosed {
		p.raw(" ( void )")
	}
	if kw, ok := scriptTypeKeyword(s.Type); ok {
		p.printf(" %s", kw)
	} else if s.Type != object.ScriptClosed {
		p.printf(" %d", int(s.Type))
	}
	for _, f := range p.scriptFlags(s.Flags) {
		p.printf(" %s", f)
	}
	p.raw(" ")
	p.block(sc.Body)
	p.newline()
	p.newline()
}

func paramName(vars []*object.Variable, idx int) string {
	if idx < len(vars) && vars[idx] != nil && vars[idx].Name != "" {
		return vars[idx].Name
	}
	return fmt.Sprintf("param%d", idx)
}

// funcReturnType reports "int" if body contains any RETURNVAL recovered as
// a non-void ReturnStmt, "void" otherwise: the object model carries no
// separate return-type metadata, so the body itself is the only source of
// truth for this.
func funcReturnType(body *ast.Block) string {
	ret := "void"
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		if r, ok := n.(*ast.ReturnStmt); ok && r.X != nil {
			ret = "int"
		}
		return v
	}
	ast.Walk(v, body)
	return ret
}

func funcName(f *object.Function) string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("func%d", f.Index)
}

func (p *printer) funcDecl(fn *ast.FuncDecl) {
	f := fn.Func
	ret := funcReturnType(fn.Body)
	p.printf("function %s %s( ", ret, funcName(f))
	if f.ParamCount > 0 {
		for i := 0; i < f.ParamCount; i++ {
			if i > 0 {
				p.raw(", ")
			}
			p.printf("int %s", paramName(f.Vars, i))
		}
	} else {
		p.raw("void")
	}
	p.raw(" ) ")
	p.block(fn.Body)
	p.newline()
	p.newline()
}
