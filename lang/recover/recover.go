// Package recover is the AST recoverer: given a container whose bodies
// have already been walked by lang/annotate, it builds the actual
// expression and statement trees lang/polish and lang/emit operate on.
//
// Where lang/annotate only needs to track the simulated operand stack's
// depth to find construct boundaries, this package's own stack simulator
// (see expr.go) builds real ast.Expr values on each push, so the tree it
// produces mirrors the same opcode-by-opcode walk lang/annotate already
// performed once to place its notes.
package recover

import (
	"sort"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/object"
)

// Run recovers every script and user-defined function body in c into an
// ast.Program. file is used only to label diagnostics. A body that the
// recoverer cannot make sense of at some point still produces output: the
// unrecognized stretch is lowered to an AsmStmt (asmFallback) rather than
// aborting the whole run; only a structurally inconsistent container (a
// dangling jump target, a call to an out-of-range function index) bails
// the run via diag.Bail, since those indicate a bug earlier in the
// pipeline rather than merely unidiomatic input.
func Run(c *object.Container, file string, sink *diag.Sink) *ast.Program {
	p := &ast.Program{
		Container:      c,
		LibraryName:    c.LibraryName,
		Imports:        c.Imports,
		Compact:        c.Compact,
		WadAuthor:      c.WadAuthor,
		EncryptStrings: c.EncryptStrings,
	}

	for _, sc := range c.Scripts.Items() {
		b := newBuilder(c, file, sink, sc.ParamCount, &sc.Vars, &sc.Arrays)
		decl := &ast.ScriptDecl{Script: sc, Body: b.recoverBody(sc.BodyStart)}
		p.Scripts = append(p.Scripts, decl)
		if b.usesBuiltin {
			p.UsesBuiltin = true
		}
	}
	for _, fn := range c.Functions.Items() {
		if fn.Kind != object.FuncUser {
			continue
		}
		b := newBuilder(c, file, sink, fn.ParamCount, &fn.Vars, &fn.Arrays)
		decl := &ast.FuncDecl{Func: fn, Body: b.recoverBody(fn.BodyStart)}
		p.Funcs = append(p.Funcs, decl)
		if b.usesBuiltin {
			p.UsesBuiltin = true
		}
	}

	sort.SliceStable(p.Scripts, func(i, j int) bool {
		return bodyPos(p.Scripts[i].Script.BodyStart) < bodyPos(p.Scripts[j].Script.BodyStart)
	})
	sort.SliceStable(p.Funcs, func(i, j int) bool {
		return bodyPos(p.Funcs[i].Func.BodyStart) < bodyPos(p.Funcs[j].Func.BodyStart)
	})

	return p
}

// builder holds the per-script/per-function state the recoverer threads
// through its recursive descent: the container it reads instructions and
// metadata from, the diagnostic sink, and pointers to the owning body's own
// variable/array tables (so a first reference to an as-yet-unmaterialized
// local var/array can lazily fill in its *object.Variable in place, the way
// lang/loader's map-variable tables are lazily populated).
type builder struct {
	c    *object.Container
	file string
	sink *diag.Sink

	paramCount int
	vars       *[]*object.Variable
	arrays     *[]*object.Variable

	usesBuiltin bool
}

func newBuilder(c *object.Container, file string, sink *diag.Sink, paramCount int, vars, arrays *[]*object.Variable) *builder {
	return &builder{c: c, file: file, sink: sink, paramCount: paramCount, vars: vars, arrays: arrays}
}

func (b *builder) recoverBody(head *object.Instruction) *ast.Block {
	if head == nil {
		return &ast.Block{}
	}
	return b.recoverBlock(head, nil)
}

func (b *builder) pos(i *object.Instruction) diag.Position {
	off := -1
	if i != nil {
		off = i.Pos
	}
	return diag.Position{File: b.file, Offset: off}
}

// bodyPos is the sort key for a script/function's emission order: the byte
// offset its body starts at, or -1 (sorts first) for the degenerate case of
// a declared-but-empty body.
func bodyPos(head *object.Instruction) int {
	if head == nil {
		return -1
	}
	return head.Pos
}
