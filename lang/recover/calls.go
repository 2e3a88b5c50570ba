package recover

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// stringLiteral turns a string-table index into the Literal lang/emit
// prints as a quoted string.
func stringLiteral(c *object.Container, idx int32) *ast.Literal {
	str := ""
	if int(idx) >= 0 && int(idx) < len(c.Strings) {
		str = c.Strings[idx]
	}
	return &ast.Literal{Kind: ast.LitStr, Str: str, Index: idx}
}

// castArgs rewrites any plain integer literal sitting at a string-typed
// signature position into a string-table reference: the bytecode carries
// every built-in function argument as a bare int32, whether it is really a
// number or a string-table index, so only the catalog's own signature tells
// recover which is which.
func castArgs(c *object.Container, args []ast.Expr, sig catalog.Signature) []ast.Expr {
	types := make([]catalog.ParamType, 0, len(sig.Required)+len(sig.Optional))
	types = append(types, sig.Required...)
	types = append(types, sig.Optional...)
	for i, t := range types {
		if i >= len(args) {
			break
		}
		if t != catalog.TypeStr {
			continue
		}
		if lit, ok := args[i].(*ast.Literal); ok && lit.Kind == ast.LitInt {
			args[i] = stringLiteral(c, lit.Int)
		}
	}
	return args
}

// stepLSpec handles the whole LSPEC1..5/LSPEC5RESULT/LSPEC5EX* family and
// their DIRECT/DIRECTB literal-argument variants. A non-nil return overrides the
// caller's default i.Next advance (the internal-function idiom case).
func (s *exprSim) stepLSpec(i *object.Instruction) *object.Instruction {
	if n := noteOfKind(i, object.NoteInternFunc); n != nil {
		return s.stepInternFunc(i, n)
	}

	b := s.b
	id := int(i.Args[0])
	n, _ := opcode.LSpecArgCount(i.Op)

	var args []ast.Expr
	if isDirectLSpec(i.Op) {
		lits := i.Args[1:]
		args = make([]ast.Expr, len(lits))
		for idx, v := range lits {
			args[idx] = intLit(v)
		}
	} else {
		args = s.popN(n)
	}

	b.usesBuiltin = true
	aspec, ok := catalog.ActionSpecialByID(id)
	if !ok {
		u := &ast.UnknownExpr{Of: "action special", ID: int32(id), Args: args}
		if lspecPushesResult(i.Op) {
			s.push(u)
		} else {
			s.last = u
		}
		return nil
	}

	args = castArgs(b.c, args, aspec.Sig)
	call := &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeASpec, ASpec: aspec}, Args: args, Direct: isDirectLSpec(i.Op)}
	if lspecPushesResult(i.Op) {
		s.push(call)
	} else {
		s.last = call
	}
	return nil
}

// lspecPushesResult reports whether op is one of the two action-special
// call opcodes that leave the special's return value on the stack.
func lspecPushesResult(op opcode.Opcode) bool {
	return op == opcode.LSPEC5RESULT || op == opcode.LSPEC5EXRESULT
}

// stepDelayDirect handles DELAYDIRECTB: Delay called with its one argument
// encoded inline rather than pushed, since its own opcode (Delay's
// dedicated opcode) is never used for the literal-argument form.
func (s *exprSim) stepDelayDirect(i *object.Instruction) {
	d, ok := catalog.DedicatedByName("Delay")
	if !ok {
		diag.Bail(diag.Internal, s.b.pos(i), "catalog has no \"Delay\" dedicated function")
	}
	args := []ast.Expr{intLit(i.Args[0])}
	s.last = &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeDedicated, Dedicated: d}, Args: args}
}

// stepRandomDirect handles RANDOMDIRECTB: Random(min, max) with both bounds
// encoded inline, pushing the result the same way Random's ordinary stack
// form does.
func (s *exprSim) stepRandomDirect(i *object.Instruction) {
	d, ok := catalog.DedicatedByName("Random")
	if !ok {
		diag.Bail(diag.Internal, s.b.pos(i), "catalog has no \"Random\" dedicated function")
	}
	args := []ast.Expr{intLit(i.Args[0]), intLit(i.Args[1])}
	s.push(&ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeDedicated, Dedicated: d}, Args: args})
}

// stepCallFunc handles CALLFUNC: a call to an extension function (or, for
// an ID the catalog doesn't carry, an unknown-callee fallback), and the
// dedicated-opcode family (DED_* opcodes, identified by reverse lookup
// rather than by a case in this switch since each one is its own opcode
// value).
func (s *exprSim) stepCallFunc(i *object.Instruction) *object.Instruction {
	if n := noteOfKind(i, object.NoteInternFunc); n != nil {
		return s.stepInternFunc(i, n)
	}

	b := s.b
	if len(i.Args) < 2 {
		diag.Bail(diag.Internal, b.pos(i), "CALLFUNC instruction is missing its argument-count/function-ID pair")
	}
	argCount := int(i.Args[0])
	id := int(i.Args[1])
	args := s.popN(argCount)

	b.usesBuiltin = true
	ext, ok := catalog.ExtensionByID(id)
	if !ok {
		u := &ast.UnknownExpr{Of: "extension function", ID: int32(id), Args: args}
		s.last = u
		return nil
	}

	args = castArgs(b.c, args, ext.Sig)
	call := &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeExt, Ext: ext}, Args: args}
	if ext.Sig.Return != catalog.TypeVoid {
		s.push(call)
	} else {
		s.last = call
	}
	return nil
}

// stepInternFunc builds the composite call for a recognized two-instruction
// idiom (ACS_ExecuteWait, ACS_NamedExecuteWait): start's own encoded
// argument count (the LSPEC suffix digit, or CALLFUNC's own argument-count
// operand) tells us exactly how many values to pop, the same as the plain
// call path would use for the real action special or extension function
// this idiom wraps -- so the composite call's arguments recover correctly
// regardless of how far back the stack simulation actually had to reach for
// them. The wait half of the idiom (start.Next through n.End) contributes
// nothing further: it is folded entirely into this one call, and the walk
// resumes at n.Exit, past both instructions.
func (s *exprSim) stepInternFunc(start *object.Instruction, n *object.Note) *object.Instruction {
	b := s.b
	kind := catalog.InternKind(n.InternKind)
	intern := catalog.InternByKind(kind)

	var argCount int
	switch {
	case start.Op == opcode.CALLFUNC:
		argCount = int(start.Args[0])
	default:
		argCount, _ = opcode.LSpecArgCount(start.Op)
	}
	args := s.popN(argCount)
	b.usesBuiltin = true

	s.last = &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeIntern, Intern: intern}, Args: args}
	return n.Exit
}

// stepDedicated handles an ordinary call to a dedicated function through its
// own opcode (as opposed to the DELAYDIRECTB/RANDOMDIRECTB literal-argument
// forms, which lift their arguments inline rather than popping the stack):
// pop the signature's declared argument count and push a result only if the
// function returns one.
func (s *exprSim) stepDedicated(i *object.Instruction, d *catalog.Dedicated) {
	b := s.b
	args := s.popN(d.Sig.TotalParams())
	args = castArgs(b.c, args, d.Sig)
	call := &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeDedicated, Dedicated: d}, Args: args}
	if d.Sig.Return != catalog.TypeVoid {
		s.push(call)
	} else {
		s.last = call
	}
}

// stepUserCall handles CALL and CALLDISCARD: a call to a user-defined
// function resolved by its index into the container's function directory,
// the same bounds-checked lookup lang/annotate's own effect() uses.
func (s *exprSim) stepUserCall(i *object.Instruction) {
	b := s.b
	if len(i.Args) < 1 {
		diag.Bail(diag.Internal, b.pos(i), "CALL/CALLDISCARD instruction is missing its function-index argument")
	}
	idx := int(i.Args[0])
	if idx < 0 || idx >= b.c.Functions.Len() {
		diag.Bail(diag.Error, b.pos(i), "call to out-of-range function index %d", idx)
	}
	fn := b.c.Functions.At(idx)
	args := s.popN(fn.ParamCount)
	call := &ast.CallExpr{Callee: ast.Callee{Kind: ast.CalleeUser, User: fn}, Args: args}
	if i.Op == opcode.CALL {
		s.push(call)
	} else {
		s.last = call
	}
}
