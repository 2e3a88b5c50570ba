package recover

import (
	"strings"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// exprSim is this package's own typed-stack simulator: where
// lang/annotate's simulateExpr only tracks the operand stack's depth to
// find where an expression ends, this one builds the actual ast.Expr tree
// for every push, mirroring the same opcode-by-opcode walk.
type exprSim struct {
	b     *builder
	stack []ast.Expr

	// last holds the most recently completed node from a push=0 instruction
	// (an assignment, a pre/post inc/dec used as a statement, a void call):
	// these perform their whole effect as a side effect and leave nothing on
	// stack, yet the statement that contains them still needs some Expr to
	// attach to, so result() falls back to this when the stack itself is
	// empty or ambiguous.
	last ast.Expr

	// curPrint accumulates a print block's format items between BEGINPRINT
	// and its terminating opcode.
	curPrint *ast.FormatCallExpr

	// curTrans accumulates a palette-translation block's ranges between
	// STARTTRANSLATION and ENDTRANSLATION.
	curTrans *ast.TranslationExpr
}

func (s *exprSim) push(e ast.Expr) { s.stack = append(s.stack, e) }

func (s *exprSim) pop() ast.Expr {
	n := len(s.stack)
	if n == 0 {
		diag.Bail(diag.Internal, diag.Position{}, "expression simulator popped an empty stack")
	}
	e := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return e
}

func (s *exprSim) top() ast.Expr {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// popN pops n values and returns them in their original push order (the
// last-pushed is popped first, so the slice is filled back to front).
func (s *exprSim) popN(n int) []ast.Expr {
	args := make([]ast.Expr, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = s.pop()
	}
	return args
}

// result is the value a statement-level caller (recoverExprStmt,
// recoverReturn, a condition range) reads off the simulator once it has
// walked the instruction range it cares about: the single remaining stack
// entry, or last when the range's own final instruction left nothing
// behind (an assignment, inc/dec, or void call used as the whole
// statement).
func (s *exprSim) result() ast.Expr {
	if len(s.stack) == 1 {
		return s.stack[0]
	}
	return s.last
}

// recoverExprRange simulates [start, end] inclusive and returns the
// resulting value. Most instructions advance to i.Next, but an
// internal-function idiom (see stepInternFunc) jumps straight past its
// wait half to n.Exit, which may fall after end; the loop always honors
// step's own returned cursor rather than assuming i.Next.
func (b *builder) recoverExprRange(start, end *object.Instruction) ast.Expr {
	s := &exprSim{b: b}
	for i := start; i != nil; {
		reachedEnd := i == end
		next := s.step(i)
		if reachedEnd {
			break
		}
		i = next
	}
	return s.result()
}

var binOps = map[opcode.Opcode]struct {
	Op   ast.BinOp
	Prec ast.Precedence
}{
	opcode.LT: {ast.BinLT, ast.PrecRel}, opcode.LE: {ast.BinLE, ast.PrecRel},
	opcode.GT: {ast.BinGT, ast.PrecRel}, opcode.GE: {ast.BinGE, ast.PrecRel},
	opcode.EQ: {ast.BinEQ, ast.PrecEq}, opcode.NE: {ast.BinNE, ast.PrecEq},
	opcode.ADD: {ast.BinAdd, ast.PrecAdd}, opcode.SUBTRACT: {ast.BinSub, ast.PrecAdd},
	opcode.MULTIPLY: {ast.BinMul, ast.PrecMul}, opcode.DIVIDE: {ast.BinDiv, ast.PrecMul}, opcode.MODULUS: {ast.BinMod, ast.PrecMul},
	opcode.ANDBITWISE: {ast.BinAnd, ast.PrecBitAnd}, opcode.ORBITWISE: {ast.BinOr, ast.PrecBitOr}, opcode.EORBITWISE: {ast.BinXor, ast.PrecBitXor},
	opcode.LSHIFT: {ast.BinShl, ast.PrecShift}, opcode.RSHIFT: {ast.BinShr, ast.PrecShift},
	opcode.ANDLOGICAL: {ast.BinLogAnd, ast.PrecLogAnd}, opcode.ORLOGICAL: {ast.BinLogOr, ast.PrecLogOr},
}

var assignOps = map[opcode.VarOp]ast.AssignOp{
	opcode.VarAssign:       ast.AssignSet,
	opcode.VarAssignAdd:    ast.AssignAdd,
	opcode.VarAssignSub:    ast.AssignSub,
	opcode.VarAssignMul:    ast.AssignMul,
	opcode.VarAssignDiv:    ast.AssignDiv,
	opcode.VarAssignMod:    ast.AssignMod,
	opcode.VarAssignAnd:    ast.AssignAnd,
	opcode.VarAssignOr:     ast.AssignOr,
	opcode.VarAssignEor:    ast.AssignXor,
	opcode.VarAssignLShift: ast.AssignShl,
	opcode.VarAssignRShift: ast.AssignShr,
}

// wrapForPrec parenthesizes e when its own precedence is lower than min;
// the rule is uniform, so occasionally non-minimal parens are emitted.
func wrapForPrec(e ast.Expr, min ast.Precedence) ast.Expr {
	if ast.Prec(e) < min {
		return &ast.ParenExpr{X: e}
	}
	return e
}

// needsParenForNeg reports whether x needs parenthesizing as the operand of
// a unary minus, to avoid the token stream reading as -- or printing
// "--x"-looking output for what is really "-(-x)" or "-(--x)".
func needsParenForNeg(x ast.Expr) bool {
	if u, ok := x.(*ast.UnaryExpr); ok && u.Op == ast.UnaryNeg {
		return true
	}
	if id, ok := x.(*ast.IncDecExpr); ok && id.Op == ast.DecOp && id.Pre {
		return true
	}
	return false
}

func intLit(v int32) *ast.Literal { return &ast.Literal{Kind: ast.LitInt, Int: v} }

// noteOfKind returns the first note of the given kind attached to i, or nil.
func noteOfKind(i *object.Instruction, kind object.NoteKind) *object.Note {
	for n := i.Notes; n != nil; n = n.Next {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}

func isDirectLSpec(op opcode.Opcode) bool {
	info, ok := opcode.Get(op)
	return ok && strings.Contains(info.Name, "DIRECT")
}

// step advances the simulator by one instruction, dispatching on its
// opcode (or, for the scoped-variable and string-copy families, on the
// metadata lang/opcode attaches to the whole family rather than to a single
// named constant), and returns the instruction to resume from. That is
// i.Next for everything except an internal-function idiom, which jumps
// straight past its wait half to the note's own Exit instruction.
func (s *exprSim) step(i *object.Instruction) *object.Instruction {
	b := s.b

	if vi, ok := opcode.VarOf(i.Op); ok {
		s.stepVar(i, vi)
		return i.Next
	}
	if _, ok := opcode.StrCpyOf(i.Op); ok {
		s.stepStrCpy(i)
		return i.Next
	}
	if d, ok := catalog.DedicatedByOp(i.Op); ok {
		s.stepDedicated(i, d)
		return i.Next
	}
	if bo, ok := binOps[i.Op]; ok {
		rhs := s.pop()
		lhs := s.pop()
		left := wrapForPrec(lhs, bo.Prec)
		right := wrapForPrec(rhs, bo.Prec)
		s.push(&ast.BinaryExpr{Op: bo.Op, Left: left, Right: right, Prec: bo.Prec})
		return i.Next
	}
	if _, ok := opcode.LSpecArgCount(i.Op); ok {
		if next := s.stepLSpec(i); next != nil {
			return next
		}
		return i.Next
	}

	switch i.Op {
	case opcode.NOP:
	case opcode.GOTO:
		// Unconditional jumps with no note of their own (the switch selector's
		// jump into its dispatch table) have no stack effect at all; anything
		// meaningful about them was already handled by the block-level scan.
	case opcode.DUP:
		top := s.top()
		s.push(top)
	case opcode.DROP:
		s.last = s.pop()
	case opcode.PUSHNUMBER, opcode.PUSHBYTE:
		s.push(intLit(i.Args[0]))
	case opcode.PUSH2BYTES, opcode.PUSH3BYTES, opcode.PUSH4BYTES, opcode.PUSH5BYTES:
		for _, v := range i.Args {
			s.push(intLit(v))
		}
	case opcode.PUSHBYTES:
		for _, v := range i.Args[1:] {
			s.push(intLit(v))
		}
	case opcode.NEGATEBINARY:
		s.push(&ast.UnaryExpr{Op: ast.UnaryBitNot, X: s.pop()})
	case opcode.NEGATELOGICAL:
		s.push(&ast.UnaryExpr{Op: ast.UnaryNot, X: s.pop()})
	case opcode.UNARYMINUS:
		x := s.pop()
		if needsParenForNeg(x) {
			x = &ast.ParenExpr{X: x}
		}
		s.push(&ast.UnaryExpr{Op: ast.UnaryNeg, X: x})

	case opcode.IFGOTO, opcode.IFNOTGOTO:
		s.last = s.pop()

	case opcode.RETURNVAL:
		s.last = s.pop()

	case opcode.DELAYDIRECTB:
		s.stepDelayDirect(i)
	case opcode.RANDOMDIRECTB:
		s.stepRandomDirect(i)
	case opcode.CALLFUNC:
		if next := s.stepCallFunc(i); next != nil {
			return next
		}
	case opcode.CALL, opcode.CALLDISCARD:
		s.stepUserCall(i)
	case opcode.PUSHFUNCTION:
		s.push(&ast.UnknownExpr{Of: "function reference", ID: i.Args[0]})

	case opcode.BEGINPRINT:
		s.curPrint = &ast.FormatCallExpr{}
	case opcode.PRINTSTRING, opcode.PRINTNUMBER, opcode.PRINTCHARACTER, opcode.PRINTFIXED,
		opcode.PRINTNAME, opcode.PRINTLOCALSTRING, opcode.PRINTKEY, opcode.PRINTBINARY, opcode.PRINTHEX:
		s.stepPrintItem(i)
	case opcode.PRINTARRAYCHRANGE:
		s.stepPrintArrayChRange(i)
	case opcode.MOREHUDMESSAGE:
		// Marks the boundary between format items and the trailing positional
		// arguments; nothing to simulate here, the terminator pops the args.
	case opcode.ENDPRINT, opcode.ENDPRINTBOLD, opcode.ENDHUDMESSAGE, opcode.ENDHUDMESSAGEBOLD, opcode.ENDLOG, opcode.SAVESTRING:
		s.stepEndPrint(i)

	case opcode.STARTTRANSLATION:
		s.curTrans = &ast.TranslationExpr{Number: s.pop()}
	case opcode.TRANSLATIONRANGE1, opcode.TRANSLATIONRANGE2, opcode.TRANSLATIONRANGE3, opcode.TRANSLATIONRANGE4, opcode.TRANSLATIONRANGE5:
		s.stepTransRange(i)
	case opcode.ENDTRANSLATION:
		s.push(s.curTrans)
		s.curTrans = nil

	default:
		diag.Bail(diag.Internal, b.pos(i), "expression simulator has no handler for opcode %v", i.Op)
	}
	return i.Next
}
