package recover

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

var printCasts = map[opcode.Opcode]ast.FormatCast{
	opcode.PRINTSTRING:       ast.CastString,
	opcode.PRINTNUMBER:       ast.CastDecimal,
	opcode.PRINTCHARACTER:    ast.CastCharacter,
	opcode.PRINTFIXED:        ast.CastFixed,
	opcode.PRINTNAME:         ast.CastName,
	opcode.PRINTLOCALSTRING:  ast.CastLocalString,
	opcode.PRINTKEY:          ast.CastKey,
	opcode.PRINTBINARY:       ast.CastBinary,
	opcode.PRINTHEX:          ast.CastHex,
}

// stepPrintItem appends one formatted value to the print block currently
// being accumulated between BEGINPRINT and its terminator.
func (s *exprSim) stepPrintItem(i *object.Instruction) {
	if s.curPrint == nil {
		diag.Bail(diag.Internal, s.b.pos(i), "print-item opcode %v seen outside a BEGINPRINT block", i.Op)
	}
	cast, ok := printCasts[i.Op]
	if !ok {
		diag.Bail(diag.Internal, s.b.pos(i), "no format cast registered for opcode %v", i.Op)
	}
	v := s.pop()
	s.curPrint.Items = append(s.curPrint.Items, ast.FormatItem{Cast: cast, Value: v})
}

// stepPrintArrayChRange appends a whole array-slice format item: unlike
// every other print item, its array and scope come from inline args rather
// than the stack, and it carries no offset/length sub-range (a documented
// simplification; the whole array is always printed).
func (s *exprSim) stepPrintArrayChRange(i *object.Instruction) {
	if s.curPrint == nil {
		diag.Bail(diag.Internal, s.b.pos(i), "PRINTARRAYCHRANGE seen outside a BEGINPRINT block")
	}
	b := s.b
	arr := b.variable(opcode.VarScope(i.Args[0]), int(i.Args[1]), true)
	s.curPrint.Items = append(s.curPrint.Items, ast.FormatItem{Cast: ast.CastArray, Array: arr})
}

// stepEndPrint closes out the current print block: the terminating opcode
// (ENDPRINT, ENDHUDMESSAGE and friends, or SAVESTRING) identifies which
// dedicated format function this is and how many trailing positional
// arguments (the HUD message's type/id/color/coordinates and the like) it
// still has to pop off the stack.
func (s *exprSim) stepEndPrint(i *object.Instruction) {
	if s.curPrint == nil {
		diag.Bail(diag.Internal, s.b.pos(i), "print terminator %v seen outside a BEGINPRINT block", i.Op)
	}
	b := s.b
	f, ok := catalog.FormatFuncByEnd(i.Op)
	if !ok {
		diag.Bail(diag.Internal, b.pos(i), "no format function registered for terminator opcode %v", i.Op)
	}
	args := s.popN(f.Sig.TotalParams())
	args = castArgs(b.c, args, f.Sig)

	s.curPrint.FuncName = f.Name
	s.curPrint.Args = args
	b.usesBuiltin = true

	call := s.curPrint
	s.curPrint = nil
	if f.Sig.Return != catalog.TypeVoid {
		s.push(call)
	} else {
		s.last = call
	}
}

var transRangeKinds = []ast.TranslationRangeKind{
	ast.TransColon,
	ast.TransRGB,
	ast.TransSaturated,
	ast.TransColorisation,
	ast.TransTint,
}

// stepTransRange appends one sub-range to the palette-translation block
// currently being accumulated between STARTTRANSLATION and ENDTRANSLATION.
// Operands are kept in push order -- begin, end, then the variant's own
// values -- and lang/emit picks each variant's syntax off the range kind.
func (s *exprSim) stepTransRange(i *object.Instruction) {
	if s.curTrans == nil {
		diag.Bail(diag.Internal, s.b.pos(i), "TRANSLATIONRANGE seen outside a STARTTRANSLATION block")
	}
	info, ok := opcode.Get(i.Op)
	if !ok {
		diag.Bail(diag.Internal, s.b.pos(i), "unknown translation-range opcode %v", i.Op)
	}
	kindIdx := int(i.Op - opcode.TRANSLATIONRANGE1)
	if kindIdx < 0 || kindIdx >= len(transRangeKinds) {
		diag.Bail(diag.Internal, s.b.pos(i), "translation-range opcode %v out of the known RANGE1..5 family", i.Op)
	}
	args := s.popN(info.Stack.Pop)
	s.curTrans.Ranges = append(s.curTrans.Ranges, ast.TranslationRange{Kind: transRangeKinds[kindIdx], Exprs: args})
}

// stepStrCpy handles the whole STRCPYTO<SCOPE>CHRANGE family: all six
// operands come off the stack, none are inline args, so the destination
// array's own id (ordinarily an inline operand everywhere else in this
// family of opcodes) has to be read back out of the literal the compiler
// pushed for it. The bottom-most operand is unused; the copy's success
// value is left on the stack for a consumer (or a trailing DROP).
func (s *exprSim) stepStrCpy(i *object.Instruction) {
	b := s.b
	k, ok := opcode.StrCpyOf(i.Op)
	if !ok {
		diag.Bail(diag.Internal, b.pos(i), "unrecognized string-copy opcode %v", i.Op)
	}
	args := s.popN(6)
	idx, ok := literalIndex(args[1])
	if !ok {
		diag.Bail(diag.Error, b.pos(i), "string-copy destination array id is not a literal")
	}
	arr := b.variable(k.Scope, int(idx), true)
	s.push(&ast.StrCpyExpr{
		DestArray:  arr,
		DestOffset: args[2],
		DestLen:    args[3],
		Src:        args[4],
		SrcOffset:  args[5],
	})
}

// literalIndex extracts the value of an int literal, the only form the
// compiler ever emits for an array id pushed ahead of a string-copy.
func literalIndex(e ast.Expr) (int32, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		return 0, false
	}
	return lit.Int, true
}
