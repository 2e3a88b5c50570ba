package ast

import (
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
)

// UnaryOp identifies a unary expression's operator.
type UnaryOp int

const (
	UnaryBitNot UnaryOp = iota // NEGATEBINARY, ~x
	UnaryNot                   // NEGATELOGICAL, !x
	UnaryNeg                   // UNARYMINUS, -x
)

// BinOp identifies a binary expression's operator.
type BinOp int

const (
	BinLT BinOp = iota
	BinLE
	BinGT
	BinGE
	BinEQ
	BinNE
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinXor
	BinShl
	BinShr
	BinLogAnd
	BinLogOr
)

// AssignOp identifies a compound or simple assignment's operator.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

// IncDecOp distinguishes increment from decrement; Pre/Post is tracked
// separately on IncDecExpr.
type IncDecOp int

const (
	IncOp IncDecOp = iota
	DecOp
)

// LiteralKind distinguishes an integer literal from a string-table
// reference: both are stored as a raw int32 at the bytecode level, but the
// emitter needs to know which one to print as a quoted string.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitStr
	LitFixed // polish-promoted fixed-point literal (16.16), printed as N.N
)

type (
	// Literal is a constant pushed directly by a PUSH* opcode: an integer, or
	// (after lang/polish's named-constant substitution) left as a plain
	// number when no symbolic name applies.
	Literal struct {
		Kind  LiteralKind
		Int   int32
		Str   string // resolved string-table text, valid when Kind == LitStr
		Index int32  // string-table index this literal names, for LitStr
	}

	// NameExpr is a reference to a symbolic constant installed by
	// lang/polish's named-constant substitution (e.g. GAME_NET_COOPERATIVE),
	// replacing what would otherwise be a Literal.
	NameExpr struct {
		Name string
	}

	// VarExpr is a use of a scalar variable.
	VarExpr struct {
		Var *object.Variable
	}

	// IndexExpr is an array subscript: Array[Index].
	IndexExpr struct {
		Array *object.Variable
		Index Expr
	}

	// ParenExpr wraps an expression whose own precedence is lower than its
	// parent's, so the emitter must print parentheses to keep the token
	// stream unambiguous.
	ParenExpr struct {
		X Expr
	}

	// UnaryExpr is NEGATEBINARY/NEGATELOGICAL/UNARYMINUS applied to X.
	UnaryExpr struct {
		Op UnaryOp
		X  Expr
	}

	// BinaryExpr is a binary operator applied to Left and Right, built by
	// popping rside then lside (order matters for side-effecting operands)
	// and re-pushing with Op's own Prec.
	BinaryExpr struct {
		Op    BinOp
		Left  Expr
		Right Expr
		Prec  Precedence
	}

	// AssignExpr is a (possibly compound) assignment to a scalar or array
	// slot: LHS is a VarExpr or IndexExpr.
	AssignExpr struct {
		Op  AssignOp
		LHS Expr
		RHS Expr
	}

	// IncDecExpr is a pre/post increment/decrement of a scalar or array slot.
	IncDecExpr struct {
		Op   IncDecOp
		Pre  bool
		X    Expr // VarExpr or IndexExpr
	}

	// CalleeKind discriminates what kind of callable a CallExpr invokes.
	CalleeKind int

	// Callee identifies what a CallExpr invokes: exactly one of the embedded
	// pointers is non-nil, selected by Kind.
	Callee struct {
		Kind      CalleeKind
		Dedicated *catalog.Dedicated     // Kind == CalleeDedicated
		ASpec     *catalog.ActionSpecial // Kind == CalleeASpec
		Ext       *catalog.Extension     // Kind == CalleeExt
		User      *object.Function       // Kind == CalleeUser
		Intern    *catalog.Intern        // Kind == CalleeIntern
	}

	// CallExpr is a call to a dedicated function, action special, extension
	// function, synthetic internal function or user function (print-family
	// calls are FormatCallExpr instead). Direct marks an LSPEC*DIRECT/DIRECTB call whose
	// arguments were encoded inline in the instruction rather than pushed on
	// the stack; lang/emit prints "const:" before such a call's arguments.
	CallExpr struct {
		Callee Callee
		Args   []Expr
		Direct bool
	}

	// UnknownExpr is an unresolved callee, built when an action-special or
	// extension-function ID has no catalog entry, or for a PUSHFUNCTION
	// function reference.
	UnknownExpr struct {
		Of string // "action special", "extension function" or "function reference"
		ID int32
		Args []Expr
	}

	// FormatCast is the type-cast tag on one item of a print block
	// (PrintNumber -> "d", PrintString -> "s", and so on).
	FormatCast int

	// FormatItem is one entry of a print block's format-item chain: either a
	// plain value with a cast, or an array/char-range item carrying a scope
	// tag and optional (offset, length) pair.
	FormatItem struct {
		Cast   FormatCast
		Value  Expr
		Array  *object.Variable // non-nil for an array/char-range item
		Offset Expr             // PRINT*CHRANGE lower bound, nil if absent
		Length Expr             // PRINT*CHRANGE element count, nil if absent
	}

	// FormatCallExpr is a whole print block: BEGINPRINT ... ENDPRINT-family,
	// recovered as one call to the format function the terminating opcode
	// names (Print, PrintBold, HudMessage, HudMessageBold, Log, StrParam).
	FormatCallExpr struct {
		FuncName string
		Items    []FormatItem
		// Args are the positional arguments following a MOREHUDMESSAGE marker
		// (HudMessage's x/y/color/hold-time/... trailing arguments).
		Args []Expr
	}

	// TranslationRangeKind distinguishes the five TRANSLATIONRANGE variants.
	TranslationRangeKind int

	// TranslationRange is one entry of a palette-translation block.
	TranslationRange struct {
		Kind TranslationRangeKind
		// Exprs holds each variant's endpoint expressions in encoding order:
		// colon (start, end, palStart, palEnd), RGB pair (start, end, r1,g1,b1,
		// r2,g2,b2), saturated (start, end, r1,g1,b1, r2,g2,b2), colorisation (start, end,
		// r,g,b), tint (start, end, amount, r,g,b).
		Exprs []Expr
	}

	// TranslationExpr is a whole STARTTRANSLATION ... ENDTRANSLATION block,
	// recovered as a CreateTranslation(...) call.
	TranslationExpr struct {
		Number Expr
		Ranges []TranslationRange
	}

	// StrCpyExpr is a STRCPYTO<SCOPE>CHRANGE call: copies a source string
	// (with optional offset) into a destination array slot's character
	// range.
	StrCpyExpr struct {
		DestArray           *object.Variable
		DestOffset, DestLen Expr
		Src, SrcOffset      Expr
	}
)

const (
	CalleeDedicated CalleeKind = iota
	CalleeASpec
	CalleeExt
	CalleeUser
	CalleeIntern
)

const (
	CastDecimal FormatCast = iota
	CastString
	CastCharacter
	CastFixed
	CastName
	CastLocalString
	CastKey
	CastBinary
	CastHex
	CastArray
)

const (
	TransColon TranslationRangeKind = iota
	TransRGB
	TransSaturated
	TransColorisation
	TransTint
)

func (*Literal) exprNode()          {}
func (*NameExpr) exprNode()         {}
func (*VarExpr) exprNode()          {}
func (*IndexExpr) exprNode()        {}
func (*ParenExpr) exprNode()        {}
func (*UnaryExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*AssignExpr) exprNode()       {}
func (*IncDecExpr) exprNode()       {}
func (*CallExpr) exprNode()         {}
func (*UnknownExpr) exprNode()      {}
func (*FormatCallExpr) exprNode()   {}
func (*TranslationExpr) exprNode()  {}
func (*StrCpyExpr) exprNode()       {}

func (n *Literal) Walk(Visitor) {}
func (n *NameExpr) Walk(Visitor) {}
func (n *VarExpr) Walk(Visitor)  {}

func (n *IndexExpr) Walk(v Visitor) { Walk(v, n.Index) }
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.X) }
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.X) }

func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.LHS)
	Walk(v, n.RHS)
}

func (n *IncDecExpr) Walk(v Visitor) { Walk(v, n.X) }

func (n *CallExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *UnknownExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *FormatCallExpr) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it.Value)
		if it.Offset != nil {
			Walk(v, it.Offset)
		}
		if it.Length != nil {
			Walk(v, it.Length)
		}
	}
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *TranslationExpr) Walk(v Visitor) {
	Walk(v, n.Number)
	for _, r := range n.Ranges {
		for _, e := range r.Exprs {
			Walk(v, e)
		}
	}
}

func (n *StrCpyExpr) Walk(v Visitor) {
	Walk(v, n.DestOffset)
	Walk(v, n.DestLen)
	Walk(v, n.Src)
	Walk(v, n.SrcOffset)
}

// Prec reports the precedence of e for the purposes of parenthesization by
// lang/recover's wrapForPrec: all nodes except BinaryExpr (which carries its
// operator's own precedence) and AssignExpr (PrecAssign) sit at PrecTop --
// atoms, parenthesized expressions, unary operators and calls never need an
// enclosing paren on their own account.
func Prec(e Expr) Precedence {
	switch e := e.(type) {
	case *BinaryExpr:
		return e.Prec
	case *AssignExpr:
		return PrecAssign
	default:
		return PrecTop
	}
}
