package emit

import "github.com/mna/unacs/lang/ast"

var binOpText = map[ast.BinOp]string{
	ast.BinLT: "<", ast.BinLE: "<=", ast.BinGT: ">", ast.BinGE: ">=",
	ast.BinEQ: "==", ast.BinNE: "!=",
	ast.BinAdd: "+", ast.BinSub: "-", ast.BinMul: "*", ast.BinDiv: "/", ast.BinMod: "%",
	ast.BinAnd: "&", ast.BinOr: "|", ast.BinXor: "^",
	ast.BinShl: "<<", ast.BinShr: ">>",
	ast.BinLogAnd: "&&", ast.BinLogOr: "||",
}

var assignOpText = map[ast.AssignOp]string{
	ast.AssignSet: "=", ast.AssignAdd: "+=", ast.AssignSub: "-=",
	ast.AssignMul: "*=", ast.AssignDiv: "/=", ast.AssignMod: "%=",
	ast.AssignAnd: "&=", ast.AssignOr: "|=", ast.AssignXor: "^=",
	ast.AssignShl: "<<=", ast.AssignShr: ">>=",
}

var unaryOpText = map[ast.UnaryOp]string{
	ast.UnaryBitNot: "~", ast.UnaryNot: "!", ast.UnaryNeg: "-",
}

var formatCastText = map[ast.FormatCast]string{
	ast.CastDecimal: "d", ast.CastString: "s", ast.CastCharacter: "c",
	ast.CastFixed: "f", ast.CastName: "n", ast.CastLocalString: "l",
	ast.CastKey: "k", ast.CastBinary: "b", ast.CastHex: "x", ast.CastArray: "a",
}

// expr prints e. Every expression node that could need parenthesizing given
// its context already arrives wrapped in a *ast.ParenExpr -- lang/recover
// decides that once, while building the tree -- so this never has to
// recompute or pass down a minimum precedence.
func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		p.literal(e)
	case *ast.NameExpr:
		p.raw(e.Name)
	case *ast.VarExpr:
		p.raw(e.Var.Name)
	case *ast.IndexExpr:
		p.printf("%s[ ", e.Array.Name)
		p.expr(e.Index)
		p.raw(" ]")
	case *ast.ParenExpr:
		p.raw("( ")
		p.expr(e.X)
		p.raw(" )")
	case *ast.UnaryExpr:
		p.raw(unaryOpText[e.Op])
		p.expr(e.X)
	case *ast.BinaryExpr:
		p.expr(e.Left)
		p.printf(" %s ", binOpText[e.Op])
		p.expr(e.Right)
	case *ast.AssignExpr:
		p.expr(e.LHS)
		p.printf(" %s ", assignOpText[e.Op])
		p.expr(e.RHS)
	case *ast.IncDecExpr:
		p.incDec(e)
	case *ast.CallExpr:
		p.call(e)
	case *ast.UnknownExpr:
		p.printf("/* unresolved %s %d */(", e.Of, e.ID)
		p.argList(e.Args)
		p.raw(")")
	case *ast.FormatCallExpr:
		p.formatCall(e)
	case *ast.TranslationExpr:
		p.translation(e)
	case *ast.StrCpyExpr:
		p.strCpy(e)
	}
}

func (p *printer) literal(l *ast.Literal) {
	switch l.Kind {
	case ast.LitStr:
		p.printf("%q", l.Str)
	case ast.LitFixed:
		p.printf("%g", float64(l.Int)/65536.0)
	default:
		p.printf("%d", l.Int)
	}
}

func (p *printer) incDec(e *ast.IncDecExpr) {
	op := "++"
	if e.Op == ast.DecOp {
		op = "--"
	}
	if e.Pre {
		p.raw(op)
		p.expr(e.X)
	} else {
		p.expr(e.X)
		p.raw(op)
	}
}

func (p *printer) argList(args []ast.Expr) {
	for i, a := range args {
		if i > 0 {
			p.raw(", ")
		}
		p.expr(a)
	}
}

func calleeName(c ast.Callee) string {
	switch c.Kind {
	case ast.CalleeDedicated:
		return c.Dedicated.Name
	case ast.CalleeASpec:
		return c.ASpec.Name
	case ast.CalleeExt:
		return c.Ext.Name
	case ast.CalleeUser:
		return funcName(c.User)
	case ast.CalleeIntern:
		return c.Intern.Name
	}
	return "?"
}

// call prints a call, prefixing its argument list with "const:" when it
// recovered from an LSPEC*DIRECT/DIRECTB instruction.
func (p *printer) call(e *ast.CallExpr) {
	p.printf("%s(", calleeName(e.Callee))
	if e.Direct {
		p.raw(" const:")
	}
	if len(e.Args) > 0 {
		p.raw(" ")
		p.argList(e.Args)
		p.raw(" ")
	} else if e.Direct {
		p.raw(" ")
	}
	p.raw(")")
}

// formatCall prints a whole print block as the engine's own format-item
// call syntax: "<cast>: <value>, ...; <args>" with the trailing positional
// arguments only present when the format function's signature calls for
// them.
func (p *printer) formatCall(e *ast.FormatCallExpr) {
	p.printf("%s( ", e.FuncName)
	for i, it := range e.Items {
		if i > 0 {
			p.raw(", ")
		}
		p.formatItem(it)
	}
	if len(e.Args) > 0 {
		p.raw("; ")
		p.argList(e.Args)
	}
	p.raw(" )")
}

func (p *printer) formatItem(it ast.FormatItem) {
	if it.Cast == ast.CastArray {
		if it.Offset != nil || it.Length != nil {
			p.printf("%s: ( %s, ", formatCastText[it.Cast], it.Array.Name)
			if it.Offset != nil {
				p.expr(it.Offset)
			}
			p.raw(", ")
			if it.Length != nil {
				p.expr(it.Length)
			}
			p.raw(" )")
			return
		}
		p.printf("%s: %s", formatCastText[it.Cast], it.Array.Name)
		return
	}
	p.printf("%s: ", formatCastText[it.Cast])
	p.expr(it.Value)
}

func (p *printer) translation(e *ast.TranslationExpr) {
	p.raw("CreateTranslation( ")
	p.expr(e.Number)
	for _, r := range e.Ranges {
		p.raw(", ")
		p.transRange(r)
	}
	p.raw(" )")
}

// transRange prints one palette range in its variant's own syntax: every
// range starts with its begin:end pair, then colon endpoints, an RGB triple
// pair ("%"-prefixed when saturated), a "#"-prefixed colorisation triple, or
// an "@amount"-prefixed tint triple.
func (p *printer) transRange(r ast.TranslationRange) {
	rest := r.Exprs
	if len(rest) >= 2 {
		p.expr(rest[0])
		p.raw(":")
		p.expr(rest[1])
		p.raw("=")
		rest = rest[2:]
	}
	switch {
	case r.Kind == ast.TransColon && len(rest) == 2:
		p.expr(rest[0])
		p.raw(":")
		p.expr(rest[1])
	case (r.Kind == ast.TransRGB || r.Kind == ast.TransSaturated) && len(rest) == 6:
		if r.Kind == ast.TransSaturated {
			p.raw("%")
		}
		p.raw("[ ")
		p.argList(rest[:3])
		p.raw(" ]:[ ")
		p.argList(rest[3:])
		p.raw(" ]")
	case r.Kind == ast.TransColorisation && len(rest) == 3:
		p.raw("#[ ")
		p.argList(rest)
		p.raw(" ]")
	case r.Kind == ast.TransTint && len(rest) == 4:
		p.raw("@")
		p.expr(rest[0])
		p.raw("[ ")
		p.argList(rest[1:])
		p.raw(" ]")
	default:
		p.argList(rest)
	}
}

func (p *printer) strCpy(e *ast.StrCpyExpr) {
	p.printf("StrCpy( a: ( %s, ", e.DestArray.Name)
	p.expr(e.DestOffset)
	p.raw(", ")
	p.expr(e.DestLen)
	p.raw(" ), ")
	p.expr(e.Src)
	p.raw(", ")
	p.expr(e.SrcOffset)
	p.raw(" )")
}
