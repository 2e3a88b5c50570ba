package emit

import "github.com/mna/unacs/lang/ast"

// block prints a braced statement list at the current indent, the way
// every construct below (if/loop/switch/function/script body) embeds one.
// The closing brace is left without a trailing newline so a do-while tail
// or an else clause can continue on the same line; an empty block prints
// as "{ }" with no interior newline at all.
func (p *printer) block(b *ast.Block) {
	if len(b.Stmts) == 0 {
		p.raw("{ }")
		return
	}
	p.raw("{")
	p.newline()
	p.indent()
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.dedent()
	p.printf("}")
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		p.expr(s.X)
		p.line(";")
	case *ast.DeclStmt:
		p.printf("int %s = ", s.Var.Name)
		p.expr(s.Init)
		p.line(";")
	case *ast.IfStmt:
		p.printf("if ( ")
		p.expr(s.Cond)
		p.raw(" ) ")
		p.block(s.Then)
		if s.Else != nil {
			p.raw(" else ")
			p.block(s.Else)
		}
		p.newline()
	case *ast.SwitchStmt:
		p.printf("switch ( ")
		p.expr(s.Cond)
		p.raw(" ) {")
		p.newline()
		p.indent()
		for _, c := range s.Cases {
			if c.Default {
				p.line("default:")
			} else {
				p.line("case %d:", c.Value)
			}
			p.indent()
			for _, st := range c.Body.Stmts {
				p.stmt(st)
			}
			p.dedent()
		}
		p.dedent()
		p.line("}")
	case *ast.LoopStmt:
		kw := "while"
		if s.Until {
			kw = "until"
		}
		p.printf("%s ( ", kw)
		p.expr(s.Cond)
		p.raw(" ) ")
		p.block(s.Body)
		p.newline()
	case *ast.DoStmt:
		kw := "while"
		if s.Until {
			kw = "until"
		}
		p.raw("do ")
		p.block(s.Body)
		p.printf(" %s ( ", kw)
		p.expr(s.Cond)
		p.line(" );")
	case *ast.ForStmt:
		p.raw("for ( ; ")
		if s.Cond != nil {
			p.expr(s.Cond)
		}
		p.raw("; ")
		for i, post := range s.Post {
			if i > 0 {
				p.raw(", ")
			}
			p.expr(post)
		}
		p.raw(" ) ")
		p.block(s.Body)
		p.newline()
	case *ast.BreakStmt:
		p.line("break;")
	case *ast.ContinueStmt:
		p.line("continue;")
	case *ast.ReturnStmt:
		if s.X == nil {
			p.line("return;")
		} else {
			p.printf("return ")
			p.expr(s.X)
			p.line(";")
		}
	case *ast.GotoStmt:
		p.line("goto label_%d;", s.Target)
	case *ast.LabelStmt:
		// labels print at the left margin, the usual C layout
		d := p.depth
		p.depth = 0
		p.line("label_%d:", s.Pos)
		p.depth = d
	case *ast.AsmStmt:
		p.line("// %s", s.Text)
	case *ast.CtrlStmt:
		switch s.Kind {
		case ast.CtrlTerminate:
			p.line("terminate;")
		case ast.CtrlRestart:
			p.line("restart;")
		case ast.CtrlSuspend:
			p.line("suspend;")
		case ast.CtrlReturnVoid:
			p.line("return;")
		}
	}
}
