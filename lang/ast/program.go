package ast

import "github.com/mna/unacs/lang/object"

type (
	// ScriptDecl is a recovered script entry point, with
	// its recovered Body filled in by lang/recover.
	ScriptDecl struct {
		Script *object.Script
		Body   *Block
	}

	// FuncDecl is a recovered user function (FuncUser
	// kind only -- the other kinds are metadata-only and never reach the
	// AST), with its recovered Body filled in by lang/recover.
	FuncDecl struct {
		Func *object.Function
		Body *Block
	}

	// Program is the whole recovered module: the directives lang/emit prints
	// at the top of the file, the variable tables grouped by storage class,
	// and the recovered scripts and user functions in body-offset order.
	Program struct {
		Container *object.Container

		LibraryName    string
		Imports        []string
		Compact        bool
		WadAuthor      bool
		EncryptStrings bool
		UsesBuiltin    bool // any action-special or extension call appears -> #include "zcommon.acs"

		Scripts []*ScriptDecl
		Funcs   []*FuncDecl
	}
)

func (n *ScriptDecl) Walk(v Visitor) { Walk(v, n.Body) }
func (n *FuncDecl) Walk(v Visitor)   { Walk(v, n.Body) }

func (n *Program) Walk(v Visitor) {
	for _, s := range n.Scripts {
		Walk(v, s)
	}
	for _, f := range n.Funcs {
		Walk(v, f)
	}
}
