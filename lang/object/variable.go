package object

import "github.com/mna/unacs/lang/opcode"

// VarType is a variable's static type tag: decompiled ACS is effectively
// untyped at the bytecode level, but string-table references are tracked
// separately from plain integers so the emitter can print string literals
// instead of raw numbers.
type VarType int

const (
	VarInt VarType = iota
	VarStr
)

// Variable is one entry in a script/function/container variable table.
type Variable struct {
	Scope opcode.VarScope
	Index int
	Name  string // empty if never named by a chunk

	Array bool
	Dim   int // element count, only meaningful when Array is true

	Type VarType

	// Init is a scalar variable's initializer, read directly off the MINI
	// chunk by lang/loader as a raw int32 (nil if the chunk gives no
	// initializer for this index, or the stored value is zero -- the format
	// does not distinguish "no initializer" from "initializer of zero").
	// InitList holds an array variable's per-element initializers from AINI,
	// keyed by element index, int32-valued, sparse for the same reason.
	// Stored as `any`/`map[int]any` rather than int32 so lang/recover can
	// later hold ast.Expr values here instead, without object importing ast
	// (ast imports object for Variable references, not the other way
	// around).
	Init     any
	InitList map[int]any

	Imported bool
	Declared bool // true once lang/polish has promoted its first assignment to a declaration
}
