package recover

import (
	"fmt"

	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// localScalar returns the scalar variable at idx in the enclosing body's own
// table, materializing it on first reference (the loader pre-sizes the
// slice but never fills individual entries in: lang/recover is what first
// needs a *object.Variable to attach to a VarExpr). Indices below the
// body's param count are synthesized as declared parameters; the rest are
// ordinary undeclared locals left for lang/polish to promote.
func (b *builder) localScalar(idx int) *object.Variable {
	grow(b.vars, idx)
	s := *b.vars
	if s[idx] == nil {
		v := &object.Variable{Scope: opcode.ScopeLocal, Index: idx}
		if idx < b.paramCount {
			v.Name = fmt.Sprintf("param%d", idx)
			v.Declared = true
		} else {
			v.Name = fmt.Sprintf("var%d", idx)
		}
		s[idx] = v
	}
	return s[idx]
}

// localArray returns the array variable at idx in the enclosing body's own
// array table, materializing it (and growing the table) on first reference.
// Arrays are never first-assignment-promoted by lang/polish (an array has no
// single initializing assignment), so they are always marked Declared.
func (b *builder) localArray(idx int) *object.Variable {
	grow(b.arrays, idx)
	s := *b.arrays
	if s[idx] == nil {
		s[idx] = &object.Variable{Scope: opcode.ScopeLocal, Index: idx, Array: true, Declared: true, Name: fmt.Sprintf("arr%d", idx)}
	}
	if s[idx].Name == "" {
		s[idx].Name = fmt.Sprintf("arr%d", idx)
	}
	s[idx].Declared = true
	return s[idx]
}

// grow extends *s, if needed, so index idx is valid, preserving existing
// entries. The loader pre-sizes every script/function's own tables from
// chunk metadata, so this only ever fires for a table the loader never saw
// a size chunk for (a local array with no SARY/FARY entry, or a variable
// count the FUNC chunk under-reported).
func grow[T any](s *[]*T, idx int) {
	if idx < len(*s) {
		return
	}
	grown := make([]*T, idx+1)
	copy(grown, *s)
	*s = grown
}

// globalVar resolves a map/world/global variable (scalar or array) by
// index, materializing it in the container's own fixed-size table if the
// loader's chunk data never named it (the table is shared with lang/loader:
// both packages slice the same backing [128]/[256]/[64] storage, and a
// scalar and an array of the same scope share one index space,
// distinguished only by the Variable's own Array flag).
func (b *builder) globalVar(scope opcode.VarScope, idx int, array bool) *object.Variable {
	var table []*object.Variable
	var prefix string
	switch scope {
	case opcode.ScopeMap:
		table, prefix = b.c.MapVars[:], "mapvar"
	case opcode.ScopeWorld:
		table, prefix = b.c.WorldVars[:], "worldvar"
	default:
		table, prefix = b.c.GlobalVars[:], "globalvar"
	}
	if array {
		prefix += "arr"
	}
	if idx < 0 || idx >= len(table) {
		return &object.Variable{Scope: scope, Index: idx, Array: array, Name: fmt.Sprintf("%s%d", prefix, idx)}
	}
	if table[idx] == nil {
		table[idx] = &object.Variable{Scope: scope, Index: idx, Array: array, Name: fmt.Sprintf("%s%d", prefix, idx)}
	}
	if table[idx].Name == "" {
		table[idx].Name = fmt.Sprintf("%s%d", prefix, idx)
	}
	return table[idx]
}

// variable resolves any scoped-variable reference (scalar or array) by its
// VarInfo scope, dispatching to the local, per-map, per-world or global
// table as appropriate.
func (b *builder) variable(scope opcode.VarScope, idx int, array bool) *object.Variable {
	if scope == opcode.ScopeLocal {
		if array {
			return b.localArray(idx)
		}
		return b.localScalar(idx)
	}
	return b.globalVar(scope, idx, array)
}
