package loader

import (
	"github.com/dolthub/swiss"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// patchJumps resolves every jump/case-jump destination offset to a direct
// instruction pointer, one body at a time. Each body is indexed once by
// object-file position so every jump and case-jump resolves in one lookup
// instead of an O(n) walk per jump.
func patchJumps(c *object.Container, r *reader, sink *diag.Sink) {
	for _, sc := range c.Scripts.Items() {
		patchBody(r, sc.BodyStart, sc.BodyEnd, sink)
	}
	for _, fn := range c.Functions.Items() {
		if fn.Kind == object.FuncUser {
			patchBody(r, fn.BodyStart, fn.BodyEnd, sink)
		}
	}
}

func patchBody(r *reader, head, tail *object.Instruction, sink *diag.Sink) {
	if head == nil {
		return
	}
	byPos := swiss.NewMap[int, *object.Instruction](16)
	for i := head; i != nil; i = i.Next {
		byPos.Put(i.Pos, i)
	}

	resolve := func(fromPos, dest int) *object.Instruction {
		target, ok := byPos.Get(dest)
		if !ok {
			diag.Bail(diagError, r.at(fromPos), "jump at offset 0x%x targets offset 0x%x, which is not the start of any instruction in this body", fromPos, dest)
		}
		return target
	}

	for i := head; i != nil; i = i.Next {
		switch i.Class {
		case object.InstJump:
			i.Target = resolve(i.Pos, i.Dest)
		case object.InstCaseJump:
			if len(i.SortedCases) > 0 {
				for j := range i.SortedCases {
					i.SortedCases[j].Target = resolve(i.Pos, i.SortedCases[j].Dest)
				}
			} else {
				i.Target = resolve(i.Pos, i.Dest)
			}
		}
	}
}
