package annotate

import (
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// effect reports an instruction's (pop, push) stack effect. Most opcodes
// carry a static effect in lang/opcode's table; the handful whose effect
// depends on their own arguments or on a catalog lookup (action-special and
// extension calls, user calls, the print-family terminators, PUSHBYTES) are
// resolved here. ok is false when the effect can't be determined -- an
// out-of-range user-function index, an unrecognized opcode for this
// context -- which the caller treats as a reason to bail.
func effect(c *object.Container, inst *object.Instruction) (pop, push int, ok bool) {
	info, known := opcode.Get(inst.Op)
	if !known {
		return 0, 0, false
	}
	if !info.Stack.Variable {
		return info.Stack.Pop, info.Stack.Push, true
	}

	if n, isLSpec := opcode.LSpecArgCount(inst.Op); isLSpec {
		push = 0
		if inst.Op == opcode.LSPEC5RESULT || inst.Op == opcode.LSPEC5EXRESULT {
			push = 1
		}
		return n, push, true
	}

	switch inst.Op {
	case opcode.CALLFUNC:
		if len(inst.Args) < 2 {
			return 0, 0, false
		}
		pop = int(inst.Args[0])
		if ext, found := catalog.ExtensionByID(int(inst.Args[1])); found && ext.Sig.Return != catalog.TypeVoid {
			push = 1
		}
		return pop, push, true

	case opcode.CALL, opcode.CALLDISCARD:
		if len(inst.Args) < 1 {
			return 0, 0, false
		}
		idx := int(inst.Args[0])
		if idx < 0 || idx >= c.Functions.Len() {
			return 0, 0, false
		}
		fn := c.Functions.At(idx)
		push = 0
		if inst.Op == opcode.CALL {
			push = 1
		}
		return fn.ParamCount, push, true

	case opcode.PUSHBYTES:
		if len(inst.Args) < 1 {
			return 0, 0, false
		}
		return 0, int(inst.Args[0]), true

	case opcode.ENDHUDMESSAGE, opcode.ENDHUDMESSAGEBOLD:
		f, found := catalog.FormatFuncByEnd(inst.Op)
		if !found {
			return 0, 0, false
		}
		return f.Sig.TotalParams(), 0, true

	default:
		return 0, 0, false
	}
}
