package annotate

import (
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// consumer reports whether op is a control-transfer opcode recognized as
// "the instruction following an expression": an expression that leaves
// exactly one value on the stack is only considered complete if the next
// opcode is one of these. GOTO is included alongside the conditional
// branches and RETURNVAL because a switch selector expression plateaus at
// depth 1 through its whole CASEGOTO chain (each comparison pops the
// discriminant and repushes it) and only truly ends at the chain's trailing
// unconditional dispatch jump.
func consumer(op opcode.Opcode) bool {
	return op == opcode.IFGOTO || op == opcode.IFNOTGOTO || op == opcode.RETURNVAL || op == opcode.GOTO
}

// isPrintOpen reports whether op opens a print or translation block, and
// isPrintClose reports whether it closes one -- the annotator must track
// these so depth-1-with-a-consumer-next doesn't fire while a print or
// translation block is still open (their own terminators have their own
// static or catalog-resolved pop counts, not "the expression is done").
func isPrintOpen(op opcode.Opcode) bool {
	return op == opcode.BEGINPRINT || op == opcode.STARTTRANSLATION
}

func isPrintClose(op opcode.Opcode) bool {
	switch op {
	case opcode.ENDPRINT, opcode.ENDPRINTBOLD, opcode.ENDHUDMESSAGE,
		opcode.ENDHUDMESSAGEBOLD, opcode.ENDLOG, opcode.SAVESTRING,
		opcode.ENDTRANSLATION:
		return true
	default:
		return false
	}
}

// simulateExpr walks forward from start, tracking simulated stack depth via
// effect, and returns the instruction one past the recognized expression
// (exit); callers check themselves whether exit is a DROP to fold into the
// statement. It bails (panics with bailout) on
// stack underflow, an opcode whose effect can't be resolved, or running off
// the end of the body before the stack settles.
//
// An expression is complete when, after consuming an instruction, depth is
// back to 0 outside any open print/translation block (a bare statement
// whose value, if any, was fully consumed by what came before, e.g. an
// assignment) -- or when depth is 1 and the next instruction is a
// recognized consumer (IFGOTO, IFNOTGOTO, RETURNVAL, GOTO).
func simulateExpr(c *object.Container, start *object.Instruction) (exit *object.Instruction) {
	depth := 0
	blockDepth := 0 // nesting depth of open print/translation blocks
	i := start
	first := true

	for {
		if i == nil {
			bail()
		}
		if !first && depth == 0 {
			return i
		}
		if !first && depth == 1 && blockDepth == 0 && consumer(i.Op) {
			return i
		}
		// A body-end sentinel reached here means some earlier instruction left
		// the stack unbalanced -- a well-formed expression always settles back
		// to depth 0 (or hits a consumer) before the sentinel itself becomes
		// the lookahead instruction, which the two checks above already catch.
		if i.Op == opcode.TERMINATE || i.Op == opcode.RESTART || i.Op == opcode.SUSPEND || i.Op == opcode.RETURNVOID {
			bail()
		}

		pop, push, ok := effect(c, i)
		if !ok || depth < pop {
			bail()
		}
		if isPrintOpen(i.Op) {
			blockDepth++
		}
		depth = depth - pop + push
		if isPrintClose(i.Op) {
			blockDepth--
			if blockDepth < 0 {
				bail()
			}
		}

		first = false
		i = i.Next
	}
}
