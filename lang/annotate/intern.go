package annotate

import (
	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// tryInternFunc recognizes the two built-in idioms the compiler always
// splits into a call plus a wait: ACS_Execute (an action special) followed
// by ScriptWait, and ACS_NamedExecute (an extension function) followed by a
// DROP and ScriptWaitNamed. Both get folded into one INTERNFUNC note so the
// recoverer can synthesize the single composite call (ACS_ExecuteWait /
// ACS_NamedExecuteWait) a source author would actually have written.
//
// This runs ahead of the general expression scan because both halves, seen
// separately, would otherwise parse as two unremarkable EXPRSTMTs: the
// action-special/extension call pushes nothing, so the stack returns to 0
// right after it and the generic path never looks further ahead.
func tryInternFunc(c *object.Container, i *object.Instruction) (*object.Instruction, bool) {
	if _, isLSpec := opcode.LSpecArgCount(i.Op); isLSpec && len(i.Args) > 0 && int(i.Args[0]) == catalog.ASPECExecute {
		wait := i.Next
		if wait == nil {
			return nil, false
		}
		if d, ok := catalog.DedicatedByOp(wait.Op); ok && d.Name == "ScriptWait" {
			return emitInternFunc(c, i, wait, wait.Next, catalog.InternACSExecuteWait)
		}
		return nil, false
	}

	if i.Op == opcode.CALLFUNC && len(i.Args) > 1 && int(i.Args[1]) == catalog.ExtFuncNamedExecute {
		drop := i.Next
		if drop == nil || drop.Op != opcode.DROP {
			return nil, false
		}
		wait := drop.Next
		if wait == nil {
			return nil, false
		}
		if d, ok := catalog.DedicatedByOp(wait.Op); ok && d.Name == "ScriptWaitNamed" {
			return emitInternFunc(c, i, wait, wait.Next, catalog.InternACSNamedExecuteWait)
		}
		return nil, false
	}

	return nil, false
}

func emitInternFunc(c *object.Container, start, end, exit *object.Instruction, kind catalog.InternKind) (*object.Instruction, bool) {
	n := c.NewNote()
	n.Kind = object.NoteInternFunc
	n.Start, n.End = start, end
	n.Exit = exit
	n.InternKind = int(kind)
	start.PushNote(n)
	return exit, true
}
