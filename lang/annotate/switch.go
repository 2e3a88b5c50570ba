package annotate

import (
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// tryDispatchSwitch recognizes the switch shape: the selector expression's
// exit is an unconditional GOTO whose target is either a CASEGOTOSORTED
// instruction or the head of a linear CASEGOTO chain (or, for a switch with
// no cases at all, a bare DROP of the selector). cond is [start, gotoInst).
func (s *scanner) tryDispatchSwitch(start, gotoInst *object.Instruction, fr *frame) (*object.Instruction, bool) {
	head := gotoInst.Target
	if head == nil {
		return nil, false
	}

	n := s.c.NewNote()
	n.Kind = object.NoteSwitch
	n.CondStart, n.CondEnd = start, gotoInst

	var bodyStart *object.Instruction
	switch {
	case head.Class == object.InstCaseJump && head.Op == opcode.CASEGOTOSORTED:
		n.SortedJump = head
		bodyStart = head.Next
	case head.Class == object.InstCaseJump && head.Op == opcode.CASEGOTO:
		n.CaseTable = head
		bodyStart = s.linkCaseChain(head)
	case head.Op == opcode.DROP:
		bodyStart = head.Next
	default:
		return nil, false
	}

	exit := s.emitCases(n, head, bodyStart, fr)
	n.Exit = exit
	start.PushNote(n)
	return exit, true
}

// linkCaseChain wires CaseNext across the contiguous run of CASEGOTO
// instructions starting at head, and returns the first instruction past the
// chain (the trailing GOTO to the default case, or a bare DROP when there
// is no default).
func (s *scanner) linkCaseChain(head *object.Instruction) *object.Instruction {
	i := head
	for i.Next != nil && i.Next.Class == object.InstCaseJump && i.Next.Op == opcode.CASEGOTO {
		i.CaseNext = i.Next
		i = i.Next
	}
	return i.Next
}

// emitCases appends a CASE note at every distinct case target (default or
// value-bearing), then recovers the switch's body so nested constructs and
// break jumps are scanned relative to this switch's break target. bodyStart
// is the instruction right after the case dispatch table -- where case
// bodies may also begin when a case target coincides with fallthrough from
// the dispatch. Exit is the switch's break target: the instruction a
// trailing unconditional default jump (if present) points to, or bodyStart
// itself when every case target already sits past the table.
func (s *scanner) emitCases(n *object.Note, head, bodyStart *object.Instruction, fr *frame) *object.Instruction {
	seen := map[*object.Instruction]bool{}
	addCase := func(target *object.Instruction, value int32, isDefault bool) {
		if target == nil || seen[target] {
			return
		}
		seen[target] = true
		cn := s.c.NewNote()
		cn.Kind = object.NoteCase
		cn.CaseValue = value
		cn.CaseDefault = isDefault
		target.PushNote(cn)
	}

	exit := bodyStart

	if n.SortedJump != nil {
		for _, sc := range n.SortedJump.SortedCases {
			addCase(sc.Target, sc.Value, false)
			if sc.Target != nil && sc.Target.Pos > exitPos(exit) {
				exit = sc.Target
			}
		}
	} else if n.CaseTable != nil {
		for c := n.CaseTable; c != nil; c = c.CaseNext {
			addCase(c.Target, c.CaseValue, false)
		}
	}

	// A trailing unconditional jump right at bodyStart, not itself a case
	// target, is the default case (or the switch's own break target when
	// there is no default): its destination is always folded in as
	// CASE{default}. Nothing here tells the two apart, so a switch with no
	// default also gets a default arm at its break target.
	if bodyStart != nil && bodyStart.Op == opcode.GOTO && !seen[bodyStart] {
		addCase(bodyStart.Target, 0, true)
		if bodyStart.Target != nil && bodyStart.Target.Pos > exitPos(exit) {
			exit = bodyStart.Target
		}
	}

	child := &frame{parent: fr, breakTarget: exit, hasBreak: true}
	// The switch's arms lie in [bodyStart, exit): scanning that range with
	// the switch's own frame annotates their statements and resolves any GOTO
	// to exit as a break. lang/recover later splits the range into arms at
	// the CASE notes it reaches through the SWITCH note's case table.
	if bodyStart != nil && exit != nil && bodyStart.Pos < exit.Pos {
		s.scanBlock(bodyStart, exit, child)
	}

	return exit
}

func exitPos(i *object.Instruction) int {
	if i == nil {
		return -1
	}
	return i.Pos
}
