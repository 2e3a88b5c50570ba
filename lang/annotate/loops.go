package annotate

import (
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// dispatchBranch handles the case where an expression's exit is a
// conditional branch (IFGOTO/IFNOTGOTO): it is either a plain if, or one of
// the three loop shapes (for, while, do), distinguished by layout
// lookaheads. cond is [start, branch).
func (s *scanner) dispatchBranch(start, branch *object.Instruction, fr *frame) *object.Instruction {
	if next, ok := s.tryFor(start, branch, fr); ok {
		return next
	}
	if next, ok := s.tryWhile(start, branch, fr); ok {
		return next
	}
	if next, ok := s.tryDo(start, branch, fr); ok {
		return next
	}
	return s.emitIf(start, branch, fr)
}

// inverted reports whether branch's polarity is the "taken when true" form
// (IFGOTO). For the forward branch of an if, while or for, IFNOTGOTO maps
// directly onto source-level "if/while/for (cond)"; when this is set,
// lang/recover negates an if's or a for's recovered condition, and a while
// loop prints as "until". tryDo's backward branch uses the opposite polarity.
func inverted(branch *object.Instruction) bool {
	return branch.Op == opcode.IFGOTO
}

// tryFor recognizes the for-loop shape: the branch's exit is immediately
// followed by an unconditional jump into the body, and the body is
// immediately preceded by a post-list that ends with a back-jump to the
// condition's own start.
//
//	condStart: <cond>
//	           IFNOTGOTO exit
//	           GOTO bodyStart      (skip)
//	postStart: <post-list>
//	           GOTO condStart      (back)
//	bodyStart: <body>
//	           GOTO postStart
//	exit:
func (s *scanner) tryFor(start, branch *object.Instruction, fr *frame) (*object.Instruction, bool) {
	skip := branch.Next
	if skip == nil || skip.Op != opcode.GOTO {
		return nil, false
	}
	bodyStart := skip.Target
	if bodyStart == nil {
		return nil, false
	}
	back := bodyStart.Prev
	if back == nil || back.Op != opcode.GOTO || back.Target != start {
		return nil, false
	}
	postStart := skip.Next
	if postStart == nil || postStart == back {
		return nil, false // empty post-list isn't this shape; let while/do try
	}

	exit := branch.Target
	if exit == nil || exit.Prev == nil || exit.Prev.Op != opcode.GOTO || exit.Prev.Target != postStart {
		return nil, false
	}
	bodyEnd := exit.Prev // the body's own back-jump to postStart

	post := s.splitExprList(postStart, back)
	if post == nil {
		return nil, false
	}

	n := s.c.NewNote()
	n.Kind = object.NoteFor
	n.CondStart, n.CondEnd = start, branch
	n.Post = post
	n.BodyStart, n.BodyEnd = bodyStart, bodyEnd
	n.Exit = exit
	n.Until = inverted(branch)
	start.PushNote(n)

	child := &frame{parent: fr, breakTarget: exit, continueTarget: postStart, hasBreak: true, hasContinue: true}
	s.scanBlock(bodyStart, bodyEnd, child)

	return exit, true
}

// splitExprList breaks [start, end) into one or more plain expression
// ranges (the for-loop post-list can be a comma sequence of assignments or
// calls). Returns nil if any stretch fails to parse as an expression.
func (s *scanner) splitExprList(start, end *object.Instruction) []object.NoteRange {
	var ranges []object.NoteRange
	i := start
	for i != nil && i != end {
		var exit *object.Instruction
		ok := tryExpr(func() { exit = simulateExpr(s.c, i) })
		if !ok {
			return nil
		}
		stop := exit
		if stop != nil && stop.Op == opcode.DROP {
			stop = stop.Next
		}
		ranges = append(ranges, object.NoteRange{Start: i, End: exprEnd(exit)})
		i = stop
	}
	if i != end {
		return nil
	}
	return ranges
}

// tryWhile recognizes the pretest loop: the branch's target is immediately
// preceded by an unconditional back-jump to the condition's own start.
//
//	condStart: <cond>
//	           IFNOTGOTO exit
//	           <body>
//	           GOTO condStart
//	exit:
func (s *scanner) tryWhile(start, branch *object.Instruction, fr *frame) (*object.Instruction, bool) {
	exit := branch.Target
	if exit == nil {
		return nil, false
	}
	back := exit.Prev
	if back == nil || back.Op != opcode.GOTO || back.Target != start {
		return nil, false
	}

	n := s.c.NewNote()
	n.Kind = object.NoteLoop
	n.CondStart, n.CondEnd = start, branch
	n.BodyStart, n.BodyEnd = branch.Next, back
	n.Exit = exit
	n.Until = inverted(branch)
	start.PushNote(n)

	child := &frame{parent: fr, breakTarget: exit, continueTarget: start, hasBreak: true, hasContinue: true}
	s.scanBlock(branch.Next, back, child)

	return exit, true
}

// tryDo recognizes the posttest loop: the cond sits after the body and the
// branch jumps backward into it.
//
//	bodyStart: <body>
//	condStart: <cond>
//	           IFGOTO/IFNOTGOTO bodyStart
//	exit:
func (s *scanner) tryDo(start, branch *object.Instruction, fr *frame) (*object.Instruction, bool) {
	bodyStart := branch.Target
	if bodyStart == nil || bodyStart.Pos >= branch.Pos {
		return nil, false
	}

	exit := branch.Next

	n := s.c.NewNote()
	n.Kind = object.NoteDo
	n.CondStart, n.CondEnd = start, branch
	n.BodyStart, n.BodyEnd = bodyStart, start
	n.Exit = exit
	// The branch jumps back while the loop keeps running, so IFNOTGOTO is the
	// "until" form here, the reverse of the forward-branch shapes.
	n.Until = branch.Op == opcode.IFNOTGOTO
	start.PushNote(n)

	child := &frame{parent: fr, breakTarget: exit, continueTarget: start, hasBreak: true, hasContinue: true}
	s.scanBlock(bodyStart, start, child)

	return exit, true
}

// tryDoHead recognizes a do-while loop from the first instruction of its
// body, i: unlike every other loop shape, a do-while's defining branch sits
// after the body rather than before it, so by the time the ordinary
// per-statement walk would reach it, the body's own statements have already
// been scanned (and their notes attached) as if they were plain top-level
// code. This looks the branch up first by following the instruction chain
// forward from i, then silently re-walks the same statements with
// simulateExpr alone (no notes attached) to find where the condition
// itself starts, and only then hands off to tryDo to do the real,
// side-effecting scan exactly once.
func (s *scanner) tryDoHead(i, end *object.Instruction, fr *frame) (*object.Instruction, bool) {
	branch, ok := tryDoLookahead(i, end)
	if !ok {
		return nil, false
	}

	condStart := i
	for condStart != branch {
		var exit *object.Instruction
		ok := tryExpr(func() { exit = simulateExpr(s.c, condStart) })
		if !ok {
			return nil, false
		}
		if exit == branch {
			break
		}
		if exit.Op == opcode.DROP {
			exit = exit.Next
		}
		condStart = exit
	}

	return s.tryDo(condStart, branch, fr)
}

// tryDoLookahead scans forward from i, following the plain instruction
// chain rather than simulating anything, looking for a conditional branch
// targeting i itself. Nothing but a do-while's own condition ever jumps
// backward to i this way -- every other loop's back-edge is the
// unconditional GOTO at the end of its post-list or body, never a
// conditional branch, so this can't be confused with them regardless of
// what i's body itself contains. The scan never looks past end: reaching it
// means the branch, if any, belongs to some construct enclosing this one,
// not to a do-while starting at i -- without this check, the recursive body
// scan tryDo itself performs would keep rediscovering the same enclosing
// do-while and never terminate.
func tryDoLookahead(i, end *object.Instruction) (*object.Instruction, bool) {
	for j := i.Next; j != nil && j != end; j = j.Next {
		if end == nil && isBodyEnd(j.Op) {
			return nil, false
		}
		if j.Class == object.InstJump && j.Target == i && (j.Op == opcode.IFGOTO || j.Op == opcode.IFNOTGOTO) {
			return j, true
		}
	}
	return nil, false
}

// emitIf handles the remaining case: a plain conditional with no recognized
// loop shape. An else clause, if present, is the block starting right after
// an unconditional jump that immediately precedes the branch's target.
func (s *scanner) emitIf(start, branch *object.Instruction, fr *frame) *object.Instruction {
	thenEnd := branch.Target
	var elseStart, elseEnd *object.Instruction
	exit := thenEnd

	if thenEnd != nil && thenEnd.Prev != nil && thenEnd.Prev.Op == opcode.GOTO &&
		thenEnd.Prev.Target != nil && thenEnd.Prev.Target.Pos > thenEnd.Prev.Pos {
		// thenEnd.Prev is the then-branch's own exit jump past the else clause
		// -- forward, unlike a nested loop's own back-edge GOTO that might
		// coincidentally sit as the then-block's last instruction -- only if it
		// isn't itself a break/continue out of an enclosing construct (those
		// jump to a target outside this if entirely, which looks the same
		// locally; distinguishing the two precisely needs the enclosing
		// break/continue targets).
		if bt, has := fr.findBreak(); !has || thenEnd.Prev.Target != bt {
			if ct, has := fr.findContinue(); !has || thenEnd.Prev.Target != ct {
				elseStart = thenEnd
				elseEnd = thenEnd.Prev.Target
				thenEnd = thenEnd.Prev
				exit = elseEnd
			}
		}
	}

	n := s.c.NewNote()
	n.Kind = object.NoteIf
	n.CondStart, n.CondEnd = start, branch
	n.BodyStart, n.BodyEnd = branch.Next, thenEnd
	n.ElseStart, n.ElseEnd = elseStart, elseEnd
	n.Exit = exit
	n.Until = inverted(branch)
	start.PushNote(n)

	s.scanBlock(branch.Next, thenEnd, fr)
	if elseStart != nil {
		s.scanBlock(elseStart, elseEnd, fr)
	}

	return exit
}
