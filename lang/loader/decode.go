package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// readBodies decodes every script and function body in entries into a
// doubly-linked Instruction sequence, then appends the synthetic TERMINATE
// sentinel that marks one past the body's last real instruction -- it gives
// later stages a uniform node to compare jump targets and loop exits
// against, instead of having to special-case "off the end of the body".
func readBodies(c *object.Container, r *reader, entries []*objEntry, sink *diag.Sink) {
	smallCode := c.Variant == object.VariantLittleE
	for _, e := range entries {
		head, tail := readBody(c, r, e.offset, e.endOffset, smallCode)
		if e.script != nil {
			e.script.BodyStart, e.script.BodyEnd = head, tail
		} else {
			e.fn.BodyStart, e.fn.BodyEnd = head, tail
		}
	}
}

func readBody(c *object.Container, r *reader, start, end int, smallCode bool) (head, tail *object.Instruction) {
	link := func(inst *object.Instruction) {
		inst.Prev = tail
		if tail != nil {
			tail.Next = inst
		} else {
			head = inst
		}
		tail = inst
	}

	pos := start
	for pos < end {
		instPos := pos
		r.seek(pos)

		wireOp := readWireOpcode(r, smallCode)
		op := opcode.Opcode(wireOp)
		info, ok := opcode.Get(op)
		if !ok {
			diag.Bail(diagError, r.at(instPos), "encountered unknown pcode (opcode: %d) at position 0x%x", wireOp, instPos)
		}

		inst := c.NewInstruction()
		inst.Op = op
		inst.Pos = instPos

		switch {
		case info.Class == opcode.ClassJump:
			inst.Class = object.InstJump
			inst.Dest = int(readArg(r, smallCode, info.Args[0]))
		case info.Shape == opcode.ShapeSortedCaseTable:
			inst.Class = object.InstCaseJump
			inst.SortedCases = readSortedCaseTable(r)
		case info.Class == opcode.ClassCaseJump:
			inst.Class = object.InstCaseJump
			inst.CaseValue = int32(readArg(r, smallCode, info.Args[0]))
			inst.Dest = int(readArg(r, smallCode, info.Args[1]))
		default:
			inst.Class = object.InstGeneric
			inst.Args = readGenericArgs(r, smallCode, op, info)
		}

		pos = r.pos
		link(inst)
	}

	sentinel := c.NewInstruction()
	sentinel.Op = opcode.TERMINATE
	sentinel.Pos = end
	sentinel.Class = object.InstGeneric
	link(sentinel)

	return head, tail
}

// readWireOpcode reads one opcode number off the wire. In compact
// (small-code) encoding it is usually one byte; a byte of 240 or more is a
// prefix that extends into a second byte (opcode = first byte + second
// byte), widening the one-byte opcode space past 240. In full encoding it is
// always a 4-byte little-endian integer. The resulting number addresses the
// same numbering this module's lang/opcode package assigns its own Opcode
// constants in declaration order -- see lang/opcode's package doc and
// DESIGN.md for why this module doesn't reconstruct a separate historical
// opcode-number table.
func readWireOpcode(r *reader, smallCode bool) int {
	if !smallCode {
		return int(r.u32())
	}
	ch := int(r.u8())
	if ch >= 240 {
		ch += int(r.u8())
	}
	return ch
}

func readArg(r *reader, smallCode bool, width opcode.ArgWidth) int32 {
	switch width {
	case opcode.ArgAlwaysByte:
		return int32(r.u8())
	case opcode.ArgAlwaysWord:
		return r.i32()
	default: // ArgPacked
		if smallCode {
			return int32(r.u8())
		}
		return r.i32()
	}
}

// readGenericArgs decodes the argument list for every opcode shape other
// than jump, case-jump and CASEGOTOSORTED: the common per-Args-entry walk
// (ShapeNone), PUSHBYTES' count-prefixed byte list (ShapePushBytes), and
// CALLFUNC's count/function-id pair (ShapeCallFunc), whose function ID takes
// two bytes in compact encoding rather than a packed single byte.
func readGenericArgs(r *reader, smallCode bool, op opcode.Opcode, info *opcode.Info) []int32 {
	switch info.Shape {
	case opcode.ShapePushBytes:
		count := int(r.u8())
		args := make([]int32, 0, count+1)
		args = append(args, int32(count))
		for i := 0; i < count; i++ {
			args = append(args, int32(r.u8()))
		}
		return args
	case opcode.ShapeCallFunc:
		var argCount, funcIndex int32
		if smallCode {
			argCount = int32(r.u8())
			funcIndex = int32(int16(r.u16()))
		} else {
			argCount = r.i32()
			funcIndex = r.i32()
		}
		return []int32{argCount, funcIndex}
	default:
		args := make([]int32, len(info.Args))
		for i, w := range info.Args {
			args[i] = readArg(r, smallCode, w)
		}
		return args
	}
}

// readSortedCaseTable decodes CASEGOTOSORTED's embedded table: align the
// read position to a 4-byte file-offset boundary, then a 4-byte count
// followed by that many (value, destination) 4-byte pairs.
func readSortedCaseTable(r *reader) []object.SortedCase {
	if rem := r.pos % 4; rem != 0 {
		r.seek(r.pos + (4 - rem))
	}
	countPos := r.pos
	count := int(r.i32())
	if count < 0 || count > (len(r.data)-r.pos)/8 {
		diag.Bail(diagError, r.at(countPos), "sorted case table declares %d entries, more than the rest of the file can hold", count)
	}
	cases := make([]object.SortedCase, count)
	for i := range cases {
		cases[i] = object.SortedCase{
			Value: r.i32(),
			Dest:  int(r.i32()),
		}
	}
	return cases
}
