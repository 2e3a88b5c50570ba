package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// readMapVars decodes MINI (scalar initializers), ARAY (array declarations)
// and AINI (array initializers), then fills in every map-variable index up
// to the highest one any of those chunks touched with an unnamed, untyped
// placeholder -- the object format only ever mentions the map variables a
// module actually uses, but the numbering is positional, so every lower
// index still occupies a slot even if nothing was ever said about it.
func readMapVars(c *object.Container, r *reader, sink *diag.Sink) {
	readMini(c, r, sink)
	readAray(c, r, sink)
	readAini(c, r, sink)

	last := -1
	for i, v := range c.MapVars {
		if v != nil {
			last = i
		}
	}
	for i := 0; i < last; i++ {
		if c.MapVars[i] == nil {
			c.MapVars[i] = reserveMapVar(c, i)
		}
	}
}

func reserveMapVar(c *object.Container, index int) *object.Variable {
	if c.MapVars[index] == nil {
		c.MapVars[index] = &object.Variable{Scope: opcode.ScopeMap, Index: index}
	}
	return c.MapVars[index]
}

func readMini(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "MINI")
	if !ok {
		return
	}
	if len(ch.Payload) < 4 {
		diag.Bail(diagError, r.at(ch.Offset), "MINI chunk is smaller than its start-index header")
	}
	index := int(le32(ch.Payload))
	count := (len(ch.Payload) - 4) / 4
	for i := 0; i < count; i++ {
		value := int32(le32(ch.Payload[4+i*4:]))
		if index < 0 || index >= len(c.MapVars) {
			diag.Bail(diagError, r.at(ch.Offset), "entry %d of MINI chunk initializes variable %d, which is greater than the maximum index %d", i, index, len(c.MapVars)-1)
		}
		v := reserveMapVar(c, index)
		if value != 0 {
			v.Init = value
		}
		index++
	}
}

func readAray(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "ARAY")
	if !ok {
		return
	}
	const entrySize = 4 + 4
	count := len(ch.Payload) / entrySize
	for i := 0; i < count; i++ {
		base := i * entrySize
		index := int(le32(ch.Payload[base:]))
		size := int(le32(ch.Payload[base+4:]))
		if index < 0 || index >= len(c.MapVars) {
			diag.Bail(diagError, r.at(ch.Offset+base), "entry %d of ARAY chunk specifies an array with index %d, which is greater than the maximum index %d", i, index, len(c.MapVars)-1)
		}
		v := reserveMapVar(c, index)
		v.Array = true
		v.Dim = size
	}
}

func readAini(c *object.Container, r *reader, sink *diag.Sink) {
	eachChunk(c.Chunks, "AINI", func(ch object.Chunk) {
		if len(ch.Payload) < 4 {
			diag.Bail(diagError, r.at(ch.Offset), "AINI chunk is smaller than its index header")
		}
		index := int(le32(ch.Payload))
		if index < 0 || index >= len(c.MapVars) {
			sink.Warn(r.at(ch.Offset), "AINI chunk specifies an array with index %d, which is greater than the maximum index %d", index, len(c.MapVars)-1)
			sink.Notef(r.at(ch.Offset), "will abort reading AINI chunk for array %d", index)
			return
		}
		v := c.MapVars[index]
		if v == nil || !v.Array {
			sink.Warn(r.at(ch.Offset), "AINI chunk specifies an array with index %d, but there is no such array", index)
			sink.Notef(r.at(ch.Offset), "will abort reading AINI chunk for array %d", index)
			return
		}
		count := (len(ch.Payload) - 4) / 4
		if count > v.Dim {
			sink.Warn(r.at(ch.Offset), "AINI chunk for array %d specifies %d initializers, but array has %d elements", index, count, v.Dim)
			sink.Notef(r.at(ch.Offset), "will change size of array %d to %d", index, count)
			v.Dim = count
		}
		for i := 0; i < count; i++ {
			value := int32(le32(ch.Payload[4+i*4:]))
			if value != 0 {
				if v.InitList == nil {
					v.InitList = map[int]any{}
				}
				v.InitList[i] = value
			}
		}
	})
}
