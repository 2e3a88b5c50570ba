package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// readLocalArrays decodes SARY (script-local array declarations) and FARY
// (function-local array declarations). Both chunks may repeat -- one per
// script/function that declares at least one local array -- and give no
// initializers of their own; local arrays are always zero-initialized.
func readLocalArrays(c *object.Container, r *reader, sink *diag.Sink, scriptsByNumber, funcsByIndex map[int]*objEntry) {
	eachChunk(c.Chunks, "SARY", func(ch object.Chunk) {
		if len(ch.Payload) < 2 {
			diag.Bail(diagError, r.at(ch.Offset), "SARY chunk is smaller than its script-number header")
		}
		number := int(int16(le16(ch.Payload)))
		e, ok := scriptsByNumber[number]
		if !ok {
			sink.Warn(r.at(ch.Offset), "found SARY chunk for script %d, but there is no such script", number)
			sink.Notef(r.at(ch.Offset), "will abort reading SARY chunk for script %d", number)
			return
		}
		count := (len(ch.Payload) - 2) / 4
		if count == 0 {
			return
		}
		e.script.Arrays = make([]*object.Variable, count)
		for i := 0; i < count; i++ {
			size := int(le32(ch.Payload[2+i*4:]))
			e.script.Arrays[i] = &object.Variable{Index: i, Array: true, Dim: size}
		}
	})

	eachChunk(c.Chunks, "FARY", func(ch object.Chunk) {
		if len(ch.Payload) < 2 {
			diag.Bail(diagError, r.at(ch.Offset), "FARY chunk is smaller than its function-index header")
		}
		index := int(le16(ch.Payload))
		e, ok := funcsByIndex[index]
		if !ok {
			sink.Warn(r.at(ch.Offset), "found FARY chunk for function %d, but there is no such function", index)
			sink.Notef(r.at(ch.Offset), "will abort reading FARY chunk for function %d", index)
			return
		}
		count := (len(ch.Payload) - 2) / 4
		if count == 0 {
			return
		}
		e.fn.Arrays = make([]*object.Variable, count)
		for i := 0; i < count; i++ {
			size := int(le32(ch.Payload[2+i*4:]))
			e.fn.Arrays[i] = &object.Variable{Index: i, Array: true, Dim: size}
		}
	})
}
