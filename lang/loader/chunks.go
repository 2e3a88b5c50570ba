package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// scanChunks walks [start, end) once, recording every (tag, payload) tuple
// in order. Chunk tags may repeat (array-initializer chunks appear once per
// array); callers that need "first chunk with this tag from a given point"
// semantics scan this slice themselves rather
// than re-walking the raw bytes.
func scanChunks(r *reader, start, end int) []object.Chunk {
	var chunks []object.Chunk
	pos := start
	for pos < end {
		r.seek(pos)
		if pos+8 > end {
			diag.Bail(diagError, r.at(pos), "chunk header runs past the end of the chunk region")
		}
		tag := r.tag()
		size := int(r.u32())
		payloadStart := r.pos
		if payloadStart+size > end {
			diag.Bail(diagError, r.at(payloadStart), "chunk %q declares a size that runs past the end of the chunk region", tag)
		}
		chunks = append(chunks, object.Chunk{
			Tag:     tag,
			Offset:  payloadStart,
			Payload: r.data[payloadStart : payloadStart+size],
		})
		pos = payloadStart + size
	}
	return chunks
}

// firstChunk returns the first chunk with the given tag, and whether one
// was found.
func firstChunk(chunks []object.Chunk, tag string) (object.Chunk, bool) {
	for _, c := range chunks {
		if c.Tag == tag {
			return c, true
		}
	}
	return object.Chunk{}, false
}

// eachChunk calls fn for every chunk with the given tag, in file order.
func eachChunk(chunks []object.Chunk, tag string, fn func(object.Chunk)) {
	for _, c := range chunks {
		if c.Tag == tag {
			fn(c)
		}
	}
}

func loadChunked(c *object.Container, r *reader, chunkOffset, chunkEnd int, sink *diag.Sink) {
	c.Chunks = scanChunks(r, chunkOffset, chunkEnd)

	scriptsByNumber, funcsByIndex, entries := readDirectory(c, r, chunkOffset, sink)
	readBodies(c, r, entries, sink)
	readStrings(c, r, sink)
	readMapVars(c, r, sink)
	readLocalArrays(c, r, sink, scriptsByNumber, funcsByIndex)
	readLibraryMetadata(c, r, sink)

	patchJumps(c, r, sink)
}
