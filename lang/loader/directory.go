package loader

import (
	"sort"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// objEntry tracks one script or function's position in the object file
// while the directory is being assembled, before body decoding fills in
// real *object.Instruction pointers.
type objEntry struct {
	offset, endOffset int
	script            *object.Script
	fn                *object.Function
}

// readDirectory reads the SPTR/SFLG/SVCT/SNAM/FUNC/FNAM chunks, builds the
// Container's Scripts and Functions lists, and computes each object's body
// byte range by sorting all objects by offset and taking each one's
// successor as its end (the last object's end is bounded by the legacy
// directory trailer every chunk-based file still carries for
// backward-compatibility with zero-era readers).
func readDirectory(c *object.Container, r *reader, directoryOffset int, sink *diag.Sink) (scriptsByNumber map[int]*objEntry, funcsByIndex map[int]*objEntry, entries []*objEntry) {
	scriptsByNumber = map[int]*objEntry{}
	funcsByIndex = map[int]*objEntry{}

	if ch, ok := firstChunk(c.Chunks, "SPTR"); ok {
		const entrySize = 2 + 1 + 1 + 4
		count := len(ch.Payload) / entrySize
		for i := 0; i < count; i++ {
			base := i * entrySize
			number := int(int16(le16(ch.Payload[base:])))
			typ := int(ch.Payload[base+2])
			numParam := int(ch.Payload[base+3])
			offset := int(le32(ch.Payload[base+4:]))

			sc := &object.Script{
				Number:     number,
				Type:       object.ScriptType(typ),
				ParamCount: numParam,
			}
			c.Scripts.Append(sc)
			e := &objEntry{offset: offset, script: sc}
			entries = append(entries, e)
			scriptsByNumber[number] = e
		}
	}

	if ch, ok := firstChunk(c.Chunks, "SFLG"); ok {
		const entrySize = 2 + 2
		count := len(ch.Payload) / entrySize
		for i := 0; i < count; i++ {
			base := i * entrySize
			number := int(int16(le16(ch.Payload[base:])))
			flags := object.ScriptFlag(le16(ch.Payload[base+2:]))
			e, ok := scriptsByNumber[number]
			if !ok {
				sink.Warn(r.at(ch.Offset+base), "SFLG chunk has an entry for script %d, but there is no such script", number)
				continue
			}
			known := object.ScriptFlagNet | object.ScriptFlagClientSide
			e.script.Flags = flags & known
			if flags&^known != 0 {
				sink.Warn(r.at(ch.Offset+base), "script %d contains at least one unknown script flag", number)
			}
		}
	}

	if ch, ok := firstChunk(c.Chunks, "SVCT"); ok {
		const entrySize = 2 + 2
		count := len(ch.Payload) / entrySize
		for i := 0; i < count; i++ {
			base := i * entrySize
			number := int(int16(le16(ch.Payload[base:])))
			size := int(le16(ch.Payload[base+2:]))
			e, ok := scriptsByNumber[number]
			if !ok {
				sink.Warn(r.at(ch.Offset+base), "SVCT chunk has an entry for script %d, but there is no such script", number)
				continue
			}
			e.script.Vars = make([]*object.Variable, size)
		}
	}
	for _, e := range scriptsByNumber {
		if e.script.Vars == nil {
			e.script.Vars = make([]*object.Variable, object.DefaultVarCapacity)
		}
	}

	if ch, ok := firstChunk(c.Chunks, "SNAM"); ok && len(ch.Payload) >= 4 {
		count := int(le32(ch.Payload))
		scriptNumber := -1
		for i := 0; i < count; i++ {
			pos := 4 + i*4
			if pos+4 > len(ch.Payload) {
				diag.Bail(diagError, r.at(ch.Offset+pos), "SNAM chunk gives a number of script name offsets that cannot fit in the chunk")
			}
			off := int(le32(ch.Payload[pos:]))
			if off < 0 || off >= len(ch.Payload) {
				diag.Bail(diagError, r.at(ch.Offset+pos), "string offset in position %d of SNAM chunk points outside of chunk data range", i)
			}
			if e, ok := scriptsByNumber[scriptNumber]; ok {
				e.script.Name = cstringIn(ch.Payload, off)
			}
			scriptNumber--
		}
	}

	if ch, ok := firstChunk(c.Chunks, "FUNC"); ok {
		const entrySize = 1 + 1 + 1 + 1 + 4
		count := len(ch.Payload) / entrySize
		for i := 0; i < count; i++ {
			base := i * entrySize
			params := int(ch.Payload[base])
			size := int(ch.Payload[base+1])
			value := ch.Payload[base+2]
			offset := int(le32(ch.Payload[base+4:]))

			fn := &object.Function{
				Kind:       object.FuncUser,
				Index:      i,
				ParamCount: params,
				VarCount:   params + size,
			}
			if fn.VarCount > 0 {
				fn.Vars = make([]*object.Variable, fn.VarCount)
			}
			_ = value // return-value flag unused: lang/emit infers the return type from the recovered body; not needed structurally here
			c.Functions.Append(fn)
			e := &objEntry{offset: offset, fn: fn}
			entries = append(entries, e)
			funcsByIndex[i] = e
		}
	}

	if ch, ok := firstChunk(c.Chunks, "FNAM"); ok && len(ch.Payload) >= 4 {
		count := int(le32(ch.Payload))
		for i := 0; i < count && i < c.Functions.Len(); i++ {
			pos := 4 + i*4
			if pos+4 > len(ch.Payload) {
				break
			}
			off := int(le32(ch.Payload[pos:]))
			c.Functions.At(i).Name = cstringIn(ch.Payload, off)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })
	lastEnd := legacyEndOffset(r, directoryOffset)
	for i, e := range entries {
		if i+1 < len(entries) {
			e.endOffset = entries[i+1].offset
		} else {
			e.endOffset = lastEnd
		}
	}

	return scriptsByNumber, funcsByIndex, entries
}

// legacyEndOffset reads the backward-compatibility zero-era-shaped header
// every chunk-based file still carries at its directory offset: a count
// followed by (number, offset, num_param) entries. Only the first entry's
// offset is needed, as the bound for the last script/function body.
func legacyEndOffset(r *reader, directoryOffset int) int {
	save := r.pos
	defer func() { r.pos = save }()

	r.seek(directoryOffset)
	count := int(r.i32())
	if count <= 0 {
		return directoryOffset
	}
	r.u32() // number
	return int(r.u32())
}

func cstringIn(data []byte, pos int) string {
	end := pos
	for end < len(data) && data[end] != 0 {
		end++
	}
	return string(data[pos:end])
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
