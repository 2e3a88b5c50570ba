package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// loadZero reads the earliest object format: a flat directory of
// (packed-number, offset, param-count) triples at the header's offset,
// immediately followed by the string table -- no chunks, no script/function
// names, no map/world/global variable metadata beyond what bodies reference
// directly.
//
// A script's packed `number` field holds `type*1000 + number`, and every
// script gets a fixed 20-slot local variable table (object.DefaultVarCapacity)
// since there is no SVCT-equivalent chunk to override it in this format.
func loadZero(c *object.Container, r *reader, directoryOffset int, sink *diag.Sink) {
	r.seek(directoryOffset)
	numScripts := int(r.i32())
	if numScripts < 0 {
		diag.Bail(diagError, r.at(directoryOffset), "zero-era directory declares a negative script count")
	}

	type zeroEntry struct {
		offset int
		script *object.Script
	}
	var entries []zeroEntry
	for i := 0; i < numScripts; i++ {
		packed := int(r.i32())
		offset := int(r.i32())
		numParam := int(r.i32())

		sc := &object.Script{
			Number:     packed % 1000,
			Type:       object.ScriptType(packed / 1000),
			ParamCount: numParam,
			Vars:       make([]*object.Variable, object.DefaultVarCapacity),
		}
		c.Scripts.Append(sc)
		entries = append(entries, zeroEntry{offset: offset, script: sc})
	}

	stringOffset := r.pos
	firstStringOffset := stringOffset
	if numStrings := peekZeroStringCount(r, stringOffset); numStrings > 0 {
		firstStringOffset = int(leU32(r.data[stringOffset+4:]))
	}

	// Body ranges: each script's body runs to the next script's offset (the
	// directory is built in file order already); the last script's body runs
	// to the first string's absolute offset, or to the end of the directory
	// entries (where the string table starts) if the module declares no
	// strings.
	var objEntries []*objEntry
	for i, e := range entries {
		end := firstStringOffset
		if i+1 < len(entries) {
			end = entries[i+1].offset
		}
		objEntries = append(objEntries, &objEntry{offset: e.offset, endOffset: end, script: e.script})
	}
	readBodies(c, r, objEntries, sink)

	readZeroStrings(c, r, stringOffset, sink)

	patchJumps(c, r, sink)
}

// peekZeroStringCount reads the zero-era string table's leading count
// without disturbing the reader's position.
func peekZeroStringCount(r *reader, stringOffset int) int {
	if stringOffset+4 > len(r.data) {
		return 0
	}
	return int(leU32(r.data[stringOffset:]))
}

// readZeroStrings decodes the zero-era string table: a count, that many
// 4-byte absolute file offsets, then the strings themselves inline,
// NUL-terminated, unencrypted.
func readZeroStrings(c *object.Container, r *reader, stringOffset int, sink *diag.Sink) {
	r.seek(stringOffset)
	if r.eof() {
		return
	}
	count := int(r.i32())
	if count < 0 || count > (len(r.data)-r.pos)/4 {
		diag.Bail(diagError, r.at(stringOffset), "string table declares %d strings, more than the rest of the file can hold", count)
	}
	c.Strings = make([]string, count)
	for i := 0; i < count; i++ {
		off := int(r.i32())
		c.Strings[i] = r.cstring(off)
	}
}
