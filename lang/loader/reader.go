// Package loader implements the first pipeline stage: decoding a raw
// object-file byte buffer into a lang/object.Container with every script
// and function body turned into a linked instruction sequence, jump
// pointers patched, and the string/variable/import metadata populated.
package loader

import (
	"encoding/binary"

	"github.com/mna/unacs/internal/diag"
)

// reader is a small bounds-checked cursor over the object-file buffer. Any
// out-of-bounds read is a fatal diagnostic via diag.Bail rather than a
// returned error, matching the rest of this package's use of diag.Bail for
// every unrecoverable condition (truncated reads, bad magic, bad offsets).
type reader struct {
	data []byte
	pos  int
	file string
}

func newReader(file string, data []byte) *reader {
	return &reader{data: data, file: file}
}

func (r *reader) at(pos int) Position { return Position{File: r.file, Offset: pos} }

func (r *reader) need(n int) {
	if r.pos < 0 || r.pos+n > len(r.data) {
		diag.Bail(diagError, r.at(r.pos), "unexpected end of file (need %d bytes at offset 0x%x)", n, r.pos)
	}
}

func (r *reader) seek(pos int) {
	if pos < 0 || pos > len(r.data) {
		diag.Bail(diagError, r.at(pos), "offset 0x%x is outside the file", pos)
	}
	r.pos = pos
}

func (r *reader) u8() byte {
	r.need(1)
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *reader) u16() uint16 {
	r.need(2)
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u32() uint32 {
	r.need(4)
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) i32() int32 { return int32(r.u32()) }

func (r *reader) bytes(n int) []byte {
	r.need(n)
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) tag() string { return string(r.bytes(4)) }

// cstring reads a NUL-terminated string starting at pos, without moving the
// cursor. Fatal if no terminator is found before the end of the buffer.
func (r *reader) cstring(pos int) string {
	if pos < 0 || pos > len(r.data) {
		diag.Bail(diagError, r.at(pos), "string offset 0x%x is outside the file", pos)
	}
	end := pos
	for end < len(r.data) && r.data[end] != 0 {
		end++
	}
	if end >= len(r.data) {
		diag.Bail(diagError, r.at(pos), "unterminated string at offset 0x%x", pos)
	}
	return string(r.data[pos:end])
}

func (r *reader) eof() bool { return r.pos >= len(r.data) }
