package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

const stringEncryptionConstant = 157135

// readStrings decodes the STRL (plaintext) or STRE (encrypted) string
// table: a 3-word header (the middle word is the string count), that many
// 4-byte chunk-relative offsets, then the strings themselves, inline,
// NUL-terminated. STRE additionally XOR-encrypts every byte with a running
// key derived from the string's own chunk offset and the byte's position
// within it.
func readStrings(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "STRL")
	encrypted := false
	if !ok {
		ch, ok = firstChunk(c.Chunks, "STRE")
		if !ok {
			return
		}
		encrypted = true
	}

	p := ch.Payload
	if len(p) < 12 {
		diag.Bail(diagError, r.at(ch.Offset), "%s chunk is smaller than its string-count header", ch.Tag)
	}
	count := int(le32(p[4:]))
	if 12+count*4 > len(p) {
		diag.Bail(diagError, r.at(ch.Offset+12),"%s chunk gives %d string offsets but is too small to contain that many", ch.Tag, count)
	}

	c.Strings = make([]string, count)
	for i := 0; i < count; i++ {
		off := int(le32(p[12+i*4:]))
		if off < 0 || off >= len(p) {
			diag.Bail(diagError, r.at(ch.Offset+12+i*4),"string offset in position %d of %s chunk points outside of chunk data range", i, ch.Tag)
		}
		c.Strings[i] = readChunkString(r, ch.Offset, p, off, encrypted, ch.Tag)
	}
}

// readChunkString decodes the NUL-terminated (and, for STRE, XOR-encrypted)
// string starting at the chunk-relative offset off. Fatal if the chunk runs
// out before a terminator is found, the same way reader.cstring bails on an
// unterminated zero-era string.
func readChunkString(r *reader, chunkOffset int, p []byte, off int, encrypted bool, tag string) string {
	buf := make([]byte, 0, 16)
	pos := off
	for ; pos < len(p); pos++ {
		b := p[pos]
		if encrypted {
			key := stringEncryptionConstant*uint32(off) + uint32(pos-off)/2
			b = byte(uint32(b) ^ key)
		}
		if b == 0 {
			return string(buf)
		}
		buf = append(buf, b)
	}
	diag.Bail(diagError, r.at(chunkOffset+off), "unterminated string at offset %d of %s chunk", off, tag)
	return ""
}
