package loader

import (
	"path/filepath"
	"strings"

	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// readLibraryMetadata decodes the chunks that describe how this module
// relates to other modules and to the game's own string/variable typing:
// MEXP (this module's map-variable exports, marking it as a library other
// modules can import), LOAD (the list of libraries this module imports),
// MIMP/AIMP (map variables imported from another library, scalar and
// array), MSTR/ASTR (map variables carrying string-typed values).
//
// MEXP presence is what flips Importable, and the library's own name is
// never stored in the object file -- it is the input file's base name
// without its extension, derived from the object file path the tool was
// invoked with.
func readLibraryMetadata(c *object.Container, r *reader, sink *diag.Sink) {
	readMexp(c, r, sink)
	readLoad(c, r, sink)
	readMimp(c, r, sink)
	readAimp(c, r, sink)
	readMstr(c, r, sink)
	readAstr(c, r, sink)

	c.Compact = c.Variant == object.VariantLittleE
	_, encrypted := firstChunk(c.Chunks, "STRE")
	c.EncryptStrings = encrypted

	numScripts := c.Scripts.Len()
	if !c.Importable && numScripts > 0 {
		c.WadAuthor = true
	}
}

func reserveMapVarNamed(c *object.Container, index int) (*object.Variable, bool) {
	if index < 0 || index >= len(c.MapVars) {
		return nil, false
	}
	return reserveMapVar(c, index), true
}

func readMexp(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "MEXP")
	if !ok {
		return
	}
	if len(ch.Payload) < 4 {
		diag.Bail(diagError, r.at(ch.Offset), "MEXP chunk is smaller than its entry-count header")
	}
	count := int(le32(ch.Payload))
	const entrySize = 4
	for i := 0; i < count; i++ {
		base := 4 + i*entrySize
		if base+entrySize > len(ch.Payload) {
			break
		}
		off := int(le32(ch.Payload[base:]))
		v, ok := reserveMapVarNamed(c, i)
		if !ok {
			continue
		}
		if off != 0 && off < len(ch.Payload) {
			v.Name = cstringIn(ch.Payload, off)
		}
	}
	c.Importable = true
	if base := filepath.Base(r.file); base != "." && base != "/" {
		ext := filepath.Ext(base)
		c.LibraryName = strings.TrimSuffix(base, ext)
	}
}

func readLoad(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "LOAD")
	if !ok {
		return
	}
	start := 0
	for i, b := range ch.Payload {
		if b == 0 {
			if i > start {
				c.Imports = append(c.Imports, string(ch.Payload[start:i]))
			}
			start = i + 1
		}
	}
}

func readMimp(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "MIMP")
	if !ok {
		return
	}
	p := ch.Payload
	i := 0
	for i+4 <= len(p) {
		index := int(le32(p[i:]))
		i += 4
		start := i
		for i < len(p) && p[i] != 0 {
			i++
		}
		v, ok := reserveMapVarNamed(c, index)
		if ok {
			v.Name = string(p[start:i])
			v.Imported = true
		}
		i++ // skip NUL
	}
}

func readAimp(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "AIMP")
	if !ok {
		return
	}
	p := ch.Payload
	if len(p) < 4 {
		return
	}
	i := 4 // skip the leading count field
	for i+8 <= len(p) {
		index := int(le32(p[i:]))
		i += 4
		size := int(le32(p[i:]))
		i += 4
		start := i
		for i < len(p) && p[i] != 0 {
			i++
		}
		v, ok := reserveMapVarNamed(c, index)
		if ok {
			v.Name = string(p[start:i])
			v.Array = true
			v.Dim = size
			v.Imported = true
		}
		i++
	}
}

func readMstr(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "MSTR")
	if !ok {
		return
	}
	p := ch.Payload
	count := len(p) / 4
	for i := 0; i < count; i++ {
		index := int(le32(p[i*4:]))
		if v, ok := reserveMapVarNamed(c, index); ok {
			v.Type = object.VarStr
		}
	}
}

// readAstr marks map variables whose stored initializer values are string
// references, folded into the same Type field MSTR sets since
// object.Variable does not track a separate per-initializer type.
func readAstr(c *object.Container, r *reader, sink *diag.Sink) {
	ch, ok := firstChunk(c.Chunks, "ASTR")
	if !ok {
		return
	}
	p := ch.Payload
	count := len(p) / 4
	for i := 0; i < count; i++ {
		index := int(le32(p[i*4:]))
		if v, ok := reserveMapVarNamed(c, index); ok {
			v.Type = object.VarStr
		}
	}
}
