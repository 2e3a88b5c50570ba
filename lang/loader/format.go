package loader

import (
	"github.com/mna/unacs/internal/diag"
	"github.com/mna/unacs/lang/object"
)

// Position locates a byte offset in the object file being loaded.
type Position = diag.Position

const diagError = diag.Error

// Load decodes a raw object-file buffer into a Container, running the
// format discrimination, chunk/zero-era directory reading, instruction
// decoding and jump-patching passes described by this package. Fatal
// conditions abort via diag.Bail and are returned as the second result;
// non-fatal conditions accumulate in the returned diag.List.
func Load(file string, data []byte) (c *object.Container, diags diag.List, fatal *diag.Diagnostic) {
	diags, fatal = diag.Run(func(sink *diag.Sink) {
		c = load(file, data, sink)
	})
	return c, diags, fatal
}

func load(file string, data []byte, sink *diag.Sink) *object.Container {
	r := newReader(file, data)
	if len(data) < 8 {
		diag.Bail(diagError, r.at(0), "file too small to contain a header")
	}

	magic := string(data[:4])
	offset := int(int32(leU32(data[4:8])))

	switch magic {
	case "ACSE", "ACSe":
		variant := object.VariantBigE
		if magic == "ACSe" {
			variant = object.VariantLittleE
		}
		c := object.NewContainer(variant, data)
		loadChunked(c, r, offset, len(data), sink)
		return c
	case "ACS\x00":
		if offset >= 4 && offset-4+4 <= len(data) {
			tailMagic := string(data[offset-4 : offset])
			if tailMagic == "ACSE" || tailMagic == "ACSe" {
				if offset < 8 {
					diag.Bail(diagError, r.at(offset), "indirect chunk offset too small to hold its own pointer")
				}
				chunkOff := int(int32(leU32(data[offset-8 : offset-4])))
				variant := object.VariantBigE
				if tailMagic == "ACSe" {
					variant = object.VariantLittleE
				}
				c := object.NewContainer(variant, data)
				loadChunked(c, r, chunkOff, offset-8, sink)
				return c
			}
		}
		c := object.NewContainer(object.VariantZero, data)
		loadZero(c, r, offset, sink)
		return c
	default:
		diag.Bail(diagError, r.at(0), "unrecognized magic %q", magic)
		return nil
	}
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
