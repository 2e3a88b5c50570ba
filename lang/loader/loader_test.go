package loader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/catalog"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

func putLE32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func putLE16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

// TestLoadBigEMinimal decodes a hand-built minimal ACSE object: one closed
// script whose body is "PUSHNUMBER 42; LSPEC1 1", action special 1 being
// Polyobj_StartLine. The chunk region starts
// with a dummy, unrecognized-tag chunk whose three leading 4-byte fields
// double as the legacy zero-era-shaped trailer every chunk-based file
// carries at its directory offset (see legacyEndOffset in directory.go):
// this lets a minimal single-script fixture pin that trailer's "end
// offset" field to the body's real end without needing a second object to
// derive it from.
func TestLoadBigEMinimal(t *testing.T) {
	pushNumber := opcode.ByName("PUSHNUMBER").Op
	lspec1 := opcode.ByName("LSPEC1").Op

	var buf []byte
	buf = append(buf, "ACSE"...)
	buf = putLE32(buf, 24) // chunk/directory offset

	// body, file offset 8..24
	buf = putLE32(buf, uint32(pushNumber))
	buf = putLE32(buf, 42)
	buf = putLE32(buf, uint32(lspec1))
	buf = putLE32(buf, 1) // action special ID

	// dummy chunk, file offset 24..36: tag/size/payload double as the
	// legacy trailer's count=1, number=4 (unused) and end-offset=24.
	buf = putLE32(buf, 1)
	buf = putLE32(buf, 4)
	buf = putLE32(buf, 24)

	// SPTR chunk, file offset 36..52: one entry, number=1, type=closed,
	// numParam=0, offset=8.
	buf = append(buf, "SPTR"...)
	buf = putLE32(buf, 8)
	buf = putLE16(buf, 1)
	buf = append(buf, 0, 0)
	buf = putLE32(buf, 8)

	c, diags, fatal := Load("minimal.acs", buf)
	require.Nil(t, fatal)
	require.Empty(t, diags)
	require.Equal(t, object.VariantBigE, c.Variant)
	require.Equal(t, 1, c.Scripts.Len())

	sc := c.Scripts.At(0)
	require.Equal(t, 1, sc.Number)
	require.Equal(t, object.ScriptClosed, sc.Type)
	require.Equal(t, 0, sc.ParamCount)

	push := sc.BodyStart
	require.Equal(t, pushNumber, push.Op)
	require.Equal(t, object.InstGeneric, push.Class)
	require.Equal(t, []int32{42}, push.Args)

	lspec := push.Next
	require.NotNil(t, lspec)
	require.Equal(t, lspec1, lspec.Op)
	require.Equal(t, object.InstGeneric, lspec.Class)
	require.Equal(t, []int32{1}, lspec.Args)

	term := lspec.Next
	require.Same(t, sc.BodyEnd, term)
	require.True(t, term.IsSentinel())
	require.Equal(t, 24, term.Pos)

	aspec, ok := catalog.ActionSpecialByID(int(lspec.Args[0]))
	require.True(t, ok)
	require.Equal(t, "Polyobj_StartLine", aspec.Name)
}

// TestLoadZeroEraMinimal decodes a hand-built minimal zero-era object: the
// flat (count, then (packed, offset, numParam) triples) directory this
// format uses instead of chunks, one closed script whose body offset
// points past the end of the file -- an empty body, immediately
// terminated, exercising format discrimination and directory decoding
// without also having to pin down this format's string-table offset
// arithmetic (see loadZero's own doc comment in zero.go).
func TestLoadZeroEraMinimal(t *testing.T) {
	var buf []byte
	buf = append(buf, "ACS\x00"...)
	buf = putLE32(buf, 8) // directory offset

	buf = putLE32(buf, 1) // numScripts
	buf = putLE32(buf, 1) // packed: type=0 (closed) * 1000 + number 1
	buf = putLE32(buf, 24) // body offset: past the end of the file
	buf = putLE32(buf, 0)  // numParam

	require.Len(t, buf, 24)

	c, diags, fatal := Load("minimal-zero.acs", buf)
	require.Nil(t, fatal)
	require.Empty(t, diags)
	require.Equal(t, object.VariantZero, c.Variant)
	require.Equal(t, 1, c.Scripts.Len())

	sc := c.Scripts.At(0)
	require.Equal(t, 1, sc.Number)
	require.Equal(t, object.ScriptClosed, sc.Type)
	require.Equal(t, 0, sc.ParamCount)
	require.Len(t, sc.Vars, object.DefaultVarCapacity)

	require.Same(t, sc.BodyStart, sc.BodyEnd)
	require.True(t, sc.BodyStart.IsSentinel())
	require.Equal(t, 24, sc.BodyStart.Pos)
	require.Empty(t, c.Strings)
}

// TestLoadTruncatedStringIsFatal decodes an ACSE object whose only chunk is
// a STRL string table with one offset entry pointing at a string that runs
// off the end of the chunk without ever hitting a NUL terminator. Loading
// must report this as a fatal diagnostic rather than silently returning the
// partial bytes (see readChunkString in strings.go).
func TestLoadTruncatedStringIsFatal(t *testing.T) {
	var buf []byte
	buf = append(buf, "ACSE"...)
	buf = putLE32(buf, 8) // chunk/directory offset

	// STRL chunk, file offset 8..34: three header words (unused, count=1,
	// unused), one offset entry pointing at payload offset 16, then "AB"
	// with no terminating NUL byte before the payload runs out.
	buf = append(buf, "STRL"...)
	buf = putLE32(buf, 18) // chunk size
	buf = putLE32(buf, 0)  // unused header word
	buf = putLE32(buf, 1)  // string count
	buf = putLE32(buf, 0)  // unused header word
	buf = putLE32(buf, 16) // offset of the lone string, relative to the payload
	buf = append(buf, 'A', 'B')

	_, _, fatal := Load("truncated.acs", buf)
	require.NotNil(t, fatal)
	require.Contains(t, fatal.Msg, "unterminated string")
	require.Contains(t, fatal.Msg, "STRL")
}
