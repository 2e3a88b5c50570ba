package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSinkWarnAndNote(t *testing.T) {
	var diags List
	fn := func(s *Sink) {
		s.Warn(Position{File: "a.o", Offset: 4}, "widening array dimension to %d", 8)
		s.Notef(Position{File: "a.o", Offset: 4}, "declared dimension was %d", 4)
	}
	out, fatal := Run(fn)
	diags = out
	require.Nil(t, fatal)
	require.Len(t, diags, 2)
	require.Equal(t, Warning, diags[0].Sev)
	require.Equal(t, Note, diags[1].Sev)
}

func TestBailUnwindsToRun(t *testing.T) {
	diags, fatal := Run(func(s *Sink) {
		s.Warn(Position{File: "a.o"}, "a recoverable issue")
		Bail(Error, Position{File: "a.o", Offset: 16}, "bad magic")
		t.Fatal("unreachable after Bail")
	})
	require.NotNil(t, fatal)
	require.Equal(t, Error, fatal.Sev)
	require.Contains(t, fatal.Error(), "bad magic")

	// warnings reported before the bail are not lost
	require.Len(t, diags, 1)
	require.Equal(t, Warning, diags[0].Sev)
}

func TestBailDemotesBadSeverity(t *testing.T) {
	_, fatal := Run(func(s *Sink) {
		Bail(Warning, Position{}, "oops")
	})
	require.NotNil(t, fatal)
	require.Equal(t, Internal, fatal.Sev)
}

func TestPrintErrorList(t *testing.T) {
	var l List
	l.Add(Position{File: "a.o", Offset: 1}, Error, "bad opcode %d", 99)
	l.Add(Position{File: "a.o", Offset: 2}, Warning, "unknown flag bit")

	var buf bytes.Buffer
	PrintError(&buf, l)
	require.Equal(t, "a.o:0x1: error: bad opcode 99\na.o:0x2: warning: unknown flag bit\n", buf.String())
}

func TestListHasErrors(t *testing.T) {
	var l List
	require.False(t, l.HasErrors())
	l.Add(Position{}, Warning, "x")
	require.False(t, l.HasErrors())
	l.Add(Position{}, Internal, "y")
	require.True(t, l.HasErrors())
}
