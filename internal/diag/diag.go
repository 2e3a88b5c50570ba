// Package diag implements the decompiler's diagnostic reporting. It mirrors
// the shape of the standard library's go/scanner.Error/ErrorList but adds
// the one field stdlib's type lacks: a Severity, since this pipeline must
// distinguish fatal errors from warnings and notes that let the run
// continue.
package diag

import (
	"fmt"
	"io"
	"sort"
)

// Severity classifies a Diagnostic by how the pipeline should react to it.
type Severity int

const (
	// Error is fatal: the run that produced it must abort.
	Error Severity = iota
	// Warning is non-fatal: printed, and the pipeline continues.
	Warning
	// Note is attached to a preceding diagnostic and never stands alone.
	Note
	// Internal indicates a bug in the decompiler itself, not the input. Always
	// fatal.
	Internal
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Position locates a diagnostic in the input object file. Offset is the
// absolute byte offset into the file; a negative value means unknown.
type Position struct {
	File   string
	Offset int
}

func (p Position) String() string {
	if p.Offset < 0 {
		return p.File
	}
	return fmt.Sprintf("%s:0x%x", p.File, p.Offset)
}

// Diagnostic is a single reported condition.
type Diagnostic struct {
	Pos Position
	Sev Severity
	Msg string
}

func (d Diagnostic) Error() string {
	prefix := d.Sev.String() + ": "
	if d.Sev == Internal {
		prefix = "internal error: "
	}
	if d.Pos.File == "" {
		return prefix + d.Msg
	}
	return fmt.Sprintf("%s: %s%s", d.Pos, prefix, d.Msg)
}

// List collects diagnostics in the order they were reported. It implements
// error so a *List can be returned and checked with a plain `!= nil` the
// same way go/scanner.ErrorList is used.
type List []*Diagnostic

// Add appends a diagnostic to the list.
func (l *List) Add(pos Position, sev Severity, format string, args ...any) {
	*l = append(*l, &Diagnostic{Pos: pos, Sev: sev, Msg: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether the list contains any Error or Internal
// severity diagnostic.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Sev == Error || d.Sev == Internal {
			return true
		}
	}
	return false
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more diagnostics)", l[0], len(l)-1)
	}
}

// Sort orders the list by file offset, matching go/scanner.ErrorList.Sort's
// contract of a stable, position-ordered listing.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Pos.Offset < l[j].Pos.Offset
	})
}

// PrintError prints every diagnostic in the list (or a single error) to w,
// one per line, in `position: severity: message` form.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(List); ok {
		for _, d := range list {
			fmt.Fprintln(w, d.Error())
		}
		return
	}
	fmt.Fprintln(w, err)
}

// Bailout is the payload of the non-local unwind a fatal diagnostic
// triggers. It is only ever panicked and recovered within Run, never
// observed outside this package.
type Bailout struct {
	Diag *Diagnostic
}

// Bail reports a fatal diagnostic (Error or Internal severity) and unwinds
// the current pipeline stage non-locally: it panics with a Bailout, which
// Run recovers. Calling Bail with a non-fatal severity is a bug in the
// caller and is itself promoted to Internal.
func Bail(sev Severity, pos Position, format string, args ...any) {
	if sev != Error && sev != Internal {
		sev = Internal
	}
	d := &Diagnostic{Pos: pos, Sev: sev, Msg: fmt.Sprintf(format, args...)}
	panic(Bailout{Diag: d})
}

// Run executes fn, which may call Bail to abort. It returns the diagnostic
// list accumulated by fn (via the Sink passed to it, see NewSink) plus the
// fatal diagnostic if fn bailed out. Any panic that isn't a Bailout is
// re-panicked: Run only catches the control-flow idiom this package defines,
// never an unrelated bug.
func Run(fn func(*Sink)) (diags List, fatal *Diagnostic) {
	sink := &Sink{}
	defer func() {
		if r := recover(); r != nil {
			bo, ok := r.(Bailout)
			if !ok {
				panic(r)
			}
			diags = sink.list
			fatal = bo.Diag
		}
	}()
	fn(sink)
	return sink.list, nil
}

// Sink accumulates non-fatal diagnostics (warnings and notes) reported
// during a Run. Fatal diagnostics never pass through a Sink: they go
// straight through Bail's panic/recover path.
type Sink struct {
	list List
}

// Warn reports a warning.
func (s *Sink) Warn(pos Position, format string, args ...any) {
	s.list.Add(pos, Warning, format, args...)
}

// Notef attaches a note to the diagnostic stream.
func (s *Sink) Notef(pos Position, format string, args ...any) {
	s.list.Add(pos, Note, format, args...)
}

// List returns the diagnostics collected so far.
func (s *Sink) List() List { return s.list }
