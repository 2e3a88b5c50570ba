package emit

import (
	"fmt"
	"io"
)

// indentUnit is the emitter's indent string: three spaces per level.
const indentUnit = "   "

// printer carries the output stream and the small amount of line-layout
// state (current indent depth, whether the cursor still sits at column
// zero) every print call needs; it writes eagerly rather than building an
// intermediate string tree.
type printer struct {
	w      io.Writer
	depth  int
	atBOL  bool
	err    error
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// raw writes s verbatim, emitting the current indent first if the cursor is
// at the beginning of a line.
func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	if p.atBOL {
		for i := 0; i < p.depth; i++ {
			if _, err := io.WriteString(p.w, indentUnit); err != nil {
				p.fail(err)
				return
			}
		}
		p.atBOL = false
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.fail(err)
	}
}

func (p *printer) printf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

func (p *printer) newline() {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, "\n"); err != nil {
		p.fail(err)
		return
	}
	p.atBOL = true
}

func (p *printer) indent() { p.depth++ }
func (p *printer) dedent() { p.depth-- }

// line prints s followed by a newline, at the current indent.
func (p *printer) line(format string, args ...any) {
	p.printf(format, args...)
	p.newline()
}
