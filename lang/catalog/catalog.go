// Package catalog is the declarative table of built-in functions: dedicated
// functions (each identified by an opcode of its own), action specials
// (identified by a numeric ID and invoked via the LSPEC* opcode family),
// extension functions (identified by an ID and invoked via CALLFUNC),
// format functions (the print-family built-ins, identified by their
// terminating opcode) and internal functions (synthetic entries for
// recognized two-instruction idioms such as ACS_Execute+ScriptWait).
//
// Names, format strings and numeric IDs follow the well-known built-in
// function and action-special/extension-function numbering of the
// scripting language's standard library. The full historical tables
// (hundreds of action specials and extension functions across the
// ecosystem) are abbreviated to a representative subset: see DESIGN.md for
// the scoping rationale. The mechanism (one table per kind, looked up by ID
// or opcode) is complete; growing a table is a matter of appending rows.
package catalog

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"

	"github.com/mna/unacs/lang/opcode"
)

// ParamType is one character of a format string: the type of a single
// parameter (or of the return value, when it is the first character).
type ParamType byte

const (
	TypeInt   ParamType = 'i'
	TypeRaw   ParamType = 'r'
	TypeFixed ParamType = 'f'
	TypeBool  ParamType = 'b'
	TypeStr   ParamType = 's'
	TypeVoid  ParamType = 0
)

// Signature is a parsed format string: "[<return>] [; <required> [;
// <optional>]]".
type Signature struct {
	Return            ParamType
	Required, Optional []ParamType
}

// TotalParams is the number of stack slots a call to this signature
// consumes: this decompiler's loader/recoverer assume that
// the compiler that produced the bytecode always pushed every optional
// argument too, defaulted or not, so recovery always pops Required+Optional
// values.
func (s Signature) TotalParams() int { return len(s.Required) + len(s.Optional) }

// ParseFormat parses a built-in function's format string into a Signature.
func ParseFormat(format string) Signature {
	var sig Signature
	parts := strings.SplitN(format, ";", 3)
	if len(parts[0]) > 0 {
		sig.Return = ParamType(parts[0][0])
	}
	if len(parts) > 1 {
		for i := 0; i < len(parts[1]); i++ {
			sig.Required = append(sig.Required, ParamType(parts[1][i]))
		}
	}
	if len(parts) > 2 {
		for i := 0; i < len(parts[2]); i++ {
			sig.Optional = append(sig.Optional, ParamType(parts[2][i]))
		}
	}
	return sig
}

// Dedicated describes one dedicated function: a built-in whose identity is
// an opcode of its own.
type Dedicated struct {
	Name   string
	Format string
	Sig    Signature
	Op     opcode.Opcode
}

// ActionSpecial describes one action special: a game-provided function
// identified by a small integer ID and invoked via the LSPEC* opcodes.
type ActionSpecial struct {
	ID     int
	Name   string
	Format string
	Sig    Signature
}

// Extension describes one extension function: invoked via the generic
// CALLFUNC opcode and distinguished by a numeric ID.
type Extension struct {
	ID     int
	Name   string
	Format string
	Sig    Signature
}

// FormatFunc describes one print-family built-in (Print, PrintBold,
// HudMessage, HudMessageBold, Log, StrParam), whose identity is its
// terminating opcode. Sig describes the positional arguments trailing the
// format items themselves (after a MOREHUDMESSAGE marker, for the
// HudMessage variants; StrParam's Sig carries only its string return type;
// the others take no trailing positional arguments).
type FormatFunc struct {
	Name   string
	Format string
	Sig    Signature
	End    opcode.Opcode
}

// InternKind identifies a recognized two-instruction idiom synthesized by
// the annotator into a single call.
type InternKind int

const (
	InternACSExecuteWait InternKind = iota
	InternACSNamedExecuteWait
)

// Intern describes one synthetic internal function.
type Intern struct {
	Kind InternKind
	Name string
}

var (
	dedicated      []*Dedicated
	dedicatedByOp  = map[opcode.Opcode]*Dedicated{}
	actionSpecials []*ActionSpecial
	aspecByID      = swiss.NewMap[int, *ActionSpecial](256)
	extensions     []*Extension
	extByID        = swiss.NewMap[int, *Extension](256)
	formatFuncs    []*FormatFunc
	formatByOp     = map[opcode.Opcode]*FormatFunc{}
	interns        = map[InternKind]*Intern{
		InternACSExecuteWait:      {Kind: InternACSExecuteWait, Name: "ACS_ExecuteWait"},
		InternACSNamedExecuteWait: {Kind: InternACSNamedExecuteWait, Name: "ACS_NamedExecuteWait"},
	}
)

// ASPECExecute is the action special ID of ACS_Execute, the special that,
// called through an LSPEC* opcode and immediately followed by a call to the
// ScriptWait dedicated function, the annotator recognizes as the
// ACS_ExecuteWait idiom.
const ASPECExecute = 80

// ExtFuncNamedExecute is the extension-function ID of ACS_NamedExecute,
// which, called through CALLFUNC and immediately followed by a DROP and a
// call to the ScriptWaitNamed dedicated function, the annotator recognizes
// as the ACS_NamedExecuteWait idiom.
const ExtFuncNamedExecute = 39

func addDedicated(name, format string) *Dedicated {
	sig := ParseFormat(format)
	stack := opcode.StackEffect{Pop: sig.TotalParams(), Push: 0}
	if sig.Return != TypeVoid {
		stack.Push = 1
	}
	op := opcode.Register("DED_"+name, stack)
	d := &Dedicated{Name: name, Format: format, Sig: sig, Op: op}
	dedicated = append(dedicated, d)
	dedicatedByOp[op] = d
	return d
}

func addActionSpecial(id int, name, format string) {
	a := &ActionSpecial{ID: id, Name: name, Format: format, Sig: ParseFormat(format)}
	actionSpecials = append(actionSpecials, a)
	aspecByID.Put(id, a)
}

func addExtension(id int, name, format string) {
	e := &Extension{ID: id, Name: name, Format: format, Sig: ParseFormat(format)}
	extensions = append(extensions, e)
	extByID.Put(id, e)
}

func addFormatFunc(name, format string, end opcode.Opcode) {
	f := &FormatFunc{Name: name, Format: format, Sig: ParseFormat(format), End: end}
	formatFuncs = append(formatFuncs, f)
	formatByOp[end] = f
}

// DedicatedByOp looks up a dedicated function by its opcode.
func DedicatedByOp(op opcode.Opcode) (*Dedicated, bool) {
	d, ok := dedicatedByOp[op]
	return d, ok
}

// DedicatedByName looks up a dedicated function by name: used by
// lang/recover for the DELAYDIRECTB/RANDOMDIRECTB literal-argument variants,
// which carry their arguments inline rather than through Delay/Random's own
// opcode.
func DedicatedByName(name string) (*Dedicated, bool) {
	for _, d := range dedicated {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// ActionSpecialByID looks up an action special by its numeric ID. ok is
// false for IDs outside the table, in which case the recoverer builds an
// unknown-special callee identified only by its numeric ID.
func ActionSpecialByID(id int) (*ActionSpecial, bool) {
	return aspecByID.Get(id)
}

// ExtensionByID looks up an extension function by its numeric ID.
func ExtensionByID(id int) (*Extension, bool) {
	return extByID.Get(id)
}

// FormatFuncByEnd looks up a format function by its terminating opcode.
func FormatFuncByEnd(op opcode.Opcode) (*FormatFunc, bool) {
	f, ok := formatByOp[op]
	return f, ok
}

// InternByKind looks up a synthetic internal function.
func InternByKind(k InternKind) *Intern { return interns[k] }

// AllDedicated returns the full dedicated-function table, sorted by name.
func AllDedicated() []*Dedicated {
	out := slices.Clone(dedicated)
	slices.SortFunc(out, func(a, b *Dedicated) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// AllActionSpecials returns the full action-special table, sorted by ID.
func AllActionSpecials() []*ActionSpecial {
	out := slices.Clone(actionSpecials)
	slices.SortFunc(out, func(a, b *ActionSpecial) int { return a.ID - b.ID })
	return out
}

// AllExtensions returns the full extension-function table, sorted by ID.
func AllExtensions() []*Extension {
	out := slices.Clone(extensions)
	slices.SortFunc(out, func(a, b *Extension) int { return a.ID - b.ID })
	return out
}

func init() {
	buildDedicated()
	buildActionSpecials()
	buildExtensions()
	buildFormatFuncs()
	checkConsistency()
}

// checkConsistency is a startup self-check: a catalog that can't describe
// itself consistently is a bug in the decompiler, not in the input, so it
// panics rather than returning a recoverable diagnostic -- there is no
// input yet to attach the diagnostic to.
func checkConsistency() {
	seen := map[int]string{}
	for _, a := range actionSpecials {
		if prev, ok := seen[a.ID]; ok {
			panic(fmt.Sprintf("internal error: action special ID %d used by both %q and %q", a.ID, prev, a.Name))
		}
		seen[a.ID] = a.Name
	}
	seen = map[int]string{}
	for _, e := range extensions {
		if prev, ok := seen[e.ID]; ok {
			panic(fmt.Sprintf("internal error: extension function ID %d used by both %q and %q", e.ID, prev, e.Name))
		}
		seen[e.ID] = e.Name
	}
}
