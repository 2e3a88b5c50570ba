// Package object is the in-memory data model a loaded object file is
// decoded into: the container, its chunks, the instruction sequence
// (pcode), the notes the annotator attaches to it, and the script,
// function and variable directories. Instructions and notes are allocated
// from arenas owned by the Container and live for the lifetime of one
// decompilation run; scripts, functions and variables are ordinary heap
// values.
package object

import (
	"github.com/mna/unacs/internal/arena"
	"github.com/mna/unacs/internal/list"
	"github.com/mna/unacs/lang/opcode"
)

// Variant identifies which of the three historical container encodings an
// object file uses.
type Variant int

const (
	// VariantZero is the earliest, flat-directory encoding with no chunks.
	VariantZero Variant = iota
	// VariantBigE is the chunk-based encoding with 32-bit instruction
	// arguments.
	VariantBigE
	// VariantLittleE is the chunk-based, small-code encoding with a
	// variable-width opcode space and packed arguments.
	VariantLittleE
)

func (v Variant) String() string {
	switch v {
	case VariantZero:
		return "zero-era"
	case VariantBigE:
		return "big-E"
	case VariantLittleE:
		return "little-e"
	default:
		return "unknown"
	}
}

// Chunk is a (tag, length, payload) tuple inside a chunk-based container.
type Chunk struct {
	Tag     string // always 4 bytes
	Offset  int    // offset of the payload, immediately after tag+length
	Payload []byte
}

// Container is the whole decoded object file: its encoding variant, the raw
// bytes it was decoded from, its chunk directory (chunk-based variants
// only), and the script/function/variable directories every later stage
// operates on.
type Container struct {
	Variant Variant
	Data    []byte

	Chunks []Chunk

	Scripts   list.List[*Script]
	Functions list.List[*Function]

	// Strings is the string literal table, indexed by string number. Loaded
	// either from a STRL/STRE chunk (chunk-based variants) or the zero-era
	// flat string directory.
	Strings []string

	MapVars    [128]*Variable
	WorldVars  [256]*Variable
	GlobalVars [64]*Variable

	// Library metadata: Importable is true
	// when an MEXP chunk is present (the module exports map variables to
	// other modules, i.e. it is itself a library); LibraryName is the input
	// file's base name without extension, meaningful only when Importable;
	// WadAuthor is true exactly when the module is not importable and
	// declares at least one script; Compact
	// mirrors Variant == VariantLittleE; EncryptStrings is true when the
	// string table came from an STRE chunk.
	Importable     bool
	LibraryName    string
	WadAuthor      bool
	Compact        bool
	EncryptStrings bool

	// Imports is the list of other library modules this one imports (LOAD
	// chunk), NUL-separated names in file order.
	Imports []string

	insts *arena.Arena[Instruction]
	notes *arena.Arena[Note]
}

// NewContainer creates an empty Container ready to be populated by the
// loader.
func NewContainer(variant Variant, data []byte) *Container {
	return &Container{
		Variant: variant,
		Data:    data,
		insts:   arena.New[Instruction](0),
		notes:   arena.New[Note](0),
	}
}

// NewInstruction allocates a zeroed Instruction from the container's arena.
func (c *Container) NewInstruction() *Instruction { return c.insts.Alloc() }

// NewNote allocates a zeroed Note from the container's arena.
func (c *Container) NewNote() *Note { return c.notes.Alloc() }

// Release drops the container's arenas. Call once the emitted source text
// has been produced and no further node allocation is needed.
func (c *Container) Release() {
	c.insts.Release()
	c.notes.Release()
}

// InstClass discriminates the three polymorphic instruction shapes.
type InstClass int

const (
	InstGeneric InstClass = iota
	InstJump
	InstCaseJump
)

// Instruction is the atomic unit of a loaded body: one decoded opcode, its
// position in the object file (used as identity and for jump-target
// resolution), its place in the body's doubly-linked sequence, and the head
// of the singly-linked list of notes the annotator may attach to it.
//
// The three historical instruction shapes (jump, case-jump, generic) are
// represented as one struct with a Class tag rather than as three
// interface implementations: all three share identity, linking and note
// fields, and only the trailing few fields differ per class, so a tagged
// struct avoids both a 3-way interface dispatch and a void* field.
type Instruction struct {
	Op    opcode.Opcode
	Pos   int // byte offset in the object file
	Class InstClass

	Prev, Next *Instruction
	Notes      *Note // head of the note stack, most recently pushed first

	// Generic: zero or more decoded integer arguments.
	Args []int32

	// Jump: destination offset as encoded, resolved to Target by the
	// loader's patching pass.
	Dest   int
	Target *Instruction

	// Case-jump: case value and destination, plus the next link in a
	// sorted-case-jump chain (nil for the last case in the chain, or for a
	// standalone case-jump).
	CaseValue int32
	CaseNext  *Instruction

	// CASEGOTOSORTED carries its whole case table as one opcode, rather than
	// as a chain of standalone case-jump instructions: SortedCases holds the
	// (value, destination) pairs decoded inline, in the order the file lists
	// them (already sorted by value, per the format's own name).
	SortedCases []SortedCase
}

// SortedCase is one (value, destination) entry of a CASEGOTOSORTED
// instruction's embedded table.
type SortedCase struct {
	Value  int32
	Dest   int
	Target *Instruction
}

// IsSentinel reports whether this is a TERMINATE instruction, the opcode of
// the synthetic sentinel appended after every script/function body; a
// TERMINATE decoded from the body itself reports true as well.
func (i *Instruction) IsSentinel() bool { return i.Op == opcode.TERMINATE }

// NoteKind discriminates the ten structural note variants the annotator
// attaches to instructions.
type NoteKind int

const (
	NoteIf NoteKind = iota
	NoteSwitch
	NoteCase
	NoteLoop
	NoteDo
	NoteFor
	NoteJump
	NoteReturn
	NoteExprStmt
	NoteInternFunc
)

// JumpKind distinguishes a break note from a continue note.
type JumpKind int

const (
	JumpBreak JumpKind = iota
	JumpContinue
)

// Note is a discriminated record attached to an instruction by the
// annotator (lang/annotate), encoding a high-level construct the recoverer
// (lang/recover) builds when it reaches that instruction. Notes at the same
// instruction form a stack (via Next), most recently pushed first.
//
// As with Instruction, the ten variants share enough fields (mostly start
// and end Instruction pointers) that a single tagged struct is simpler than
// ten node types implementing a common interface; lang/recover switches on
// Kind the same way lang/annotate switches on opcode.Class.
type Note struct {
	Kind NoteKind
	Next *Note // next note in the stack at the same instruction

	// IF: Cond/Body ranges, optional Else range (ElseStart nil if none), Exit.
	// Until also doubles here as the "inverted branch" flag (true when the
	// original opcode was IFGOTO rather than IFNOTGOTO), so the recoverer
	// knows whether to negate the recovered condition expression.
	// SWITCH: Cond/Body ranges, CaseTable is the first case-jump instruction,
	// SortedJump is the CASEGOTOSORTED instruction or nil, Exit.
	// CASE: Value and Default flag (ignores Value when true).
	// LOOP, DO, FOR: Cond/Body ranges, Until flag (LOOP and FOR: true when
	// the forward exit branch is IFGOTO; DO: true when the backward branch is
	// IFNOTGOTO, i.e. do ... until), Exit.
	// FOR: Cond range, Post is the list of post-iteration expression ranges,
	// Body range, Exit.
	// JUMP: JKind (break/continue).
	// RETURN, EXPRSTMT: Start/End delimit the expression's instruction range,
	// Exit is the instruction after it.
	CondStart, CondEnd   *Instruction
	BodyStart, BodyEnd   *Instruction
	ElseStart, ElseEnd   *Instruction
	Start, End           *Instruction
	Exit                 *Instruction
	CaseTable            *Instruction
	SortedJump           *Instruction
	Post                 []NoteRange
	Until                bool
	CaseValue            int32
	CaseDefault          bool
	JKind                JumpKind
	InternKind           int // catalog.InternKind, kept untyped here to avoid an import cycle
}

// NoteRange is a start/end instruction pair, used for FOR's list of
// post-iteration expression ranges.
type NoteRange struct {
	Start, End *Instruction
}

// PushNote prepends n to i's note stack.
func (i *Instruction) PushNote(n *Note) {
	n.Next = i.Notes
	i.Notes = n
}
