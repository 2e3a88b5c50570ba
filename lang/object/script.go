package object

// ScriptType is the entry-point kind of a script, matching the handful of
// trigger types the runtime recognizes.
type ScriptType int

const (
	ScriptClosed ScriptType = iota
	ScriptOpen
	ScriptRespawn
	ScriptDeath
	ScriptEnter
	ScriptPickup
	ScriptBlueReturn
	ScriptRedReturn
	ScriptWhiteReturn
	ScriptLightning
	ScriptUnloading
	ScriptDisconnect
	ScriptReturn
	ScriptEvent
	ScriptKill
	ScriptReopen
)

// ScriptFlag is a bit in a script's flag set.
type ScriptFlag uint32

const (
	ScriptFlagNet ScriptFlag = 1 << iota
	ScriptFlagClientSide
)

// Script is one entry point in the object file: either numbered or named,
// with its trigger type, flags, parameter count, its own variable and array
// tables, and the instruction range of its body. The recovered statement
// block is held by ast.ScriptDecl, not here.
type Script struct {
	Number int // meaningless if Name != ""
	Name   string
	Type   ScriptType
	Flags  ScriptFlag

	ParamCount int
	Vars       []*Variable // fixed capacity, default 20, chunk-overridable
	Arrays     []*Variable

	BodyStart, BodyEnd *Instruction
}

// DefaultVarCapacity is the script-local variable table size used when no
// SVCT chunk overrides it.
const DefaultVarCapacity = 20
