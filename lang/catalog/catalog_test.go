package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/opcode"
)

func TestParseFormat(t *testing.T) {
	sig := ParseFormat("i;ii;s")
	require.Equal(t, TypeInt, sig.Return)
	require.Equal(t, []ParamType{TypeInt, TypeInt}, sig.Required)
	require.Equal(t, []ParamType{TypeStr}, sig.Optional)
	require.Equal(t, 3, sig.TotalParams())
}

func TestParseFormatVoidNoArgs(t *testing.T) {
	sig := ParseFormat(";")
	require.Equal(t, TypeVoid, sig.Return)
	require.Empty(t, sig.Required)
	require.Empty(t, sig.Optional)
	require.Equal(t, 0, sig.TotalParams())
}

func TestDedicatedRegisteredWithOwnOpcode(t *testing.T) {
	all := AllDedicated()
	require.NotEmpty(t, all)
	d, ok := DedicatedByOp(all[0].Op)
	require.True(t, ok)
	require.Equal(t, all[0].Name, d.Name)
	info, ok := opcode.Get(d.Op)
	require.True(t, ok)
	require.Equal(t, "DED_"+d.Name, info.Name)
}

func TestActionSpecialExecuteID(t *testing.T) {
	a, ok := ActionSpecialByID(ASPECExecute)
	require.True(t, ok)
	require.Equal(t, "ACS_Execute", a.Name)
}

func TestExtensionNamedExecuteID(t *testing.T) {
	e, ok := ExtensionByID(ExtFuncNamedExecute)
	require.True(t, ok)
	require.Equal(t, "ACS_NamedExecute", e.Name)
}

func TestActionSpecialUnknownID(t *testing.T) {
	_, ok := ActionSpecialByID(999999)
	require.False(t, ok)
}

func TestFormatFuncLookup(t *testing.T) {
	f, ok := FormatFuncByEnd(opcode.ENDPRINT)
	require.True(t, ok)
	require.Equal(t, "Print", f.Name)

	f, ok = FormatFuncByEnd(opcode.ENDHUDMESSAGEBOLD)
	require.True(t, ok)
	require.Equal(t, "HudMessageBold", f.Name)
}

func TestInternByKind(t *testing.T) {
	require.Equal(t, "ACS_ExecuteWait", InternByKind(InternACSExecuteWait).Name)
	require.Equal(t, "ACS_NamedExecuteWait", InternByKind(InternACSNamedExecuteWait).Name)
}

func TestAllActionSpecialsSortedByID(t *testing.T) {
	all := AllActionSpecials()
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestNoDuplicateActionSpecialIDs(t *testing.T) {
	seen := map[int]bool{}
	for _, a := range AllActionSpecials() {
		require.False(t, seen[a.ID], "duplicate action special ID %d", a.ID)
		seen[a.ID] = true
	}
}
