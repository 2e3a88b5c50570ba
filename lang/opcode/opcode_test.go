package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedOpcodesAreDistinct(t *testing.T) {
	seen := map[Opcode]string{}
	for name, info := range byName {
		if prev, ok := seen[info.Op]; ok {
			t.Fatalf("opcode %d registered twice: %s and %s", info.Op, prev, name)
		}
		seen[info.Op] = name
	}
}

func TestGetKnownOpcode(t *testing.T) {
	info, ok := Get(PUSHNUMBER)
	require.True(t, ok)
	require.Equal(t, "PUSHNUMBER", info.Name)
	require.Equal(t, 1, info.Stack.Push)
}

func TestGetUnknownOpcode(t *testing.T) {
	_, ok := Get(Opcode(60000))
	require.False(t, ok)
}

func TestVariableFamilyCoversAllScopesAndOps(t *testing.T) {
	for _, scope := range allScopes {
		for _, vop := range allVarOps {
			name := varOpNames[vop] + scopeNames[scope]
			info := ByName(name)
			v, ok := VarOf(info.Op)
			require.True(t, ok, "missing VarInfo for %s", name)
			require.Equal(t, scope, v.Scope)
			require.Equal(t, vop, v.Op)
			require.False(t, v.Array)

			arrName := varOpNames[vop] + scopeArrayNames[scope]
			arrInfo := ByName(arrName)
			av, ok := VarOf(arrInfo.Op)
			require.True(t, ok)
			require.True(t, av.Array)
		}
	}
}

func TestStrCpyFamily(t *testing.T) {
	info := ByName("STRCPYTOSCRIPTCHRANGE")
	k, ok := StrCpyOf(info.Op)
	require.True(t, ok)
	require.Equal(t, ScopeLocal, k.Scope)

	info = ByName("STRCPYTOMAPCHRANGE")
	k, ok = StrCpyOf(info.Op)
	require.True(t, ok)
	require.Equal(t, ScopeMap, k.Scope)
}

func TestRegisterAssignsFreshOpcode(t *testing.T) {
	op := Register("TESTONLY_DED", StackEffect{Variable: true})
	info, ok := Get(op)
	require.True(t, ok)
	require.Equal(t, "TESTONLY_DED", info.Name)
}
