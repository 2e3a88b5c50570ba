package polish

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/unacs/lang/ast"
	"github.com/mna/unacs/lang/catalog"
)

func dedicatedCallee(name string) ast.Callee {
	return ast.Callee{Kind: ast.CalleeDedicated, Dedicated: &catalog.Dedicated{Name: name}}
}

func TestSubstituteCallArgsSetLineTexture(t *testing.T) {
	call := &ast.CallExpr{
		Callee: dedicatedCallee("SetLineTexture"),
		Args: []ast.Expr{
			&ast.Literal{Kind: ast.LitInt, Int: 12}, // line, untouched
			&ast.Literal{Kind: ast.LitInt, Int: 1},  // side -> SIDE_BACK
			&ast.Literal{Kind: ast.LitInt, Int: 2},  // position -> TEXTURE_BOTTOM
			&ast.Literal{Kind: ast.LitInt, Int: 40}, // texture, untouched
		},
	}

	substituteCallArgs(call)

	require.IsType(t, &ast.Literal{}, call.Args[0])
	side, ok := call.Args[1].(*ast.NameExpr)
	require.True(t, ok)
	require.Equal(t, "SIDE_BACK", side.Name)
	pos, ok := call.Args[2].(*ast.NameExpr)
	require.True(t, ok)
	require.Equal(t, "TEXTURE_BOTTOM", pos.Name)
	require.IsType(t, &ast.Literal{}, call.Args[3])
}

func TestSubstituteCallArgsUnknownDedicatedLeftAlone(t *testing.T) {
	call := &ast.CallExpr{
		Callee: dedicatedCallee("SetLineBlocking"),
		Args:   []ast.Expr{&ast.Literal{Kind: ast.LitInt, Int: 1}},
	}

	substituteCallArgs(call)

	require.IsType(t, &ast.Literal{}, call.Args[0])
}

func TestSubstituteComparisonGameType(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:    ast.BinEQ,
		Left:  &ast.CallExpr{Callee: dedicatedCallee("GameType")},
		Right: &ast.Literal{Kind: ast.LitInt, Int: 2},
	}

	substituteComparison(bin)

	name, ok := bin.Right.(*ast.NameExpr)
	require.True(t, ok)
	require.Equal(t, "GAME_NET_DEATHMATCH", name.Name)
}

func TestSubstituteComparisonUnwrapsParen(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:    ast.BinNE,
		Left:  &ast.ParenExpr{X: &ast.CallExpr{Callee: dedicatedCallee("LineSide")}},
		Right: &ast.Literal{Kind: ast.LitInt, Int: 0},
	}

	substituteComparison(bin)

	name, ok := bin.Right.(*ast.NameExpr)
	require.True(t, ok)
	require.Equal(t, "SIDE_FRONT", name.Name)
}

func TestSubstituteComparisonIgnoredOutsideEqualityOps(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:    ast.BinLT,
		Left:  &ast.CallExpr{Callee: dedicatedCallee("GameSkill")},
		Right: &ast.Literal{Kind: ast.LitInt, Int: 1},
	}

	substituteComparison(bin)

	require.IsType(t, &ast.Literal{}, bin.Right)
}

// TestNoDeadTables confirms that a dedicated name absent from the tables
// (LineAttackF) has no entry in either argGroups or resultGroups.
func TestNoDeadTables(t *testing.T) {
	_, ok := argGroups["LineAttackF"]
	require.False(t, ok)
	_, ok = resultGroups["LineAttackF"]
	require.False(t, ok)
}
