package polish

import "github.com/mna/unacs/lang/ast"

// constEntry is one (name, value) pair of a named-constant group. An entry
// with an empty Name terminates the group during a scan.
type constEntry struct {
	Name  string
	Value int32
}

type constGroup []constEntry

// find looks up v in g, stopping at the empty-name sentinel.
func (g constGroup) find(v int32) (string, bool) {
	for _, e := range g {
		if e.Name == "" {
			break
		}
		if e.Value == v {
			return e.Name, true
		}
	}
	return "", false
}

// Well-known constant groups, named after the engine's own identifiers.
var (
	sideGroup = constGroup{
		{"SIDE_FRONT", 0},
		{"SIDE_BACK", 1},
	}
	texturePosGroup = constGroup{
		{"TEXTURE_TOP", 0},
		{"TEXTURE_MIDDLE", 1},
		{"TEXTURE_BOTTOM", 2},
	}
	gameGroup = constGroup{
		{"GAME_SINGLE_PLAYER", 0},
		{"GAME_NET_COOPERATIVE", 1},
		{"GAME_NET_DEATHMATCH", 2},
		{"GAME_TITLE_MAP", 3},
	}
	skillGroup = constGroup{
		{"SKILL_VERY_EASY", 0},
		{"SKILL_EASY", 1},
		{"SKILL_NORMAL", 2},
		{"SKILL_HARD", 3},
		{"SKILL_VERY_HARD", 4},
	}
)

// argGroups maps a dedicated function's name to the constant group that
// applies to each of its positional arguments, nil meaning "leave this
// argument's literal as is". Only
// SetLineTexture's (line, side, position, texture) shape is known well
// enough to decompose here; the rest of the dedicated-function table has
// no entry and its arguments are left alone.
var argGroups = map[string][]constGroup{
	"SetLineTexture": {nil, sideGroup, texturePosGroup, nil},
}

// resultGroups maps a nullary (or effectively nullary, from the caller's
// perspective) dedicated predicate's name to the constant group that
// applies to a literal it is compared against: the group attaches to the
// call's own recovered result rather than to any of its arguments (GameType
// takes no arguments at all), so it is looked up separately from argGroups.
var resultGroups = map[string]constGroup{
	"GameType":  gameGroup,
	"GameSkill": skillGroup,
	"LineSide":  sideGroup,
}

// substituteBlock walks every statement and expression in blk, rewriting
// literal operands with symbolic names wherever a known constant group
// applies.
func substituteBlock(blk *ast.Block) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		switch e := n.(type) {
		case *ast.CallExpr:
			substituteCallArgs(e)
		case *ast.BinaryExpr:
			substituteComparison(e)
		}
		return v
	}
	ast.Walk(v, blk)
}

func dedicatedName(c ast.Callee) (string, bool) {
	if c.Kind == ast.CalleeDedicated && c.Dedicated != nil {
		return c.Dedicated.Name, true
	}
	return "", false
}

// substituteCallArgs rewrites call's literal arguments per argGroups, for
// dedicated functions with a known argument shape.
func substituteCallArgs(call *ast.CallExpr) {
	name, ok := dedicatedName(call.Callee)
	if !ok {
		return
	}
	groups, ok := argGroups[name]
	if !ok {
		return
	}
	for i, g := range groups {
		if g == nil || i >= len(call.Args) {
			continue
		}
		lit, ok := call.Args[i].(*ast.Literal)
		if !ok || lit.Kind != ast.LitInt {
			continue
		}
		if constName, ok := g.find(lit.Int); ok {
			call.Args[i] = &ast.NameExpr{Name: constName}
		}
	}
}

// substituteComparison rewrites bin's right operand when it is a literal
// compared against a call to a predicate with a known result group. Only
// the right-hand literal operand of a comparison is ever rewritten.
func substituteComparison(bin *ast.BinaryExpr) {
	if bin.Op != ast.BinEQ && bin.Op != ast.BinNE {
		return
	}
	left := bin.Left
	if p, ok := left.(*ast.ParenExpr); ok {
		left = p.X
	}
	call, ok := left.(*ast.CallExpr)
	if !ok {
		return
	}
	name, ok := dedicatedName(call.Callee)
	if !ok {
		return
	}
	group, ok := resultGroups[name]
	if !ok {
		return
	}
	lit, ok := bin.Right.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		return
	}
	if constName, ok := group.find(lit.Int); ok {
		bin.Right = &ast.NameExpr{Name: constName}
	}
}
