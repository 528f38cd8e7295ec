package cssast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDeclaration builds a single `color: red` declaration node (with a
// value-subtree identifier child) directly against the arena, mirroring the
// shape cssparser would produce, to exercise View without depending on the
// parser package.
func buildDeclaration(source string) (*Arena, View) {
	a := NewArena(len(source))
	decl := a.CreateNode(KindDeclaration, 0, 1, 1)
	a.SetContentSlice(decl, 0, 5) // "color"
	a.SetValueSlice(decl, 7, 3)   // "red"
	a.SetLength(decl, len(source))
	a.SetFlag(decl, FlagImportant)

	val := a.CreateNode(KindIdentifier, 7, 1, 8)
	a.SetLength(val, 3)
	a.AppendChild(decl, val)

	return a, Node(a, source, decl)
}

func TestViewValidAndInvalid(t *testing.T) {
	var zero View
	assert.False(t, zero.Valid())

	a, v := buildDeclaration("color: red")
	assert.True(t, v.Valid())
	assert.False(t, Node(a, "color: red", NullIndex).Valid())
}

func TestViewTextNameValue(t *testing.T) {
	_, v := buildDeclaration("color: red")
	assert.Equal(t, "color: red", v.Text())
	assert.Equal(t, "color", v.Name())
	assert.Equal(t, "red", v.Value())
	assert.Equal(t, v.Value(), v.Prelude())
}

func TestViewFlags(t *testing.T) {
	_, v := buildDeclaration("color: red")
	assert.True(t, v.IsImportant())
	assert.False(t, v.IsError())
	assert.False(t, v.HasBlock())
}

func TestViewChildrenTraversal(t *testing.T) {
	a := NewArena(64)
	parent := a.CreateNode(KindSelectorList, 0, 1, 1)
	c1 := a.CreateNode(KindSelector, 0, 1, 1)
	c2 := a.CreateNode(KindSelector, 2, 1, 3)
	a.AppendChildren(parent, []uint32{c1, c2})

	v := Node(a, ".a .b", parent)
	require.True(t, v.HasChildren())
	kids := v.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, c1, kids[0].Index)
	assert.Equal(t, c2, kids[1].Index)

	var visited []uint32
	v.EachChild(func(c View) { visited = append(visited, c.Index) })
	assert.Equal(t, []uint32{c1, c2}, visited)

	assert.False(t, kids[1].NextSibling().Valid())
}

func TestViewCompoundsGroupsByCombinator(t *testing.T) {
	a := NewArena(64)
	sel := a.CreateNode(KindSelector, 0, 1, 1)
	typeNode := a.CreateNode(KindType, 0, 1, 1)
	comb := a.CreateNode(KindCombinator, 2, 1, 3)
	classNode := a.CreateNode(KindClass, 4, 1, 5)
	a.AppendChildren(sel, []uint32{typeNode, comb, classNode})

	v := Node(a, "a > .b", sel)
	groups := v.Compounds()
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 1)
	assert.Equal(t, typeNode, groups[0][0].Index)
	assert.Equal(t, classNode, groups[1][0].Index)
}

func TestViewInnerSelectorListForNthOf(t *testing.T) {
	a := NewArena(64)
	nthOf := a.CreateNode(KindNthOf, 0, 1, 1)
	nth := a.CreateNode(KindNth, 0, 1, 1)
	selList := a.CreateNode(KindSelectorList, 0, 1, 1)
	a.AppendChildren(nthOf, []uint32{nth, selList})

	v := Node(a, ":nth-child(2n of .a)", nthOf)
	inner := v.InnerSelectorList()
	assert.True(t, inner.Valid())
	assert.Equal(t, selList, inner.Index)
	assert.Equal(t, nth, v.NthIndexNode().Index)
}

func TestViewInnerSelectorListForPseudoClass(t *testing.T) {
	a := NewArena(64)
	pseudo := a.CreateNode(KindPseudoClass, 0, 1, 1)
	selList := a.CreateNode(KindSelectorList, 0, 1, 1)
	a.AppendChild(pseudo, selList)

	v := Node(a, ":is(.a)", pseudo)
	inner := v.InnerSelectorList()
	assert.True(t, inner.Valid())
	assert.Equal(t, selList, inner.Index)

	other := a.CreateNode(KindPseudoClass, 0, 1, 1)
	ov := Node(a, ":hover", other)
	assert.False(t, ov.InnerSelectorList().Valid())
}
