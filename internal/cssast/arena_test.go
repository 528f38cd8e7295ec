package cssast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArenaMinimumCapacity(t *testing.T) {
	a := NewArena(0)
	require.NotNil(t, a)
	assert.Equal(t, uint32(0), a.Len())
	assert.Equal(t, uint32(16), a.capacity)
}

func TestCreateNodeAssignsSequentialIndices(t *testing.T) {
	a := NewArena(64)
	n1 := a.CreateNode(KindIdentifier, 0, 1, 1)
	n2 := a.CreateNode(KindIdentifier, 5, 1, 6)
	assert.EqualValues(t, 1, n1)
	assert.EqualValues(t, 2, n2)
	assert.Equal(t, uint32(2), a.Len())

	assert.Equal(t, KindIdentifier, a.Kind(n1))
	assert.Equal(t, 5, a.StartOffset(n2))
	assert.Equal(t, 1, a.StartLine(n2))
	assert.Equal(t, 6, a.StartColumn(n2))
}

// I1/I3: the first append sets first-child and last-child together, and
// last-child keeps tracking the tail as more children are appended.
func TestAppendChildLinksFirstAndLastChild(t *testing.T) {
	a := NewArena(64)
	parent := a.CreateNode(KindSelectorList, 0, 1, 1)
	c1 := a.CreateNode(KindSelector, 0, 1, 1)
	c2 := a.CreateNode(KindSelector, 1, 1, 2)
	c3 := a.CreateNode(KindSelector, 2, 1, 3)

	a.AppendChild(parent, c1)
	assert.Equal(t, c1, a.FirstChild(parent))
	assert.Equal(t, c1, a.LastChild(parent))

	a.AppendChild(parent, c2)
	a.AppendChild(parent, c3)
	assert.Equal(t, c1, a.FirstChild(parent))
	assert.Equal(t, c3, a.LastChild(parent))

	// I2: following next-sibling from first-child visits every child in
	// append order and terminates at the null sentinel.
	var seen []uint32
	for c := a.FirstChild(parent); c != NullIndex; c = a.NextSibling(c) {
		seen = append(seen, c)
	}
	assert.Equal(t, []uint32{c1, c2, c3}, seen)
}

func TestAppendChildrenBulk(t *testing.T) {
	a := NewArena(64)
	parent := a.CreateNode(KindBlock, 0, 1, 1)
	c1 := a.CreateNode(KindDeclaration, 0, 1, 1)
	c2 := a.CreateNode(KindDeclaration, 1, 1, 2)
	a.AppendChildren(parent, []uint32{c1, c2})
	assert.Equal(t, []uint32{c1, c2}, childList(a, parent))
}

func childList(a *Arena, parent uint32) []uint32 {
	var out []uint32
	for c := a.FirstChild(parent); c != NullIndex; c = a.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

func TestSetLengthClampsAndFlagsOverflow(t *testing.T) {
	a := NewArena(64)
	n := a.CreateNode(KindStyleRule, 0, 1, 1)
	a.SetLength(n, 100)
	assert.Equal(t, 100, a.Length(n))
	assert.False(t, a.HasFlag(n, FlagLengthOverflow))

	huge := a.CreateNode(KindStyleRule, 0, 1, 1)
	a.SetLength(huge, 70000)
	assert.Equal(t, maxSlice, a.Length(huge))
	assert.True(t, a.HasFlag(huge, FlagLengthOverflow))
}

func TestContentAndValueSlices(t *testing.T) {
	a := NewArena(64)
	n := a.CreateNode(KindDeclaration, 10, 1, 11)
	a.SetContentSlice(n, 0, 5)
	a.SetValueSlice(n, 7, 3)
	assert.Equal(t, 0, a.ContentDelta(n))
	assert.Equal(t, 5, a.ContentLength(n))
	assert.Equal(t, 7, a.ValueDelta(n))
	assert.Equal(t, 3, a.ValueLength(n))
}

func TestSliceOverflowClamps(t *testing.T) {
	a := NewArena(64)
	n := a.CreateNode(KindDeclaration, 0, 1, 1)
	a.SetContentSlice(n, 70000, 5)
	assert.Equal(t, maxSlice, a.ContentDelta(n))
	assert.Equal(t, 0, a.ContentLength(n))
	assert.True(t, a.HasFlag(n, FlagLengthOverflow))

	n2 := a.CreateNode(KindDeclaration, 0, 1, 1)
	a.SetValueSlice(n2, maxSlice-2, 10)
	assert.Equal(t, maxSlice-2, a.ValueDelta(n2))
	assert.Equal(t, 2, a.ValueLength(n2))
	assert.True(t, a.HasFlag(n2, FlagLengthOverflow))
}

func TestFlagsAreIndependentBits(t *testing.T) {
	a := NewArena(64)
	n := a.CreateNode(KindDeclaration, 0, 1, 1)
	a.SetFlag(n, FlagImportant)
	a.SetFlag(n, FlagVendorPrefixed)
	assert.True(t, a.HasFlag(n, FlagImportant))
	assert.True(t, a.HasFlag(n, FlagVendorPrefixed))
	assert.False(t, a.HasFlag(n, FlagHasBlock))
}

func TestAttrOpAndFlags(t *testing.T) {
	a := NewArena(64)
	n := a.CreateNode(KindAttribute, 0, 1, 1)
	a.SetAttrOp(n, AttrOpSubstring)
	a.SetAttrFlags(n, AttrCaseInsensitive)
	assert.Equal(t, AttrOpSubstring, a.AttrOp(n))
	assert.Equal(t, AttrCaseInsensitive, a.AttrFlags(n))
	assert.Equal(t, "*=", a.AttrOp(n).String())
}

// Growing past the initial capacity must not corrupt already-written
// records (spec.md §4.3 "regrow by 1.3x, relocatable").
func TestGrowPreservesExistingRecords(t *testing.T) {
	a := NewArena(0) // minimum capacity, forces growth quickly
	var nodes []uint32
	for i := 0; i < 200; i++ {
		n := a.CreateNode(KindIdentifier, i, 1, i+1)
		a.SetContentSlice(n, 0, 1)
		nodes = append(nodes, n)
	}
	for i, n := range nodes {
		assert.Equal(t, i, a.StartOffset(n), "node %d start offset after growth", i)
	}
}
