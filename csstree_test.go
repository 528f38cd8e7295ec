package csstree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

func TestParseSmoke(t *testing.T) {
	root := Parse("a, b { color: red; }", DefaultOptions())
	require.True(t, root.Valid())
	assert.Equal(t, cssast.KindStylesheet, root.Kind())
	assert.True(t, root.HasChildren())
}

func TestTokenizeYieldsLazySequence(t *testing.T) {
	tz := Tokenize("a b", true, nil)
	first := tz.Advance(false)
	assert.Equal(t, csslex.Ident, first.Kind)
	second := tz.Advance(false)
	assert.Equal(t, csslex.Whitespace, second.Kind)
}

func TestTokensPartitionsSource(t *testing.T) {
	source := "a { color: red; }"
	tokens := Tokens(source)
	require.NotEmpty(t, tokens)
	assert.Equal(t, csslex.EOF, tokens[len(tokens)-1].Kind)

	pos := 0
	for _, tok := range tokens {
		assert.Equal(t, pos, tok.Start)
		pos = tok.End
	}
	assert.Equal(t, len(source), pos)
}

func TestParseSelectorAndAnPlusBAndPreludeStrings(t *testing.T) {
	sel := ParseSelectorString(".a > .b")
	assert.True(t, sel.Valid())
	assert.Equal(t, cssast.KindSelectorList, sel.Kind())

	nth := ParseAnPlusBString("odd")
	require.True(t, nth.Valid())
	assert.Equal(t, "odd", nth.NthB())

	prelude := ParsePreludeString("supports", "(display: grid)")
	require.Len(t, prelude, 1)
	assert.Equal(t, cssast.KindSupportsQuery, prelude[0].Kind())
}

func TestWalkVisitsPreOrderWithDepth(t *testing.T) {
	root := Parse("a { color: red; } @media (min-width: 1px) { b { color: blue; } }", DefaultOptions())

	var kinds []cssast.Kind
	var depths []int
	Walk(root, func(n cssast.View, depth int) {
		kinds = append(kinds, n.Kind())
		depths = append(depths, depth)
	})

	require.NotEmpty(t, kinds)
	assert.Equal(t, cssast.KindStylesheet, kinds[0])
	assert.Equal(t, 0, depths[0])
	for i := 1; i < len(kinds); i++ {
		assert.GreaterOrEqual(t, depths[i], 1)
	}
}

func TestWalkOnInvalidViewIsNoop(t *testing.T) {
	var calls int
	Walk(cssast.View{}, func(cssast.View, int) { calls++ })
	assert.Equal(t, 0, calls)
}
