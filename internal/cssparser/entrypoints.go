package cssparser

import (
	"github.com/arenacss/arenacss/internal/cssast"
)

func newStandaloneParser(source string) *parser {
	tokens := tokenizeAll(source, true, nil)
	arena := cssast.NewArena(len(source))
	return &parser{source: source, arena: arena, tokens: tokens, options: DefaultOptions()}
}

// ParseSelectorText parses source as a standalone selector list (spec.md
// §6), always returning a valid selector-list node (spec.md §9 Q3).
func ParseSelectorText(source string) cssast.View {
	p := newStandaloneParser(source)
	bound := len(p.tokens) - 1 // exclude the trailing EOF token
	node := p.parseSelectorListBounded(0, bound, false)
	if node == cssast.NullIndex {
		node = p.arena.CreateNode(cssast.KindSelectorList, 0, 1, 1)
	}
	return cssast.Node(p.arena, p.source, node)
}

// ParseAnPlusBText parses source as a standalone An+B expression (spec.md
// §6, §4.9). Returns the zero View if the text does not match the grammar.
func ParseAnPlusBText(source string) cssast.View {
	p := newStandaloneParser(source)
	bound := len(p.tokens) - 1
	p.skipSelectorWhitespace(bound)
	node := p.parseAnB(bound)
	if node == cssast.NullIndex {
		return cssast.View{}
	}
	return cssast.Node(p.arena, p.source, node)
}

// ParsePreludeText parses prelude as the at-rule prelude belonging to
// atRuleName (spec.md §6, §4.7), returning one node per top-level
// comma-separated query — most at-rules produce exactly one, but @media's
// prelude can hold a comma-separated list of media queries (spec.md §3.3/
// §4.7), so the caller always gets the full list rather than just the
// first. Returns nil if atRuleName has no dedicated prelude grammar (see
// hasPreludeParser) or the prelude doesn't parse.
func ParsePreludeText(atRuleName, prelude string) []cssast.View {
	p := newStandaloneParser(prelude)
	bound := len(p.tokens) - 1
	if !hasPreludeParser(atRuleName) || bound == 0 {
		return nil
	}
	indices := p.parsePreludeNode(atRuleName, 0, bound)
	if len(indices) == 0 {
		return nil
	}
	views := make([]cssast.View, len(indices))
	for i, idx := range indices {
		views[i] = cssast.Node(p.arena, p.source, idx)
	}
	return views
}
