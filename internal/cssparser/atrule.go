package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

// blockClass controls what parseBlockBody accepts inside a rule's block,
// per the three-way at-rule classification of spec.md §4.6.
type blockClass int

const (
	// blockDeclarationsOnly accepts only declarations: @font-face,
	// @font-feature-values, @page, @property, @counter-style.
	blockDeclarationsOnly blockClass = iota
	// blockConditional accepts declarations and/or nested style rules:
	// @media, @supports, @container, @layer, @scope, CSS Nesting's @nest.
	blockConditional
	// blockOther accepts only nested rules, never bare declarations:
	// everything not named in the two closed lists above.
	blockOther
)

// declarationBearing is the closed set of at-rules whose block holds
// declarations only (spec.md §4.6).
var declarationBearing = map[string]bool{
	"font-face":          true,
	"font-feature-values": true,
	"page":               true,
	"property":           true,
	"counter-style":      true,
}

// conditionalRules is the closed set from spec.md §4.6, supplemented with
// @scope (SPEC_FULL.md supplement — present in real stylesheets alongside
// @container/@layer and exercised the same conditional-block grammar).
var conditionalRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"container": true,
	"layer":     true,
	"scope":     true,
	"nest":      true,
}

func classifyAtRule(name string) blockClass {
	lower := strings.ToLower(name)
	if declarationBearing[lower] {
		return blockDeclarationsOnly
	}
	if conditionalRules[lower] {
		return blockConditional
	}
	return blockOther
}

// hasPreludeParser reports whether name is in the closed set of at-rule
// names whose prelude gets a dedicated sub-tree when Options.ParseAtRulePreludes is set (spec.md
// §4.7): media queries, supports conditions, container queries, layer
// names, and the single-identifier preludes of @keyframes/@property.
// @scope's prelude is deliberately left as a raw slice — its grammar
// (scope-start/scope-end selectors) is not in spec.md §4.7's closed
// dispatch list, so only the ambient raw-slice capture applies.
func hasPreludeParser(name string) bool {
	switch strings.ToLower(name) {
	case "media", "supports", "container", "layer", "keyframes", "property":
		return true
	default:
		return false
	}
}

// parseAtRule parses one at-rule starting at the current '@' token
// (spec.md §4.6): name, prelude (raw slice, optionally sub-parsed), then
// either a ';' or a '{' ... '}' block classified per classifyAtRule.
func (p *parser) parseAtRule() uint32 {
	at := p.current()
	nameStart := at.Start + 1 // skip '@'
	nameEnd := at.End
	name := p.source[nameStart:nameEnd]

	node := p.arena.CreateNode(cssast.KindAtRule, at.Start, at.Line, at.Column)
	p.arena.SetContentSlice(node, nameStart-at.Start, nameEnd-nameStart)
	p.advance()

	p.eatWhitespaceAndComments()
	preludeStart := p.current().Start
	preludeStartTok := p.index
	preludeEnd := preludeStart
	for {
		switch p.current().Kind {
		case csslex.Semicolon, csslex.LeftBrace, csslex.RightBrace, csslex.EOF:
			goto donePrelude
		case csslex.Whitespace, csslex.Comment:
			p.advance()
		default:
			preludeEnd = p.current().End
			p.advance()
		}
	}
donePrelude:
	preludeEndTok := p.index
	p.arena.SetValueSlice(node, preludeStart-at.Start, preludeEnd-preludeStart)

	if p.options.ParseAtRulePreludes && hasPreludeParser(name) && preludeEnd > preludeStart {
		preludeNodes := p.parsePreludeNode(name, preludeStartTok, preludeEndTok)
		p.arena.AppendChildren(node, preludeNodes)
	}

	switch p.current().Kind {
	case csslex.Semicolon:
		p.advance()
		p.arena.SetLength(node, p.tokens[p.index-1].End-at.Start)
	case csslex.LeftBrace:
		p.arena.SetFlag(node, cssast.FlagHasBlock)
		p.advance()
		class := classifyAtRule(name)
		block := p.parseBlockBody(class)
		p.arena.AppendChild(node, block)
		end := p.current().End
		if p.eat(csslex.RightBrace) {
			end = p.tokens[p.index-1].End
		}
		p.arena.SetLength(node, end-at.Start)
	default:
		p.arena.SetLength(node, preludeEnd-at.Start)
	}
	return node
}
