package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

// nthFunctions is the closed set of pseudo-class functions whose argument is
// An+B microsyntax, optionally followed by "of <selector-list>" (spec.md §4.8).
var nthFunctions = map[string]bool{
	"nth-child":         true,
	"nth-last-child":    true,
	"nth-of-type":       true,
	"nth-last-of-type":  true,
	"nth-col":           true,
	"nth-last-col":      true,
}

// selectorListFunctions recursively parse their argument as a selector list
// (spec.md §4.8). "has" additionally allows a leading combinator (relative
// selectors).
var selectorListFunctions = map[string]bool{
	"is": true, "where": true, "not": true, "has": true,
	"global": true, "local": true,
}

// parseSelectorListBounded is the stylesheet driver's hook: it parses the
// selector region of a style rule (or a standalone selector string) over a
// bounded token range and always returns a valid selector-list node (never
// the null index), resolving spec.md §9 Q3 in favor of a uniform shape.
func (p *parser) parseSelectorListBounded(startTok, endTok int, allowLeadingCombinator bool) uint32 {
	resume := p.index
	p.index = startTok
	node := p.parseSelectorList(endTok, allowLeadingCombinator)
	p.index = resume
	return node
}

func (p *parser) skipSelectorWhitespace(bound int) bool {
	saw := false
	for p.index < bound && (p.tokens[p.index].Kind == csslex.Whitespace || p.tokens[p.index].Kind == csslex.Comment) {
		p.index++
		saw = true
	}
	return saw
}

func (p *parser) parseSelectorList(bound int, allowLeadingCombinator bool) uint32 {
	start := p.index
	var first csslex.Token
	if start < bound {
		first = p.tokens[start]
	} else if start > 0 {
		first = p.tokens[start-1]
	}
	node := p.arena.CreateNode(cssast.KindSelectorList, first.Start, first.Line, first.Column)

	for {
		p.skipSelectorWhitespace(bound)
		if p.index >= bound {
			break
		}
		sel := p.parseSelector(bound, allowLeadingCombinator)
		if sel != cssast.NullIndex {
			p.arena.AppendChild(node, sel)
		}
		p.skipSelectorWhitespace(bound)
		if p.index < bound && p.tokens[p.index].Kind == csslex.Comma {
			p.index++
			continue
		}
		break
	}

	end := first.Start
	if bound > start && bound-1 < len(p.tokens) {
		end = p.tokens[bound-1].Start
	}
	if p.index > start && p.index-1 < len(p.tokens) {
		end = p.tokens[p.index-1].End
	}
	p.arena.SetLength(node, end-first.Start)
	return node
}

// parseSelector parses one complex selector: compound selectors connected by
// combinators (spec.md §4.8, GLOSSARY "Complex selector").
func (p *parser) parseSelector(bound int, allowLeadingCombinator bool) uint32 {
	if p.index >= bound {
		return cssast.NullIndex
	}
	first := p.tokens[p.index]
	node := p.arena.CreateNode(cssast.KindSelector, first.Start, first.Line, first.Column)
	last := first.Start
	componentCount := 0

	for p.index < bound {
		if p.tokens[p.index].Kind == csslex.Comma {
			break
		}
		if p.isCombinatorDelim(p.tokens[p.index]) {
			if componentCount == 0 && !allowLeadingCombinator {
				break
			}
			t := p.tokens[p.index]
			child := p.arena.CreateNode(cssast.KindCombinator, t.Start, t.Line, t.Column)
			p.arena.SetLength(child, t.End-t.Start)
			p.arena.AppendChild(node, child)
			last = t.End
			componentCount++
			p.index++
			p.skipSelectorWhitespace(bound)
			continue
		}
		if p.tokens[p.index].Kind == csslex.Whitespace || p.tokens[p.index].Kind == csslex.Comment {
			wsStart := p.index
			p.skipSelectorWhitespace(bound)
			if p.index >= bound || p.tokens[p.index].Kind == csslex.Comma {
				break
			}
			if p.isCombinatorDelim(p.tokens[p.index]) {
				continue
			}
			// Descendant combinator: the whitespace run itself.
			wt := p.tokens[wsStart]
			child := p.arena.CreateNode(cssast.KindCombinator, wt.Start, wt.Line, wt.Column)
			p.arena.SetLength(child, p.tokens[p.index].Start-wt.Start)
			p.arena.AppendChild(node, child)
			last = p.tokens[p.index].Start
			componentCount++
			continue
		}

		comp := p.parseSimpleSelector(bound)
		if comp == cssast.NullIndex {
			break
		}
		p.arena.AppendChild(node, comp)
		last = p.arena.StartOffset(comp) + p.arena.Length(comp)
		componentCount++
	}

	p.arena.SetLength(node, last-first.Start)
	if componentCount == 0 {
		return cssast.NullIndex
	}
	return node
}

// isCombinatorDelim reports whether t is one of the explicit combinator
// delimiters '>', '+', '~' (spec.md §4.8, GLOSSARY "Combinator").
func (p *parser) isCombinatorDelim(t csslex.Token) bool {
	if t.Kind != csslex.Delim || t.Len() != 1 {
		return false
	}
	switch p.delimText(t) {
	case ">", "+", "~":
		return true
	}
	return false
}

func (p *parser) delimText(t csslex.Token) string { return p.source[t.Start:t.End] }

// parseSimpleSelector parses one simple selector component (spec.md §4.8).
func (p *parser) parseSimpleSelector(bound int) uint32 {
	t := p.tokens[p.index]
	switch t.Kind {
	case csslex.Ident:
		return p.parseTypeOrNamespaced(bound)
	case csslex.Delim:
		switch p.delimText(t) {
		case "*":
			return p.parseUniversalOrNamespaced(bound)
		case "|":
			return p.parseTypeOrNamespaced(bound)
		case "&":
			p.index++
			node := p.arena.CreateNode(cssast.KindNesting, t.Start, t.Line, t.Column)
			p.arena.SetLength(node, t.End-t.Start)
			return node
		case ".":
			return p.parseClassSelector(bound)
		}
		return cssast.NullIndex
	case csslex.Hash:
		p.index++
		node := p.arena.CreateNode(cssast.KindID, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		p.arena.SetContentSlice(node, 1, t.End-t.Start-1)
		return node
	case csslex.LeftBracket:
		return p.parseAttributeSelector(bound)
	case csslex.Colon:
		return p.parsePseudo(bound)
	default:
		return cssast.NullIndex
	}
}

func (p *parser) parseTypeOrNamespaced(bound int) uint32 {
	start := p.tokens[p.index]
	nameStart, nameEnd := start.Start, start.Start
	if start.Kind == csslex.Ident {
		nameStart, nameEnd = start.Start, start.End
		p.index++
	} else {
		// leading '|'
		p.index++
	}
	end := nameEnd
	contentStart, contentEnd := nameStart, nameEnd

	if p.index < bound && p.tokens[p.index].Kind == csslex.Delim && p.delimText(p.tokens[p.index]) == "|" {
		p.index++
		if p.index < bound {
			lt := p.tokens[p.index]
			if lt.Kind == csslex.Ident {
				contentStart, contentEnd = lt.Start, lt.End
				end = lt.End
				p.index++
			} else if lt.Kind == csslex.Delim && p.delimText(lt) == "*" {
				contentStart, contentEnd = lt.Start, lt.End
				end = lt.End
				p.index++
				node := p.arena.CreateNode(cssast.KindUniversal, start.Start, start.Line, start.Column)
				p.arena.SetLength(node, end-start.Start)
				return node
			}
		}
	}

	node := p.arena.CreateNode(cssast.KindType, start.Start, start.Line, start.Column)
	p.arena.SetLength(node, end-start.Start)
	p.arena.SetContentSlice(node, contentStart-start.Start, contentEnd-contentStart)
	return node
}

// parseClassSelector parses ".ident" (spec.md §4.8, GLOSSARY "Class selector").
func (p *parser) parseClassSelector(bound int) uint32 {
	dot := p.tokens[p.index]
	p.index++ // '.'
	end := dot.End
	contentStart, contentEnd := dot.End, dot.End
	if p.index < bound && p.tokens[p.index].Kind == csslex.Ident {
		nt := p.tokens[p.index]
		contentStart, contentEnd = nt.Start, nt.End
		end = nt.End
		p.index++
	}
	node := p.arena.CreateNode(cssast.KindClass, dot.Start, dot.Line, dot.Column)
	p.arena.SetLength(node, end-dot.Start)
	p.arena.SetContentSlice(node, contentStart-dot.Start, contentEnd-contentStart)
	return node
}

func (p *parser) parseUniversalOrNamespaced(bound int) uint32 {
	start := p.tokens[p.index]
	p.index++ // '*'
	end := start.End

	if p.index < bound && p.tokens[p.index].Kind == csslex.Delim && p.delimText(p.tokens[p.index]) == "|" {
		p.index++
		if p.index < bound {
			lt := p.tokens[p.index]
			if lt.Kind == csslex.Ident || (lt.Kind == csslex.Delim && p.delimText(lt) == "*") {
				end = lt.End
				p.index++
			}
		}
	}
	node := p.arena.CreateNode(cssast.KindUniversal, start.Start, start.Line, start.Column)
	p.arena.SetLength(node, end-start.Start)
	return node
}

// parseAttributeSelector parses "[ name op value flags ]" (spec.md §4.8).
func (p *parser) parseAttributeSelector(bound int) uint32 {
	open := p.tokens[p.index]
	node := p.arena.CreateNode(cssast.KindAttribute, open.Start, open.Line, open.Column)
	p.index++ // '['

	innerBound := bound
	depth := 1
	closeIdx := -1
	for i := p.index; i < bound; i++ {
		switch p.tokens[i].Kind {
		case csslex.LeftBracket:
			depth++
		case csslex.RightBracket:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx >= 0 {
		innerBound = closeIdx
	}

	p.skipSelectorWhitespace(innerBound)
	if p.index < innerBound && p.tokens[p.index].Kind == csslex.Ident {
		nt := p.tokens[p.index]
		p.arena.SetContentSlice(node, nt.Start-open.Start, nt.End-nt.Start)
		p.index++
	}
	p.skipSelectorWhitespace(innerBound)

	if p.index < innerBound {
		op, opLen := attrOperator(p, innerBound)
		if op != cssast.AttrOpNone {
			p.arena.SetAttrOp(node, op)
			p.index += opLen
			p.skipSelectorWhitespace(innerBound)
			if p.index < innerBound {
				vt := p.tokens[p.index]
				switch vt.Kind {
				case csslex.String, csslex.Ident:
					p.arena.SetValueSlice(node, vt.Start-open.Start, vt.End-vt.Start)
					p.index++
				}
			}
			p.skipSelectorWhitespace(innerBound)
			if p.index < innerBound && p.tokens[p.index].Kind == csslex.Ident {
				flag := strings.ToLower(p.delimText(p.tokens[p.index]))
				switch flag {
				case "i":
					p.arena.SetAttrFlags(node, cssast.AttrCaseInsensitive)
					p.index++
				case "s":
					p.arena.SetAttrFlags(node, cssast.AttrCaseSensitive)
					p.index++
				}
			}
		}
	}

	end := open.End
	if closeIdx >= 0 {
		end = p.tokens[closeIdx].End
		p.index = closeIdx + 1
	} else {
		p.index = bound
	}
	p.arena.SetLength(node, end-open.Start)
	return node
}

// attrOperator recognizes the six attribute-selector operators. All but '='
// are two-byte Delim-Delim pairs in the raw token stream (e.g. '~' then
// '='), since the tokenizer has no combined token for them.
func attrOperator(p *parser, bound int) (cssast.AttrOp, int) {
	t := p.tokens[p.index]
	if t.Kind == csslex.Delim && p.delimText(t) == "=" {
		return cssast.AttrOpEquals, 1
	}
	if t.Kind != csslex.Delim || p.index+1 >= bound {
		return cssast.AttrOpNone, 0
	}
	next := p.tokens[p.index+1]
	if next.Kind != csslex.Delim || p.delimText(next) != "=" {
		return cssast.AttrOpNone, 0
	}
	switch p.delimText(t) {
	case "~":
		return cssast.AttrOpIncludes, 2
	case "|":
		return cssast.AttrOpDashMatch, 2
	case "^":
		return cssast.AttrOpPrefix, 2
	case "$":
		return cssast.AttrOpSuffix, 2
	case "*":
		return cssast.AttrOpSubstring, 2
	}
	return cssast.AttrOpNone, 0
}

// parsePseudo parses ":"ident, "::"ident, or ":"function (spec.md §4.8).
func (p *parser) parsePseudo(bound int) uint32 {
	colon := p.tokens[p.index]
	p.index++
	isElement := false
	if p.index < bound && p.tokens[p.index].Kind == csslex.Colon {
		isElement = true
		p.index++
	}
	if p.index >= bound {
		return cssast.NullIndex
	}
	t := p.tokens[p.index]

	if t.Kind == csslex.Function {
		return p.parsePseudoFunction(colon, t, isElement, bound)
	}
	if t.Kind != csslex.Ident {
		return cssast.NullIndex
	}
	p.index++
	kind := cssast.KindPseudoClass
	if isElement {
		kind = cssast.KindPseudoElement
	}
	node := p.arena.CreateNode(kind, colon.Start, colon.Line, colon.Column)
	p.arena.SetLength(node, t.End-colon.Start)
	p.arena.SetContentSlice(node, t.Start-colon.Start, t.End-t.Start)
	return node
}

func (p *parser) parsePseudoFunction(colon, fn csslex.Token, isElement bool, bound int) uint32 {
	name := strings.ToLower(p.source[fn.Start : fn.End-1]) // function token includes the '('
	p.index++                                              // consume function token

	closeIdx := matchingParen(p, bound, csslex.RightParen)

	kind := cssast.KindPseudoClass
	if isElement {
		kind = cssast.KindPseudoElement
	}
	node := p.arena.CreateNode(kind, colon.Start, colon.Line, colon.Column)
	p.arena.SetContentSlice(node, fn.Start-colon.Start, fn.End-1-fn.Start)
	p.arena.SetFlag(node, cssast.FlagHasParens)

	argBound := bound
	if closeIdx >= 0 {
		argBound = closeIdx
	}

	switch {
	case nthFunctions[name]:
		p.parseNthArgument(node, argBound)
	case name == "lang":
		p.parseLangArgument(node, argBound)
	case selectorListFunctions[name]:
		p.skipSelectorWhitespace(argBound)
		allowLeading := name == "has"
		sel := p.parseSelectorList(argBound, allowLeading)
		p.arena.AppendChild(node, sel)
	default:
		// Unrecognized pseudo-class function: no structured argument, the
		// raw text is still available via Text().
	}

	end := fn.Start
	if closeIdx >= 0 {
		end = p.tokens[closeIdx].End
		p.index = closeIdx + 1
	} else {
		end = p.tokens[argBound-1].End
		p.index = argBound
	}
	p.arena.SetLength(node, end-colon.Start)
	return node
}

func matchingParen(p *parser, bound int, want csslex.Kind) int {
	depth := 1
	for i := p.index; i < bound; i++ {
		switch p.tokens[i].Kind {
		case csslex.LeftParen, csslex.Function:
			depth++
		case csslex.RightParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (p *parser) parseNthArgument(pseudo uint32, bound int) {
	p.skipSelectorWhitespace(bound)
	nth := p.parseAnB(bound)
	if nth == cssast.NullIndex {
		return
	}
	p.skipSelectorWhitespace(bound)

	if p.index < bound && p.tokens[p.index].Kind == csslex.Ident && strings.EqualFold(p.delimText(p.tokens[p.index]), "of") {
		ofTok := p.tokens[p.index]
		p.index++
		p.skipSelectorWhitespace(bound)
		nthOf := p.arena.CreateNode(cssast.KindNthOf, p.arena.StartOffset(nth), p.arena.StartLine(nth), p.arena.StartColumn(nth))
		p.arena.AppendChild(nthOf, nth)
		sel := p.parseSelectorList(bound, false)
		p.arena.AppendChild(nthOf, sel)
		end := ofTok.End
		if p.index > 0 && p.index-1 < len(p.tokens) {
			end = p.tokens[p.index-1].End
		}
		p.arena.SetLength(nthOf, end-p.arena.StartOffset(nth))
		p.arena.AppendChild(pseudo, nthOf)
		return
	}
	p.arena.AppendChild(pseudo, nth)
}

func (p *parser) parseLangArgument(pseudo uint32, bound int) {
	for {
		p.skipSelectorWhitespace(bound)
		if p.index >= bound {
			return
		}
		t := p.tokens[p.index]
		if t.Kind != csslex.Ident && t.Kind != csslex.String {
			return
		}
		node := p.arena.CreateNode(cssast.KindLang, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		p.arena.AppendChild(pseudo, node)
		p.index++
		p.skipSelectorWhitespace(bound)
		if p.index < bound && p.tokens[p.index].Kind == csslex.Comma {
			p.index++
			continue
		}
		return
	}
}
