package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

// parsePreludeNode dispatches on the at-rule name to the shared condition
// grammar (@media, @supports, @container) or the layer-name grammar
// (@layer), per spec.md §4.7. startTok/endTok bound the prelude's token
// range; p.index is restored to its caller-visible position afterward. The
// condition grammar returns one node per top-level comma-separated query, so
// the result is always a slice — single-node preludes (layer, keyframes,
// property) come back as a one-element slice, nil on failure.
func (p *parser) parsePreludeNode(name string, startTok, endTok int) []uint32 {
	resume := p.index
	p.index = startTok
	var nodes []uint32
	switch strings.ToLower(name) {
	case "media":
		nodes = p.parseConditionPrelude(cssast.KindMediaQuery, endTok)
	case "supports":
		nodes = p.parseConditionPrelude(cssast.KindSupportsQuery, endTok)
	case "container":
		nodes = p.parseConditionPrelude(cssast.KindContainerQuery, endTok)
	case "layer":
		if node := p.parseLayerNamePrelude(endTok); node != cssast.NullIndex {
			nodes = []uint32{node}
		}
	case "keyframes", "property":
		if node := p.parseSingleIdentifierPrelude(endTok); node != cssast.NullIndex {
			nodes = []uint32{node}
		}
	}
	p.index = resume
	return nodes
}

// parseConditionPrelude parses the shared media/supports/container-query
// grammar: a top-level comma-separated list of queries, each a sequence of
// keywords (media type, and/or/not/only), parenthesized features, and plain
// identifiers (spec.md §4.7). Each comma-separated group becomes its own
// node — @media screen, print yields two sibling KindMediaQuery nodes, not
// one node with the comma silently dropped.
func (p *parser) parseConditionPrelude(kind cssast.Kind, bound int) []uint32 {
	var nodes []uint32
	for p.index < bound {
		for p.index < bound && (p.tokens[p.index].Kind == csslex.Whitespace || p.tokens[p.index].Kind == csslex.Comment) {
			p.index++
		}
		if p.index >= bound {
			break
		}
		node := p.parseOneCondition(kind, bound)
		if node != cssast.NullIndex {
			nodes = append(nodes, node)
		}
		for p.index < bound && (p.tokens[p.index].Kind == csslex.Whitespace || p.tokens[p.index].Kind == csslex.Comment) {
			p.index++
		}
		if p.index < bound && p.tokens[p.index].Kind == csslex.Comma {
			p.index++
			continue
		}
		break
	}
	return nodes
}

// parseOneCondition parses a single query up to the next top-level comma or
// bound. For a media query (and only a media query — @supports/@container
// have no media-type concept), the first identifier that isn't one of the
// only/not/and/or keywords is tagged KindMediaType instead of the generic
// KindPreludeIdentifier (spec.md §3.3/§4.7), mirroring the distinction the
// teacher's css_parser_media.go draws between the media type and everything
// else in the condition.
func (p *parser) parseOneCondition(kind cssast.Kind, bound int) uint32 {
	if p.index >= bound {
		return cssast.NullIndex
	}
	first := p.tokens[p.index]
	node := p.arena.CreateNode(kind, first.Start, first.Line, first.Column)
	last := first.Start
	sawMediaType := false

loop:
	for p.index < bound {
		t := p.tokens[p.index]
		switch t.Kind {
		case csslex.Comma:
			break loop
		case csslex.Whitespace, csslex.Comment:
			p.index++
		case csslex.LeftParen:
			child := p.parseFeatureParen(bound)
			if child != cssast.NullIndex {
				p.arena.AppendChild(node, child)
			}
			last = p.tokens[p.index-1].End
		case csslex.Ident:
			childKind := cssast.KindPreludeIdentifier
			if kind == cssast.KindMediaQuery && !sawMediaType && !isMediaKeyword(p.source[t.Start:t.End]) {
				childKind = cssast.KindMediaType
				sawMediaType = true
			}
			child := p.arena.CreateNode(childKind, t.Start, t.Line, t.Column)
			p.arena.SetLength(child, t.End-t.Start)
			p.arena.AppendChild(node, child)
			last = t.End
			p.index++
		default:
			child := p.arena.CreateNode(cssast.KindPreludeOperator, t.Start, t.Line, t.Column)
			p.arena.SetLength(child, t.End-t.Start)
			p.arena.AppendChild(node, child)
			last = t.End
			p.index++
		}
	}
	p.arena.SetLength(node, last-first.Start)
	return node
}

// isMediaKeyword reports whether ident is one of the media-query logical
// keywords (only/not/and/or) rather than a media-type name, so the first
// non-keyword identifier in a query can be singled out as the media type.
func isMediaKeyword(ident string) bool {
	switch {
	case strings.EqualFold(ident, "only"):
		return true
	case strings.EqualFold(ident, "not"):
		return true
	case strings.EqualFold(ident, "and"):
		return true
	case strings.EqualFold(ident, "or"):
		return true
	default:
		return false
	}
}

// parseFeatureParen parses one parenthesized feature test, e.g.
// "(min-width: 40em)" or "(color)", starting at the current '(' token.
func (p *parser) parseFeatureParen(bound int) uint32 {
	open := p.tokens[p.index]
	node := p.arena.CreateNode(cssast.KindMediaFeature, open.Start, open.Line, open.Column)
	p.index++
	depth := 1

	nameStart, nameEnd := -1, -1
	valueStart, valueEnd := -1, -1
	sawColon := false
	sawName := false

	for p.index < bound && depth > 0 {
		t := p.tokens[p.index]
		switch t.Kind {
		case csslex.LeftParen:
			depth++
			if sawColon {
				if valueStart == -1 {
					valueStart = t.Start
				}
				valueEnd = t.End
			}
			p.index++
		case csslex.RightParen:
			depth--
			if depth > 0 && sawColon {
				if valueStart == -1 {
					valueStart = t.Start
				}
				valueEnd = t.End
			}
			p.index++
		case csslex.Whitespace, csslex.Comment:
			p.index++
		case csslex.Colon:
			sawColon = true
			p.index++
		case csslex.Ident:
			if !sawName && !sawColon {
				nameStart, nameEnd = t.Start, t.End
				sawName = true
			} else if sawColon {
				if valueStart == -1 {
					valueStart = t.Start
				}
				valueEnd = t.End
			}
			p.index++
		default:
			if sawColon {
				if valueStart == -1 {
					valueStart = t.Start
				}
				valueEnd = t.End
			}
			p.index++
		}
	}

	end := open.End
	if p.index > 0 && p.index <= bound {
		end = p.tokens[p.index-1].End
	}
	p.arena.SetLength(node, end-open.Start)
	p.arena.SetFlag(node, cssast.FlagHasParens)
	if sawName {
		p.arena.SetContentSlice(node, nameStart-open.Start, nameEnd-nameStart)
	}
	if sawColon && valueEnd > valueStart {
		p.arena.SetValueSlice(node, valueStart-open.Start, valueEnd-valueStart)
	}
	return node
}

// parseSingleIdentifierPrelude parses the @keyframes/@property prelude
// grammar (spec.md §4.7): a single name — the keyframes name or the
// custom-property name being declared — and nothing else, grounded on
// esbuild's css_parser.go @keyframes name handling (an ident, or a string
// name in the teacher's permissive case). Trailing tokens beyond the name
// are ignored here; they are still visible in the raw prelude slice.
func (p *parser) parseSingleIdentifierPrelude(bound int) uint32 {
	p.skipSelectorWhitespace(bound)
	if p.index >= bound {
		return cssast.NullIndex
	}
	t := p.tokens[p.index]
	if t.Kind != csslex.Ident && t.Kind != csslex.String {
		return cssast.NullIndex
	}
	node := p.arena.CreateNode(cssast.KindPreludeIdentifier, t.Start, t.Line, t.Column)
	p.arena.SetLength(node, t.End-t.Start)
	p.arena.SetContentSlice(node, 0, t.End-t.Start)
	p.index++
	return node
}

// parseLayerNamePrelude parses an @layer prelude, a single dotted layer
// name (block form) or a comma-separated list of names (statement form);
// spec.md §4.7 supplement. The whole prelude's trimmed text becomes the
// node's content slice.
func (p *parser) parseLayerNamePrelude(bound int) uint32 {
	if p.index >= bound {
		return cssast.NullIndex
	}
	first := p.tokens[p.index]
	node := p.arena.CreateNode(cssast.KindLayerName, first.Start, first.Line, first.Column)

	nameStart, nameEnd := -1, -1
	last := first.Start
	for p.index < bound {
		t := p.tokens[p.index]
		if t.Kind != csslex.Whitespace && t.Kind != csslex.Comment {
			if nameStart == -1 {
				nameStart = t.Start
			}
			nameEnd = t.End
		}
		last = t.End
		p.index++
	}
	p.arena.SetLength(node, last-first.Start)
	if nameStart >= 0 {
		p.arena.SetContentSlice(node, nameStart-first.Start, nameEnd-nameStart)
	}
	return node
}
