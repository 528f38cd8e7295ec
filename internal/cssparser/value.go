package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

// parseValueListBounded parses a declaration value (or a function/paren
// argument list) into a flat sequence of sibling nodes over a bounded token
// range (spec.md §4.10).
func (p *parser) parseValueListBounded(startTok, endTok int) []uint32 {
	resume := p.index
	p.index = startTok
	nodes := p.parseValueList(endTok)
	p.index = resume
	return nodes
}

func (p *parser) parseValueList(bound int) []uint32 {
	var nodes []uint32
	for p.index < bound {
		t := p.tokens[p.index]
		if t.Kind == csslex.Whitespace || t.Kind == csslex.Comment {
			p.index++
			continue
		}
		n := p.parseOneValue(bound)
		if n != cssast.NullIndex {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (p *parser) parseOneValue(bound int) uint32 {
	t := p.tokens[p.index]
	switch t.Kind {
	case csslex.Ident:
		p.index++
		node := p.arena.CreateNode(cssast.KindIdentifier, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		return node
	case csslex.Number:
		p.index++
		node := p.arena.CreateNode(cssast.KindNumber, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		return node
	case csslex.Percentage, csslex.Dimension:
		p.index++
		node := p.arena.CreateNode(cssast.KindDimension, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		unitOffset := int(t.UnitOffset)
		if t.Kind == csslex.Percentage {
			unitOffset = t.End - t.Start - 1 // the trailing '%'
		}
		p.arena.SetContentSlice(node, unitOffset, t.End-t.Start-unitOffset)
		return node
	case csslex.String:
		p.index++
		node := p.arena.CreateNode(cssast.KindString, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		return node
	case csslex.Hash:
		p.index++
		node := p.arena.CreateNode(cssast.KindHash, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		p.arena.SetContentSlice(node, 1, t.End-t.Start-1)
		return node
	case csslex.URL:
		return p.parseVerbatimURL(t)
	case csslex.Function:
		return p.parseFunctionValue(t, bound)
	case csslex.LeftParen:
		return p.parseParenValue(t, bound)
	case csslex.Comma, csslex.Delim:
		p.index++
		node := p.arena.CreateNode(cssast.KindOperator, t.Start, t.Line, t.Column)
		p.arena.SetLength(node, t.End-t.Start)
		return node
	default:
		p.index++
		return cssast.NullIndex
	}
}

// parseVerbatimURL handles the bare url-token form (spec.md §4.10): the
// bytes between "url(" and the closing ")" are captured as-is, never
// tokenized further, so data URIs and unquoted URLs with unusual bytes
// survive intact.
func (p *parser) parseVerbatimURL(t csslex.Token) uint32 {
	p.index++
	node := p.arena.CreateNode(cssast.KindFunction, t.Start, t.Line, t.Column)
	p.arena.SetLength(node, t.End-t.Start)
	p.arena.SetContentSlice(node, 0, 3) // "url"
	inner := p.source[t.Start+4 : t.End]
	inner = strings.TrimRight(inner, ")")
	p.arena.SetValueSlice(node, 4, len(inner))
	return node
}

func (p *parser) parseFunctionValue(t csslex.Token, bound int) uint32 {
	p.index++
	node := p.arena.CreateNode(cssast.KindFunction, t.Start, t.Line, t.Column)
	name := p.source[t.Start : t.End-1]
	p.arena.SetContentSlice(node, 0, len(name))
	p.arena.SetFlag(node, cssast.FlagHasParens)

	closeIdx := matchingParen(p, bound, csslex.RightParen)
	argBound := bound
	if closeIdx >= 0 {
		argBound = closeIdx
	}

	lower := strings.ToLower(name)
	if lower == "url" || lower == "src" {
		// Quoted/functional form: still captured verbatim, no children
		// (spec.md §4.10 url/src special case).
		innerStart := t.End
		innerEnd := t.End
		if argBound > p.index {
			innerStart = p.tokens[p.index].Start
			innerEnd = p.tokens[argBound-1].End
		}
		p.arena.SetValueSlice(node, innerStart-t.Start, innerEnd-innerStart)
	} else {
		children := p.parseValueList(argBound)
		p.arena.AppendChildren(node, children)
	}

	end := t.End
	if closeIdx >= 0 {
		end = p.tokens[closeIdx].End
		p.index = closeIdx + 1
	} else {
		p.index = bound
		if bound > 0 {
			end = p.tokens[bound-1].End
		}
	}
	p.arena.SetLength(node, end-t.Start)
	return node
}

func (p *parser) parseParenValue(t csslex.Token, bound int) uint32 {
	p.index++
	node := p.arena.CreateNode(cssast.KindParenthesis, t.Start, t.Line, t.Column)
	p.arena.SetFlag(node, cssast.FlagHasParens)

	closeIdx := matchingParen(p, bound, csslex.RightParen)
	argBound := bound
	if closeIdx >= 0 {
		argBound = closeIdx
	}
	children := p.parseValueList(argBound)
	p.arena.AppendChildren(node, children)

	end := t.End
	if closeIdx >= 0 {
		end = p.tokens[closeIdx].End
		p.index = closeIdx + 1
	} else {
		p.index = bound
		if bound > 0 {
			end = p.tokens[bound-1].End
		}
	}
	p.arena.SetLength(node, end-t.Start)
	return node
}
