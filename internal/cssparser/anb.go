package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

// parseAnB parses the An+B microsyntax used inside nth-* pseudo-classes
// (spec.md §4.9), grounded on esbuild's css_parser.parseNthIndex but
// recording raw source slices rather than normalized decimal strings: the
// "A" term goes in the node's content slice, the "B" term in its value
// slice, either of which may be empty. Returns NullIndex without consuming
// on a malformed expression.
func (p *parser) parseAnB(bound int) uint32 {
	if p.index >= bound {
		return cssast.NullIndex
	}
	entry := p.tokens[p.index]
	entryText := p.delimText(entry)

	// "odd" / "even": the whole keyword is the B term, A is empty.
	if entry.Kind == csslex.Ident && (strings.EqualFold(entryText, "odd") || strings.EqualFold(entryText, "even")) {
		p.index++
		node := p.arena.CreateNode(cssast.KindNth, entry.Start, entry.Line, entry.Column)
		p.arena.SetLength(node, entry.End-entry.Start)
		p.arena.SetValueSlice(node, 0, entry.End-entry.Start)
		return node
	}

	// A lone integer: the whole number is the B term, A is empty.
	if entry.Kind == csslex.Number {
		p.index++
		node := p.arena.CreateNode(cssast.KindNth, entry.Start, entry.Line, entry.Column)
		p.arena.SetLength(node, entry.End-entry.Start)
		p.arena.SetValueSlice(node, 0, entry.End-entry.Start)
		return node
	}

	idx := p.index
	hasLeadPlus := entry.Kind == csslex.Delim && entryText == "+"
	if hasLeadPlus {
		idx++
		if idx >= bound {
			return cssast.NullIndex
		}
	}
	aTok := p.tokens[idx]
	aText := p.delimText(aTok)
	if aTok.Kind != csslex.Ident && aTok.Kind != csslex.Dimension {
		return cssast.NullIndex
	}

	nOff := strings.IndexByte(strings.ToLower(aText), 'n')
	if nOff < 0 {
		return cssast.NullIndex
	}

	node := p.arena.CreateNode(cssast.KindNth, entry.Start, entry.Line, entry.Column)
	contentEnd := aTok.Start + nOff + 1
	p.arena.SetContentSlice(node, 0, contentEnd-entry.Start)

	remainderStart := contentEnd
	remainderEnd := aTok.End
	p.index = idx + 1

	if remainderEnd > remainderStart {
		// Fused form, e.g. "2n-5": B is the rest of the same token.
		p.arena.SetValueSlice(node, remainderStart-entry.Start, remainderEnd-remainderStart)
		p.arena.SetLength(node, remainderEnd-entry.Start)
		return node
	}

	// Otherwise the B term, if any, follows as separate tokens: optional
	// whitespace, optional sign, optional whitespace, then a number.
	last := remainderEnd
	save := p.index
	if p.index < bound && p.tokens[p.index].Kind == csslex.Whitespace {
		p.index++
	}

	signStart := -1
	if p.index < bound && p.tokens[p.index].Kind == csslex.Delim {
		d := p.delimText(p.tokens[p.index])
		if d == "+" || d == "-" {
			signStart = p.tokens[p.index].Start
			p.index++
			if p.index < bound && p.tokens[p.index].Kind == csslex.Whitespace {
				p.index++
			}
		}
	}

	if p.index < bound && p.tokens[p.index].Kind == csslex.Number {
		numTok := p.tokens[p.index]
		// The B slice stores a leading '-' (it changes the term's value) but
		// elides a leading '+' (it doesn't), per spec.md §8 S4: "2n+1" pins
		// the nth node's value to "1", not "+1". This applies whether the
		// sign was its own Delim token (the "2n + 1" spacing) or fused
		// directly into the number token's own text (the "2n+1" spacing,
		// where the lexer has no reason to split the sign off).
		valueStart := numTok.Start
		if signStart >= 0 {
			if p.source[signStart] == '-' {
				valueStart = signStart
			}
		} else if numTok.End > numTok.Start && p.source[numTok.Start] == '+' {
			valueStart = numTok.Start + 1
		}
		p.arena.SetValueSlice(node, valueStart-entry.Start, numTok.End-valueStart)
		last = numTok.End
		p.index++
	} else if signStart >= 0 {
		// A trailing sign with no following number: malformed per the
		// underlying An+B grammar. Leave B empty and don't consume the
		// dangling sign/whitespace.
		p.index = save
		last = remainderEnd
	} else {
		p.index = save
	}

	p.arena.SetLength(node, last-entry.Start)
	return node
}
