// Package cssparser implements the layered recursive-descent CSS parser
// (spec.md §4.4) plus its three lazily-invoked sub-parsers: selector
// (selector.go, anb.go), value (value.go), and at-rule prelude (atrule.go,
// prelude.go).
//
// Tokens are materialized once up front into a slice (the same technique
// evanw/esbuild's css_parser uses): the tokenizer's cursor primitive
// (spec.md §4.2, §9) becomes, for every sub-parser here, a plain int index
// into that slice — still a pure value copy, still the exclusive
// backtracking primitive, just over a materialized stream instead of a
// live one. The standalone streaming entry point (spec.md §6) is exposed
// separately in the root package and does not go through this parser.
package cssparser

import (
	"strings"

	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
)

type parser struct {
	source  string
	arena   *cssast.Arena
	tokens  []csslex.Token
	index   int
	options Options
}

// Parse drives the whole pipeline: tokenize, then recursive-descent over
// the stylesheet grammar, writing directly into a fresh arena (spec.md §2
// data flow, §4.4).
func Parse(source string, options Options) cssast.View {
	tokens := tokenizeAll(source, options.SkipComments, options.CommentObserver)
	arena := cssast.NewArena(len(source))
	p := &parser{source: source, arena: arena, tokens: tokens, options: options}

	root := arena.CreateNode(cssast.KindStylesheet, 0, 1, 1)
	rules := p.parseListOfRules(topLevel)
	arena.AppendChildren(root, rules)
	arena.SetLength(root, len(source))
	return cssast.Node(arena, source, root)
}

func tokenizeAll(source string, skipComments bool, onComment csslex.CommentFunc) []csslex.Token {
	lx := csslex.New(source, skipComments, onComment)
	var tokens []csslex.Token
	for {
		t := lx.Advance(false)
		if t.Kind == csslex.Comment && onComment != nil {
			// Comments kept in the stream (skipComments false) are reported
			// here; skipped ones are reported by the tokenizer itself.
			onComment(t.Start, t.End, t.Line, t.Column)
		}
		tokens = append(tokens, t)
		if t.Kind == csslex.EOF {
			break
		}
	}
	return tokens
}

// --- token stream helpers -------------------------------------------------

func (p *parser) at(i int) csslex.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	last := p.tokens[len(p.tokens)-1]
	return csslex.Token{Kind: csslex.EOF, Start: last.End, End: last.End, Line: last.Line, Column: last.Column}
}

func (p *parser) current() csslex.Token { return p.at(p.index) }

func (p *parser) advance() {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
}

func (p *parser) peek(k csslex.Kind) bool { return p.current().Kind == k }

func (p *parser) eat(k csslex.Kind) bool {
	if p.peek(k) {
		p.advance()
		return true
	}
	return false
}

// eatWhitespace skips zero or more whitespace tokens and reports whether
// any were consumed (used to distinguish a descendant combinator, spec.md
// §4.8, from no combinator at all).
func (p *parser) eatWhitespace() bool {
	saw := false
	for p.eat(csslex.Whitespace) {
		saw = true
	}
	return saw
}

func (p *parser) eatWhitespaceAndComments() {
	for p.peek(csslex.Whitespace) || p.peek(csslex.Comment) {
		p.advance()
	}
}

func (p *parser) text() string {
	t := p.current()
	return p.source[t.Start:t.End]
}

// save/restore is the cursor-copy backtracking primitive every trial parser
// in this package uses (spec.md §4.2, §9).
func (p *parser) save() int        { return p.index }
func (p *parser) restore(c int)    { p.index = c }

// --- top-level driver ------------------------------------------------------

type ruleContext struct {
	isTopLevel bool
}

var topLevel = ruleContext{isTopLevel: true}
var nestedLevel = ruleContext{isTopLevel: false}

// parseListOfRules implements the stylesheet state machine of spec.md §4.4:
// consume tokens until the terminator (EOF at the top level, '}' nested).
func (p *parser) parseListOfRules(ctx ruleContext) []uint32 {
	var rules []uint32
	for {
		p.eatWhitespaceAndComments()
		switch p.current().Kind {
		case csslex.EOF:
			return rules
		case csslex.RightBrace:
			if !ctx.isTopLevel {
				return rules
			}
			p.advance() // stray close-brace; skip and keep going
		case csslex.AtKeyword:
			rules = append(rules, p.parseAtRule())
		default:
			if idx, ok := p.parseStyleRule(); ok {
				rules = append(rules, idx)
			} else {
				p.advance()
			}
		}
	}
}

// --- style rules (spec.md §4.4) --------------------------------------------

func (p *parser) parseStyleRule() (uint32, bool) {
	start := p.current()
	selectorStart := start.Start
	startTok := p.index

	for {
		switch p.current().Kind {
		case csslex.LeftBrace, csslex.RightBrace, csslex.EOF:
			goto foundBrace
		case csslex.Semicolon:
			// A bare ';' can never appear in a selector; this cannot be a
			// style rule (error recovery, spec.md §4.4).
			p.restore(startTok)
			return 0, false
		default:
			p.advance()
		}
	}
foundBrace:
	if !p.peek(csslex.LeftBrace) {
		p.restore(startTok)
		return 0, false
	}
	selectorEndTok := p.index

	rule := p.arena.CreateNode(cssast.KindStyleRule, selectorStart, start.Line, start.Column)
	var selList uint32
	if p.options.ParseSelectors {
		selList = p.parseSelectorListBounded(startTok, selectorEndTok, false)
	}
	if selList == cssast.NullIndex {
		// Flat selector-list node carrying only the trimmed selector text.
		selList = p.arena.CreateNode(cssast.KindSelectorList, selectorStart, start.Line, start.Column)
		_, selEnd := trimSlice(p.source, selectorStart, p.tokens[selectorEndTok].Start)
		p.arena.SetLength(selList, selEnd-selectorStart)
	}
	p.arena.AppendChild(rule, selList)

	p.advance() // consume '{'
	p.arena.SetFlag(rule, cssast.FlagHasBlock)
	block := p.parseBlockBody(blockConditional)
	p.arena.AppendChild(rule, block)

	end := p.current().End
	if p.eat(csslex.RightBrace) {
		end = p.tokens[p.index-1].End
	}
	p.arena.SetLength(rule, end-selectorStart)
	return rule, true
}

// parseBlockBody parses the contents of a '{' ... '}' block already
// positioned just after the opening brace, per the class of the enclosing
// rule (spec.md §4.4 step 3-5, §4.6).
func (p *parser) parseBlockBody(class blockClass) uint32 {
	open := p.current()
	block := p.arena.CreateNode(cssast.KindBlock, open.Start, open.Line, open.Column)
	bodyStart := open.Start

	hasDeclarations := false
loop:
	for {
		p.eatWhitespaceAndComments()
		switch p.current().Kind {
		case csslex.RightBrace, csslex.EOF:
			break loop
		case csslex.AtKeyword:
			p.arena.AppendChild(block, p.parseAtRule())
		default:
			switch class {
			case blockDeclarationsOnly:
				if idx, ok := p.tryParseDeclaration(); ok {
					hasDeclarations = true
					p.arena.AppendChild(block, idx)
				} else {
					p.advance()
				}
			case blockOther:
				if idx, ok := p.parseStyleRule(); ok {
					p.arena.AppendChild(block, idx)
				} else {
					p.advance()
				}
			default: // blockConditional: declarations and/or nested rules
				if idx, ok := p.tryParseDeclaration(); ok {
					hasDeclarations = true
					p.arena.AppendChild(block, idx)
				} else if idx, ok := p.parseStyleRule(); ok {
					p.arena.AppendChild(block, idx)
				} else {
					p.advance()
				}
			}
		}
	}

	bodyEnd := p.current().Start
	p.arena.SetLength(block, bodyEnd-bodyStart)
	if hasDeclarations {
		p.arena.SetFlag(block, cssast.FlagHasDeclarations)
	}
	return block
}

// --- declarations (spec.md §4.5) -------------------------------------------

// tryParseDeclaration is the tentative parse described in spec.md §4.4/§4.5:
// it fails without consuming if the next token isn't an identifier
// immediately followed (modulo whitespace) by ':', letting the caller fall
// through to nested-style-rule parsing (CSS Nesting).
func (p *parser) tryParseDeclaration() (uint32, bool) {
	start := p.save()
	tok := p.current()
	if tok.Kind != csslex.Ident {
		p.restore(start)
		return 0, false
	}
	nameStart, nameEnd := tok.Start, tok.End
	p.advance()
	p.eatWhitespaceAndComments()
	if !p.peek(csslex.Colon) {
		p.restore(start)
		return 0, false
	}
	p.advance() // ':'
	p.eatWhitespaceAndComments()

	decl := p.arena.CreateNode(cssast.KindDeclaration, nameStart, tok.Line, tok.Column)
	p.arena.SetContentSlice(decl, 0, nameEnd-nameStart)

	name := p.source[nameStart:nameEnd]
	if isVendorPrefixed(name) {
		p.arena.SetFlag(decl, cssast.FlagVendorPrefixed)
	}

	valueStartTok := p.index
	valueStart := p.current().Start
	valueEnd := valueStart
	valueEndTok := valueStartTok // exclusive upper bound of the trimmed value's tokens
	important := false

	for {
		switch p.current().Kind {
		case csslex.Semicolon, csslex.RightBrace, csslex.EOF:
			goto doneValue
		case csslex.Delim:
			if p.text() == "!" {
				bangStart := p.current().Start
				bangTok := p.index
				save := p.save()
				p.advance()
				p.eatWhitespaceAndComments()
				if p.peek(csslex.Ident) {
					// Permissive per spec.md §9 Q1: any identifier after
					// '!' marks important, not just the literal spelling.
					p.advance()
					important = true
					valueEnd = bangStart
					valueEndTok = bangTok
					p.eatWhitespaceAndComments()
					continue
				}
				p.restore(save)
			}
			valueEnd = p.current().End
			p.advance()
			valueEndTok = p.index
		case csslex.Whitespace, csslex.Comment:
			p.advance()
		default:
			valueEnd = p.current().End
			p.advance()
			valueEndTok = p.index
		}
	}
doneValue:
	vs, ve := trimSlice(p.source, valueStart, valueEnd)
	p.arena.SetValueSlice(decl, vs-nameStart, ve-vs)

	if important {
		p.arena.SetFlag(decl, cssast.FlagImportant)
	}

	if p.options.ParseValues && ve > vs {
		children := p.parseValueListBounded(valueStartTok, valueEndTok)
		p.arena.AppendChildren(decl, children)
	}

	p.eat(csslex.Semicolon)
	p.arena.SetLength(decl, p.tokens[p.index-1].End-nameStart)
	if !(p.tokens[p.index-1].Kind == csslex.Semicolon) {
		p.arena.SetLength(decl, p.current().Start-nameStart)
	}
	return decl, true
}

func isTrimmableByte(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// trimSlice trims whitespace bytes from both ends of source[start:end],
// returning the trimmed bounds. Only whitespace is trimmed. The scanning loop
// above only extends valueEnd over non-whitespace, non-comment tokens, so a
// comment token can sit at the end of the range only when it comes just
// before a '!important' marker (valueEnd is then the '!' offset); such a
// comment stays in the value slice.
func trimSlice(source string, start, end int) (int, int) {
	for start < end && isTrimmableByte(rune(source[start])) {
		start++
	}
	for end > start && isTrimmableByte(rune(source[end-1])) {
		end--
	}
	return start, end
}

func isVendorPrefixed(name string) bool {
	for _, prefix := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
