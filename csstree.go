// Package csstree is the public surface of the CSS parsing engine: a
// tokenizer, a columnar-arena AST, and a layered recursive-descent parser
// with selector/value/at-rule-prelude sub-parsers (spec.md §6).
//
// Everything that does the real work lives under internal/; this package
// is the thin, stable entry point a caller imports, mirroring the way
// evanw/esbuild's pkg/ wraps its own internal/ packages.
package csstree

import (
	"github.com/arenacss/arenacss/internal/cssast"
	"github.com/arenacss/arenacss/internal/csslex"
	"github.com/arenacss/arenacss/internal/cssparser"
)

// Options is the closed configuration surface for Parse.
type Options = cssparser.Options

// DefaultOptions returns every sub-parser enabled, comments discarded.
func DefaultOptions() Options { return cssparser.DefaultOptions() }

// Parse tokenizes and parses source into a stylesheet tree, returning the
// root node view.
func Parse(source string, opts Options) cssast.View {
	return cssparser.Parse(source, opts)
}

// Tokenizer is a pull-style cursor over a lazy token sequence (spec.md §6
// "one that tokenizes and yields a lazy token sequence").
type Tokenizer = csslex.Tokenizer

// Tokenize returns a fresh tokenizer positioned at the start of source.
// skipComments controls whether comment tokens are discarded; when true,
// onComment (if non-nil) is invoked with each discarded comment's range
// before the tokenizer advances past it. When false, comments are returned
// as Comment tokens and onComment is not called.
func Tokenize(source string, skipComments bool, onComment csslex.CommentFunc) *Tokenizer {
	return csslex.New(source, skipComments, onComment)
}

// Tokens eagerly collects every token in source, including the trailing
// end-of-file token, with comments skipped.
func Tokens(source string) []csslex.Token {
	tz := Tokenize(source, true, nil)
	var out []csslex.Token
	for {
		t := tz.Advance(false)
		out = append(out, t)
		if t.Kind == csslex.EOF {
			break
		}
	}
	return out
}

// ParseSelectorString parses source as a standalone selector list.
func ParseSelectorString(source string) cssast.View {
	return cssparser.ParseSelectorText(source)
}

// ParseAnPlusBString parses source as a standalone An+B expression.
func ParseAnPlusBString(source string) cssast.View {
	return cssparser.ParseAnPlusBText(source)
}

// ParsePreludeString parses prelude as the at-rule prelude belonging to
// atRuleName, returning one node per top-level comma-separated query (most
// at-rules produce exactly one; @media can produce a list).
func ParsePreludeString(atRuleName, prelude string) []cssast.View {
	return cssparser.ParsePreludeText(atRuleName, prelude)
}
