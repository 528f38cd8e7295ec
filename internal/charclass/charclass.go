// Package charclass classifies ASCII bytes for the CSS tokenizer with a
// single table lookup instead of a chain of branch comparisons.
package charclass

// Mask bits, one per classification queried by the lexer.
const (
	Digit mask = 1 << iota
	Hex
	Alpha
	Whitespace
	Newline
)

type mask uint8

// table has one entry per ASCII code point. Non-ASCII bytes never index
// into it; the lexer treats any byte >= 0x80 as the start of an identifier
// per CSS Syntax Level 3, which table-driven classification can't express
// without a second, sparser table, so that case is handled by IsNameStart's
// explicit c >= 0x80 check (and by the lexer for decoded non-ASCII runes)
// instead.
var table [128]mask

func init() {
	for c := '0'; c <= '9'; c++ {
		table[c] |= Digit | Hex
	}
	for c := 'a'; c <= 'f'; c++ {
		table[c] |= Hex
	}
	for c := 'A'; c <= 'F'; c++ {
		table[c] |= Hex
	}
	for c := 'a'; c <= 'z'; c++ {
		table[c] |= Alpha
	}
	for c := 'A'; c <= 'Z'; c++ {
		table[c] |= Alpha
	}
	for _, c := range []byte{' ', '\t', '\n', '\r', '\f'} {
		table[c] |= Whitespace
	}
	for _, c := range []byte{'\n', '\r', '\f'} {
		table[c] |= Newline
	}
}

func has(c byte, m mask) bool {
	return c < 128 && table[c]&m != 0
}

func IsDigit(c byte) bool      { return has(c, Digit) }
func IsHex(c byte) bool        { return has(c, Hex) }
func IsAlpha(c byte) bool      { return has(c, Alpha) }
func IsWhitespace(c byte) bool { return has(c, Whitespace) }
func IsNewline(c byte) bool    { return has(c, Newline) }

// IsNameStart reports whether c begins a CSS identifier. Non-ASCII bytes
// are always identifier-start, per CSS Syntax Level 3 (any code point
// U+0080 or greater is permitted in identifiers). '_' is custom-handled
// here alongside 'a'-'z'/'A'-'Z' rather than folded into the Alpha mask,
// so that IsAlpha stays letters-only.
func IsNameStart(c byte) bool {
	return IsAlpha(c) || c == '_' || c >= 0x80
}

// IsNameContinue reports whether c can continue (but not necessarily
// start) a CSS identifier: name-start characters, digits, and '-'.
func IsNameContinue(c byte) bool {
	return IsNameStart(c) || IsDigit(c) || c == '-'
}

func HexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
