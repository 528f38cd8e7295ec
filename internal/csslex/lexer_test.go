package csslex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstToken(t *testing.T, source string) Token {
	t.Helper()
	tz := New(source, true, nil)
	return tz.Advance(false)
}

func TestTokenKinds(t *testing.T) {
	cases := []struct {
		source string
		kind   Kind
	}{
		{"", EOF},
		{"@media", AtKeyword},
		{"url(x y", BadURL},
		{"-->", CDC},
		{"<!--", CDO},
		{"}", RightBrace},
		{"]", RightBracket},
		{")", RightParen},
		{":", Colon},
		{";", Semicolon},
		{",", Comma},
		{"?", Delim},
		{"1px", Dimension},
		{"max(", Function},
		{"#0", Hash},
		{"#id", Hash},
		{"name", Ident},
		{"123", Number},
		{"{", LeftBrace},
		{"[", LeftBracket},
		{"(", LeftParen},
		{"50%", Percentage},
		{"'abc'", String},
		{"url(test)", URL},
		{" ", Whitespace},
		{"U+0025-00FF", UnicodeRange},
		{`"unterminated`, BadString},
	}
	for _, c := range cases {
		t.Run(c.source, func(t *testing.T) {
			tok := firstToken(t, c.source)
			assert.Equal(t, c.kind, tok.Kind, "source %q", c.source)
		})
	}
}

func TestHashIsID(t *testing.T) {
	assert.True(t, firstToken(t, "#id").IsID)
	assert.False(t, firstToken(t, "#0").IsID)
}

func TestFunctionVsIdent(t *testing.T) {
	assert.Equal(t, Function, firstToken(t, "calc(").Kind)
	assert.Equal(t, Ident, firstToken(t, "calc").Kind)
}

// P3: tokenizing to EOF exactly partitions [0, len(source)).
func TestTokensPartitionSource(t *testing.T) {
	source := `.a, .b > span { margin: 0 !important; } /* c */ @media (min-width: 1px) {}`
	tz := New(source, false, nil)
	pos := 0
	for {
		tok := tz.Advance(false)
		require.Equal(t, pos, tok.Start, "gap before token at %d", tok.Start)
		pos = tok.End
		if tok.Kind == EOF {
			break
		}
	}
	require.Equal(t, len(source), pos)
}

// B3: CR+LF counts as one line break and resets the column.
func TestCRLFLineBreak(t *testing.T) {
	tz := New("a\r\nb", true, nil)
	first := tz.Advance(false)
	require.Equal(t, Ident, first.Kind)
	require.Equal(t, 1, first.Line)
	require.Equal(t, 1, first.Column)

	tz.Advance(false) // whitespace (the CRLF run)
	third := tz.Advance(false)
	require.Equal(t, Ident, third.Kind)
	assert.Equal(t, 2, third.Line)
	assert.Equal(t, 1, third.Column)
}

// R2: save/restore is a pure value copy; tokenizing from a restored cursor
// reproduces the same token stream.
func TestSaveRestore(t *testing.T) {
	source := `.a .b { color: red }`
	tz := New(source, true, nil)
	first := tz.Advance(false)
	cursor := tz.Save()
	second := tz.Advance(false)
	third := tz.Advance(false)

	tz.Restore(cursor)
	secondAgain := tz.Advance(false)
	thirdAgain := tz.Advance(false)

	assert.Equal(t, second, secondAgain)
	assert.Equal(t, third, thirdAgain)
	_ = first
}

func TestCommentSkippingAndObserver(t *testing.T) {
	var seen []int
	tz := New("a/* hi */b", true, func(start, end, line, column int) {
		seen = append(seen, start, end)
	})
	first := tz.Advance(false)
	second := tz.Advance(false)
	require.Equal(t, Ident, first.Kind)
	require.Equal(t, Ident, second.Kind)
	require.Equal(t, []int{1, 9}, seen)
}

func TestUnclosedComment(t *testing.T) {
	tok := New("/* unterminated", false, nil).Advance(false)
	assert.Equal(t, Comment, tok.Kind)
	assert.Equal(t, 15, tok.End)
}

func TestEscapedIdentifier(t *testing.T) {
	tok := firstToken(t, `\61\62\63`)
	assert.Equal(t, Ident, tok.Kind)
}

func TestNumberExponent(t *testing.T) {
	assert.Equal(t, Number, firstToken(t, "1e3").Kind)
	assert.Equal(t, Dimension, firstToken(t, "1em").Kind)
	// "e" with no following digit is not an exponent; it starts the unit.
	assert.Equal(t, Dimension, firstToken(t, "1e").Kind)
}

func TestUnicodeRangeWildcard(t *testing.T) {
	tok := firstToken(t, "U+4??")
	assert.Equal(t, UnicodeRange, tok.Kind)
}
