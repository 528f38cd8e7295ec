//go:build go1.18

package cssparser

import "testing"

var cssFuzzSeeds = []string{
	`body { color: red }`,
	`@media (max-width: 768px) { .x { margin: 0 } }`,
	`:root { --x: calc(1px + 2em) }`,
	`@keyframes spin { from { transform: rotate(0) } to { transform: rotate(360deg) } }`,
	`.a { & .b { color: red } }`,
	`@scope (.card) to (.content) { :scope { border: 1px solid } }`,
	`@layer base, override; @layer base { .x { color: red } }`,
	`@container (min-width: 400px) { .x { font-size: 1.5em } }`,
	`@property --x { syntax: "<color>"; inherits: false; initial-value: red }`,
	`.a { .b { & .c { color: red } } }`,
	`div { width: calc(100% / 3 - 2px * 2) }`,
	`div:has(> .a):is(.b, .c) { color: red }`,
	`@supports (display: grid) { .x { display: grid } }`,
	`@font-face { unicode-range: U+0025-00FF, U+4?? }`,
	`div { --my-prop: var(--other, fallback-value) }`,
	`:nth-child(2n+1 of .a, .b) { color: red }`,
	`a[href^="https" i] { color: green }`,
}

// The parser must never panic or infinite-loop on arbitrary bytes, including
// unterminated strings/comments/blocks and stray structural tokens (spec.md
// §4.4, §9 error recovery).
func FuzzParse(f *testing.F) {
	for _, seed := range cssFuzzSeeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		Parse(string(data), DefaultOptions())
	})
}

func FuzzParseSelectorText(f *testing.F) {
	f.Add([]byte(`.a > .b, div:not(.c)`))
	f.Add([]byte(`:nth-child(2n+1 of .a)`))
	f.Add([]byte(`[href^="x" i]`))

	f.Fuzz(func(t *testing.T, data []byte) {
		n := ParseSelectorText(string(data))
		if !n.Valid() {
			t.Fatal("ParseSelectorText must always return a valid selector-list node")
		}
	})
}
