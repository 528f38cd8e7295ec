//go:build go1.18

package csslex

import "testing"

func FuzzTokenize(f *testing.F) {
	f.Add([]byte(`body { color: red }`))
	f.Add([]byte(`U+0025-00FF`))
	f.Add([]byte(`U+4??`))
	f.Add([]byte(`url(https://example.com/foo)`))
	f.Add([]byte(`url("https://example.com/foo")`))
	f.Add([]byte(`url(bad url with spaces)`))
	f.Add([]byte(`"unclosed string`))
	f.Add([]byte(`'unclosed string`))
	f.Add([]byte(`/* unclosed comment`))
	f.Add([]byte(`\61\62\63`))
	f.Add([]byte(`#hash .class ::pseudo :nth-child(2n+1)`))
	f.Add([]byte(`calc(100% - 2px)`))
	f.Add([]byte("a\r\nb\rc\fd"))

	f.Fuzz(func(t *testing.T, data []byte) {
		tz := New(string(data), false, nil)
		pos := 0
		for {
			tok := tz.Advance(false)
			if tok.Start < pos {
				t.Fatalf("token start %d went backwards from %d", tok.Start, pos)
			}
			pos = tok.End
			if tok.Kind == EOF {
				break
			}
		}
	})
}

func FuzzTokenizeSkipComments(f *testing.F) {
	f.Add([]byte(`/* a */ body /* b */ { color: red } /* c`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var ranges [][2]int
		tz := New(string(data), true, func(start, end, line, column int) {
			ranges = append(ranges, [2]int{start, end})
		})
		for {
			tok := tz.Advance(false)
			if tok.Kind == Comment {
				t.Fatalf("comment token leaked into stream despite skipComments=true")
			}
			if tok.Kind == EOF {
				break
			}
		}
	})
}
