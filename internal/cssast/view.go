package cssast

// View is a value-typed handle carrying (arena, source, index). It is the
// ergonomic node view that projects arena records back into a typed tree
// with zero-copy text slicing (spec.md §3.4, §4.11). A View never mutates
// the arena or the source; both must outlive it.
type View struct {
	Arena  *Arena
	Source string
	Index  uint32
}

// Node constructs a view at the given 1-based arena index.
func Node(arena *Arena, source string, index uint32) View {
	return View{Arena: arena, Source: source, Index: index}
}

// Valid reports whether this view points at a real node rather than the
// null sentinel (index 0, spec.md §3.2).
func (v View) Valid() bool { return v.Index != NullIndex }

func (v View) Kind() Kind { return v.Arena.Kind(v.Index) }

// Text returns the full source slice this node spans.
func (v View) Text() string {
	start := v.Arena.StartOffset(v.Index)
	return v.Source[start : start+v.Arena.Length(v.Index)]
}

// Name returns the content slice: property name, at-rule name, pseudo
// name, class name, or similar, depending on node kind.
func (v View) Name() string {
	start := v.Arena.StartOffset(v.Index) + v.Arena.ContentDelta(v.Index)
	return v.Source[start : start+v.Arena.ContentLength(v.Index)]
}

// Value returns the value/prelude slice. For nodes whose grammar calls the
// same field a "prelude" (at-rules) this is the identical accessor.
func (v View) Value() string {
	start := v.Arena.StartOffset(v.Index) + v.Arena.ValueDelta(v.Index)
	return v.Source[start : start+v.Arena.ValueLength(v.Index)]
}

// Prelude is an alias for Value on at-rule nodes, matching the vocabulary
// used for at-rules in spec.md §3.2/§4.7.
func (v View) Prelude() string { return v.Value() }

func (v View) IsImportant() bool       { return v.Arena.HasFlag(v.Index, FlagImportant) }
func (v View) IsError() bool           { return v.Arena.HasFlag(v.Index, FlagError) }
func (v View) IsLengthOverflow() bool  { return v.Arena.HasFlag(v.Index, FlagLengthOverflow) }
func (v View) HasBlock() bool          { return v.Arena.HasFlag(v.Index, FlagHasBlock) }
func (v View) IsVendorPrefixed() bool  { return v.Arena.HasFlag(v.Index, FlagVendorPrefixed) }
func (v View) HasDeclarations() bool   { return v.Arena.HasFlag(v.Index, FlagHasDeclarations) }
func (v View) HasParens() bool         { return v.Arena.HasFlag(v.Index, FlagHasParens) }
func (v View) AttrOp() AttrOp          { return v.Arena.AttrOp(v.Index) }
func (v View) AttrFlags() AttrFlags    { return v.Arena.AttrFlags(v.Index) }
func (v View) StartLine() int          { return v.Arena.StartLine(v.Index) }
func (v View) StartColumn() int        { return v.Arena.StartColumn(v.Index) }
func (v View) StartOffset() int        { return v.Arena.StartOffset(v.Index) }
func (v View) Length() int             { return v.Arena.Length(v.Index) }

func (v View) HasChildren() bool {
	return v.Arena.FirstChild(v.Index) != NullIndex
}

func (v View) FirstChild() View {
	return Node(v.Arena, v.Source, v.Arena.FirstChild(v.Index))
}

func (v View) LastChild() View {
	return Node(v.Arena, v.Source, v.Arena.LastChild(v.Index))
}

func (v View) NextSibling() View {
	return Node(v.Arena, v.Source, v.Arena.NextSibling(v.Index))
}

// Children returns every direct child in source order. Following
// next-sibling from first-child always terminates at 0 (spec.md §3.2 I2).
func (v View) Children() []View {
	var out []View
	for c := v.FirstChild(); c.Valid(); c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// EachChild visits every direct child in source order without allocating a
// slice, for hot traversal paths.
func (v View) EachChild(fn func(View)) {
	for c := v.FirstChild(); c.Valid(); c = c.NextSibling() {
		fn(c)
	}
}

// NthA and NthB project an nth node's content/value slices using the
// vocabulary of the An+B microsyntax (spec.md §4.9): content holds the "A"
// term's raw text, value holds the "B" term's.
func (v View) NthA() string { return v.Name() }
func (v View) NthB() string { return v.Value() }

// NthIndexNode returns the nth child of an nth-of node (spec.md §4.8 "of"
// clause), i.e. the An+B term.
func (v View) NthIndexNode() View {
	return v.FirstChild()
}

// InnerSelectorList returns the selector-list child of an nth-of node or of
// a selector-list-bearing pseudo-class function (:is(), :not(), :has(), ...).
// It is the last child when the node itself is a selector-list container,
// or the second child (after the An+B term) for nth-of nodes.
func (v View) InnerSelectorList() View {
	switch v.Kind() {
	case KindNthOf:
		first := v.FirstChild()
		return first.NextSibling()
	case KindPseudoClass:
		if last := v.LastChild(); last.Valid() && last.Kind() == KindSelectorList {
			return last
		}
	}
	return View{}
}

// Compounds groups a selector node's direct children into runs separated by
// combinator nodes, i.e. the compound selectors of a complex selector
// (spec.md GLOSSARY "Compound selector" / "Complex selector").
func (v View) Compounds() [][]View {
	var groups [][]View
	var current []View
	v.EachChild(func(c View) {
		if c.Kind() == KindCombinator {
			groups = append(groups, current)
			current = nil
			return
		}
		current = append(current, c)
	})
	groups = append(groups, current)
	return groups
}
