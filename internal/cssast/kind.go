package cssast

// Kind is the one-byte discriminator identifying what an arena record
// represents (spec.md §3.3, a closed set).
type Kind uint8

const (
	KindInvalid Kind = iota

	// Structural
	KindStylesheet
	KindStyleRule
	KindAtRule
	KindDeclaration
	KindBlock
	KindComment

	// Value sub-tree
	KindIdentifier
	KindNumber
	KindDimension
	KindString
	KindHash
	KindFunction
	KindOperator
	KindParenthesis

	// Selector sub-tree
	KindSelectorList
	KindSelector
	KindType
	KindClass
	KindID
	KindUniversal
	KindNesting
	KindAttribute
	KindPseudoClass
	KindPseudoElement
	KindCombinator
	KindNth
	KindNthOf
	KindLang

	// At-rule prelude sub-tree
	KindMediaQuery
	KindMediaFeature
	KindMediaType
	KindContainerQuery
	KindSupportsQuery
	KindLayerName
	KindPreludeIdentifier
	KindPreludeOperator
	KindImportURL
	KindImportLayer
)

var kindNames = [...]string{
	KindInvalid:           "invalid",
	KindStylesheet:        "stylesheet",
	KindStyleRule:         "style-rule",
	KindAtRule:            "at-rule",
	KindDeclaration:       "declaration",
	KindBlock:             "block",
	KindComment:           "comment",
	KindIdentifier:        "identifier",
	KindNumber:            "number",
	KindDimension:         "dimension",
	KindString:            "string",
	KindHash:              "hash",
	KindFunction:          "function",
	KindOperator:          "operator",
	KindParenthesis:       "parenthesis",
	KindSelectorList:      "selector-list",
	KindSelector:          "selector",
	KindType:              "type",
	KindClass:             "class",
	KindID:                "id",
	KindUniversal:         "universal",
	KindNesting:           "nesting",
	KindAttribute:         "attribute",
	KindPseudoClass:       "pseudo-class",
	KindPseudoElement:     "pseudo-element",
	KindCombinator:        "combinator",
	KindNth:               "nth",
	KindNthOf:             "nth-of",
	KindLang:              "lang",
	KindMediaQuery:        "media-query",
	KindMediaFeature:      "media-feature",
	KindMediaType:         "media-type",
	KindContainerQuery:    "container-query",
	KindSupportsQuery:     "supports-query",
	KindLayerName:         "layer-name",
	KindPreludeIdentifier: "prelude-identifier",
	KindPreludeOperator:   "prelude-operator",
	KindImportURL:         "import-url",
	KindImportLayer:       "import-layer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Flag is the per-node bitset stored in the record's flags byte (spec.md §3.2).
type Flag uint8

const (
	FlagImportant Flag = 1 << iota
	FlagError
	FlagLengthOverflow
	FlagHasBlock
	FlagVendorPrefixed
	FlagHasDeclarations
	FlagHasParens
)

// AttrOp is the attribute-selector operator tag (spec.md §3.2, §4.8), valid
// only on KindAttribute records.
type AttrOp uint8

const (
	AttrOpNone AttrOp = iota
	AttrOpEquals
	AttrOpIncludes // ~=
	AttrOpDashMatch
	AttrOpPrefix // ^=
	AttrOpSuffix // $=
	AttrOpSubstring
)

var attrOpText = [...]string{
	AttrOpNone:      "",
	AttrOpEquals:    "=",
	AttrOpIncludes:  "~=",
	AttrOpDashMatch: "|=",
	AttrOpPrefix:    "^=",
	AttrOpSuffix:    "$=",
	AttrOpSubstring: "*=",
}

func (op AttrOp) String() string { return attrOpText[op] }

// AttrFlags is the attribute-selector case-sensitivity tag.
type AttrFlags uint8

const (
	AttrCaseDefault AttrFlags = iota
	AttrCaseInsensitive
	AttrCaseSensitive
)
