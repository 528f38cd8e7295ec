package cssparser

import "github.com/arenacss/arenacss/internal/csslex"

// Options is the closed configuration surface for Parse (spec.md §6).
type Options struct {
	// SkipComments, when true, discards comment tokens from the token
	// stream. When false, comments stay in the stream as Comment tokens.
	// In both cases CommentObserver (if non-nil) receives each comment's
	// byte range and position.
	SkipComments bool

	// ParseValues, when false, leaves declarations with only a raw value
	// slice and no value sub-tree.
	ParseValues bool

	// ParseSelectors, when false, leaves each rule with only a raw
	// selector-list slice and no selector sub-tree.
	ParseSelectors bool

	// ParseAtRulePreludes, when false, leaves at-rules with only a raw
	// prelude slice and no prelude sub-tree.
	ParseAtRulePreludes bool

	// CommentObserver receives every comment, skipped or kept; see
	// SkipComments.
	CommentObserver csslex.CommentFunc
}

// DefaultOptions returns the spec.md §6 defaults: every sub-parser enabled,
// comments discarded.
func DefaultOptions() Options {
	return Options{
		SkipComments:        true,
		ParseValues:         true,
		ParseSelectors:      true,
		ParseAtRulePreludes: true,
	}
}
