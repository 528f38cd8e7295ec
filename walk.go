package csstree

import "github.com/arenacss/arenacss/internal/cssast"

// Walk performs a pre-order depth-first traversal of the tree rooted at
// root, invoking visit with each node and its depth (root is depth 0).
// This is the walking helper named at spec.md §6.
func Walk(root cssast.View, visit func(n cssast.View, depth int)) {
	walk(root, 0, visit)
}

func walk(n cssast.View, depth int, visit func(cssast.View, int)) {
	if !n.Valid() {
		return
	}
	visit(n, depth)
	n.EachChild(func(c cssast.View) {
		walk(c, depth+1, visit)
	})
}
