package builder

import "github.com/dgallion1/docoutline/internal/outline"

// ToTree converts the flat header list into a nested outline tree.
//
// Headers are visited in document order, skipping excluded ones, with a
// stack of currently-open ancestors. Because the stack only ever holds
// included nodes, descendants of an excluded header reattach to the nearest
// preceding included ancestor automatically; their stored depths are
// untouched. Sequential order is a running counter over emitted nodes, so
// values are contiguous from 1 in traversal order.
func ToTree(headers []*outline.Header) []*outline.Node {
	var roots []*outline.Node
	var stack []*outline.Node
	seq := 0

	for _, h := range headers {
		if h.Excluded {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].Depth >= h.Depth {
			stack = stack[:len(stack)-1]
		}
		seq++
		n := &outline.Node{Title: h.Title, Depth: h.Depth, Seq: seq}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
		}
		stack = append(stack, n)
	}
	return roots
}
