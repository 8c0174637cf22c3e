// Package builder implements edits over a flat, document-ordered header
// list: indent/outdent with descendant cascade, exclusion, and conversion
// into a nested outline tree.
//
// The structural invariant maintained by every successful edit: for any two
// included, consecutive headers A then B, B.Depth <= A.Depth + 1. An edit
// that would break it is rejected and the list is left unchanged for the
// failing header.
package builder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Structural violations, reported as returned errors. Match with errors.Is.
var (
	ErrHierarchyGap = errors.New("hierarchy gap")
	ErrOutdentRoot  = errors.New("cannot outdent root-level item")
)

// SelectionError reports a selection naming an order value not present in
// the header list. This is a programmer error, not an editing failure.
type SelectionError struct {
	Order int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("no header with order %d", e.Order)
}

// Indent moves each selected header one level deeper, shifting its
// descendant run by the same delta. Selections are processed in document
// order, so an earlier indent in the same call is visible to the
// validation of a later one. Returns ErrHierarchyGap (wrapped) if the new
// depth would exceed the nearest preceding included header's depth + 1.
func Indent(headers []*outline.Header, orders []int) error {
	idxs, err := resolve(headers, orders)
	if err != nil {
		return err
	}
	for _, i := range idxs {
		h := headers[i]
		newDepth := h.Depth + 1

		// Max allowed depth is one below the previous included header;
		// with nothing before it, only depth 0 is reachable.
		maxAllowed := 0
		if p := prevIncluded(headers, i); p >= 0 {
			maxAllowed = headers[p].Depth + 1
		}
		if newDepth > maxAllowed {
			return fmt.Errorf("header %d: %w: depth %d exceeds max allowed %d",
				h.Order, ErrHierarchyGap, newDepth, maxAllowed)
		}

		end := runEnd(headers, i)
		for j := i; j < end; j++ {
			headers[j].Depth++
		}
	}
	return nil
}

// Outdent moves each selected header one level shallower, shifting its
// descendant run by the same delta. Fails with ErrOutdentRoot if a selected
// header is already at depth 0.
func Outdent(headers []*outline.Header, orders []int) error {
	idxs, err := resolve(headers, orders)
	if err != nil {
		return err
	}
	for _, i := range idxs {
		h := headers[i]
		if h.Depth == 0 {
			return fmt.Errorf("header %d: %w", h.Order, ErrOutdentRoot)
		}
		end := runEnd(headers, i)
		for j := i; j < end; j++ {
			headers[j].Depth--
		}
	}
	return nil
}

// CanIndent reports whether Indent would succeed for the selection. It
// never mutates the list; an invalid selection yields false.
func CanIndent(headers []*outline.Header, orders []int) bool {
	return Indent(outline.Clone(headers), orders) == nil
}

// CanOutdent reports whether Outdent would succeed for the selection.
func CanOutdent(headers []*outline.Header, orders []int) bool {
	return Outdent(outline.Clone(headers), orders) == nil
}

// Exclude flags exactly the selected headers as excluded. Descendants keep
// their depths and flags; they reattach to the nearest included ancestor at
// tree-conversion time.
func Exclude(headers []*outline.Header, orders []int) error {
	idxs, err := resolve(headers, orders)
	if err != nil {
		return err
	}
	for _, i := range idxs {
		headers[i].Excluded = true
	}
	return nil
}

// IncludeAll resets every header to depth 0 and included — a full reset
// back to a flat list.
func IncludeAll(headers []*outline.Header) {
	for _, h := range headers {
		h.Depth = 0
		h.Excluded = false
	}
}

// resolve maps order values to list indices, deduplicated and sorted into
// document order.
func resolve(headers []*outline.Header, orders []int) ([]int, error) {
	byOrder := make(map[int]int, len(headers))
	for i, h := range headers {
		byOrder[h.Order] = i
	}
	seen := make(map[int]bool, len(orders))
	var idxs []int
	for _, o := range orders {
		if seen[o] {
			continue
		}
		seen[o] = true
		i, ok := byOrder[o]
		if !ok {
			return nil, &SelectionError{Order: o}
		}
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs, nil
}

// prevIncluded returns the index of the nearest preceding included header,
// or -1 if none precedes.
func prevIncluded(headers []*outline.Header, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !headers[j].Excluded {
			return j
		}
	}
	return -1
}

// runEnd returns the index one past the descendant run of headers[i]: the
// maximal contiguous block after i whose depth is strictly greater than
// headers[i].Depth.
func runEnd(headers []*outline.Header, i int) int {
	end := i + 1
	for end < len(headers) && headers[end].Depth > headers[i].Depth {
		end++
	}
	return end
}
