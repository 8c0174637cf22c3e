package outline

// Header is one heading instance found in a transformed document.
// Depth and Excluded are mutated by builder operations; everything else is
// fixed at parse time. Headers are never deleted, only flagged excluded.
type Header struct {
	Order       int    `json:"order"`        // Document position, unique, ascending.
	Title       string `json:"title"`        // Literal heading text.
	SourceLevel int    `json:"source_level"` // Heading rank 1..6 as found in markup.
	Depth       int    `json:"depth"`        // Current indentation level, >= 0.
	Excluded    bool   `json:"excluded"`     // Detached from the emitted tree.
}

// TargetEntry is an outline node a caller wants to locate in a document.
type TargetEntry struct {
	ID      string `json:"id"`       // Unique entry id.
	Depth   int    `json:"depth"`    // Desired nesting level, >= 1.
	DataRef string `json:"data_ref"` // Opaque downstream pointer.
	Title   string `json:"title"`    // Text to match against document headers.
}

// Node is an emitted outline tree node. A node exclusively owns its children.
type Node struct {
	Title    string  `json:"title"`
	Depth    int     `json:"depth"`
	Seq      int     `json:"sequential_order"` // 1-based position in document order across the whole tree.
	Children []*Node `json:"children,omitempty"`
}

// Clone returns a deep copy of the header list. Sessions hand copies to
// callers so the stored list is only ever mutated through builder operations.
func Clone(headers []*Header) []*Header {
	if headers == nil {
		return nil
	}
	out := make([]*Header, len(headers))
	for i, h := range headers {
		c := *h
		out[i] = &c
	}
	return out
}
