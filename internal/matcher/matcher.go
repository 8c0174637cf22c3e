// Package matcher reconciles a target outline specification against the
// headers actually present in a transformed document, tolerating typos and
// formatting noise.
package matcher

import "github.com/dgallion1/docoutline/internal/outline"

// Record is the match result for one (target entry, occurrence) pair.
// An unmatched entry is a normal outcome, not an error: Header is nil and
// Confidence is 0.
type Record struct {
	Target         outline.TargetEntry `json:"target"`
	Header         *outline.Header     `json:"header,omitempty"`
	Text           string              `json:"matched_text,omitempty"`
	Exact          bool                `json:"exact"`
	Confidence     float64             `json:"confidence"`
	Duplicate      bool                `json:"duplicate"`
	DuplicateCount int                 `json:"duplicate_count"`
	DuplicateIndex int                 `json:"duplicate_index"`
}

// Options controls matching behavior.
type Options struct {
	EnableFuzzy   bool    // Run the fuzzy pass when no exact match exists.
	MinConfidence float64 // Minimum similarity for a fuzzy match.
}

// DefaultOptions returns the standard matching configuration.
func DefaultOptions() Options {
	return Options{EnableFuzzy: true, MinConfidence: 0.65}
}

// Match produces match records for every target entry, in input order.
// Pure function over its inputs; the header list is not modified.
//
// Per entry: an exact pass over normalized titles runs first and, when it
// finds anything, fully satisfies the entry (confidence 1.0, fuzzy skipped).
// Otherwise the fuzzy pass scores every header and keeps the best score if
// it clears MinConfidence. In either pass, multiple headers tying for best
// form a duplicate set: one record per occurrence, flagged with the set
// size and the occurrence's 0-based position in document order.
func Match(entries []outline.TargetEntry, headers []*outline.Header, opts Options) []Record {
	records := make([]Record, 0, len(entries))
	norms := make([]string, len(headers))
	for i, h := range headers {
		norms[i] = Normalize(h.Title)
	}

	for _, entry := range entries {
		want := Normalize(entry.Title)

		// Exact pass.
		var exact []*outline.Header
		for i, h := range headers {
			if norms[i] == want {
				exact = append(exact, h)
			}
		}
		if len(exact) > 0 {
			records = append(records, emit(entry, exact, true, 1.0)...)
			continue
		}

		if !opts.EnableFuzzy || len(headers) == 0 {
			records = append(records, unmatched(entry))
			continue
		}

		// Fuzzy pass: find the best score, then every header achieving it.
		best := 0.0
		for _, h := range headers {
			if s := Similarity(entry.Title, h.Title); s > best {
				best = s
			}
		}
		if best < opts.MinConfidence {
			records = append(records, unmatched(entry))
			continue
		}
		var tied []*outline.Header
		for _, h := range headers {
			if Similarity(entry.Title, h.Title) == best {
				tied = append(tied, h)
			}
		}
		records = append(records, emit(entry, tied, false, best)...)
	}
	return records
}

// emit builds the records for a matched set, flagging duplicates when the
// set has more than one occurrence. The set is already in document order.
func emit(entry outline.TargetEntry, set []*outline.Header, exact bool, confidence float64) []Record {
	out := make([]Record, 0, len(set))
	for i, h := range set {
		r := Record{
			Target:     entry,
			Header:     h,
			Text:       h.Title,
			Exact:      exact,
			Confidence: confidence,
		}
		if len(set) > 1 {
			r.Duplicate = true
			r.DuplicateCount = len(set)
			r.DuplicateIndex = i
		}
		out = append(out, r)
	}
	return out
}

func unmatched(entry outline.TargetEntry) Record {
	return Record{Target: entry, Confidence: 0.0}
}
