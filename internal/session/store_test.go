package session

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/builder"
	"github.com/dgallion1/docoutline/internal/matcher"
	"github.com/dgallion1/docoutline/internal/outline"
)

func sampleHeaders() []*outline.Header {
	return []*outline.Header{
		{Order: 1, Title: "Report", SourceLevel: 1, Depth: 0},
		{Order: 2, Title: "Revenue", SourceLevel: 2, Depth: 1},
		{Order: 3, Title: "Outlook", SourceLevel: 2, Depth: 1},
	}
}

func TestSession_HeadersReturnsCopy(t *testing.T) {
	sess := New("s1", "report.html", sampleHeaders())

	got := sess.Headers()
	got[0].Title = "mutated"
	got[1].Depth = 9

	again := sess.Headers()
	if again[0].Title != "Report" {
		t.Errorf("expected stored title %q, got %q", "Report", again[0].Title)
	}
	if again[1].Depth != 1 {
		t.Errorf("expected stored depth 1, got %d", again[1].Depth)
	}
}

func TestSession_EditAppliesOperation(t *testing.T) {
	sess := New("s1", "report.html", sampleHeaders())
	before := sess.UpdatedAt
	time.Sleep(time.Millisecond)

	err := sess.Edit(func(headers []*outline.Header) error {
		return builder.Indent(headers, []int{3})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headers := sess.Headers()
	if headers[2].Depth != 2 {
		t.Errorf("expected header 3 at depth 2, got %d", headers[2].Depth)
	}
	if !sess.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to advance after an edit")
	}
}

func TestSession_EditPropagatesError(t *testing.T) {
	sess := New("s1", "report.html", sampleHeaders())
	err := sess.Edit(func(headers []*outline.Header) error {
		return builder.Outdent(headers, []int{1})
	})
	if !errors.Is(err, builder.ErrOutdentRoot) {
		t.Fatalf("expected ErrOutdentRoot, got %v", err)
	}
}

func TestSession_TreeAndMatch(t *testing.T) {
	sess := New("s1", "report.html", sampleHeaders())

	tree := sess.Tree()
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if len(tree[0].Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(tree[0].Children))
	}

	records := sess.Match([]outline.TargetEntry{
		{ID: "t1", Depth: 1, Title: "Revenue"},
	}, matcher.DefaultOptions())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Header == nil || records[0].Header.Order != 2 {
		t.Errorf("expected match against header 2, got %+v", records[0].Header)
	}
}

func TestSession_MatchReturnsDetachedHeaders(t *testing.T) {
	sess := New("s1", "report.html", sampleHeaders())

	records := sess.Match([]outline.TargetEntry{
		{ID: "t1", Depth: 1, Title: "Outlook"},
	}, matcher.DefaultOptions())
	if len(records) != 1 || records[0].Header == nil {
		t.Fatalf("expected 1 matched record, got %+v", records)
	}

	// Results must not alias the stored list: encoding a response happens
	// outside the session lock, concurrently with edits.
	if records[0].Header == sess.headers[2] {
		t.Fatal("expected matched header to be a copy, got the stored pointer")
	}

	// Concurrent edits while a caller reads the records.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			sess.Edit(func(headers []*outline.Header) error {
				return builder.Indent(headers, []int{3})
			})
			sess.Edit(func(headers []*outline.Header) error {
				return builder.Outdent(headers, []int{3})
			})
		}
	}()
	for i := 0; i < 100; i++ {
		if got := records[0].Header.Depth; got != 1 {
			t.Fatalf("expected record depth to stay 1, got %d", got)
		}
	}
	<-done
}

func TestStore_PutGet(t *testing.T) {
	store := NewStore(time.Hour)
	store.Put(New("s1", "a.html", nil))

	if store.Get("s1") == nil {
		t.Fatal("expected to get session back")
	}
	if store.Get("missing") != nil {
		t.Error("expected nil for missing session")
	}
	if store.Count() != 1 {
		t.Errorf("expected count 1, got %d", store.Count())
	}
}

func TestStore_TTLCleanup(t *testing.T) {
	store := NewStore(50 * time.Millisecond)

	stale := New("stale", "a.html", nil)
	store.Put(stale)

	time.Sleep(100 * time.Millisecond)

	fresh := New("fresh", "b.html", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected idle session to be cleaned up")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh session to survive cleanup")
	}
}

func TestStore_EditKeepsSessionAlive(t *testing.T) {
	store := NewStore(80 * time.Millisecond)
	sess := New("s1", "a.html", sampleHeaders())
	store.Put(sess)

	time.Sleep(50 * time.Millisecond)
	// An edit refreshes UpdatedAt, resetting the idle clock.
	sess.Edit(func(headers []*outline.Header) error { return nil })
	time.Sleep(50 * time.Millisecond)

	store.Cleanup()
	if store.Get("s1") == nil {
		t.Error("expected recently edited session to survive cleanup")
	}
}
