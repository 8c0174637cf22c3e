package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsInDocumentOrder(t *testing.T) {
	input := `<html><body>
<h1>Annual Report</h1>
<p>Some intro text.</p>
<h2>Directors Report</h2>
<p>Body.</p>
<h3>Remuneration</h3>
<h2>Financial Statements</h2>
</body></html>`

	p := &HTMLParser{}
	headers, err := p.Parse(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTitles := []string{"Annual Report", "Directors Report", "Remuneration", "Financial Statements"}
	wantLevels := []int{1, 2, 3, 2}
	if len(headers) != len(wantTitles) {
		t.Fatalf("expected %d headers, got %d", len(wantTitles), len(headers))
	}
	for i, h := range headers {
		if h.Title != wantTitles[i] {
			t.Errorf("header %d: expected title %q, got %q", i, wantTitles[i], h.Title)
		}
		if h.SourceLevel != wantLevels[i] {
			t.Errorf("header %d: expected level %d, got %d", i, wantLevels[i], h.SourceLevel)
		}
		if h.Order != i+1 {
			t.Errorf("header %d: expected order %d, got %d", i, i+1, h.Order)
		}
		if h.Depth != 0 || h.Excluded {
			t.Errorf("header %d: expected flat included header, got depth=%d excluded=%v", i, h.Depth, h.Excluded)
		}
	}
}

func TestHTMLParser_InlineMarkupInHeading(t *testing.T) {
	input := `<html><body><h2>Notes <em>to the</em> accounts</h2></body></html>`
	p := &HTMLParser{}
	headers, err := p.Parse(strings.NewReader(input), "notes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(headers))
	}
	if headers[0].Title != "Notes to the accounts" {
		t.Errorf("expected flattened heading text, got %q", headers[0].Title)
	}
}

func TestHTMLParser_SkipsScriptAndEmptyHeadings(t *testing.T) {
	input := `<html><body>
<script>var x = "<h1>not a heading</h1>";</script>
<h1></h1>
<h2>Real</h2>
</body></html>`
	p := &HTMLParser{}
	headers, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 1 || headers[0].Title != "Real" {
		t.Fatalf("expected only the real heading, got %+v", headers)
	}
}

func TestHTMLParser_NoHeadings(t *testing.T) {
	p := &HTMLParser{}
	headers, err := p.Parse(strings.NewReader("<html><body><p>text only</p></body></html>"), "plain.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 0 {
		t.Errorf("expected 0 headers, got %d", len(headers))
	}
}
