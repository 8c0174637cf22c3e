package parser

import (
	"strings"
	"testing"
)

func TestDocBookParser_NestedSections(t *testing.T) {
	input := `<?xml version="1.0"?>
<book>
  <title>Annual Report 2024</title>
  <chapter>
    <title>Directors Report</title>
    <para>Body text.</para>
    <section>
      <title>Remuneration</title>
      <para>More text.</para>
      <section>
        <title>Share Options</title>
      </section>
    </section>
  </chapter>
  <chapter>
    <title>Financial Statements</title>
  </chapter>
</book>`

	p := &DocBookParser{}
	headers, err := p.Parse(strings.NewReader(input), "docling-output.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTitles := []string{"Directors Report", "Remuneration", "Share Options", "Financial Statements"}
	wantLevels := []int{1, 2, 3, 1}
	if len(headers) != len(wantTitles) {
		t.Fatalf("expected %d headers, got %d: %+v", len(wantTitles), len(headers), headers)
	}
	for i, h := range headers {
		if h.Title != wantTitles[i] {
			t.Errorf("header %d: expected %q, got %q", i, wantTitles[i], h.Title)
		}
		if h.SourceLevel != wantLevels[i] {
			t.Errorf("header %d: expected level %d, got %d", i, wantLevels[i], h.SourceLevel)
		}
		if h.Order != i+1 {
			t.Errorf("header %d: expected order %d, got %d", i, i+1, h.Order)
		}
	}
}

func TestDocBookParser_InlineMarkupInTitle(t *testing.T) {
	input := `<article><section><title>Notes <emphasis>to the</emphasis> accounts</title></section></article>`
	p := &DocBookParser{}
	headers, err := p.Parse(strings.NewReader(input), "out.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(headers))
	}
	if headers[0].Title != "Notes to the accounts" {
		t.Errorf("expected flattened title, got %q", headers[0].Title)
	}
}

func TestDocBookParser_IgnoresNonSectionTitles(t *testing.T) {
	// The figure title comes after the section's own title was consumed.
	input := `<book><section><title>Revenue</title><figure><title>Chart 1</title></figure></section></book>`
	p := &DocBookParser{}
	headers, err := p.Parse(strings.NewReader(input), "out.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 1 || headers[0].Title != "Revenue" {
		t.Fatalf("expected only the section title, got %+v", headers)
	}
}

func TestDocBookParser_DeepNestingCapsAtSix(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<book>")
	for i := 0; i < 8; i++ {
		sb.WriteString("<section><title>Level</title>")
	}
	for i := 0; i < 8; i++ {
		sb.WriteString("</section>")
	}
	sb.WriteString("</book>")

	p := &DocBookParser{}
	headers, err := p.Parse(strings.NewReader(sb.String()), "deep.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 8 {
		t.Fatalf("expected 8 headers, got %d", len(headers))
	}
	if headers[7].SourceLevel != 6 {
		t.Errorf("expected deepest rank capped at 6, got %d", headers[7].SourceLevel)
	}
}
