package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docoutline/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files that skipped the external conversion step.
// It tries the Go library first, then falls back to pdftotext if available,
// and detects headings heuristically from the extracted text lines.
type PDFParser struct {
	FallbackPdftotext bool
}

// Numbered heading like "3.", "3.1" or "2.4.1 Segment reporting".
var numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?\s+(\S.*)$`)

func (p *PDFParser) Parse(r io.Reader, filename string) ([]*outline.Header, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return headersFromText(text), nil
}

// headersFromText scans extracted text lines for heading-shaped lines.
func headersFromText(text string) []*outline.Header {
	var headers []*outline.Header
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 120 {
			continue
		}
		if m := numberedHeading.FindStringSubmatch(line); m != nil {
			level := strings.Count(m[1], ".") + 1
			if level > 6 {
				level = 6
			}
			headers = append(headers, &outline.Header{
				Order:       len(headers) + 1,
				Title:       line,
				SourceLevel: level,
			})
			continue
		}
		if isAllCapsHeading(line) {
			headers = append(headers, &outline.Header{
				Order:       len(headers) + 1,
				Title:       line,
				SourceLevel: 1,
			})
		}
	}
	return headers
}

// isAllCapsHeading reports whether a line looks like an unnumbered section
// heading: all letters upper-case, at least one letter, a handful of words.
func isAllCapsHeading(line string) bool {
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	if letters < 3 {
		return false
	}
	words := len(strings.Fields(line))
	return words >= 1 && words <= 8
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
