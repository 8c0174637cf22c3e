package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// DocBookParser handles DocBook XML, the format the external converter emits.
// Each section-like element contributes one header from its <title> child;
// the heading rank is the section nesting depth.
type DocBookParser struct{}

// Section-like DocBook elements that open a new nesting level.
var sectionElements = map[string]bool{
	"section":  true,
	"chapter":  true,
	"part":     true,
	"appendix": true,
	"preface":  true,
	"sect1":    true,
	"sect2":    true,
	"sect3":    true,
	"sect4":    true,
	"sect5":    true,
}

func (p *DocBookParser) Parse(r io.Reader, filename string) ([]*outline.Header, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var headers []*outline.Header
	// One entry per open section element: whether its title is still pending.
	var pending []bool

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse docbook: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if sectionElements[name] {
				pending = append(pending, true)
				continue
			}
			if name == "title" && len(pending) > 0 && pending[len(pending)-1] {
				title, err := collectElementText(dec)
				if err != nil {
					return nil, fmt.Errorf("parse docbook title: %w", err)
				}
				pending[len(pending)-1] = false
				if title == "" {
					continue
				}
				level := len(pending)
				if level > 6 {
					level = 6
				}
				headers = append(headers, &outline.Header{
					Order:       len(headers) + 1,
					Title:       title,
					SourceLevel: level,
				})
			}
		case xml.EndElement:
			if sectionElements[strings.ToLower(t.Name.Local)] && len(pending) > 0 {
				pending = pending[:len(pending)-1]
			}
		}
	}
	return headers, nil
}

// collectElementText reads tokens up to the current element's end tag and
// returns the concatenated character data, including nested inline markup.
func collectElementText(dec *xml.Decoder) (string, error) {
	var buf strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			buf.Write(t)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
