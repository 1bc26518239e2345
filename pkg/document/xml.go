package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// XMLNode is one element of the structure tree returned by Structure.
// Text holds the element's trimmed leading text, before any child element.
type XMLNode struct {
	Tag        string            `json:"tag" yaml:"tag"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
	Text       string            `json:"text" yaml:"text"`
	Children   []*XMLNode        `json:"children" yaml:"children"`
}

// ValidateXML checks the content for XML well-formedness. Empty or
// whitespace-only content is vacuously valid. Failures are reported as a
// value: valid=false plus the parser diagnostic. It never returns an error
// through any other channel.
func (d *Document) ValidateXML() (bool, string) {
	if strings.TrimSpace(d.content) == "" {
		return true, ""
	}
	if err := checkWellFormed(d.content); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// FormatXML re-serializes the content with 2-space indentation and a
// leading XML declaration. Comments (including segment markers) survive.
// The document itself is not mutated; callers persist the result through
// SetContent. Malformed content yields an XMLFormatError.
func (d *Document) FormatXML() (string, error) {
	if strings.TrimSpace(d.content) == "" {
		return d.content, nil
	}
	if err := checkWellFormed(d.content); err != nil {
		return "", &XMLFormatError{Err: err}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	dec := xml.NewDecoder(strings.NewReader(d.content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &XMLFormatError{Err: err}
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			// The declaration is rewritten, not copied.
			continue
		case xml.CharData:
			// Inter-element whitespace is re-derived by the indenter.
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		}

		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", &XMLFormatError{Err: err}
		}
	}

	if err := enc.Flush(); err != nil {
		return "", &XMLFormatError{Err: err}
	}
	return buf.String(), nil
}

// Structure returns the element tree of the content for structured
// rendering. Empty or malformed content yields a nil tree; this never
// fails.
func (d *Document) Structure() *XMLNode {
	if strings.TrimSpace(d.content) == "" {
		return nil
	}
	if err := checkWellFormed(d.content); err != nil {
		return nil
	}

	dec := xml.NewDecoder(strings.NewReader(d.content))
	var root *XMLNode
	var stack []*XMLNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &XMLNode{
				Tag:        t.Name.Local,
				Attributes: make(map[string]string, len(t.Attr)),
				Children:   []*XMLNode{},
			}
			for _, attr := range t.Attr {
				node.Attributes[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			// Only the leading text of an element is kept, matching the
			// structure a renderer needs for labels.
			if len(stack) > 0 {
				node := stack[len(stack)-1]
				if node.Text == "" && len(node.Children) == 0 {
					node.Text = strings.TrimSpace(string(t))
				}
			}
		}
	}

	return root
}

// checkWellFormed tokenizes content and enforces single-root document
// shape: one root element, no stray text outside it, every element closed.
func checkWellFormed(content string) error {
	dec := xml.NewDecoder(strings.NewReader(content))
	depth := 0
	roots := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return errors.New("junk after document element")
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return errors.New("text outside of document element")
			}
		}
	}

	if depth > 0 {
		return errors.New("unexpected EOF: unclosed element")
	}
	if roots == 0 {
		return errors.New("no document element found")
	}
	return nil
}
