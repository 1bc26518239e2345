// Package container implements the .xedit envelope format: a versioned XML
// wrapper that round-trips a document's raw content, segment markers
// included, byte for byte.
package container

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xedit/xedit-cli/pkg/document"
)

// DefaultExtension is the reserved file extension for container files.
const DefaultExtension = ".xedit"

const (
	rootTag = "xedit"
	version = "1.0"
)

const header = "<?xml version='1.0' encoding='unicode'?>\n"

type envelope struct {
	XMLName  xml.Name `xml:"xedit"`
	Version  string   `xml:"version,attr"`
	Metadata struct{} `xml:"metadata"`
	Document struct {
		Content string `xml:",cdata"`
	} `xml:"document"`
}

// Encode wraps raw content in the container envelope.
func Encode(content string) ([]byte, error) {
	var env envelope
	env.Version = version
	env.Document.Content = content

	body, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode container: %w", err)
	}
	return append([]byte(header), body...), nil
}

// Decode extracts the raw content from container envelope bytes. Each
// structural violation carries its own diagnostic: malformed XML, a root
// element other than <xedit>, or a missing <document> child.
func Decode(data []byte) (string, error) {
	var raw struct {
		XMLName  xml.Name
		Document *struct {
			Content string `xml:",cdata"`
		} `xml:"document"`
	}

	if err := xml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("not a well-formed container: %w", err)
	}
	if raw.XMLName.Local != rootTag {
		return "", fmt.Errorf("root element is <%s>, expected <%s>", raw.XMLName.Local, rootTag)
	}
	if raw.Document == nil {
		return "", errors.New("container has no <document> element")
	}
	return raw.Document.Content, nil
}

// IsContainerPath reports whether path carries the container extension.
func IsContainerPath(path, ext string) bool {
	if ext == "" {
		ext = DefaultExtension
	}
	return strings.EqualFold(filepath.Ext(path), ext)
}

// LoadContainer reads a container file into the document. Structural
// violations and I/O failures surface as FileLoadError; the document is
// untouched on failure.
func LoadContainer(doc *document.Document, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &document.FileLoadError{Path: path, Err: err}
	}

	content, err := Decode(data)
	if err != nil {
		return &document.FileLoadError{Path: path, Err: err}
	}

	doc.Restore(content, path)
	return nil
}

// SaveContainer writes the document's raw content to path as a container
// file and marks the document saved there.
func SaveContainer(doc *document.Document, path string) error {
	data, err := Encode(doc.Content())
	if err != nil {
		return &document.FileSaveError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &document.FileSaveError{Path: path, Err: err}
	}

	doc.SetFilePath(path)
	doc.MarkSaved()
	return nil
}

// LoadDocument dispatches on the file extension: container files go through
// the codec, everything else is read as plain UTF-8 text. ext overrides the
// container extension; pass "" for the default.
func LoadDocument(doc *document.Document, path, ext string) error {
	if IsContainerPath(path, ext) {
		return LoadContainer(doc, path)
	}
	return doc.Load(path)
}

// SaveDocument is the write-side counterpart of LoadDocument.
func SaveDocument(doc *document.Document, path, ext string) error {
	if IsContainerPath(path, ext) {
		return SaveContainer(doc, path)
	}
	return doc.Save(path)
}
