package document

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/xedit/xedit-cli/pkg/models"
	"github.com/xedit/xedit-cli/pkg/segment"
)

// DynamicProvider computes the value of a dynamic segment from its declared
// dependencies. Providers are registered per document; evaluation is a hook
// point and does not invoke them yet.
type DynamicProvider func(deps []string) string

// Document owns raw content, the file path it came from, a modified flag,
// and the segment list derived from the content. Segments are recomputed on
// every content change; they are never mutated independently.
type Document struct {
	content   string
	filePath  string
	modified  bool
	segments  []models.TextSegment
	providers map[string]DynamicProvider
}

// New creates an empty, unmodified document.
func New() *Document {
	return &Document{
		providers: make(map[string]DynamicProvider),
	}
}

// Content returns the raw document content.
func (d *Document) Content() string {
	return d.content
}

// SetContent replaces the document content, marks it modified, and
// re-derives the segment list. Setting identical content is a no-op.
func (d *Document) SetContent(content string) {
	if d.content == content {
		return
	}
	d.content = content
	d.modified = true
	d.segments = segment.Parse(content)
}

// FilePath returns the path the document was loaded from or saved to, or ""
// for an unsaved document.
func (d *Document) FilePath() string {
	return d.filePath
}

// SetFilePath records the document's backing file path.
func (d *Document) SetFilePath(path string) {
	d.filePath = path
}

// IsModified reports whether the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() {
	d.modified = false
}

// Segments returns a copy of the derived segment list.
func (d *Document) Segments() []models.TextSegment {
	out := make([]models.TextSegment, len(d.segments))
	copy(out, d.segments)
	return out
}

// Reset returns the document to its initial empty state.
func (d *Document) Reset() {
	d.content = ""
	d.filePath = ""
	d.modified = false
	d.segments = nil
}

// Restore installs freshly loaded content: the segment list is always
// re-derived (no unchanged short-circuit), the path is recorded, and the
// modified flag is cleared. Codecs use this after decoding a file.
func (d *Document) Restore(content, path string) {
	d.content = content
	d.segments = segment.Parse(content)
	d.filePath = path
	d.modified = false
}

// Load reads the file at path as UTF-8 text into the document. On failure
// the document is left untouched and a FileLoadError is returned.
func (d *Document) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileLoadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return &FileLoadError{Path: path, Err: errors.New("file is not valid UTF-8")}
	}

	d.Restore(string(data), path)
	return nil
}

// Save writes the document content as UTF-8 to path, or to the stored file
// path when path is empty. On success the target becomes the document's
// file path and the modified flag is cleared.
func (d *Document) Save(path string) error {
	target := path
	if target == "" {
		target = d.filePath
	}
	if target == "" {
		return &FileSaveError{}
	}

	if err := os.WriteFile(target, []byte(d.content), 0644); err != nil {
		return &FileSaveError{Path: target, Err: err}
	}

	d.filePath = target
	d.modified = false
	return nil
}

// SegmentAt returns the first segment covering position, using the
// half-open interval [StartPos, EndPos). A position at a segment's EndPos
// belongs to the next segment, if any.
func (d *Document) SegmentAt(position int) (models.TextSegment, bool) {
	for _, seg := range d.segments {
		if seg.StartPos <= position && position < seg.EndPos {
			return seg, true
		}
	}
	return models.TextSegment{}, false
}

// IsLocked reports whether the segment covering position refuses edits.
// Positions outside every segment are unlocked.
func (d *Document) IsLocked(position int) bool {
	seg, ok := d.SegmentAt(position)
	if !ok {
		return false
	}
	return seg.Metadata.IsLocked()
}

// UpdateSegment replaces the content of the segment with the given id.
// Locked (including dynamic) segments refuse the update and the document is
// left untouched. On success the new content is spliced into the raw
// document over the segment's untrimmed range and the segment list is
// re-derived, so the edit survives any later re-parse.
func (d *Document) UpdateSegment(id string, content string) bool {
	for _, seg := range d.segments {
		if seg.Metadata.ID != id {
			continue
		}
		if seg.Metadata.IsLocked() {
			return false
		}

		d.content = d.content[:seg.StartPos] + content + d.content[seg.EndPos:]
		d.segments = segment.Parse(d.content)
		d.modified = true
		return true
	}
	return false
}

// RegisterDynamic registers a computed-value provider under name.
func (d *Document) RegisterDynamic(name string, provider DynamicProvider) {
	d.providers[name] = provider
}

// Evaluate returns the display value for a segment. Non-dynamic segments
// evaluate to their own content. Dynamic segments currently evaluate to a
// placeholder naming the function; wiring registered providers into the
// result is a TODO once provider semantics are settled.
func (d *Document) Evaluate(seg models.TextSegment) string {
	if !seg.Metadata.IsDynamic() {
		return seg.Content
	}
	return fmt.Sprintf("[DYNAMIC: %s]", seg.Metadata.Dynamic.Function)
}

// SegmentsInfo returns the renderer-facing descriptors for all segments.
func (d *Document) SegmentsInfo() []models.SegmentInfo {
	infos := make([]models.SegmentInfo, 0, len(d.segments))
	for _, seg := range d.segments {
		infos = append(infos, seg.Info())
	}
	return infos
}
