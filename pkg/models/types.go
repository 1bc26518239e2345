package models

// ViewMode selects how document content is projected for display.
type ViewMode string

const (
	ViewModeStyled ViewMode = "styled"
	ViewModeSource ViewMode = "source"
)

// DynamicFunction names a computed-value provider and the identifiers it
// depends on. Deps keeps declaration order and may contain duplicates.
type DynamicFunction struct {
	Function string
	Deps     []string
}

// SegmentMetadata carries the editing attributes declared by a segment
// marker. Lock state must be read through IsLocked, not the Locked field.
type SegmentMetadata struct {
	ID          string
	Locked      bool
	DoubleWidth bool
	Dynamic     *DynamicFunction
}

// IsDynamic reports whether the segment declares a dynamic function.
func (m SegmentMetadata) IsDynamic() bool {
	return m.Dynamic != nil
}

// IsLocked reports whether the segment may be edited. Dynamic segments are
// always locked, even when declared with locked="false".
func (m SegmentMetadata) IsLocked() bool {
	return m.Locked || m.IsDynamic()
}

// TextSegment is a contiguous slice of document content with metadata.
// StartPos and EndPos are offsets into the raw document (marker end to next
// marker start), so they bound more text than the trimmed Content. Position
// lookups must use the offsets, never len(Content).
type TextSegment struct {
	Content  string
	Metadata SegmentMetadata
	StartPos int
	EndPos   int
}

// NewTextSegment builds a segment at startPos, deriving EndPos from the
// content length.
func NewTextSegment(content string, metadata SegmentMetadata, startPos int) TextSegment {
	return TextSegment{
		Content:  content,
		Metadata: metadata,
		StartPos: startPos,
		EndPos:   startPos + len(content),
	}
}

// SegmentInfo is the flattened segment descriptor handed to renderers and
// serialized by the CLI output formatters.
type SegmentInfo struct {
	ID          string `json:"id" yaml:"id"`
	StartPos    int    `json:"start_pos" yaml:"start_pos"`
	EndPos      int    `json:"end_pos" yaml:"end_pos"`
	IsLocked    bool   `json:"is_locked" yaml:"is_locked"`
	IsDynamic   bool   `json:"is_dynamic" yaml:"is_dynamic"`
	DoubleWidth bool   `json:"double_width" yaml:"double_width"`
	Content     string `json:"content" yaml:"content"`
}

// Info flattens the segment into its renderer-facing descriptor.
func (s TextSegment) Info() SegmentInfo {
	return SegmentInfo{
		ID:          s.Metadata.ID,
		StartPos:    s.StartPos,
		EndPos:      s.EndPos,
		IsLocked:    s.Metadata.IsLocked(),
		IsDynamic:   s.Metadata.IsDynamic(),
		DoubleWidth: s.Metadata.DoubleWidth,
		Content:     s.Content,
	}
}
