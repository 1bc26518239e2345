package segment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/xedit/xedit-cli/pkg/models"
)

func TestParseNoMarkersCreatesDefaultSegment(t *testing.T) {
	content := "<root><child>hello</child></root>"

	segments := Parse(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if seg.Metadata.ID != DefaultSegmentID {
		t.Errorf("expected id %q, got %q", DefaultSegmentID, seg.Metadata.ID)
	}
	if seg.Metadata.IsLocked() {
		t.Error("default segment must not be locked")
	}
	if seg.StartPos != 0 || seg.EndPos != len(content) {
		t.Errorf("expected span [0, %d), got [%d, %d)", len(content), seg.StartPos, seg.EndPos)
	}
	if seg.Content != content {
		t.Errorf("expected content %q, got %q", content, seg.Content)
	}
}

func TestParseBlankContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		if segments := Parse(content); segments != nil {
			t.Errorf("Parse(%q) = %v, want no segments", content, segments)
		}
	}
}

func TestParseTwoMarkers(t *testing.T) {
	content := `<!-- SEGMENT: id="h", locked="true" --><h>x</h><!-- SEGMENT: id="b" --><b>y</b>`

	segments := Parse(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Metadata.ID != "h" || !segments[0].Metadata.Locked {
		t.Errorf("first segment: got id=%q locked=%v", segments[0].Metadata.ID, segments[0].Metadata.Locked)
	}
	if segments[0].Content != "<h>x</h>" {
		t.Errorf("first segment content = %q", segments[0].Content)
	}

	if segments[1].Metadata.ID != "b" || segments[1].Metadata.IsLocked() {
		t.Errorf("second segment: got id=%q locked=%v", segments[1].Metadata.ID, segments[1].Metadata.IsLocked())
	}
	if segments[1].Content != "<b>y</b>" {
		t.Errorf("second segment content = %q", segments[1].Content)
	}

	// Segments must be contiguous: first ends where the next marker starts.
	nextMarker := strings.Index(content, `<!-- SEGMENT: id="b" -->`)
	if segments[0].EndPos != nextMarker {
		t.Errorf("first segment EndPos = %d, want %d", segments[0].EndPos, nextMarker)
	}
	if segments[1].EndPos != len(content) {
		t.Errorf("second segment EndPos = %d, want %d", segments[1].EndPos, len(content))
	}
}

func TestParseUntrimmedOffsets(t *testing.T) {
	content := "<!-- SEGMENT: id=\"a\" -->\n  <x/>  \n"

	segments := Parse(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if seg.Content != "<x/>" {
		t.Errorf("content should be trimmed, got %q", seg.Content)
	}
	markerEnd := strings.Index(content, "-->") + len("-->")
	if seg.StartPos != markerEnd {
		t.Errorf("StartPos = %d, want untrimmed marker end %d", seg.StartPos, markerEnd)
	}
	if seg.EndPos != len(content) {
		t.Errorf("EndPos = %d, want untrimmed end %d", seg.EndPos, len(content))
	}
	if seg.EndPos-seg.StartPos == len(seg.Content) {
		t.Error("offsets must cover the untrimmed slice, not the trimmed content")
	}
}

func TestParseMarkerWithoutIDIgnored(t *testing.T) {
	content := `<!-- SEGMENT: locked="true" --><x>1</x>`

	segments := Parse(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Metadata.ID != DefaultSegmentID {
		t.Errorf("invalid marker should fall back to default segment, got id %q", segments[0].Metadata.ID)
	}
}

func TestParseEmptySegmentDropped(t *testing.T) {
	content := `<!-- SEGMENT: id="empty" -->   <!-- SEGMENT: id="full" --><x/>`

	segments := Parse(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Metadata.ID != "full" {
		t.Errorf("expected surviving segment %q, got %q", "full", segments[0].Metadata.ID)
	}
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.SegmentMetadata
	}{
		{
			name:    "all flags",
			content: `<!-- SEGMENT: id="s", locked="true", double_width="true" -->x`,
			want:    models.SegmentMetadata{ID: "s", Locked: true, DoubleWidth: true},
		},
		{
			name:    "case-insensitive booleans",
			content: `<!-- SEGMENT: id="s", locked="TRUE" -->x`,
			want:    models.SegmentMetadata{ID: "s", Locked: true},
		},
		{
			name:    "non-true values are false",
			content: `<!-- SEGMENT: id="s", locked="yes", double_width="1" -->x`,
			want:    models.SegmentMetadata{ID: "s"},
		},
		{
			name:    "single quotes",
			content: `<!-- SEGMENT: id='s', locked='true' -->x`,
			want:    models.SegmentMetadata{ID: "s", Locked: true},
		},
		{
			name:    "duplicate keys keep the last",
			content: `<!-- SEGMENT: id="first", id="second" -->x`,
			want:    models.SegmentMetadata{ID: "second"},
		},
		{
			name:    "unknown attributes ignored",
			content: `<!-- SEGMENT: id="s", color="red" -->x`,
			want:    models.SegmentMetadata{ID: "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Parse(tt.content)
			if len(segments) != 1 {
				t.Fatalf("expected 1 segment, got %d", len(segments))
			}
			if !reflect.DeepEqual(segments[0].Metadata, tt.want) {
				t.Errorf("metadata = %+v, want %+v", segments[0].Metadata, tt.want)
			}
		})
	}
}

func TestParseDynamic(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFunc string
		wantDeps []string
	}{
		{
			name:     "function with deps",
			content:  `<!-- SEGMENT: id="s", dynamic="sum:a, b ,c" -->x`,
			wantFunc: "sum",
			wantDeps: []string{"a", "b", "c"},
		},
		{
			name:     "empty dep tokens dropped",
			content:  `<!-- SEGMENT: id="s", dynamic="sum:a,,b," -->x`,
			wantFunc: "sum",
			wantDeps: []string{"a", "b"},
		},
		{
			name:     "duplicate deps preserved in order",
			content:  `<!-- SEGMENT: id="s", dynamic="sum:a,b,a" -->x`,
			wantFunc: "sum",
			wantDeps: []string{"a", "b", "a"},
		},
		{
			name:     "no colon means no deps",
			content:  `<!-- SEGMENT: id="s", dynamic="now" -->x`,
			wantFunc: "now",
			wantDeps: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Parse(tt.content)
			if len(segments) != 1 {
				t.Fatalf("expected 1 segment, got %d", len(segments))
			}
			dynamic := segments[0].Metadata.Dynamic
			if dynamic == nil {
				t.Fatal("expected dynamic metadata")
			}
			if dynamic.Function != tt.wantFunc {
				t.Errorf("function = %q, want %q", dynamic.Function, tt.wantFunc)
			}
			if !reflect.DeepEqual(dynamic.Deps, tt.wantDeps) {
				t.Errorf("deps = %v, want %v", dynamic.Deps, tt.wantDeps)
			}
		})
	}
}

func TestDynamicSegmentAlwaysLocked(t *testing.T) {
	content := `<!-- SEGMENT: id="d", locked="false", dynamic="clock" -->x`

	segments := Parse(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	meta := segments[0].Metadata
	if meta.Locked {
		t.Error("explicit locked=\"false\" should leave the Locked field false")
	}
	if !meta.IsLocked() {
		t.Error("dynamic segment must report IsLocked() even with locked=\"false\"")
	}
}

func TestParseMarkerSpacingVariants(t *testing.T) {
	for _, content := range []string{
		`<!--SEGMENT: id="s"-->x`,
		`<!--   SEGMENT:   id="s"   -->x`,
	} {
		segments := Parse(content)
		if len(segments) != 1 || segments[0].Metadata.ID != "s" {
			t.Errorf("Parse(%q): expected one segment with id %q, got %+v", content, "s", segments)
		}
	}
}
