package segment

import (
	"regexp"
	"strings"

	"github.com/xedit/xedit-cli/pkg/models"
)

// DefaultSegmentID is the id assigned to the implicit segment created when
// content carries no marker comments.
const DefaultSegmentID = "default_segment"

var (
	markerPattern = regexp.MustCompile(`<!--\s*SEGMENT:\s*([^>]+?)\s*-->`)
	attrPattern   = regexp.MustCompile(`(\w+)=["'](.*?)["']`)
)

// Parse scans content for marker comments of the form
//
//	<!-- SEGMENT: id="...", locked="true", dynamic="func:dep1,dep2" -->
//
// and partitions the content into ordered segments. Each segment spans from
// the end of its marker to the start of the next valid marker (or end of
// content); the stored content is trimmed while StartPos/EndPos keep the
// untrimmed boundaries. Markers without an id attribute are ignored. If no
// valid marker exists, the whole content becomes a single default segment.
// Blank content yields no segments at all.
//
// The scanner is plain text matching: it is not XML-aware, so a marker
// inside a CDATA block or another comment is still picked up.
func Parse(content string) []models.TextSegment {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	type marker struct {
		start int
		end   int
		meta  models.SegmentMetadata
	}

	var markers []marker
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(content, -1) {
		def := content[loc[2]:loc[3]]
		meta, ok := parseDefinition(def)
		if !ok {
			continue
		}
		markers = append(markers, marker{start: loc[0], end: loc[1], meta: meta})
	}

	if len(markers) == 0 {
		return []models.TextSegment{{
			Content:  content,
			Metadata: models.SegmentMetadata{ID: DefaultSegmentID},
			StartPos: 0,
			EndPos:   len(content),
		}}
	}

	var segments []models.TextSegment
	for i, m := range markers {
		end := len(content)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}

		trimmed := strings.TrimSpace(content[m.end:end])
		if trimmed == "" {
			continue
		}

		segments = append(segments, models.TextSegment{
			Content:  trimmed,
			Metadata: m.meta,
			StartPos: m.end,
			EndPos:   end,
		})
	}

	return segments
}

// parseDefinition extracts segment metadata from the attribute list of a
// marker comment. Attributes are key="value" pairs in any order; duplicate
// keys keep the last occurrence. A definition without an id is rejected.
func parseDefinition(def string) (models.SegmentMetadata, bool) {
	attrs := make(map[string]string)
	for _, match := range attrPattern.FindAllStringSubmatch(def, -1) {
		attrs[match[1]] = match[2]
	}

	id, ok := attrs["id"]
	if !ok {
		return models.SegmentMetadata{}, false
	}

	meta := models.SegmentMetadata{
		ID:          id,
		Locked:      strings.EqualFold(attrs["locked"], "true"),
		DoubleWidth: strings.EqualFold(attrs["double_width"], "true"),
	}

	if dynamicDef, ok := attrs["dynamic"]; ok {
		meta.Dynamic = parseDynamic(dynamicDef)
	}

	return meta, true
}

// parseDynamic splits a dynamic declaration "func:dep1,dep2" into the
// function name and its ordered dependency list. Without a colon the whole
// value is the function name.
func parseDynamic(def string) *models.DynamicFunction {
	name, depsPart, found := strings.Cut(def, ":")
	dynamic := &models.DynamicFunction{Function: name}
	if !found {
		return dynamic
	}

	for _, dep := range strings.Split(depsPart, ",") {
		dep = strings.TrimSpace(dep)
		if dep != "" {
			dynamic.Deps = append(dynamic.Deps, dep)
		}
	}
	return dynamic
}
