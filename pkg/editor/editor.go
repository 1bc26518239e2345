// Package editor coordinates a document with view-mode and grid state and
// publishes change notifications to registered observers. It is the surface
// a frontend (TUI, GUI, CLI) talks to; it renders nothing itself.
package editor

import (
	"fmt"
	"strings"

	"github.com/xedit/xedit-cli/pkg/document"
	"github.com/xedit/xedit-cli/pkg/models"
	"github.com/xedit/xedit-cli/pkg/overtype"
)

// ModeObserver is notified after the view mode changes.
type ModeObserver func(models.ViewMode)

// GridObserver is notified after grid visibility changes.
type GridObserver func(bool)

// Session owns one document plus the view state around it. It is not safe
// for concurrent use, and observers must not re-trigger the change they are
// being notified about.
type Session struct {
	doc         *document.Document
	mode        models.ViewMode
	gridVisible bool
	lineLimit   int

	modeObservers []ModeObserver
	gridObservers []GridObserver
}

// NewSession creates a session with an empty document, styled view, hidden
// grid, and the default line limit.
func NewSession() *Session {
	return &Session{
		doc:       document.New(),
		mode:      models.ViewModeStyled,
		lineLimit: overtype.DefaultLineLimit,
	}
}

// NewSessionWithSettings creates a session configured from settings.
func NewSessionWithSettings(settings *models.Settings) *Session {
	s := NewSession()
	if settings == nil {
		return s
	}
	if settings.Editor.LineLimit > 0 {
		s.lineLimit = settings.Editor.LineLimit
	}
	s.gridVisible = settings.UI.ShowGrid
	if settings.UI.DefaultView == string(models.ViewModeSource) {
		s.mode = models.ViewModeSource
	}
	return s
}

// Document returns the session's document.
func (s *Session) Document() *document.Document {
	return s.doc
}

// Mode returns the current view mode.
func (s *Session) Mode() models.ViewMode {
	return s.mode
}

// GridVisible reports whether the grid overlay is on.
func (s *Session) GridVisible() bool {
	return s.gridVisible
}

// LineLimit returns the per-line length cap for overwrite editing.
func (s *Session) LineLimit() int {
	return s.lineLimit
}

// OnModeChange registers an observer for view-mode changes.
func (s *Session) OnModeChange(obs ModeObserver) {
	s.modeObservers = append(s.modeObservers, obs)
}

// OnGridChange registers an observer for grid-visibility changes.
func (s *Session) OnGridChange(obs GridObserver) {
	s.gridObservers = append(s.gridObservers, obs)
}

// SetMode switches the view mode and notifies observers. Setting the
// current mode again does nothing and notifies nobody.
func (s *Session) SetMode(mode models.ViewMode) {
	if s.mode == mode {
		return
	}
	s.mode = mode
	for _, obs := range s.modeObservers {
		notifyMode(obs, s.mode)
	}
}

// ToggleGrid flips grid visibility and notifies observers.
func (s *Session) ToggleGrid() {
	s.gridVisible = !s.gridVisible
	for _, obs := range s.gridObservers {
		notifyGrid(obs, s.gridVisible)
	}
}

// Observer panics are contained so one broken observer cannot block the
// others or undo the state change. This is a documented contract, not a
// convenience.
func notifyMode(obs ModeObserver, mode models.ViewMode) {
	defer func() { _ = recover() }()
	obs(mode)
}

func notifyGrid(obs GridObserver, visible bool) {
	defer func() { _ = recover() }()
	obs(visible)
}

// NewDocument discards the current document state and starts empty.
func (s *Session) NewDocument() {
	s.doc.Reset()
}

// DisplayContent projects the document for the current view mode. Source
// mode is the raw content verbatim. Styled mode concatenates segment
// contents in order, substituting the evaluated placeholder for dynamic
// segments; inter-segment whitespace stripped by the parser is not
// restored.
func (s *Session) DisplayContent() string {
	if s.mode == models.ViewModeSource {
		return s.doc.Content()
	}

	segments := s.doc.Segments()
	if len(segments) == 0 {
		return s.doc.Content()
	}

	var out strings.Builder
	for _, seg := range segments {
		out.WriteString(s.doc.Evaluate(seg))
	}
	return out.String()
}

// CanEditAt reports whether typing is allowed at the document position.
func (s *Session) CanEditAt(position int) bool {
	return !s.doc.IsLocked(position)
}

// CanDeleteAt reports whether a deletion keystroke is allowed. Backspace
// removes the position before the cursor, forward delete the position at
// the cursor; the lock check targets whichever position would go away.
func (s *Session) CanDeleteAt(position int, forward bool) bool {
	if !forward {
		position--
	}
	if position < 0 {
		return false
	}
	return !s.doc.IsLocked(position)
}

// TypeAt runs the full typed-character pipeline for one keystroke: the lock
// check at the document position first (a locked position discards the
// keystroke before the overwrite engine is consulted), then the overwrite
// decision against the current line. It returns the updated line, the new
// cursor column, and whether the keystroke was accepted.
func (s *Session) TypeAt(position int, line string, col int, r rune) (string, int, bool) {
	if s.doc.IsLocked(position) {
		return line, col, false
	}
	return overtype.Apply(line, col, r, s.lineLimit)
}

// SegmentsInfo returns ordered segment descriptors for rendering.
func (s *Session) SegmentsInfo() []models.SegmentInfo {
	return s.doc.SegmentsInfo()
}

// CanSwitchToStyled reports whether the styled view may be entered: the
// content must be empty or well-formed XML.
func (s *Session) CanSwitchToStyled() error {
	valid, diag := s.doc.ValidateXML()
	if !valid {
		return fmt.Errorf("invalid XML: %s", diag)
	}
	return nil
}
