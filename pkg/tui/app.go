// Package tui is the terminal frontend over an editor session: it renders
// whatever the session projects and feeds keystrokes back through the
// session's edit gates. All document semantics live below it.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/editor"
	"github.com/xedit/xedit-cli/pkg/models"
)

const helpText = "tab: switch view • ctrl+g: grid • ctrl+f: format xml • ctrl+s: save • arrows: move • ctrl+c: quit"

// App is the bubbletea model wrapping one editor session.
type App struct {
	session  *editor.Session
	settings *models.Settings

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	// Cursor within the source-mode line grid.
	cursorLine int
	cursorCol  int

	statusMsg string
}

// NewApp creates the TUI around an existing session.
func NewApp(session *editor.Session, settings *models.Settings) *App {
	app := &App{
		session:  session,
		settings: settings,
		viewport: viewport.New(80, 24),
	}

	session.OnModeChange(func(mode models.ViewMode) {
		app.statusMsg = fmt.Sprintf("switched to %s view", mode)
	})
	session.OnGridChange(func(visible bool) {
		if visible {
			app.statusMsg = "grid on"
		} else {
			app.statusMsg = "grid off"
		}
	})

	return app
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3 // status bar, help line, spacer
		a.ready = true

	case tea.KeyMsg:
		a.statusMsg = ""

		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "tab":
			a.switchMode()

		case "ctrl+g":
			a.session.ToggleGrid()

		case "ctrl+f":
			a.formatDocument()

		case "ctrl+s":
			a.saveDocument()

		case "up":
			a.moveCursor(-1, 0)
		case "down":
			a.moveCursor(1, 0)
		case "left":
			a.moveCursor(0, -1)
		case "right":
			a.moveCursor(0, 1)

		case "enter":
			a.insertNewline()

		case "backspace":
			a.deleteAtCursor(false)
		case "delete":
			a.deleteAtCursor(true)

		case "pgup", "pgdown":
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd

		default:
			if a.session.Mode() == models.ViewModeSource && len(msg.Runes) == 1 {
				a.typeRune(msg.Runes[0])
			} else if msg.String() == "q" {
				return a, tea.Quit
			}
		}
	}

	a.viewport.SetContent(a.renderDocument())
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}

	a.viewport.SetContent(a.renderDocument())

	var b strings.Builder
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(wordwrap.String(helpText, a.width)))
	return b.String()
}

// switchMode toggles between the two view modes; entering styled view is
// refused while the content is not well-formed XML.
func (a *App) switchMode() {
	if a.session.Mode() == models.ViewModeStyled {
		a.session.SetMode(models.ViewModeSource)
		return
	}

	if err := a.session.CanSwitchToStyled(); err != nil {
		a.statusMsg = errorStyle.Render(err.Error())
		return
	}
	a.session.SetMode(models.ViewModeStyled)
}

func (a *App) formatDocument() {
	formatted, err := a.session.Document().FormatXML()
	if err != nil {
		a.statusMsg = errorStyle.Render(err.Error())
		return
	}
	a.session.Document().SetContent(formatted)
	a.clampCursor()
	a.statusMsg = "formatted"
}

func (a *App) saveDocument() {
	doc := a.session.Document()
	if doc.FilePath() == "" {
		a.statusMsg = errorStyle.Render("no file path; start xedit with a file argument")
		return
	}
	if err := container.SaveDocument(doc, doc.FilePath(), a.settings.Container.Extension); err != nil {
		a.statusMsg = errorStyle.Render(err.Error())
		return
	}
	a.statusMsg = fmt.Sprintf("saved %s", doc.FilePath())
}

// sourceLines returns the raw content split into lines for cursor math.
func (a *App) sourceLines() []string {
	return strings.Split(a.session.Document().Content(), "\n")
}

// cursorPos converts the line/column cursor to a byte offset into the raw
// content, the coordinate system segment locks are defined in.
func (a *App) cursorPos() int {
	lines := a.sourceLines()
	pos := 0
	for i := 0; i < a.cursorLine && i < len(lines); i++ {
		pos += len(lines[i]) + 1
	}
	line := ""
	if a.cursorLine < len(lines) {
		line = lines[a.cursorLine]
	}
	runes := []rune(line)
	col := a.cursorCol
	if col > len(runes) {
		col = len(runes)
	}
	return pos + len(string(runes[:col]))
}

func (a *App) moveCursor(dLine, dCol int) {
	if a.session.Mode() != models.ViewModeSource {
		return
	}
	a.cursorLine += dLine
	a.cursorCol += dCol
	a.clampCursor()
}

func (a *App) clampCursor() {
	lines := a.sourceLines()
	if a.cursorLine < 0 {
		a.cursorLine = 0
	}
	if a.cursorLine >= len(lines) {
		a.cursorLine = len(lines) - 1
	}
	if a.cursorCol < 0 {
		a.cursorCol = 0
	}
	if max := len([]rune(lines[a.cursorLine])); a.cursorCol > max {
		a.cursorCol = max
	}
}

// typeRune runs one keystroke through the session pipeline: lock check at
// the cursor's document position, then the overwrite decision.
func (a *App) typeRune(r rune) {
	a.clampCursor()
	lines := a.sourceLines()
	line := lines[a.cursorLine]

	newLine, newCol, ok := a.session.TypeAt(a.cursorPos(), line, a.cursorCol, r)
	if !ok {
		a.statusMsg = lockedStyle.Render("keystroke blocked")
		return
	}

	lines[a.cursorLine] = newLine
	a.cursorCol = newCol
	a.session.Document().SetContent(strings.Join(lines, "\n"))
}

func (a *App) insertNewline() {
	if a.session.Mode() != models.ViewModeSource {
		return
	}
	lines := a.sourceLines()
	line := []rune(lines[a.cursorLine])
	col := a.cursorCol
	if col > len(line) {
		col = len(line)
	}

	before, after := string(line[:col]), string(line[col:])
	updated := append([]string{}, lines[:a.cursorLine]...)
	updated = append(updated, before, after)
	updated = append(updated, lines[a.cursorLine+1:]...)

	a.session.Document().SetContent(strings.Join(updated, "\n"))
	a.cursorLine++
	a.cursorCol = 0
}

func (a *App) deleteAtCursor(forward bool) {
	if a.session.Mode() != models.ViewModeSource {
		return
	}

	pos := a.cursorPos()
	if !a.session.CanDeleteAt(pos, forward) {
		a.statusMsg = lockedStyle.Render("deletion blocked")
		return
	}

	content := a.session.Document().Content()
	target := pos
	if !forward {
		target = pos - 1
	}
	if target < 0 || target >= len(content) {
		return
	}

	a.session.Document().SetContent(content[:target] + content[target+1:])
	if !forward {
		if a.cursorCol > 0 {
			a.cursorCol--
		} else if a.cursorLine > 0 {
			a.cursorLine--
			a.cursorCol = len([]rune(a.sourceLines()[a.cursorLine]))
		}
	}
	a.clampCursor()
}

// renderDocument produces the viewport body for the current mode.
func (a *App) renderDocument() string {
	var b strings.Builder

	if a.session.GridVisible() {
		b.WriteString(rulerStyle.Render(columnRuler(a.session.LineLimit())))
		b.WriteString("\n")
	}

	if a.session.Mode() == models.ViewModeSource {
		b.WriteString(a.renderSource())
	} else {
		b.WriteString(a.renderStyled())
	}
	return b.String()
}

// renderSource shows raw content with the cursor cell reversed.
func (a *App) renderSource() string {
	lines := a.sourceLines()
	var b strings.Builder
	for i, line := range lines {
		if i == a.cursorLine {
			b.WriteString(renderCursorLine(line, a.cursorCol))
		} else {
			b.WriteString(line)
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCursorLine(line string, col int) string {
	runes := []rune(line)
	if col >= len(runes) {
		return line + cursorStyle.Render(" ")
	}
	return string(runes[:col]) + cursorStyle.Render(string(runes[col])) + string(runes[col+1:])
}

// renderStyled shows the styled projection, coloring locked and dynamic
// segments so protected regions are visible.
func (a *App) renderStyled() string {
	infos := a.session.SegmentsInfo()
	if len(infos) == 0 {
		return a.session.Document().Content()
	}

	doc := a.session.Document()
	var b strings.Builder
	for _, seg := range doc.Segments() {
		text := doc.Evaluate(seg)
		switch {
		case seg.Metadata.IsDynamic():
			b.WriteString(dynamicStyle.Render(text))
		case seg.Metadata.IsLocked():
			b.WriteString(lockedStyle.Render(text))
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

func (a *App) statusBar() string {
	doc := a.session.Document()

	name := doc.FilePath()
	if name == "" {
		name = "[untitled]"
	} else {
		name = filepath.Base(name)
	}

	modified := " "
	if doc.IsModified() {
		modified = modifiedStyle.Render("*")
	}

	grid := "off"
	if a.session.GridVisible() {
		grid = "on"
	}

	left := fmt.Sprintf("%s%s  %s  grid:%s  %d:%d",
		name, modified, a.session.Mode(), grid, a.cursorLine+1, a.cursorCol+1)

	bar := statusBarStyle.Width(a.width).Render(left)
	if a.statusMsg != "" {
		bar = lipgloss.JoinVertical(lipgloss.Left, bar, a.statusMsg)
	}
	return bar
}

// columnRuler draws a width ruler up to the line limit, with a tick every
// ten columns.
func columnRuler(limit int) string {
	var b strings.Builder
	for col := 1; col <= limit; col++ {
		switch {
		case col%10 == 0:
			b.WriteString(fmt.Sprintf("%d", (col/10)%10))
		case col%5 == 0:
			b.WriteString("+")
		default:
			b.WriteString("·")
		}
	}
	return b.String()
}
