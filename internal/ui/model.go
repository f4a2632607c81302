package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/markedit/internal/buffer"
	"github.com/gubarz/markedit/internal/config"
	"github.com/gubarz/markedit/internal/markup"
	"github.com/gubarz/markedit/internal/output"
	"github.com/gubarz/markedit/internal/parser"
	"github.com/gubarz/markedit/internal/toolbar"
)

// ============================================================================
// Settings
// ============================================================================

// settings holds everything the model reads from configuration
type settings struct {
	lineEnding   string
	selectionAPI string
	firstMatch   bool
	modifier     string
	keys         map[string]string
	toolbar      []string
}

// loadSettings reads settings from the global config
func loadSettings() settings {
	return settings{
		lineEnding:   config.GetLineEnding(),
		selectionAPI: config.GetSelectionAPI(),
		firstMatch:   config.GetFirstMatchReplace(),
		modifier:     config.GetModifier(),
		keys:         config.GetKeys(),
		toolbar:      config.GetToolbar(),
	}
}

// ============================================================================
// Main Model
// ============================================================================

// uiPhase represents which phase the TUI is in
type uiPhase int

const (
	phaseEdit   uiPhase = iota // Editing text
	phasePrompt                // Asking for a link or image URL
)

// uiFocus is the control receiving keys during phaseEdit
type uiFocus int

const (
	focusText uiFocus = iota
	focusToolbar
)

// Screen layout. Rows above the text are fixed.
const (
	titleRow    = 0
	toolbarRow  = 1
	textTop     = 3
	maxRefLines = 4
)

// pendingPrompt is a format waiting for the user to enter a URL
type pendingPrompt struct {
	tag     markup.Tag
	message string
}

// mainModel is the Bubble Tea model for the toolbar editor
type mainModel struct {
	// Common state
	width     int
	height    int
	textInput textinput.Model
	help      help.Model
	keys      keyMap
	quitting  bool
	aborted   bool

	// Phase management
	phase   uiPhase
	focus   uiFocus
	pending pendingPrompt

	// Editor state
	doc       *parser.Document
	area      *buffer.Area
	host      markup.Host
	editor    *markup.Editor
	toolbar   *toolbar.Toolbar
	shortcuts *toolbar.Shortcuts
	clipboard output.Clipboard
	offset    int // first visible line
	status    string

	// Reference pane, rebuilt when the text changes
	refs       []parser.Reference
	refVersion uint64
}

// newMainModel creates the editor model for doc
func newMainModel(doc *parser.Document, s settings, cb output.Clipboard) (mainModel, error) {
	ending, err := buffer.ParseLineEnding(s.lineEnding, doc.Text)
	if err != nil {
		return mainModel{}, err
	}

	var area *buffer.Area
	var host markup.Host
	switch strings.ToLower(s.selectionAPI) {
	case "", "offset":
		area = buffer.New(doc.Text, ending)
		host = area
	case "range":
		ra := buffer.NewRangeArea(doc.Text, ending)
		area, host = ra.Area, ra
	default:
		return mainModel{}, fmt.Errorf("unsupported selection_api: %s (supported: offset, range)", s.selectionAPI)
	}

	var opts []markup.Option
	if s.firstMatch {
		opts = append(opts, markup.WithFirstMatchReplace())
	}
	editor := markup.New(host, opts...)

	tags, err := toolbar.ParseTags(s.toolbar)
	if err != nil {
		return mainModel{}, err
	}

	chords := make(map[markup.Tag]string, len(s.keys))
	for name, char := range s.keys {
		tag, err := markup.ParseTag(name)
		if err != nil {
			return mainModel{}, fmt.Errorf("keys: %w", err)
		}
		chords[tag] = char
	}
	shortcuts, err := toolbar.NewShortcuts(s.modifier, chords)
	if err != nil {
		return mainModel{}, err
	}

	km := defaultKeyMap()
	km.formats = shortcuts.Bindings()

	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.CharLimit = 2048
	ti.Width = 50

	area.Focus()
	m := mainModel{
		textInput: ti,
		help:      help.New(),
		keys:      km,
		phase:     phaseEdit,
		focus:     focusText,
		doc:       doc,
		area:      area,
		host:      host,
		editor:    editor,
		toolbar:   toolbar.New(editor, tags),
		shortcuts: shortcuts,
		clipboard: cb,
	}
	m.refreshReferences()
	return m, nil
}

// Init implements tea.Model
func (m mainModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for both phases
	if wsMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsMsg.Width
		m.height = wsMsg.Height
		m.textInput.Width = max(wsMsg.Width-4, 10)
		m.help.Width = wsMsg.Width
		m.adjustOffset()
		return m, nil
	}

	// Dispatch based on phase
	switch m.phase {
	case phasePrompt:
		return m.updatePrompt(msg)
	default:
		return m.updateEdit(msg)
	}
}

// updateEdit handles updates while editing
func (m mainModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleEditKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

// handleEditKey processes keyboard input during phaseEdit. Format
// shortcuts work regardless of focus.
func (m *mainModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if tag, ok := m.shortcuts.Lookup(msg); ok {
		return m.applyTag(tag)
	}
	if m.focus == focusToolbar {
		return m.handleToolbarKey(msg)
	}
	return m.handleTextKey(msg)
}

// handleTextKey processes keys while the text has focus
func (m *mainModel) handleTextKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Abort):
		m.aborted = true
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, k.Finish):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, k.Toolbar):
		m.focusToolbar()
		return nil

	case key.Matches(msg, k.Left):
		m.area.MoveLeft(false)
	case key.Matches(msg, k.Right):
		m.area.MoveRight(false)
	case key.Matches(msg, k.Up):
		m.area.MoveUp(false)
	case key.Matches(msg, k.Down):
		m.area.MoveDown(false)
	case key.Matches(msg, k.ShiftLeft):
		m.area.MoveLeft(true)
	case key.Matches(msg, k.ShiftRight):
		m.area.MoveRight(true)
	case key.Matches(msg, k.ShiftUp):
		m.area.MoveUp(true)
	case key.Matches(msg, k.ShiftDown):
		m.area.MoveDown(true)
	case key.Matches(msg, k.Home):
		m.area.LineStart(false)
	case key.Matches(msg, k.End):
		m.area.LineEnd(false)
	case key.Matches(msg, k.ShiftHome):
		m.area.LineStart(true)
	case key.Matches(msg, k.ShiftEnd):
		m.area.LineEnd(true)

	case key.Matches(msg, k.Backspace):
		m.area.DeleteBackward()
	case key.Matches(msg, k.Delete):
		m.area.DeleteForward()
	case key.Matches(msg, k.Enter):
		m.area.InsertText("\n")

	case key.Matches(msg, k.SelectAll):
		m.area.SelectAll()
	case key.Matches(msg, k.Copy):
		m.copySelection(false)
	case key.Matches(msg, k.Cut):
		m.copySelection(true)
	case key.Matches(msg, k.Paste):
		m.paste()

	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.area.InsertText(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.area.InsertText(" ")
	default:
		return nil
	}
	m.afterChange()
	return nil
}

// handleToolbarKey processes keys while the toolbar has focus
func (m *mainModel) handleToolbarKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Abort):
		m.aborted = true
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, k.Leave):
		m.focusText()
	case key.Matches(msg, k.ButtonLeft):
		m.toolbar.Prev()
	case key.Matches(msg, k.ButtonRight):
		m.toolbar.Next()
	case key.Matches(msg, k.Press):
		if b, ok := m.toolbar.Current(); ok {
			return m.applyTag(b.Tag)
		}
	}
	return nil
}

// handleMouse handles clicks on the toolbar and in the text, and wheel
// scrolling
func (m *mainModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.offset = max(0, m.offset-1)
		return nil
	case tea.MouseButtonWheelDown:
		maxOffset := max(0, len(m.area.Lines())-m.textHeight())
		m.offset = min(maxOffset, m.offset+1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch {
	case msg.Y == toolbarRow:
		if b, ok := m.toolbar.ButtonAt(styles.Toolbar(), msg.X); ok {
			return m.applyTag(b.Tag)
		}
	case msg.Y >= textTop && msg.Y < textTop+m.textHeight():
		m.clickText(m.offset+msg.Y-textTop, msg.X)
		m.focusText()
	}
	return nil
}

// clickText places the cursor under screen column x of text row row,
// following the horizontal scroll renderLine applied to that row
func (m *mainModel) clickText(row, x int) {
	lines := m.area.Lines()
	if row >= len(lines) {
		m.area.SetCursor(m.area.Len())
		return
	}
	line := []rune(lines[row])
	start := m.area.Offset(row, 0)

	col := -1
	if cur := m.area.Cursor(); cur >= start && cur <= start+len(line) {
		col = cur - start
	}
	first := visibleStart(line, col, m.viewWidth())
	m.area.SetCursor(start + runeAt(line, first, x))
}

// focusToolbar moves keyboard focus to the toolbar
func (m *mainModel) focusToolbar() {
	m.focus = focusToolbar
	m.area.Blur()
}

// focusText moves keyboard focus back to the text
func (m *mainModel) focusText() {
	m.focus = focusText
	m.area.Focus()
}

// ============================================================================
// Formatting
// ============================================================================

// applyTag runs a format. Link and image formats cannot block on a prompt
// inside Update, so the first run records the prompt and cancels; the URL
// modal then re-runs the format with the answer.
func (m *mainModel) applyTag(tag markup.Tag) tea.Cmd {
	var asked string
	out := m.toolbar.Activate(tag, func(message string) (string, bool) {
		asked = message
		return "", false
	})
	m.focus = focusText

	if out == markup.Cancelled && asked != "" {
		return m.openPrompt(tag, asked)
	}
	m.finishFormat(tag, out)
	return nil
}

// finishFormat reports the outcome of a format
func (m *mainModel) finishFormat(tag markup.Tag, out markup.Outcome) {
	log.Printf("format %s: %s", tag, out)
	switch out {
	case markup.Applied:
		m.status = fmt.Sprintf("%s applied", tag)
	case markup.Unchanged:
		m.status = "placeholder already selected"
	case markup.Cancelled:
		m.status = fmt.Sprintf("%s cancelled", tag)
	}
	m.afterChange()
}

// openPrompt switches to phasePrompt with the URL input prefilled
func (m *mainModel) openPrompt(tag markup.Tag, message string) tea.Cmd {
	m.phase = phasePrompt
	m.pending = pendingPrompt{tag: tag, message: message}
	m.area.Blur()
	m.textInput.Placeholder = "http://"
	m.textInput.SetValue("http://")
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// updatePrompt handles updates during phasePrompt
func (m mainModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			tag := m.pending.tag
			m.closePrompt()
			m.finishFormat(tag, markup.Cancelled)
			return m, nil
		case "enter":
			m.acceptPrompt()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// acceptPrompt re-runs the pending format with the entered URL. An empty
// answer cancels.
func (m *mainModel) acceptPrompt() {
	url := strings.TrimSpace(m.textInput.Value())
	tag := m.pending.tag
	m.closePrompt()

	out := m.toolbar.Activate(tag, func(string) (string, bool) {
		return url, url != ""
	})
	m.finishFormat(tag, out)
}

// closePrompt leaves phasePrompt and returns focus to the text
func (m *mainModel) closePrompt() {
	m.phase = phaseEdit
	m.pending = pendingPrompt{}
	m.textInput.Blur()
	m.textInput.SetValue("")
	m.focusText()
}

// ============================================================================
// Clipboard
// ============================================================================

// copySelection copies the selection, removing it when cut is set
func (m *mainModel) copySelection(cut bool) {
	text := m.area.SelectedText()
	if text == "" {
		return
	}
	if m.clipboard == nil {
		m.status = "clipboard unavailable"
		return
	}
	if err := m.clipboard.Copy(text); err != nil {
		log.Printf("copy: %v", err)
		m.status = "copy failed: " + err.Error()
		return
	}
	if cut {
		m.area.DeleteBackward()
	}
}

// paste inserts the clipboard contents at the cursor
func (m *mainModel) paste() {
	if m.clipboard == nil {
		m.status = "clipboard unavailable"
		return
	}
	text, err := m.clipboard.Paste()
	if err != nil {
		log.Printf("paste: %v", err)
		m.status = "paste failed: " + err.Error()
		return
	}
	m.area.InsertText(text)
}

// ============================================================================
// Viewport
// ============================================================================

// afterChange keeps the cursor visible and the reference pane current
func (m *mainModel) afterChange() {
	m.adjustOffset()
	if m.area.Version() != m.refVersion {
		m.refreshReferences()
	}
}

// refreshReferences rescans the text for reference definitions
func (m *mainModel) refreshReferences() {
	m.refs = parser.ParseReferences(m.area.Value())
	parser.SortReferences(m.refs)
	m.refVersion = m.area.Version()
}

// textHeight returns the number of text lines that fit on screen
func (m mainModel) textHeight() int {
	return max(m.height-textTop-m.bottomHeight(), 3)
}

// bottomHeight returns the rows used below the text
func (m mainModel) bottomHeight() int {
	if m.phase == phasePrompt {
		return 4 // divider, message, input, help
	}
	return 3 + m.refLines() // divider, references, status, help
}

// refLines returns the rows used by the reference pane
func (m mainModel) refLines() int {
	if len(m.refs) > maxRefLines {
		return maxRefLines
	}
	return len(m.refs)
}

// adjustOffset ensures the cursor line is visible within the viewport
func (m *mainModel) adjustOffset() {
	if m.height <= 0 {
		return
	}
	viewHeight := m.textHeight()
	row, _ := m.area.Position(m.area.Cursor())

	// Scroll up: cursor went above viewport
	if row < m.offset {
		m.offset = row
	}
	// Scroll down: cursor went below viewport
	if row >= m.offset+viewHeight {
		m.offset = row - viewHeight + 1
	}
	maxOffset := max(0, len(m.area.Lines())-viewHeight)
	m.offset = clamp(m.offset, 0, maxOffset)
}

// clamp restricts v to [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
