package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gubarz/markedit/internal/buffer"
	"github.com/gubarz/markedit/internal/markup"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Rendering
// ============================================================================

// View implements tea.Model
func (m mainModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.viewWidth()

	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(m.renderTitle(width))
	b.WriteString("\n")
	b.WriteString(m.toolbar.View(styles.Toolbar(), m.focus == focusToolbar && m.phase == phaseEdit))
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.renderText(m.textHeight(), width))
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	if m.phase == phasePrompt {
		b.WriteString(m.renderPrompt())
	} else {
		b.WriteString(m.renderReferences(width))
		b.WriteString(m.renderStatus(width))
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}
	return b.String()
}

// viewWidth returns the screen width, assuming 80 columns before the first
// resize
func (m mainModel) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// renderTitle shows the document name, its line ending and a modified mark
func (m mainModel) renderTitle(width int) string {
	title := styles.Title.Render("markedit") + " " + m.doc.Name()
	if m.area.Ending() == buffer.CRLF {
		title += styles.Dim.Render(" [crlf]")
	}
	if m.area.Version() != 0 {
		title += styles.Dim.Render(" ●")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(title)
}

// renderText draws the visible lines with the selection and cursor
func (m mainModel) renderText(height, width int) string {
	lines := m.area.Lines()
	sel := m.area.Span()
	cursor := -1
	if m.focus == focusText && m.phase == phaseEdit {
		cursor = m.area.Cursor()
	}

	b := getBuilder()
	defer putBuilder(b)

	off := m.area.Offset(m.offset, 0)
	end := min(len(lines), m.offset+height)
	for i := m.offset; i < end; i++ {
		line := []rune(lines[i])
		b.WriteString(renderLine(line, off, sel, cursor, width))
		b.WriteString("\n")
		off += len(line) + 1
	}
	for i := end - m.offset; i < height; i++ {
		b.WriteString(styles.Dim.Render("~"))
		b.WriteString("\n")
	}
	return b.String()
}

// cell classes used while rendering a line
const (
	cellPlain = iota
	cellSelected
	cellCursor
)

// renderLine draws one line starting at normalized offset off. Lines wider
// than width columns scroll horizontally to keep the cursor visible.
func renderLine(line []rune, off int, sel markup.Range, cursor, width int) string {
	classOf := func(pos int) int {
		switch {
		case pos == cursor:
			return cellCursor
		case pos >= sel.Start && pos < sel.End:
			return cellSelected
		}
		return cellPlain
	}

	col := -1
	if cursor >= off && cursor <= off+len(line) {
		col = cursor - off
	}
	first := visibleStart(line, col, width)

	b := getBuilder()
	defer putBuilder(b)

	var run []rune
	runClass := -1
	flush := func() {
		if len(run) == 0 {
			return
		}
		text := string(run)
		switch runClass {
		case cellCursor:
			b.WriteString(styles.Cursor.Render(text))
		case cellSelected:
			b.WriteString(styles.Selection.Render(text))
		default:
			b.WriteString(styles.Text.Render(text))
		}
		run = run[:0]
	}

	// The position after the last rune stands for the line terminator.
	used := 0
	for i := first; i <= len(line); i++ {
		class := classOf(off + i)
		if i == len(line) && class == cellPlain {
			break
		}
		used += cellWidth(line, i)
		if used > width {
			break
		}
		r := ' '
		if i < len(line) {
			r = line[i]
		}
		if class != runClass {
			flush()
			runClass = class
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}

// cellWidth returns the screen columns taken by line[i]. The terminator
// cell takes one column.
func cellWidth(line []rune, i int) int {
	if i >= len(line) {
		return 1
	}
	if line[i] == '\t' {
		return 4 // lipgloss expands tabs to four spaces
	}
	return runewidth.RuneWidth(line[i])
}

// visibleStart returns the first rune of line shown in width columns when
// the cursor sits at rune col. col is -1 when the cursor is on another line.
func visibleStart(line []rune, col, width int) int {
	if col < 0 || col > len(line) {
		return 0
	}
	span := 0
	for i := 0; i <= col; i++ {
		span += cellWidth(line, i)
	}
	first := 0
	for span > width && first < col {
		span -= cellWidth(line, first)
		first++
	}
	return first
}

// runeAt returns the rune index drawn at screen column x when line is shown
// from rune first
func runeAt(line []rune, first, x int) int {
	used := 0
	for i := first; i < len(line); i++ {
		used += cellWidth(line, i)
		if x < used {
			return i
		}
	}
	return len(line)
}

// renderReferences lists reference definitions found in the text
func (m mainModel) renderReferences(width int) string {
	if len(m.refs) == 0 {
		return ""
	}
	b := getBuilder()
	defer putBuilder(b)

	shown := m.refLines()
	if len(m.refs) > maxRefLines {
		shown--
	}
	for _, ref := range m.refs[:shown] {
		line := styles.RefLabel.Render("["+ref.Label+"]") + " " + styles.RefURL.Render(ref.URL)
		if ref.Uses == 0 {
			line += " " + styles.RefUnused.Render("unused")
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(line))
		b.WriteString("\n")
	}
	if len(m.refs) > maxRefLines {
		b.WriteString(styles.Dim.Render(fmt.Sprintf("+%d more", len(m.refs)-shown)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus shows the last outcome on the left and the cursor position
// on the right
func (m mainModel) renderStatus(width int) string {
	row, col := m.area.Position(m.area.Cursor())
	right := fmt.Sprintf("Ln %d, Col %d", row+1, col+1)
	if sel := m.area.Span(); !sel.Empty() {
		right += fmt.Sprintf(" · %d selected", sel.Len())
	}
	if n := m.editor.Resources(); n > 0 {
		right += fmt.Sprintf(" · %d added", n)
	}

	left := m.status
	if b, ok := m.toolbar.Current(); ok && m.focus == focusToolbar {
		left = b.Help
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.Status.Render(right)
	}
	return styles.Status.Render(left + strings.Repeat(" ", gap) + right)
}

// renderHelp shows the bindings for the focused control
func (m mainModel) renderHelp() string {
	if m.focus == focusToolbar {
		return m.help.ShortHelpView(m.keys.toolbarHelp())
	}
	return m.help.View(m.keys)
}

// renderPrompt draws the URL modal
func (m mainModel) renderPrompt() string {
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.Prompt.Render(m.pending.message))
	b.WriteString(styles.Dim.Render("  enter accept • esc cancel"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(nil))
	return b.String()
}
