package buffer

import (
	"strings"

	"github.com/gubarz/markedit/internal/markup"
)

// Area is an in-memory multi-line text input with a selection and a focus
// flag. It implements markup.Host.
//
// Text is kept with single '\n' terminators and exposed through the Host
// methods in the configured LineEnding, so Host offsets count "\r\n" as two
// characters when the area stores CRLF. Value, Span and the editing methods
// work on the normalized text.
type Area struct {
	text    []rune
	anchor  int // where the selection started
	cursor  int // where the selection currently extends to
	ending  LineEnding
	focused bool
	version uint64
}

var _ markup.Host = (*Area)(nil)

// New creates an Area holding text with the cursor at the start.
func New(text string, ending LineEnding) *Area {
	return &Area{
		text:   []rune(normalize(text)),
		ending: ending,
	}
}

// Text returns the raw text in the area's line ending.
func (a *Area) Text() string {
	return a.ending.apply(string(a.text))
}

// SetText replaces the whole text. Terminators are normalized and the
// selection is clamped into the new text.
func (a *Area) SetText(text string) {
	a.text = []rune(normalize(text))
	a.anchor = clamp(a.anchor, 0, len(a.text))
	a.cursor = clamp(a.cursor, 0, len(a.text))
	a.version++
}

// Selection returns the ordered selection over the raw text.
func (a *Area) Selection() markup.Range {
	raw := a.Text()
	s := a.Span()
	return markup.Range{
		Start: markup.AdjustOffset(raw, s.Start),
		End:   markup.AdjustOffset(raw, s.End),
	}
}

// SetSelection selects r, given over the raw text. The cursor ends up at
// r.End.
func (a *Area) SetSelection(r markup.Range) {
	raw := a.Text()
	a.Select(markup.Range{
		Start: markup.NormalizeOffset(raw, r.Start),
		End:   markup.NormalizeOffset(raw, r.End),
	})
}

// Focus gives the area input focus.
func (a *Area) Focus() { a.focused = true }

// Blur removes input focus.
func (a *Area) Blur() { a.focused = false }

// Focused reports whether the area has input focus.
func (a *Area) Focused() bool { return a.focused }

// Ending returns the line ending used by Text.
func (a *Area) Ending() LineEnding { return a.ending }

// Version increases on every text change.
func (a *Area) Version() uint64 { return a.version }

// Value returns the normalized text.
func (a *Area) Value() string { return string(a.text) }

// Len returns the number of characters in the normalized text.
func (a *Area) Len() int { return len(a.text) }

// Cursor returns the normalized cursor offset.
func (a *Area) Cursor() int { return a.cursor }

// Span returns the ordered selection over the normalized text.
func (a *Area) Span() markup.Range {
	if a.anchor <= a.cursor {
		return markup.Range{Start: a.anchor, End: a.cursor}
	}
	return markup.Range{Start: a.cursor, End: a.anchor}
}

// Select sets the selection over the normalized text.
func (a *Area) Select(r markup.Range) {
	r = r.Clamp(len(a.text))
	a.anchor, a.cursor = r.Start, r.End
}

// SelectAll selects the whole text.
func (a *Area) SelectAll() {
	a.anchor, a.cursor = 0, len(a.text)
}

// SelectedText returns the selected part of the normalized text.
func (a *Area) SelectedText() string {
	s := a.Span()
	return string(a.text[s.Start:s.End])
}

// InsertText inserts s at the cursor, replacing the selection if any.
func (a *Area) InsertText(s string) {
	ins := []rune(normalize(s))
	sel := a.Span()
	next := make([]rune, 0, len(a.text)-sel.Len()+len(ins))
	next = append(next, a.text[:sel.Start]...)
	next = append(next, ins...)
	next = append(next, a.text[sel.End:]...)
	a.text = next
	a.cursor = sel.Start + len(ins)
	a.anchor = a.cursor
	a.version++
}

// DeleteBackward removes the selection, or the grapheme before the cursor.
func (a *Area) DeleteBackward() {
	if a.anchor != a.cursor {
		a.deleteSpan(a.Span())
		return
	}
	if a.cursor == 0 {
		return
	}
	a.deleteSpan(markup.Range{Start: prevBoundary(a.text, a.cursor), End: a.cursor})
}

// DeleteForward removes the selection, or the grapheme after the cursor.
func (a *Area) DeleteForward() {
	if a.anchor != a.cursor {
		a.deleteSpan(a.Span())
		return
	}
	if a.cursor >= len(a.text) {
		return
	}
	a.deleteSpan(markup.Range{Start: a.cursor, End: nextBoundary(a.text, a.cursor)})
}

func (a *Area) deleteSpan(r markup.Range) {
	a.text = append(a.text[:r.Start:r.Start], a.text[r.End:]...)
	a.cursor = r.Start
	a.anchor = r.Start
	a.version++
}

// Lines splits the normalized text into lines.
func (a *Area) Lines() []string {
	return strings.Split(string(a.text), "\n")
}

func normalize(s string) string {
	return strings.ReplaceAll(markup.NormalizeNewlines(s), "\r", "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
