package buffer

import "github.com/gubarz/markedit/internal/markup"

// TextRange is a movable character range over an Area. It models the
// range-object selection API of environments without offset based
// selection control: a line break always counts as one character.
type TextRange struct {
	area       *Area
	start, end int
}

// CreateTextRange returns a range spanning the whole text.
func (a *Area) CreateTextRange() *TextRange {
	return &TextRange{area: a, end: len(a.text)}
}

// Collapse shrinks the range to its start or end point.
func (r *TextRange) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// MoveStart moves the start point by n characters and returns how far it
// actually moved. The end point is pushed along when overtaken.
func (r *TextRange) MoveStart(n int) int {
	prev := r.start
	r.start = clamp(r.start+n, 0, len(r.area.text))
	if r.start > r.end {
		r.end = r.start
	}
	return r.start - prev
}

// MoveEnd moves the end point by n characters and returns how far it
// actually moved. The start point is pushed along when overtaken.
func (r *TextRange) MoveEnd(n int) int {
	prev := r.end
	r.end = clamp(r.end+n, 0, len(r.area.text))
	if r.end < r.start {
		r.start = r.end
	}
	return r.end - prev
}

// Text returns the characters covered by the range.
func (r *TextRange) Text() string {
	return string(r.area.text[r.start:r.end])
}

// Select makes the range the area's selection.
func (r *TextRange) Select() {
	r.area.Select(markup.Range{Start: r.start, End: r.end})
}

// RangeArea is an Area whose selection is placed through TextRange moves
// instead of direct offsets.
type RangeArea struct {
	*Area
}

var _ markup.Host = (*RangeArea)(nil)

// NewRangeArea creates a RangeArea holding text.
func NewRangeArea(text string, ending LineEnding) *RangeArea {
	return &RangeArea{Area: New(text, ending)}
}

// SetSelection selects r, given over the raw text.
func (a *RangeArea) SetSelection(r markup.Range) {
	raw := a.Text()
	start := markup.NormalizeOffset(raw, r.Start)
	end := markup.NormalizeOffset(raw, r.End)

	tr := a.CreateTextRange()
	tr.Collapse(true)
	tr.MoveEnd(end)
	tr.MoveStart(start)
	tr.Select()
}
