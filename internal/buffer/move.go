package buffer

import "github.com/rivo/uniseg"

// MoveLeft moves the cursor one grapheme left. With extend the selection
// grows; without it an active selection collapses to its start.
func (a *Area) MoveLeft(extend bool) {
	if !extend && a.anchor != a.cursor {
		a.collapse(a.Span().Start)
		return
	}
	a.moveTo(prevBoundary(a.text, a.cursor), extend)
}

// MoveRight moves the cursor one grapheme right. Without extend an active
// selection collapses to its end.
func (a *Area) MoveRight(extend bool) {
	if !extend && a.anchor != a.cursor {
		a.collapse(a.Span().End)
		return
	}
	a.moveTo(nextBoundary(a.text, a.cursor), extend)
}

// MoveUp moves the cursor to the same column on the previous line.
func (a *Area) MoveUp(extend bool) {
	row, col := a.Position(a.cursor)
	if row == 0 {
		a.moveTo(0, extend)
		return
	}
	a.moveTo(a.Offset(row-1, col), extend)
}

// MoveDown moves the cursor to the same column on the next line.
func (a *Area) MoveDown(extend bool) {
	row, col := a.Position(a.cursor)
	if row >= len(a.Lines())-1 {
		a.moveTo(len(a.text), extend)
		return
	}
	a.moveTo(a.Offset(row+1, col), extend)
}

// LineStart moves the cursor to the start of its line.
func (a *Area) LineStart(extend bool) {
	row, _ := a.Position(a.cursor)
	a.moveTo(a.Offset(row, 0), extend)
}

// LineEnd moves the cursor to the end of its line.
func (a *Area) LineEnd(extend bool) {
	row, _ := a.Position(a.cursor)
	a.moveTo(a.Offset(row, len(a.text)), extend)
}

// SetCursor places a collapsed cursor at the normalized offset off.
func (a *Area) SetCursor(off int) {
	a.collapse(clamp(off, 0, len(a.text)))
}

// Position converts a normalized offset into a 0-based row and rune column.
func (a *Area) Position(off int) (row, col int) {
	off = clamp(off, 0, len(a.text))
	for i := 0; i < off; i++ {
		if a.text[i] == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// Offset converts a row and rune column into a normalized offset. The
// column is clamped to the line length.
func (a *Area) Offset(row, col int) int {
	off := 0
	for r := 0; r < row; r++ {
		next := index(a.text, '\n', off)
		if next < 0 {
			return len(a.text)
		}
		off = next + 1
	}
	end := index(a.text, '\n', off)
	if end < 0 {
		end = len(a.text)
	}
	return off + clamp(col, 0, end-off)
}

func (a *Area) moveTo(off int, extend bool) {
	a.cursor = off
	if !extend {
		a.anchor = off
	}
}

func (a *Area) collapse(off int) {
	a.cursor = off
	a.anchor = off
}

// boundaries returns the rune offsets at which grapheme clusters end.
func boundaries(text []rune) []int {
	var out []int
	n := 0
	g := uniseg.NewGraphemes(string(text))
	for g.Next() {
		n += len(g.Runes())
		out = append(out, n)
	}
	return out
}

func prevBoundary(text []rune, off int) int {
	prev := 0
	for _, b := range boundaries(text) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(text []rune, off int) int {
	for _, b := range boundaries(text) {
		if b > off {
			return b
		}
	}
	return len(text)
}

func index(text []rune, r rune, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == r {
			return i
		}
	}
	return -1
}
