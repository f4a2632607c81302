package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/markedit/internal/markup"
)

func TestAreaTextUsesLineEnding(t *testing.T) {
	a := New("a\nb\r\nc\rd", CRLF)
	assert.Equal(t, "a\nb\nc\nd", a.Value())
	assert.Equal(t, "a\r\nb\r\nc\r\nd", a.Text())
	assert.Equal(t, 7, a.Len())

	lf := New("a\r\nb", LF)
	assert.Equal(t, "a\nb", lf.Text())

	assert.Equal(t, "\r\n", CRLF.Terminator())
	assert.Equal(t, "\n", LF.Terminator())
}

func TestAreaSelectionRawOffsets(t *testing.T) {
	a := New("ab\ncd\nef", CRLF)
	a.Select(markup.Range{Start: 6, End: 8})

	assert.Equal(t, "ef", a.SelectedText())
	assert.Equal(t, markup.Range{Start: 8, End: 10}, a.Selection())

	a.SetSelection(markup.Range{Start: 4, End: 6})
	assert.Equal(t, "cd", a.SelectedText())
	assert.Equal(t, markup.Range{Start: 3, End: 5}, a.Span())
}

func TestAreaSetTextClampsSelection(t *testing.T) {
	a := New("abcdef", LF)
	a.SelectAll()
	v := a.Version()

	a.SetText("ab")
	assert.Equal(t, markup.Range{Start: 0, End: 2}, a.Span())
	assert.Greater(t, a.Version(), v)
}

func TestAreaFocus(t *testing.T) {
	a := New("", LF)
	assert.False(t, a.Focused())
	a.Focus()
	assert.True(t, a.Focused())
	a.Blur()
	assert.False(t, a.Focused())
}

func TestAreaInsertText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		sel    markup.Range
		insert string
		want   string
		cursor int
	}{
		{"at cursor", "held", markup.Range{Start: 3, End: 3}, "l", "helld", 4},
		{"replaces selection", "hello world", markup.Range{Start: 6, End: 11}, "there", "hello there", 11},
		{"normalizes crlf", "", markup.Range{}, "a\r\nb", "a\nb", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.text, LF)
			a.Select(tt.sel)
			a.InsertText(tt.insert)
			assert.Equal(t, tt.want, a.Value())
			assert.Equal(t, tt.cursor, a.Cursor())
			assert.True(t, a.Span().Empty())
		})
	}
}

func TestAreaDeleteGraphemes(t *testing.T) {
	a := New("ae\u0301b", LF)
	a.SetCursor(3)
	a.DeleteBackward()
	assert.Equal(t, "ab", a.Value())
	assert.Equal(t, 1, a.Cursor())

	a.DeleteForward()
	assert.Equal(t, "a", a.Value())

	a.DeleteForward()
	assert.Equal(t, "a", a.Value())

	a.SetCursor(0)
	a.DeleteBackward()
	assert.Equal(t, "a", a.Value())
}

func TestAreaDeleteSelection(t *testing.T) {
	a := New("hello world", LF)
	a.Select(markup.Range{Start: 5, End: 11})
	a.DeleteBackward()
	assert.Equal(t, "hello", a.Value())
	assert.Equal(t, 5, a.Cursor())
}

func TestAreaMoveHorizontal(t *testing.T) {
	a := New("ae\u0301b", LF)

	a.MoveRight(false)
	assert.Equal(t, 1, a.Cursor())
	a.MoveRight(false)
	assert.Equal(t, 3, a.Cursor(), "combining mark moves with its base")
	a.MoveRight(false)
	a.MoveRight(false)
	assert.Equal(t, 4, a.Cursor())

	a.MoveLeft(true)
	a.MoveLeft(true)
	assert.Equal(t, markup.Range{Start: 1, End: 4}, a.Span())

	a.MoveLeft(false)
	assert.Equal(t, markup.Range{Start: 1, End: 1}, a.Span())

	a.Select(markup.Range{Start: 0, End: 3})
	a.MoveRight(false)
	assert.Equal(t, markup.Range{Start: 3, End: 3}, a.Span())
}

func TestAreaMoveVertical(t *testing.T) {
	a := New("abc\nde\nfghi", LF)
	a.SetCursor(3)

	a.MoveDown(false)
	assert.Equal(t, 6, a.Cursor())
	a.MoveDown(false)
	assert.Equal(t, 9, a.Cursor())

	row, col := a.Position(a.Cursor())
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	a.MoveDown(true)
	assert.Equal(t, a.Len(), a.Cursor())
	assert.Equal(t, "hi", a.SelectedText())

	a.SetCursor(1)
	a.MoveUp(false)
	assert.Equal(t, 0, a.Cursor())
}

func TestAreaLineBounds(t *testing.T) {
	a := New("ab\ncd", LF)
	a.SetCursor(4)

	a.LineEnd(false)
	assert.Equal(t, 5, a.Cursor())
	a.LineStart(true)
	assert.Equal(t, "cd", a.SelectedText())
}

func TestPositionOffsetRoundTrip(t *testing.T) {
	a := New("one\n\ntwo", LF)
	for off := 0; off <= a.Len(); off++ {
		row, col := a.Position(off)
		assert.Equal(t, off, a.Offset(row, col))
	}
	assert.Equal(t, a.Len(), a.Offset(9, 0))
	assert.Equal(t, 3, a.Offset(0, 99))
}

func TestDetectLineEnding(t *testing.T) {
	assert.Equal(t, LF, DetectLineEnding(""))
	assert.Equal(t, LF, DetectLineEnding("a\nb"))
	assert.Equal(t, CRLF, DetectLineEnding("a\r\nb\r\nc\n"))
}

func TestParseLineEnding(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   LineEnding
	}{
		{"auto", "a\r\nb", CRLF},
		{"", "a\nb", LF},
		{"LF", "a\r\nb", LF},
		{"crlf", "", CRLF},
	}
	for _, tt := range tests {
		got, err := ParseLineEnding(tt.name, tt.sample)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := ParseLineEnding("cr", "")
	assert.Error(t, err)
}
