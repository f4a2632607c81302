package toolbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/markedit/internal/buffer"
	"github.com/gubarz/markedit/internal/config"
	"github.com/gubarz/markedit/internal/markup"
)

func testStyles() Styles {
	return Styles{
		Button: lipgloss.NewStyle().Padding(0, 1),
		Active: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		Gap:    " ",
	}
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags(nil)
	require.NoError(t, err)
	assert.Equal(t, markup.Tags(), tags)

	tags, err = ParseTags([]string{"link", "Bold", "link"})
	require.NoError(t, err)
	assert.Equal(t, []markup.Tag{markup.Link, markup.Bold}, tags)

	_, err = ParseTags([]string{"underline"})
	assert.ErrorIs(t, err, markup.ErrUnknownTag)
}

func TestActivateFocusesTextFirst(t *testing.T) {
	area := buffer.New("hello world", buffer.LF)
	area.Select(markup.Range{Start: 6, End: 11})
	bar := New(markup.New(area), markup.Tags())

	assert.Equal(t, markup.Applied, bar.Activate(markup.Bold, nil))
	assert.True(t, area.Focused())
	assert.Equal(t, "hello **world**", area.Value())
}

func TestCurrentButton(t *testing.T) {
	area := buffer.New("", buffer.LF)
	bar := New(markup.New(area), []markup.Tag{markup.Bold, markup.Italic})

	bar.Next()
	assert.Equal(t, 1, bar.Active())
	b, ok := bar.Current()
	require.True(t, ok)
	assert.Equal(t, markup.Italic, b.Tag)
	assert.Equal(t, markup.Applied, bar.Activate(b.Tag, nil))
	assert.Equal(t, "*Your emphasized text*", area.Value())

	bar.Next()
	assert.Equal(t, 0, bar.Active())
	bar.Prev()
	assert.Equal(t, 1, bar.Active())

	empty := New(markup.New(area), nil)
	empty.Next()
	empty.Prev()
	_, ok = empty.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Active())
}

func TestActivateLinkUsesPrompt(t *testing.T) {
	area := buffer.New("docs", buffer.LF)
	area.SelectAll()
	e := markup.New(area)
	bar := New(e, markup.Tags())

	out := bar.Activate(markup.Link, func(string) (string, bool) { return "http://d", true })
	assert.Equal(t, markup.Applied, out)
	assert.Equal(t, "[docs][1]\n\n  [1]: http://d", area.Value())
	assert.Equal(t, 1, e.Resources())
}

func TestViewAndButtonAt(t *testing.T) {
	bar := New(markup.New(buffer.New("", buffer.LF)), []markup.Tag{markup.Bold, markup.Italic, markup.Link})
	styles := testStyles()

	assert.Equal(t, " B   I   Link ", bar.View(styles, false))

	tests := []struct {
		x    int
		tag  markup.Tag
		want bool
	}{
		{0, markup.Bold, true},
		{2, markup.Bold, true},
		{3, "", false},
		{4, markup.Italic, true},
		{8, markup.Link, true},
		{13, markup.Link, true},
		{14, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		b, ok := bar.ButtonAt(styles, tt.x)
		assert.Equal(t, tt.want, ok, "x=%d", tt.x)
		assert.Equal(t, tt.tag, b.Tag, "x=%d", tt.x)
	}
}

func TestShortcutsLookup(t *testing.T) {
	s, err := NewShortcuts("alt", map[markup.Tag]string{
		markup.Bold: "b",
		markup.Code: "K",
	})
	require.NoError(t, err)

	tag, ok := s.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	assert.True(t, ok)
	assert.Equal(t, markup.Bold, tag)

	tag, ok = s.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}, Alt: true})
	assert.True(t, ok)
	assert.Equal(t, markup.Code, tag)

	// plain typing is never intercepted
	_, ok = s.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.False(t, ok)

	_, ok = s.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.False(t, ok)

	assert.Len(t, s.Bindings(), 2)
	b, ok := s.Binding(markup.Code)
	require.True(t, ok)
	assert.Equal(t, "alt+k", b.Help().Key)
}

func TestShortcutsCtrl(t *testing.T) {
	s, err := NewShortcuts("ctrl", map[markup.Tag]string{markup.Bold: "b"})
	require.NoError(t, err)

	tag, ok := s.Lookup(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.True(t, ok)
	assert.Equal(t, markup.Bold, tag)
}

func TestShortcutsDefaultKeys(t *testing.T) {
	for _, modifier := range []string{"alt", "ctrl"} {
		t.Run(modifier, func(t *testing.T) {
			keys := make(map[markup.Tag]string)
			for name, char := range config.DefaultKeysFor(modifier) {
				tag, err := markup.ParseTag(name)
				require.NoError(t, err)
				keys[tag] = char
			}

			s, err := NewShortcuts(modifier, keys)
			require.NoError(t, err)
			assert.Len(t, s.Bindings(), len(markup.Tags()))
		})
	}

	s, err := NewShortcuts("ctrl", map[markup.Tag]string{markup.Italic: "t"})
	require.NoError(t, err)
	tag, ok := s.Lookup(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, ok)
	assert.Equal(t, markup.Italic, tag)
}

func TestShortcutsRejectInvalid(t *testing.T) {
	tests := []struct {
		name     string
		modifier string
		keys     map[markup.Tag]string
	}{
		{"modifier", "shift", map[markup.Tag]string{markup.Bold: "b"}},
		{"multi-char", "alt", map[markup.Tag]string{markup.Bold: "bb"}},
		{"symbol", "alt", map[markup.Tag]string{markup.Bold: "*"}},
		{"duplicate", "alt", map[markup.Tag]string{markup.Bold: "b", markup.Italic: "B"}},
		{"reserved ctrl", "ctrl", map[markup.Tag]string{markup.Italic: "i"}},
		{"reserved cut", "ctrl", map[markup.Tag]string{markup.Code: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShortcuts(tt.modifier, tt.keys)
			assert.Error(t, err)
		})
	}
}
