package toolbar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/markedit/internal/markup"
)

// ctrl chords the terminal or the editor already uses
var reservedCtrl = map[string]string{
	"a": "select all",
	"c": "copy",
	"e": "line end",
	"h": "backspace",
	"i": "tab",
	"j": "newline",
	"m": "enter",
	"q": "quit",
	"s": "finish",
	"v": "paste",
	"x": "cut",
}

// Shortcuts maps accelerator chords to tags. Keys typed without the
// modifier never match.
type Shortcuts struct {
	order    []markup.Tag
	bindings map[markup.Tag]key.Binding
}

// NewShortcuts builds chords from modifier ("alt" or "ctrl") and one
// accelerator character per tag
func NewShortcuts(modifier string, keys map[markup.Tag]string) (*Shortcuts, error) {
	modifier = strings.ToLower(strings.TrimSpace(modifier))
	if modifier != "alt" && modifier != "ctrl" {
		return nil, fmt.Errorf("unsupported modifier: %s (supported: alt, ctrl)", modifier)
	}

	s := &Shortcuts{bindings: make(map[markup.Tag]key.Binding)}
	used := make(map[string]markup.Tag)

	for _, tag := range markup.Tags() {
		char, ok := keys[tag]
		if !ok || char == "" {
			continue
		}
		char = strings.ToLower(char)
		if r, size := utf8.DecodeRuneInString(char); size != len(char) || !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return nil, fmt.Errorf("shortcut for %s must be a single letter or digit, got %q", tag, char)
		}
		if modifier == "ctrl" {
			if what, taken := reservedCtrl[char]; taken {
				return nil, fmt.Errorf("shortcut ctrl+%s for %s conflicts with %s", char, tag, what)
			}
		}
		if other, dup := used[char]; dup {
			return nil, fmt.Errorf("shortcut %s+%s assigned to both %s and %s", modifier, char, other, tag)
		}
		used[char] = tag

		chord := modifier + "+" + char
		s.order = append(s.order, tag)
		s.bindings[tag] = key.NewBinding(key.WithKeys(chord), key.WithHelp(chord, string(tag)))
	}
	return s, nil
}

// Lookup returns the tag bound to msg
func (s *Shortcuts) Lookup(msg tea.KeyMsg) (markup.Tag, bool) {
	for _, tag := range s.order {
		if key.Matches(msg, s.bindings[tag]) {
			return tag, true
		}
	}
	return "", false
}

// Binding returns the chord bound to tag
func (s *Shortcuts) Binding(tag markup.Tag) (key.Binding, bool) {
	b, ok := s.bindings[tag]
	return b, ok
}

// Bindings returns every chord in tag order, for help views
func (s *Shortcuts) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(s.order))
	for _, tag := range s.order {
		out = append(out, s.bindings[tag])
	}
	return out
}
