package toolbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/markedit/internal/markup"
)

// Button is one toolbar control
type Button struct {
	Tag   markup.Tag
	Label string
	Help  string
}

var buttonInfo = map[markup.Tag]Button{
	markup.Bold:   {Tag: markup.Bold, Label: "B", Help: "bold"},
	markup.Italic: {Tag: markup.Italic, Label: "I", Help: "italic"},
	markup.Link:   {Tag: markup.Link, Label: "Link", Help: "link"},
	markup.Image:  {Tag: markup.Image, Label: "Img", Help: "image"},
	markup.Quote:  {Tag: markup.Quote, Label: "❝", Help: "quote"},
	markup.Pre:    {Tag: markup.Pre, Label: "Pre", Help: "code block"},
	markup.Code:   {Tag: markup.Code, Label: "</>", Help: "code"},
}

// Styles controls how the toolbar is drawn
type Styles struct {
	Button lipgloss.Style
	Active lipgloss.Style
	Gap    string
}

// Toolbar maps button activations to formatting operations on one editor
type Toolbar struct {
	editor  *markup.Editor
	buttons []Button
	active  int
}

// ParseTags converts configured tag names into tags. An empty list yields
// every tag, which mirrors generating the controls from the tag table.
func ParseTags(names []string) ([]markup.Tag, error) {
	if len(names) == 0 {
		return markup.Tags(), nil
	}
	tags := make([]markup.Tag, 0, len(names))
	seen := make(map[markup.Tag]bool)
	for _, name := range names {
		tag, err := markup.ParseTag(name)
		if err != nil {
			return nil, fmt.Errorf("toolbar: %w", err)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

// New creates a toolbar with one button per tag
func New(editor *markup.Editor, tags []markup.Tag) *Toolbar {
	buttons := make([]Button, 0, len(tags))
	for _, tag := range tags {
		if b, ok := buttonInfo[tag]; ok {
			buttons = append(buttons, b)
		}
	}
	return &Toolbar{editor: editor, buttons: buttons}
}

// Active returns the index of the highlighted button
func (t *Toolbar) Active() int {
	return t.active
}

// Next highlights the following button, wrapping around
func (t *Toolbar) Next() {
	if len(t.buttons) > 0 {
		t.active = (t.active + 1) % len(t.buttons)
	}
}

// Prev highlights the preceding button, wrapping around
func (t *Toolbar) Prev() {
	if len(t.buttons) > 0 {
		t.active = (t.active - 1 + len(t.buttons)) % len(t.buttons)
	}
}

// Activate runs tag on the editor. Focus moves to the text first so the
// selection is read from the text, not from the toolbar.
func (t *Toolbar) Activate(tag markup.Tag, prompt markup.Prompt) markup.Outcome {
	t.editor.Host().Focus()
	return t.editor.ApplyFormat(tag, prompt)
}

// Current returns the highlighted button
func (t *Toolbar) Current() (Button, bool) {
	if len(t.buttons) == 0 {
		return Button{}, false
	}
	return t.buttons[t.active], true
}

// View renders the toolbar on one line. The active button is highlighted
// only while the toolbar has focus.
func (t *Toolbar) View(styles Styles, focused bool) string {
	parts := make([]string, len(t.buttons))
	for i, b := range t.buttons {
		parts[i] = t.renderButton(styles, i, b, focused)
	}
	return strings.Join(parts, styles.Gap)
}

// ButtonAt returns the button drawn at column x of View's output
func (t *Toolbar) ButtonAt(styles Styles, x int) (Button, bool) {
	if x < 0 {
		return Button{}, false
	}
	gap := lipgloss.Width(styles.Gap)
	col := 0
	for i, b := range t.buttons {
		w := lipgloss.Width(t.renderButton(styles, i, b, false))
		if x < col+w {
			return b, true
		}
		col += w + gap
		if x < col {
			return Button{}, false
		}
	}
	return Button{}, false
}

func (t *Toolbar) renderButton(styles Styles, i int, b Button, focused bool) string {
	if focused && i == t.active {
		return styles.Active.Render(b.Label)
	}
	return styles.Button.Render(b.Label)
}
