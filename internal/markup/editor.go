package markup

import (
	"strconv"
	"strings"
)

// Prompt asks the user for a URL. It returns false, or an empty string,
// when the user cancels.
type Prompt func(message string) (string, bool)

// Outcome tells which branch ApplyFormat took.
type Outcome int

const (
	Applied   Outcome = iota // the text was rewritten
	Unchanged                // selection already held the placeholder, or unknown tag
	Cancelled                // the URL prompt was dismissed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Cancelled:
		return "cancelled"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithFirstMatchReplace makes the wrap path rewrite the first occurrence of
// the selected text instead of the selection itself, matching the output of
// older toolbar editors byte for byte.
func WithFirstMatchReplace() Option {
	return func(e *Editor) {
		e.firstMatch = true
	}
}

// Editor applies Markdown formatting to the text and selection of a Host.
// An Editor belongs to exactly one host and is not safe for concurrent use.
type Editor struct {
	host       Host
	resources  int // reference definitions added so far
	firstMatch bool
}

// New attaches an Editor to host.
func New(host Host, opts ...Option) *Editor {
	e := &Editor{host: host}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Host returns the element the editor works on.
func (e *Editor) Host() Host {
	return e.host
}

// Resources returns how many link/image references this editor has added.
func (e *Editor) Resources() int {
	return e.resources
}

// ApplyFormat formats the current selection with tag.
//
// With a cursor only, the tag is inserted around its placeholder and the
// placeholder is selected so it can be typed over. With a selection, pre
// and quote indent the selected lines and the other tags wrap the selected
// text. Link and image ask prompt for a URL and append a numbered reference
// definition to the end of the text. The host is focused on every path.
func (e *Editor) ApplyFormat(tag Tag, prompt Prompt) Outcome {
	defer e.host.Focus()

	if _, ok := specs[tag]; !ok {
		return Unchanged
	}

	text, sel := e.read()
	runes := []rune(text)
	selected := string(runes[sel.Start:sel.End])

	if tag == Code && needsBlock(runes, sel, selected) {
		tag = Pre
	}
	spec := specs[tag]
	placeholder, lead := trimPlaceholder(tag, spec.Placeholder)

	if selected == placeholder {
		return Unchanged
	}

	if tag.IsResource() {
		url, ok := "", false
		if prompt != nil {
			url, ok = prompt(promptMessage(tag))
		}
		if !ok || url == "" {
			return Cancelled
		}
		e.resources++
		spec = spec.withIndex(e.resources)
		text += "\n\n  [" + strconv.Itoa(e.resources) + "]: " + url
		runes = []rune(text)
	}

	if sel.Empty() {
		at := sel.End
		next := string(runes[:at]) + spec.Start + spec.Placeholder + spec.End + string(runes[at:])
		start := at + runeLen(spec.Start) + lead
		e.write(next, Range{Start: start, End: start + runeLen(placeholder)})
		return Applied
	}

	switch tag {
	case Pre:
		e.write(IndentBlock(text, sel, codePrefix, 1))
	case Quote:
		e.write(IndentBlock(text, sel, quotePrefix, 1))
	default:
		e.wrap(text, sel, selected, spec)
	}
	return Applied
}

// Indent prefixes the selected lines with prefix repeated count times.
func (e *Editor) Indent(prefix string, count int) {
	defer e.host.Focus()
	text, sel := e.read()
	e.write(IndentBlock(text, sel, prefix, count))
}

func (e *Editor) wrap(text string, sel Range, selected string, spec TagSpec) {
	wrapped := spec.Start + selected + spec.End
	start := sel.Start
	if e.firstMatch {
		if i := strings.Index(text, selected); i >= 0 {
			start = runeLen(text[:i])
		}
	}
	runes := []rune(text)
	end := start + runeLen(selected)
	next := string(runes[:start]) + wrapped + string(runes[end:])
	e.write(next, Range{Start: start, End: start + runeLen(wrapped)})
}

// read returns the host text with normalized line feeds and the selection
// mapped onto it.
func (e *Editor) read() (string, Range) {
	raw := e.host.Text()
	r := e.host.Selection()
	text := NormalizeNewlines(raw)
	sel := Range{Start: NormalizeOffset(raw, r.Start), End: NormalizeOffset(raw, r.End)}
	return text, sel.Clamp(runeLen(text))
}

// write replaces the host text and places the selection, adjusting both
// offsets for the host's raw line terminators.
func (e *Editor) write(text string, sel Range) {
	e.host.SetText(text)
	raw := e.host.Text()
	e.host.SetSelection(Range{
		Start: AdjustOffset(raw, sel.Start),
		End:   AdjustOffset(raw, sel.End),
	})
}

// needsBlock reports whether inline code would be unsafe for the selection:
// it spans lines, touches no neighbouring text, or the text is empty.
func needsBlock(runes []rune, sel Range, selected string) bool {
	if len(runes) == 0 || strings.Contains(selected, "\n") {
		return true
	}
	var outer string
	if sel.Start > 0 {
		outer += string(runes[sel.Start-1])
	}
	if sel.End < len(runes) {
		outer += string(runes[sel.End])
	}
	return strings.TrimSpace(outer) == ""
}
