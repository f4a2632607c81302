package markup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies a Markdown formatting operation.
type Tag string

const (
	Bold   Tag = "bold"
	Italic Tag = "italic"
	Link   Tag = "link"
	Image  Tag = "image"
	Quote  Tag = "quote"
	Pre    Tag = "pre"
	Code   Tag = "code"
)

// ErrUnknownTag is returned by ParseTag for identifiers outside the tag set.
var ErrUnknownTag = errors.New("unknown tag")

// TagSpec describes how a tag decorates text.
type TagSpec struct {
	Start       string // inserted before the text
	End         string // inserted after the text; may carry the index token
	Placeholder string // inserted when nothing is selected
}

// indexToken is replaced with the reference number in link/image end markers.
const indexToken = "N"

var specs = map[Tag]TagSpec{
	Bold:   {Start: "**", End: "**", Placeholder: "Your bold text"},
	Italic: {Start: "*", End: "*", Placeholder: "Your emphasized text"},
	Link:   {Start: "[", End: "][" + indexToken + "]", Placeholder: "Add your link title"},
	Image:  {Start: "![", End: "][" + indexToken + "]", Placeholder: "Add image description"},
	Quote:  {Start: "", End: "", Placeholder: "\n> Place quoted text here\n"},
	Pre:    {Start: "", End: "", Placeholder: "\n    Add your code block here\n"},
	Code:   {Start: "`", End: "`", Placeholder: "Add inline code here"},
}

// Tags returns every tag in toolbar order.
func Tags() []Tag {
	return []Tag{Bold, Italic, Link, Image, Quote, Pre, Code}
}

// ParseTag converts a tag identifier into a Tag
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := specs[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
	}
	return t, nil
}

// Spec returns the definition of t.
func Spec(t Tag) (TagSpec, bool) {
	s, ok := specs[t]
	return s, ok
}

// IsResource reports whether t needs a URL and a reference definition.
func (t Tag) IsResource() bool {
	return t == Link || t == Image
}

// withIndex returns a copy of s with the index token substituted by n.
func (s TagSpec) withIndex(n int) TagSpec {
	s.End = strings.Replace(s.End, indexToken, strconv.Itoa(n), 1)
	return s
}

// trimPlaceholder returns the placeholder text the user is expected to
// overtype, and how many characters precede it inside the raw placeholder.
// Quote placeholders keep their leading "> " marker outside the selection.
func trimPlaceholder(t Tag, placeholder string) (string, int) {
	trimmed := strings.TrimSpace(placeholder)
	lead := runeLen(placeholder[:strings.Index(placeholder, trimmed)])
	if t == Quote {
		r := []rune(trimmed)
		trimmed = string(r[min(2, len(r)):])
		lead += 2
	}
	return trimmed, lead
}

func promptMessage(t Tag) string {
	if t == Image {
		return "Enter image URL"
	}
	return "Enter the URL"
}
