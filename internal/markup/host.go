package markup

// Range is a selection expressed as character offsets, Start <= End.
// A collapsed range (Start == End) is a plain cursor.
type Range struct {
	Start int
	End   int
}

// Empty reports whether r selects no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Len returns the number of selected characters.
func (r Range) Len() int {
	return r.End - r.Start
}

// Clamp orders r and limits it to [0, n].
func (r Range) Clamp(n int) Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = clamp(r.Start, 0, n)
	r.End = clamp(r.End, 0, n)
	return r
}

// Host is the text element the editor works on. Offsets passed to and from
// the host are expressed over its raw text, whatever line terminators it
// stores. Environment specific selection mechanics belong to the Host
// implementation.
//
// The editor always passes SetText text with "\n" terminators. A host that
// stores another line ending must convert the text to it in SetText, or the
// original terminators are lost on the first format.
type Host interface {
	Text() string
	SetText(text string)
	Selection() Range
	SetSelection(r Range)
	Focus()
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
