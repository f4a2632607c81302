package markup

import (
	"strings"
	"unicode/utf8"
)

// AdjustOffset converts an offset computed against the normalized text
// (single '\n' terminators) into an offset over raw, which may store "\r\n".
// Every line terminator before offset adds one character.
func AdjustOffset(raw string, offset int) int {
	if !strings.Contains(raw, "\r\n") {
		return offset
	}
	norm := []rune(NormalizeNewlines(raw))
	n := 0
	for _, r := range norm[:clamp(offset, 0, len(norm))] {
		if r == '\n' {
			n++
		}
	}
	return offset + n
}

// NormalizeOffset is the inverse of AdjustOffset: it maps an offset over raw
// onto the normalized text. An offset that splits a "\r\n" pair lands after it.
func NormalizeOffset(raw string, offset int) int {
	if !strings.Contains(raw, "\r\n") {
		return offset
	}
	runes := []rune(raw)
	offset = clamp(offset, 0, len(runes))
	pairs := 0
	for i := 0; i < offset; i++ {
		if runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			pairs++
			if i+1 == offset {
				offset++
			}
		}
	}
	return offset - pairs
}

// NormalizeNewlines replaces every "\r\n" with "\n".
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
