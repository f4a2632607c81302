package buffer

import (
	"fmt"
	"strings"
)

// LineEnding specifies how an Area stores line terminators.
type LineEnding uint8

const (
	LF   LineEnding = iota // Unix: \n
	CRLF                   // Windows: \r\n
)

// String returns the escaped terminator
func (le LineEnding) String() string {
	switch le {
	case CRLF:
		return "\\r\\n"
	default:
		return "\\n"
	}
}

// Terminator returns the characters written for a line break.
func (le LineEnding) Terminator() string {
	if le == CRLF {
		return "\r\n"
	}
	return "\n"
}

// ParseLineEnding converts a configuration value into a LineEnding.
// "auto" (or "") picks the ending that dominates sample.
func ParseLineEnding(name, sample string) (LineEnding, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DetectLineEnding(sample), nil
	case "lf", "unix":
		return LF, nil
	case "crlf", "windows", "dos":
		return CRLF, nil
	default:
		return LF, fmt.Errorf("unknown line ending: %s (supported: auto, lf, crlf)", name)
	}
}

// DetectLineEnding returns the most common line ending in text.
// Returns LF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lf, crlf int
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i > 0 && text[i-1] == '\r' {
			crlf++
		} else {
			lf++
		}
	}
	if crlf > lf {
		return CRLF
	}
	return LF
}

// apply rewrites s, which must only contain '\n' terminators, using le.
func (le LineEnding) apply(s string) string {
	if le != CRLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", le.Terminator())
}
