package markup

import "strings"

const (
	codePrefix  = "    "
	quotePrefix = "> "
)

// IndentBlock extends sel to whole lines, surrounds the lines with blank
// lines and prefixes every non-empty line with prefix repeated count times.
// It returns the new text and the range covering the transformed block.
//
// The block starts at the line feed preceding sel.Start (or at 0) and ends
// at the line feed following sel.End (or at the end of the text); a line
// feed closing the selection is not counted as part of it.
func IndentBlock(text string, sel Range, prefix string, count int) (string, Range) {
	runes := []rune(text)
	sel = sel.Clamp(len(runes))

	start := lastIndex(runes, '\n', sel.Start)
	if start < 0 {
		start = 0
	}

	end := sel.End
	if end > 0 && runes[end-1] == '\n' {
		end--
	}
	end = index(runes, '\n', end)
	if end < 0 {
		end = len(runes)
	}
	if end < start {
		end = start
	}

	block := "\n" + string(runes[start:end]) + "\n\n"
	block = prefixLines(block, strings.Repeat(prefix, max(count, 0)))

	out := string(runes[:start]) + block + string(runes[end:])
	return out, Range{Start: start, End: start + runeLen(block)}
}

func prefixLines(s, prefix string) string {
	if prefix == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// lastIndex returns the position of the last r at or before from, or -1.
func lastIndex(runes []rune, r rune, from int) int {
	for i := min(from, len(runes)-1); i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// index returns the position of the first r at or after from, or -1.
func index(runes []rune, r rune, from int) int {
	for i := max(from, 0); i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
