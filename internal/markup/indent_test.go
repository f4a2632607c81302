package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentBlock(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		sel    Range
		prefix string
		count  int
		want   string
		block  Range
	}{
		{
			name: "single line", text: "line1\nline2", sel: Range{0, 5},
			prefix: "> ", count: 1,
			want:  "\n> line1\n\n\nline2",
			block: Range{0, 10},
		},
		{
			name: "middle line keeps neighbours", text: "a\nb\nc", sel: Range{2, 3},
			prefix: "    ", count: 1,
			want:  "a\n\n    b\n\n\nc",
			block: Range{1, 10},
		},
		{
			name: "trailing line feed dropped", text: "x\ny\n", sel: Range{0, 2},
			prefix: "> ", count: 1,
			want:  "\n> x\n\n\ny\n",
			block: Range{0, 6},
		},
		{
			name: "sub-line selection expands", text: "hello world", sel: Range{3, 4},
			prefix: " ", count: 4,
			want:  "\n    hello world\n\n",
			block: Range{0, 18},
		},
		{
			name: "blank lines stay bare", text: "a\n\nb", sel: Range{0, 4},
			prefix: "> ", count: 1,
			want:  "\n> a\n\n> b\n\n",
			block: Range{0, 11},
		},
		{
			name: "zero count", text: "a", sel: Range{0, 1},
			prefix: "> ", count: 0,
			want:  "\na\n\n",
			block: Range{0, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, block := IndentBlock(tt.text, tt.sel, tt.prefix, tt.count)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.block, block)
		})
	}
}

func TestIndentBlockCursorAtEnd(t *testing.T) {
	got, block := IndentBlock("ab\ncd", Range{5, 5}, "> ", 1)
	assert.Equal(t, "ab\n\n> cd\n\n", got)
	assert.Equal(t, Range{2, 10}, block)
}
