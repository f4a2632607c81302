package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/markedit/internal/buffer"
)

func TestParseReferences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Reference
	}{
		{
			name: "appended definitions",
			text: "[title][1] and ![logo][2]\n\n  [1]: http://x\n\n  [2]: http://y/logo.png",
			expected: []Reference{
				{Label: "1", URL: "http://x", Line: 2, Uses: 1},
				{Label: "2", URL: "http://y/logo.png", Line: 4, Uses: 1},
			},
		},
		{
			name: "unused definition",
			text: "plain\n[docs]: https://example.com",
			expected: []Reference{
				{Label: "docs", URL: "https://example.com", Line: 1, Uses: 0},
			},
		},
		{
			name: "crlf and case-insensitive labels",
			text: "[a][Docs] [b][docs]\r\n[DOCS]: http://d\r\n",
			expected: []Reference{
				{Label: "DOCS", URL: "http://d", Line: 1, Uses: 2},
			},
		},
		{
			name:     "code block indentation is not a definition",
			text:     "    [1]: http://not",
			expected: nil,
		},
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseReferences(tt.text))
		})
	}
}

func TestSortReferences(t *testing.T) {
	refs := []Reference{{Label: "b"}, {Label: "10"}, {Label: "a"}, {Label: "2"}}
	SortReferences(refs)

	var labels []string
	for _, r := range refs {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"2", "10", "a", "b"}, labels)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\r\n\r\ntext\r\n"), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\r\n\r\ntext\r\n", doc.Text)
	assert.Equal(t, buffer.CRLF, doc.LineEnding)
	assert.Equal(t, path, doc.Name())
}

func TestLoadDocumentMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")
	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Text)
	assert.Equal(t, path, doc.Path)
}

func TestLoadDocumentNoPath(t *testing.T) {
	doc, err := LoadDocument("")
	require.NoError(t, err)
	assert.Equal(t, "[new]", doc.Name())
	assert.Equal(t, buffer.LF, doc.LineEnding)
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader("a\nb"), "-")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", doc.Text)
	assert.Equal(t, "[stdin]", doc.Name())
}
