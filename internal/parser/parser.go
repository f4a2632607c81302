package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gubarz/markedit/internal/buffer"
)

// Document is Markdown source loaded for editing
type Document struct {
	Path       string            // Source path, "-" for stdin, empty for a new document
	Text       string            // Content as read
	LineEnding buffer.LineEnding // Dominant line ending of Text
}

// Reference represents a reference definition such as "  [1]: http://x"
type Reference struct {
	Label string // Text between the brackets
	URL   string // Destination
	Line  int    // 0-based line of the definition
	Uses  int    // Number of [text][label] usages in the document
}

var (
	// Definitions may be indented by up to three spaces
	definitionRegex = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:[ \t]*(\S+)`)
	// Full reference usages: [text][label] or ![alt][label]
	usageRegex = regexp.MustCompile(`\]\[([^\]]+)\]`)
)

// LoadDocument reads path into a Document. An empty path yields an empty
// document, "-" reads standard input.
func LoadDocument(path string) (*Document, error) {
	switch path {
	case "":
		return &Document{}, nil
	case "-":
		return ReadDocument(os.Stdin, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Path: path}, nil
		}
		return nil, err
	}
	defer file.Close()

	return ReadDocument(file, path)
}

// ReadDocument reads a Document from r
func ReadDocument(r io.Reader, path string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", displayName(path), err)
	}
	text := string(data)
	return &Document{
		Path:       path,
		Text:       text,
		LineEnding: buffer.DetectLineEnding(text),
	}, nil
}

// Name returns a short name for status lines
func (d *Document) Name() string {
	return displayName(d.Path)
}

func displayName(path string) string {
	switch path {
	case "":
		return "[new]"
	case "-":
		return "[stdin]"
	}
	return path
}

// ParseReferences scans text for reference definitions and counts how often
// each label is used. Definitions are returned in document order.
func ParseReferences(text string) []Reference {
	var refs []Reference
	uses := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		content := strings.TrimRight(scanner.Text(), "\r")
		if m := definitionRegex.FindStringSubmatch(content); m != nil {
			refs = append(refs, Reference{
				Label: m[1],
				URL:   m[2],
				Line:  line,
			})
		} else {
			for _, u := range usageRegex.FindAllStringSubmatch(content, -1) {
				uses[strings.ToLower(u[1])]++
			}
		}
		line++
	}

	for i := range refs {
		refs[i].Uses = uses[strings.ToLower(refs[i].Label)]
	}
	return refs
}

// SortReferences orders references numerically where labels are numbers,
// then alphabetically
func SortReferences(refs []Reference) {
	sort.SliceStable(refs, func(i, j int) bool {
		a, errA := strconv.Atoi(refs[i].Label)
		b, errB := strconv.Atoi(refs[j].Label)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return refs[i].Label < refs[j].Label
	})
}
