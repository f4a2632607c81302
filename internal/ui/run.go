package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/markedit/internal/output"
	"github.com/gubarz/markedit/internal/parser"
)

// ============================================================================
// TTY Handling
// ============================================================================

// getTTY returns the input/output to use for the TUI. When stdout is
// captured or the document came in on stdin, /dev/tty is opened instead.
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()
	in, out = os.Stdin, os.Stdout

	// If stdout is not a terminal (e.g., piped or captured by $()), draw on /dev/tty
	if !isTerminal(os.Stdout) {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			out = tty
			closers = append(closers, func() { tty.Close() })
		}
		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))
	}

	// Keys must come from the terminal even when the document was piped in
	if !isTerminal(os.Stdin) {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0); err == nil {
			in = tty
			closers = append(closers, func() { tty.Close() })
		}
	}

	return in, out, func() {
		for _, c := range closers {
			c()
		}
	}
}

// isTerminal reports whether f is a character device
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	return err == nil && fileInfo.Mode()&os.ModeCharDevice != 0
}

// Run launches the editor on doc with cb backing the copy and paste keys
// (nil disables them). It returns the edited text in the document's line
// ending; ok is false when the user discarded the edits.
func Run(doc *parser.Document, cb output.Clipboard) (text string, ok bool, err error) {
	m, err := newMainModel(doc, loadSettings(), cb)
	if err != nil {
		return "", false, err
	}

	ttyIn, ttyOut, cleanup := getTTY()
	RefreshStyles() // Refresh after getTTY sets up the renderer
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(ttyOut),
		tea.WithInput(ttyIn),
	)
	finalModel, err := p.Run()
	cleanup()

	if err != nil {
		return "", false, err
	}

	result := finalModel.(mainModel)
	if result.aborted {
		return "", false, nil
	}
	return result.host.Text(), true, nil
}
