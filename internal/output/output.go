package output

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/gubarz/markedit/internal/config"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// systemClipboard implements Clipboard using the platform clipboard
type systemClipboard struct{}

// Copy copies text to the system clipboard
func (systemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Paste reads text from the system clipboard
func (systemClipboard) Paste() (string, error) {
	return clipboard.ReadAll()
}

// SystemClipboard returns the platform clipboard, or nil when the platform
// has no clipboard tool available
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}

// ============================================================================
// Writer
// ============================================================================

// Mode represents how the finished document is handed back
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
	ModeExec  Mode = "exec"
	ModeNone  Mode = "none"
)

// ParseMode validates an output mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModePrint, ModeCopy, ModeExec, ModeNone:
		return m, nil
	case "":
		return ModePrint, nil
	default:
		return "", fmt.Errorf("unsupported output mode: %s (supported: print, copy, exec, none)", s)
	}
}

// Writer hands the edited document to stdout, the clipboard or a command
type Writer struct {
	out       io.Writer
	clipboard Clipboard
	shell     string
	command   string
}

// NewWriter creates a writer using the configured shell and exec command
func NewWriter() *Writer {
	return &Writer{
		out:       os.Stdout,
		clipboard: SystemClipboard(),
		shell:     config.GetShell(),
		command:   config.GetExecCommand(),
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (w *Writer) WithClipboard(c Clipboard) *Writer {
	w.clipboard = c
	return w
}

// WithOutput sets where printed documents go
func (w *Writer) WithOutput(out io.Writer) *Writer {
	w.out = out
	return w
}

// WithCommand sets the command documents are piped to in exec mode
func (w *Writer) WithCommand(shell, command string) *Writer {
	w.shell = shell
	w.command = command
	return w
}

// Clipboard returns the clipboard in use, nil when none is available
func (w *Writer) Clipboard() Clipboard {
	return w.clipboard
}

// Write handles the document based on the configured mode
func (w *Writer) Write(text string) error {
	mode, err := ParseMode(config.GetOutput())
	if err != nil {
		return err
	}
	return w.WriteWithMode(text, mode)
}

// WriteWithMode handles the document with an explicit mode
func (w *Writer) WriteWithMode(text string, mode Mode) error {
	switch mode {
	case ModeNone:
		return nil
	case ModeExec:
		return w.pipe(text)
	case ModeCopy:
		if w.clipboard != nil {
			return w.clipboard.Copy(text)
		}
		// No clipboard available, fall back to printing
		fallthrough
	default:
		// Printed as is so piping a document through stays byte for byte
		_, err := io.WriteString(w.out, text)
		return err
	}
}

// pipe runs the exec command with the document on stdin
func (w *Writer) pipe(text string) error {
	if strings.TrimSpace(w.command) == "" {
		return fmt.Errorf("output mode exec needs exec_command to be configured")
	}
	cmd := exec.Command(w.shell, "-c", w.command)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("exec %q: %w", w.command, err)
	}
	return nil
}
