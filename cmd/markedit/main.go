package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/markedit/internal/buffer"
	"github.com/gubarz/markedit/internal/config"
	"github.com/gubarz/markedit/internal/markup"
	"github.com/gubarz/markedit/internal/output"
	"github.com/gubarz/markedit/internal/parser"
	"github.com/gubarz/markedit/internal/toolbar"
	"github.com/gubarz/markedit/internal/ui"
)

var version = "0.1.0"

var applyCmd = &cobra.Command{
	Use:   "apply <tag>",
	Short: "Apply one format without the editor",
	Long: `Reads a document, applies one toolbar format to the given selection
and writes the result.

Offsets count characters, with CRLF terminators counting as two.

Usage:
  printf 'hello world' | markedit apply bold --start 6 --end 11
  markedit apply link --file notes.md --start 0 --end 4 --url http://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the formats with their markers and shortcuts",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var rootCmd = &cobra.Command{
	Use:   "markedit [file]",
	Short: "Markdown toolbar editor for the terminal",
	Long: `Edit Markdown with a formatting toolbar.

Select text and press a toolbar button or shortcut to make it bold,
italic, a link, an image, a quote, a code block or inline code. Links and
images become numbered references appended to the document.

Use - to read the document from stdin. The result is printed or copied
when the editor closes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(applyCmd, tagsCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy, exec, none")
	rootCmd.PersistentFlags().Bool("print", false, "Print the document (shorthand for -o print)")
	rootCmd.PersistentFlags().Bool("copy", false, "Copy the document (shorthand for -o copy)")
	rootCmd.PersistentFlags().Bool("crlf", false, "Write CRLF line endings")
	rootCmd.PersistentFlags().Bool("compat", false, "Wrap the first occurrence of the selected text instead of the selection itself")

	applyCmd.Flags().StringP("file", "f", "-", "Document to read, - for stdin")
	applyCmd.Flags().Int("start", 0, "Selection start offset")
	applyCmd.Flags().Int("end", 0, "Selection end offset")
	applyCmd.Flags().String("url", "", "URL for link and image formats")
	applyCmd.Flags().Bool("show-selection", false, "Print the resulting selection to stderr")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// applyFlags maps the shorthand flags onto config
func applyFlags(cmd *cobra.Command) {
	if p, _ := cmd.Flags().GetBool("print"); p {
		config.SetOutput("print")
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput("copy")
	} else if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}

	if crlf, _ := cmd.Flags().GetBool("crlf"); crlf {
		config.SetLineEnding("crlf")
	}
	if compat, _ := cmd.Flags().GetBool("compat"); compat {
		config.SetFirstMatchReplace(true)
	}
}

// setupLogging sends the standard logger to log_file, or discards it
func setupLogging() (func(), error) {
	path := config.GetLogFile()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "markedit")
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return func() { f.Close() }, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}
	log.Printf("editing %s (%s)", doc.Name(), doc.LineEnding)

	writer := output.NewWriter().WithOutput(cmd.OutOrStdout())
	text, ok, err := ui.Run(doc, writer.Clipboard())
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("edits discarded")
		return nil
	}
	return writer.Write(text)
}

func runApply(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	tag, err := markup.ParseTag(args[0])
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}

	host, err := newHost(doc)
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	host.SetSelection(markup.Range{Start: start, End: end})

	var opts []markup.Option
	if config.GetFirstMatchReplace() {
		opts = append(opts, markup.WithFirstMatchReplace())
	}
	editor := markup.New(host, opts...)

	url, _ := cmd.Flags().GetString("url")
	out := editor.ApplyFormat(tag, func(message string) (string, bool) {
		log.Printf("%s: using --url %q", message, url)
		return url, url != ""
	})
	log.Printf("apply %s: %s", tag, out)
	if out == markup.Cancelled {
		return fmt.Errorf("%s needs --url", tag)
	}

	if show, _ := cmd.Flags().GetBool("show-selection"); show {
		sel := host.Selection()
		fmt.Fprintf(cmd.ErrOrStderr(), "%d %d\n", sel.Start, sel.End)
	}
	return output.NewWriter().WithOutput(cmd.OutOrStdout()).Write(host.Text())
}

// loadDocument reads path, taking "-" from the command's input
func loadDocument(cmd *cobra.Command, path string) (*parser.Document, error) {
	var doc *parser.Document
	var err error
	if path == "-" {
		doc, err = parser.ReadDocument(cmd.InOrStdin(), path)
	} else {
		doc, err = parser.LoadDocument(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading document: %w", err)
	}
	return doc, nil
}

// newHost builds the text host selected by selection_api
func newHost(doc *parser.Document) (markup.Host, error) {
	ending, err := buffer.ParseLineEnding(config.GetLineEnding(), doc.Text)
	if err != nil {
		return nil, err
	}
	switch api := strings.ToLower(config.GetSelectionAPI()); api {
	case "", "offset":
		return buffer.New(doc.Text, ending), nil
	case "range":
		return buffer.NewRangeArea(doc.Text, ending), nil
	default:
		return nil, fmt.Errorf("unsupported selection_api: %s (supported: offset, range)", api)
	}
}

func runTags(cmd *cobra.Command, args []string) error {
	chords := make(map[markup.Tag]string)
	for name, char := range config.GetKeys() {
		tag, err := markup.ParseTag(name)
		if err != nil {
			return fmt.Errorf("keys: %w", err)
		}
		chords[tag] = char
	}
	shortcuts, err := toolbar.NewShortcuts(config.GetModifier(), chords)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TAG", "START", "END", "PLACEHOLDER", "SHORTCUT")
	for _, tag := range markup.Tags() {
		spec, _ := markup.Spec(tag)
		shortcut := ""
		if b, ok := shortcuts.Binding(tag); ok {
			shortcut = b.Help().Key
		}
		t.Row(string(tag), fmt.Sprintf("%q", spec.Start), fmt.Sprintf("%q", spec.End),
			fmt.Sprintf("%q", spec.Placeholder), shortcut)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
