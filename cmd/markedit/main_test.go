package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/markedit/internal/buffer"
	"github.com/gubarz/markedit/internal/markup"
	"github.com/gubarz/markedit/internal/parser"
)

// execute runs the root command in a clean config environment
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, c := range []*cobra.Command{rootCmd, applyCmd, tagsCmd} {
		resetFlags(c.Flags())
		resetFlags(c.PersistentFlags())
	}

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores flag values left over from an earlier Execute
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestApplyCommand(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		want      string
		selection string
	}{
		{
			name:  "wrap selection",
			stdin: "hello world",
			args:  []string{"apply", "bold", "--start", "6", "--end", "11"},
			want:  "hello **world**",
		},
		{
			name:  "crlf kept byte for byte",
			stdin: "a\r\nb\r\n",
			args:  []string{"apply", "italic", "--start", "0", "--end", "1"},
			want:  "*a*\r\nb\r\n",
		},
		{
			name:  "link reference",
			stdin: "docs",
			args:  []string{"apply", "link", "--start", "0", "--end", "4", "--url", "http://d"},
			want:  "[docs][1]\n\n  [1]: http://d",
		},
		{
			name:      "placeholder selection",
			stdin:     "",
			args:      []string{"apply", "bold", "--show-selection"},
			want:      "**Your bold text**",
			selection: "2 16\n",
		},
		{
			name:      "selection after wrap",
			stdin:     "hello world",
			args:      []string{"apply", "bold", "--start", "6", "--end", "11", "--show-selection"},
			want:      "hello **world**",
			selection: "6 15\n",
		},
		{
			name:  "compat wraps first match",
			stdin: "world hello world",
			args:  []string{"apply", "bold", "--start", "12", "--end", "17", "--compat"},
			want:  "**world** hello world",
		},
		{
			name:  "offsets wrap selected occurrence",
			stdin: "world hello world",
			args:  []string{"apply", "bold", "--start", "12", "--end", "17"},
			want:  "world hello **world**",
		},
		{
			name:  "crlf output flag",
			stdin: "a\nb",
			args:  []string{"apply", "bold", "--start", "3", "--end", "4", "--crlf"},
			want:  "a\r\n**b**",
		},
		{
			name:  "output none",
			stdin: "x",
			args:  []string{"apply", "bold", "--start", "0", "--end", "1", "-o", "none"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			assert.Equal(t, tt.selection, stderr)
		})
	}
}

func TestApplyCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"link without url", []string{"apply", "link", "--start", "0", "--end", "4"}, "link needs --url"},
		{"image without url", []string{"apply", "image"}, "image needs --url"},
		{"unknown tag", []string{"apply", "strike"}, "unknown tag"},
		{"bad output mode", []string{"apply", "bold", "-o", "fax"}, "unsupported output mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "docs", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, stdout)
		})
	}
}

func TestTagsCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "tags")
	require.NoError(t, err)

	for _, tag := range markup.Tags() {
		assert.Contains(t, stdout, string(tag))
	}
	assert.Contains(t, stdout, "alt+b")
	assert.Contains(t, stdout, `"**"`)
	assert.Contains(t, stdout, `"][N]"`)
}

func TestTagsCommandCtrlModifier(t *testing.T) {
	t.Setenv("MARKEDIT_MODIFIER", "ctrl")

	stdout, _, err := execute(t, "", "tags")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ctrl+t")
	assert.NotContains(t, stdout, "ctrl+i")
}

func TestNewHost(t *testing.T) {
	t.Cleanup(viper.Reset)

	doc := &parser.Document{Text: "a\r\nb"}
	for _, api := range []string{"", "offset", "range"} {
		viper.Set("selection_api", api)
		host, err := newHost(doc)
		require.NoError(t, err, api)

		host.SetSelection(markup.Range{Start: 0, End: 4})
		out := markup.New(host).ApplyFormat(markup.Bold, nil)
		assert.Equal(t, markup.Applied, out, api)
		assert.Equal(t, "**a\r\nb**", host.Text(), api)
	}

	viper.Set("selection_api", "offset")
	viper.Set("line_ending", "lf")
	host, err := newHost(doc)
	require.NoError(t, err)
	assert.Equal(t, buffer.LF, host.(*buffer.Area).Ending())

	viper.Set("selection_api", "dom")
	_, err = newHost(doc)
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
