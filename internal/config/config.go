package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output            string            `mapstructure:"output"`
	Shell             string            `mapstructure:"shell"`
	ExecCommand       string            `mapstructure:"exec_command"`
	LineEnding        string            `mapstructure:"line_ending"`
	SelectionAPI      string            `mapstructure:"selection_api"`
	FirstMatchReplace bool              `mapstructure:"first_match_replace"`
	Modifier          string            `mapstructure:"modifier"`
	Keys              map[string]string `mapstructure:"keys"`
	Toolbar           []string          `mapstructure:"toolbar"`
	ColorToolbar      string            `mapstructure:"color_toolbar"`
	ColorActive       string            `mapstructure:"color_active"`
	ColorSelection    string            `mapstructure:"color_selection"`
	ColorDim          string            `mapstructure:"color_dim"`
	ColorBorder       string            `mapstructure:"color_border"`
	ColorReference    string            `mapstructure:"color_reference"`
	LogFile           string            `mapstructure:"log_file"`
}

// C is the global config instance
var C Config

// DefaultKeys maps each tag to its accelerator character.
var DefaultKeys = map[string]string{
	"bold":   "b",
	"italic": "i",
	"link":   "l",
	"image":  "g",
	"quote":  "q",
	"pre":    "p",
	"code":   "k",
}

// DefaultCtrlKeys replaces the defaults that collide with ctrl chords the
// terminal or the editor already uses (ctrl+i is tab, ctrl+q quits).
var DefaultCtrlKeys = map[string]string{
	"bold":   "b",
	"italic": "t",
	"link":   "l",
	"image":  "g",
	"quote":  "o",
	"pre":    "p",
	"code":   "k",
}

// DefaultKeysFor returns the default accelerators for modifier
func DefaultKeysFor(modifier string) map[string]string {
	if strings.EqualFold(modifier, "ctrl") {
		return DefaultCtrlKeys
	}
	return DefaultKeys
}

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("output", "print")
	viper.SetDefault("shell", getDefaultShell())
	viper.SetDefault("exec_command", "")
	viper.SetDefault("line_ending", "auto")
	viper.SetDefault("selection_api", "offset") // offset or range
	viper.SetDefault("first_match_replace", false)
	viper.SetDefault("modifier", "alt")
	viper.SetDefault("toolbar", []string{})   // empty: every tag
	viper.SetDefault("color_toolbar", "37")   // White
	viper.SetDefault("color_active", "212")   // Pink
	viper.SetDefault("color_selection", "24") // Blue background
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_reference", "36") // Cyan
	viper.SetDefault("log_file", "")

	viper.SetConfigName("markedit")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "markedit"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MARKEDIT")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetOutput returns the exit action: print, copy, exec or none
func GetOutput() string {
	return viper.GetString("output")
}

// GetShell returns the shell used for exec output
func GetShell() string {
	return viper.GetString("shell")
}

// GetExecCommand returns the command the document is piped to in exec mode
func GetExecCommand() string {
	return viper.GetString("exec_command")
}

// GetLineEnding returns the configured line ending name
func GetLineEnding() string {
	return viper.GetString("line_ending")
}

// GetSelectionAPI returns how the text area places selections
func GetSelectionAPI() string {
	return viper.GetString("selection_api")
}

// GetFirstMatchReplace returns whether wraps rewrite the first textual match
func GetFirstMatchReplace() bool {
	return viper.GetBool("first_match_replace")
}

// GetModifier returns the shortcut modifier key
func GetModifier() string {
	return strings.ToLower(viper.GetString("modifier"))
}

// GetKeys returns the accelerator character per tag. Tags without a
// configured key get the default for the configured modifier.
func GetKeys() map[string]string {
	defaults := DefaultKeysFor(GetModifier())
	keys := make(map[string]string, len(defaults))
	for tag, k := range defaults {
		keys[tag] = k
	}
	for tag, k := range viper.GetStringMapString("keys") {
		if k != "" {
			keys[strings.ToLower(tag)] = k
		}
	}
	return keys
}

// GetToolbar returns the configured toolbar button order
func GetToolbar() []string {
	return viper.GetStringSlice("toolbar")
}

// GetColorToolbar returns the color of toolbar buttons
func GetColorToolbar() string {
	return viper.GetString("color_toolbar")
}

// GetColorActive returns the color of the focused toolbar button
func GetColorActive() string {
	return viper.GetString("color_active")
}

// GetColorSelection returns the background color of selected text
func GetColorSelection() string {
	return viper.GetString("color_selection")
}

// GetColorDim returns the color of secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns the color of borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorReference returns the color of reference definitions
func GetColorReference() string {
	return viper.GetString("color_reference")
}

// GetLogFile returns the debug log path, empty when logging is off
func GetLogFile() string {
	return expandTilde(viper.GetString("log_file"))
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetLineEnding sets the line ending at runtime
func SetLineEnding(name string) {
	viper.Set("line_ending", name)
	C.LineEnding = name
}

// SetFirstMatchReplace sets the wrap strategy at runtime
func SetFirstMatchReplace(on bool) {
	viper.Set("first_match_replace", on)
	C.FirstMatchReplace = on
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
