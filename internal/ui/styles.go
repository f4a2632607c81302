package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/markedit/internal/config"
	"github.com/gubarz/markedit/internal/toolbar"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// Text area styles
	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
	Dim       lipgloss.Style

	// Toolbar styles
	Button       lipgloss.Style
	ActiveButton lipgloss.Style

	// Reference pane styles
	RefLabel  lipgloss.Style
	RefURL    lipgloss.Style
	RefUnused lipgloss.Style

	// Chrome styles
	Title   lipgloss.Style
	Status  lipgloss.Style
	Prompt  lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Text:         lipgloss.NewStyle(),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Cursor:       lipgloss.NewStyle().Reverse(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Button:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7")),
		ActiveButton: lipgloss.NewStyle().Padding(0, 1).Reverse(true).Foreground(lipgloss.Color("212")),
		RefLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		RefURL:       lipgloss.NewStyle(),
		RefUnused:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Title:        lipgloss.NewStyle().Bold(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Divider:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	toolbarColor := parseANSIColor(config.GetColorToolbar())
	activeColor := lipgloss.Color(config.GetColorActive())
	selectionBg := lipgloss.Color(config.GetColorSelection())
	dimColor := lipgloss.Color(config.GetColorDim())
	borderColor := lipgloss.Color(config.GetColorBorder())
	refColor := parseANSIColor(config.GetColorReference())

	// Text area styles
	s.Selection = lipgloss.NewStyle().Background(selectionBg)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)

	// Toolbar styles (same padding so button widths never change)
	s.Button = lipgloss.NewStyle().Padding(0, 1).Foreground(toolbarColor)
	s.ActiveButton = lipgloss.NewStyle().Padding(0, 1).Reverse(true).Foreground(activeColor)

	// Reference pane styles
	s.RefLabel = lipgloss.NewStyle().Foreground(refColor)
	s.RefUnused = lipgloss.NewStyle().Foreground(dimColor).Italic(true)

	// Chrome styles
	s.Status = lipgloss.NewStyle().Foreground(dimColor)
	s.Prompt = lipgloss.NewStyle().Bold(true).Foreground(activeColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
}

// Toolbar returns the styles the toolbar renders with
func (s *StyleManager) Toolbar() toolbar.Styles {
	return toolbar.Styles{
		Button: s.Button,
		Active: s.ActiveButton,
		Gap:    " ",
	}
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
