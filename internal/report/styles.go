package report

import "github.com/charmbracelet/lipgloss"

// Color palette. ANSI 256 codes, single accent per outcome.
const (
	colorGreen  = "42"  // pass markers
	colorRed    = "196" // fail markers
	colorYellow = "220" // warnings
	colorWhite  = "255" // section headers
	colorGray   = "245" // secondary text
)

// Styles holds the transcript styles.
type Styles struct {
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Warn   lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns colored styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Fail:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// NoColorStyles returns unstyled components for pipes and CI.
func NoColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Pass:   lipgloss.NewStyle(),
		Fail:   lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}
