package output

import "github.com/charmbracelet/lipgloss"

// Color palette — named constants for all ANSI 256 colors used in the CLIs.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: manifest paths, dependency names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "pinned" and "ok" statuses.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for skipped entries and unknown actual versions.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed entries and violated constraints.
	ColorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (manifest paths, dependency names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (unchanged entries, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Entry status constants.
const (
	StatusPinned    = "pinned"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
	StatusOK        = "ok"
	StatusViolated  = "violated"
	StatusUnknown   = "unknown"
)

// StatusStyle returns the lipgloss style for a given entry status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusPinned, StatusOK:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusUnknown:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed, StatusViolated:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}
