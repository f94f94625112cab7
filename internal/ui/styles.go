package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// This file centralizes the lipgloss styles used for console output.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Gray

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	changedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// SignificantChange is the relative change, in percent, above which a
// compared metric is highlighted.
const SignificantChange = 5.0

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Muted renders secondary information.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Success renders a completion message.
func Success(s string) string {
	return successStyle.Render(s)
}

// Failure renders an error message.
func Failure(s string) string {
	return failureStyle.Render(s)
}

// Header renders a column header line.
func Header(s string) string {
	return headerStyle.Render(s)
}

// Diff highlights s when pct is a significant change in either direction.
// Whether a change is good depends on the metric, so no color implies that.
func Diff(s string, pct float64) string {
	if math.Abs(pct) >= SignificantChange {
		return changedStyle.Render(s)
	}
	return s
}
