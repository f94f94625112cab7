package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	inlineCodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blueish
			Background(lipgloss.Color("236"))

	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
)

// RenderMarkdown renders a report for the terminal with glamour. style is a
// glamour standard style name ("dark", "light", "notty"); "" or "auto"
// detects the terminal background. width 0 disables wrapping so tables keep
// their rows on one line.
func RenderMarkdown(text string, width int, style string) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err == nil {
		var out string
		if out, err = r.Render(text); err == nil {
			return out
		}
	}
	return renderPlain(text)
}

// renderPlain only highlights the command lines.
func renderPlain(text string) string {
	return inlineCodeRe.ReplaceAllStringFunc(text, func(s string) string {
		return inlineCodeStyle.Render(strings.Trim(s, "`"))
	})
}
