package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func (s Styles) RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Palette.Dim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(s.Header.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RenderBox uses the command-output styles.
func RenderBox(title string, content string) string {
	return defaultStyles.RenderBox(title, content)
}
