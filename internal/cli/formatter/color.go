package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette is one theme's colours.
type Palette struct {
	Work   lipgloss.Color
	Break  lipgloss.Color
	Warn   lipgloss.Color
	Dim    lipgloss.Color
	Fg     lipgloss.Color
	Header lipgloss.Color
}

// Gruvbox dark and light.
var (
	DarkPalette = Palette{
		Work:   lipgloss.Color("#fb4934"),
		Break:  lipgloss.Color("#8ec07c"),
		Warn:   lipgloss.Color("#fabd2f"),
		Dim:    lipgloss.Color("#928374"),
		Fg:     lipgloss.Color("#ebdbb2"),
		Header: lipgloss.Color("#fe8019"),
	}
	LightPalette = Palette{
		Work:   lipgloss.Color("#9d0006"),
		Break:  lipgloss.Color("#427b58"),
		Warn:   lipgloss.Color("#b57614"),
		Dim:    lipgloss.Color("#7c6f64"),
		Fg:     lipgloss.Color("#3c3836"),
		Header: lipgloss.Color("#af3a03"),
	}
)

// PaletteFor maps a theme onto its palette.
func PaletteFor(t domain.Theme) Palette {
	if t == domain.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// Styles are the lipgloss styles derived from a Palette.
type Styles struct {
	Palette Palette
	Work    lipgloss.Style
	Break   lipgloss.Style
	Warn    lipgloss.Style
	Dim     lipgloss.Style
	Fg      lipgloss.Style
	Header  lipgloss.Style
	Bold    lipgloss.Style
}

func NewStyles(t domain.Theme) Styles {
	p := PaletteFor(t)
	return Styles{
		Palette: p,
		Work:    lipgloss.NewStyle().Foreground(p.Work).Bold(true),
		Break:   lipgloss.NewStyle().Foreground(p.Break).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(p.Warn),
		Dim:     lipgloss.NewStyle().Foreground(p.Dim),
		Fg:      lipgloss.NewStyle().Foreground(p.Fg),
		Header:  lipgloss.NewStyle().Foreground(p.Header).Bold(true),
		Bold:    lipgloss.NewStyle().Foreground(p.Fg).Bold(true),
	}
}

// PhaseStyle returns the accent style of phase.
func (s Styles) PhaseStyle(phase domain.Phase) lipgloss.Style {
	if phase == domain.PhaseBreak {
		return s.Break
	}
	return s.Work
}

// PhaseColor returns the accent colour of phase.
func (s Styles) PhaseColor(phase domain.Phase) lipgloss.Color {
	if phase == domain.PhaseBreak {
		return s.Palette.Break
	}
	return s.Palette.Work
}

// HeaderBlock renders an upper-cased title with a rule underneath.
func (s Styles) HeaderBlock(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", s.Header.Render(upper), s.Dim.Render(line))
}

// Plain command output uses the dark styles, matching most terminals.
var defaultStyles = NewStyles(domain.ThemeDark)

// Header renders a section header for command output.
func Header(text string) string { return defaultStyles.HeaderBlock(text) }

// Dim renders text in the muted colour.
func Dim(text string) string { return defaultStyles.Dim.Render(text) }

// Bold renders text in bold.
func Bold(text string) string { return defaultStyles.Bold.Render(text) }
