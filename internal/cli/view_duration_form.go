package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tomato/internal/cli/formatter"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// durationFields holds the raw form input.
type durationFields struct {
	minutes string
	seconds string
}

// durationEdit is an open "Edit … Timer" form.
type durationEdit struct {
	phase  domain.Phase
	form   *huh.Form
	fields *durationFields
}

func newDurationEdit(phase domain.Phase, current domain.PhaseConfig, styles formatter.Styles) *durationEdit {
	fields := &durationFields{
		minutes: strconv.Itoa(current.Minutes),
		seconds: strconv.Itoa(current.Seconds),
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes").
				Description(fmt.Sprintf("0-%d", domain.MaxMinutes)).
				Value(&fields.minutes).
				Validate(rangeValidator("minutes", domain.MaxMinutes)),
			huh.NewInput().
				Title("Seconds").
				Description(fmt.Sprintf("0-%d", domain.MaxSeconds)).
				Value(&fields.seconds).
				Validate(rangeValidator("seconds", domain.MaxSeconds)),
		).Title(formatter.EditTitle(phase)),
	).WithTheme(tomatoHuhTheme(styles)).WithShowHelp(false)

	return &durationEdit{phase: phase, form: form, fields: fields}
}

func rangeValidator(name string, limit int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a whole number", name)
		}
		if n < 0 || n > limit {
			return fmt.Errorf("%s must be between 0 and %d", name, limit)
		}
		return nil
	}
}

// applyDurationEdit parses the fields and hands them to the controller,
// which rejects out-of-range or zero-length input without side effects.
func applyDurationEdit(s *session, phase domain.Phase, f *durationFields) error {
	minutes, err := strconv.Atoi(strings.TrimSpace(f.minutes))
	if err != nil {
		return fmt.Errorf("minutes %q: %w", f.minutes, domain.ErrInvalidDuration)
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(f.seconds))
	if err != nil {
		return fmt.Errorf("seconds %q: %w", f.seconds, domain.ErrInvalidDuration)
	}
	return s.setDuration(phase, minutes, seconds)
}

// tomatoHuhTheme tints the huh base theme with the active palette.
func tomatoHuhTheme(s formatter.Styles) *huh.Theme {
	p := s.Palette
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(p.Header).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(p.Fg).Background(p.Header).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(p.Dim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(p.Header)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.Header)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(p.Fg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(p.Dim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(p.Dim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(p.Work)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(p.Work)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.Dim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(p.Dim)

	return t
}
