// Package prompt provides Prompter implementations for the scheduler:
// an interactive terminal prompter built on huh forms, and a scripted
// prompter for tests and non-interactive callers.
package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Terminal prompts on the controlling terminal using huh forms.
// Dismissing a form (Esc / Ctrl-C) is reported as ok=false rather than
// an error: cancellation is an expected outcome, not a failure.
type Terminal struct{}

// NewTerminal creates a terminal prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Select implements schedule.Prompter.
func (p *Terminal) Select(title string, options []string) (string, bool, error) {
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, true, nil
}

// SelectMany implements schedule.Prompter.
func (p *Terminal) SelectMany(title string, options []string) ([]string, bool, error) {
	var choices []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(&choices),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return choices, true, nil
}
