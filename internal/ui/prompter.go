// file: internal/ui/prompter.go
// version: 1.0.0
// guid: 0f2b4d6e-8a0c-4f2b-9d6e-8a0c2f4b6d8e

package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned by Choose when the user cancels the menu.
var ErrAborted = huh.ErrUserAborted

// Prompter collects input for the shell. Ask and PickFile treat a cancelled
// prompt as an empty answer; Choose reports it as ErrAborted.
type Prompter interface {
	Ask(title, description string) (string, error)
	Choose(title string, options []string) (string, error)
	PickFile(title string, allowed []string) (string, error)
}

// HuhPrompter prompts on the terminal with charmbracelet/huh.
type HuhPrompter struct {
	Theme *huh.Theme
}

// NewHuhPrompter returns a prompter using the base16 theme.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{Theme: huh.ThemeBase16()}
}

// Ask shows a single-line input.
func (p *HuhPrompter) Ask(title, description string) (string, error) {
	var value string
	input := huh.NewInput().Title(title).Value(&value)
	if description != "" {
		input = input.Description(description)
	}
	if err := p.run(input); err != nil {
		return "", ignoreAbort(err)
	}
	return value, nil
}

// Choose shows a select list and returns the picked option.
func (p *HuhPrompter) Choose(title string, options []string) (string, error) {
	var choice string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&choice)
	if err := p.run(sel); err != nil {
		return "", err
	}
	return choice, nil
}

// PickFile shows a file picker limited to the allowed extensions.
func (p *HuhPrompter) PickFile(title string, allowed []string) (string, error) {
	var path string
	picker := huh.NewFilePicker().
		Title(title).
		AllowedTypes(allowed).
		Picking(true).
		Value(&path)
	if err := p.run(picker); err != nil {
		return "", ignoreAbort(err)
	}
	return path, nil
}

func (p *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field))
	if p.Theme != nil {
		form = form.WithTheme(p.Theme)
	}
	return form.Run()
}

func ignoreAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
