package notes

import (
	"context"

	"github.com/aki/mknote/internal/filemanager"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = filemanager.ErrCancelled

// Prompter asks the user for input.
type Prompter interface {
	// Input asks for a line of text, offering def
	Input(ctx context.Context, prompt, def string) (string, error)
	// Confirm asks a yes/no question
	Confirm(ctx context.Context, msg string) (bool, error)
}

// AlwaysYes answers every confirmation with yes and every input with its
// default. Used by non-interactive hosts.
type AlwaysYes struct{}

// Input implements Prompter.
func (AlwaysYes) Input(_ context.Context, _, def string) (string, error) {
	if def == "" {
		return "", ErrCancelled
	}
	return def, nil
}

// Confirm implements Prompter.
func (AlwaysYes) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

// PromptName asks p for a name and validates it.
func (e *Explorer) PromptName(ctx context.Context, p Prompter, prompt, def string) (string, error) {
	name, err := p.Input(ctx, prompt, def)
	if err != nil {
		return "", err
	}
	if err := e.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}
