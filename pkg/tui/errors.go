package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the form still fails validation after the
	// configured number of attempts.
	ErrInvalid = errors.New("tui: form is still invalid")
	// ErrNoPrompt is returned when a failing field has no prompt to re-ask it.
	ErrNoPrompt = errors.New("tui: no prompt for field")
)
