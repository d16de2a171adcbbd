package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a prompt has no content to send.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
