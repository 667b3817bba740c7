package entities

import "errors"

// Domain errors
var (
	// Call errors
	ErrCallNotFound       = errors.New("call not found")
	ErrCallAlreadyExists  = errors.New("call already exists")
	ErrTranscriptNotReady = errors.New("transcript not available")
	ErrMissingCallID      = errors.New("missing call id")

	// Prompt errors
	ErrPromptNotFound = errors.New("prompt not found")
)
