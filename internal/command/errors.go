package command

import "errors"

// Domain-specific errors for command decoding.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMalformedPayload is returned when a wire payload cannot be
	// decoded. The message is dropped; nothing mutates.
	ErrMalformedPayload = errors.New("command: malformed payload")

	// ErrUnknownAction is returned for actions outside the shared
	// vocabulary.
	ErrUnknownAction = errors.New("command: unknown action")
)
