package nutrition

import "errors"

var (
	// ErrIncompleteProfile signals that a required biometric or goal field is
	// missing. Callers must treat it as "cannot estimate", never as zero.
	ErrIncompleteProfile = errors.New("incomplete profile: required field missing")

	// ErrOutOfRange signals a converted height or weight outside plausible
	// bounds. The write that produced the value must be blocked.
	ErrOutOfRange = errors.New("value out of plausible range")

	// ErrInvalidQuantity signals a non-positive or non-finite quantity.
	// The rescale must not be applied and prior state must be preserved.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
