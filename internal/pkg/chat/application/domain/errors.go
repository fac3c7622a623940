package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrInvalidInput  = errors.New("chat: invalid input")
	ErrNotFound      = errors.New("chat: not found")
	ErrNotMember     = errors.New("chat: acting user is not a member of the conversation")
	ErrAlreadyMember = errors.New("chat: user is already a member")
)
