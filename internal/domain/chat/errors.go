package chat

import "errors"

var (
	ErrEmptyMessage = errors.New("message body is empty")
	ErrSelfMessage  = errors.New("cannot send a message to yourself")
)
