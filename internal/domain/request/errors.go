package request

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrAlreadyDecided  = errors.New("request has already been decided")
	ErrFutureExcuse    = errors.New("excuse date cannot be in the future")
	ErrInvalidType     = errors.New("invalid request type")
	ErrNotRequestOwner = errors.New("request belongs to another user")
)
