package calendar

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrModelFailure   = errors.New("model call failed")
	ErrParseFailure   = errors.New("model output could not be parsed")
	ErrNotFound       = errors.New("event not found")
	ErrStorageFailure = errors.New("storage operation failed")
)
