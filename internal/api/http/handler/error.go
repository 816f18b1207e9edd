package handler

import "net/http"

// Error is a handler failure. Status and Message are sent to the client,
// Err is only logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

func NewError(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func badRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message, nil)
}

func notFound(message string) *Error {
	return NewError(http.StatusNotFound, message, nil)
}

func internal(message string, err error) *Error {
	return NewError(http.StatusInternalServerError, message, err)
}
