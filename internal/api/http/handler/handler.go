// Package handler contains the HTTP controllers.
//
// A controller is a named group of routes. Each route handler returns an
// error instead of writing failures itself; the router maps returned errors
// to responses in one place.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Func handles one request.
type Func func(c *gin.Context) error

// Route declares one endpoint of a controller. It is served at
// /{controller}/{route} for Method.
type Route struct {
	Name    string
	Method  string
	Handler Func
}

// Controller is a named grouping of routes for one resource.
type Controller interface {
	Name() string
	Routes() []Route
}

const (
	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request entity too large"
	msgInternal        = "Internal server error"
	msgSomethingFailed = "Something went wrong"
)

// bind decodes the request body into obj according to the Content-Type
// (JSON, urlencoded or multipart form).
func bind(c *gin.Context, obj any) error {
	return c.ShouldBind(obj)
}

// missingFields reports whether a bind error means required fields were
// absent, as opposed to a malformed body.
func missingFields(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, io.EOF)
}

// bodyError converts a bind error that is not about missing fields.
func bodyError(err error) *Error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewError(http.StatusRequestEntityTooLarge, msgBodyTooLarge, err)
	}
	return NewError(http.StatusBadRequest, msgInvalidBody, err)
}

// InternalServerError is the body of a 500 response for an unexpected error.
// Details are exposed only in development; stack may be nil.
func InternalServerError(err error, development bool, stack []byte) gin.H {
	if !development {
		return gin.H{
			"error":   msgInternal,
			"message": msgSomethingFailed,
		}
	}

	body := gin.H{
		"error":   msgInternal,
		"message": err.Error(),
	}
	if stack != nil {
		body["stack"] = string(stack)
	}
	return body
}
