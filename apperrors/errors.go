package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a failure so the request boundary can pick a status code.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindInvalidState
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidState(msg string) *Error   { return &Error{Kind: KindInvalidState, Message: msg} }

// Persistence wraps a storage fault. The caller-facing message stays generic
// so driver internals never reach the client.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "Server error", Err: err}
}

// StatusCode maps a Kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the endpoint's JSON {message} body. Unclassified
// errors are reported as persistence faults.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Persistence(err)
	}
	c.JSON(appErr.Kind.StatusCode(), gin.H{"message": appErr.Message})
}
