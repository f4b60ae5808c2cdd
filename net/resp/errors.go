package resp

import (
	"errors"
	"net/http"

	"github.com/careercode/jobportal/ecode"
)

// NotFound 404
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// BadRequest 400
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// UnAuthorized 401
func UnAuthorized(message string, data ...any) *Exception {
	return newResponse(http.StatusUnauthorized, ecode.NoLogin, message, data...)
}

// Forbidden 403
func Forbidden(message string, data ...any) *Exception {
	return newResponse(http.StatusForbidden, ecode.AccessDenied, message, data...)
}

// Conflict 409
func Conflict(message string, data ...any) *Exception {
	return newResponse(http.StatusConflict, ecode.Conflict, message, data...)
}

// DanglingReference 409 with its own business code
func DanglingReference(message string, data ...any) *Exception {
	return newResponse(http.StatusConflict, ecode.DanglingReference, message, data...)
}

// InternalServer 500
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// FromError translates any error into an Exception. Errors without a code
// become a generic 500 so internal details never reach the client.
func FromError(err error) *Exception {
	if err == nil {
		return nil
	}
	var ex *Exception
	if errors.As(err, &ex) {
		return ex
	}
	var e *ecode.Error
	if !errors.As(err, &e) {
		return InternalServer(ecode.Text(ecode.ServerErr))
	}
	if e.Code == ecode.ServerErr {
		return InternalServer(ecode.Text(ecode.ServerErr))
	}
	var fields any
	if len(e.Fields) > 0 {
		fields = e.Fields
	}
	switch e.Code {
	case ecode.NothingFound:
		return NotFound(e.Message, fields)
	case ecode.Conflict:
		return Conflict(e.Message, fields)
	case ecode.DanglingReference:
		return DanglingReference(e.Message, fields)
	}
	return newResponse(ecode.ToHTTPStatus(e.Code), e.Code, e.Message, fields)
}
