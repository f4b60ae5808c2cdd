package ecode

import "net/http"

// Business codes
const (
	OK = 0

	NoLogin = -101 // missing or rejected credential

	RequestErr       = -400
	AccessDenied     = -403
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504

	DanglingReference = -1001 // application references a job that does not exist
)

var (
	texts = map[int]string{
		OK:                 "ok",
		NoLogin:            "unauthorized access",
		RequestErr:         "invalid request",
		AccessDenied:       "forbidden access",
		NothingFound:       "resource not found",
		MethodNotAllowed:   "method not allowed",
		Conflict:           "resource conflict",
		ServerErr:          "internal server error",
		ServiceUnavailable: "service unavailable",
		Deadline:           "deadline exceeded",
		DanglingReference:  "referenced job does not exist",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		NoLogin:            http.StatusUnauthorized,
		RequestErr:         http.StatusBadRequest,
		AccessDenied:       http.StatusForbidden,
		NothingFound:       http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
		DanglingReference:  http.StatusConflict,
	}
)

// Text returns the default message of a code
func Text(code int) string {
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status
func ToHTTPStatus(code int) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
