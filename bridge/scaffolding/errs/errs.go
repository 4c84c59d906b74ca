// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode represents an error classification the bridge layer knows how to
// translate into an HTTP status.
type ErrCode int

const (
	OK ErrCode = iota
	InvalidArgument
	NotFound
	Internal

	// InternalOnlyLog marks errors whose detail must never reach the
	// client. The errors middleware logs them and responds with a plain
	// Internal Server Error.
	InternalOnlyLog
)

var codeNames = map[ErrCode]string{
	OK:              "ok",
	InvalidArgument: "invalid_argument",
	NotFound:        "not_found",
	Internal:        "internal",
	InternalOnlyLog: "internal",
}

func (c ErrCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web.Encoder interface. Failures always render as a
// single human-readable message under the "error" key.
func (e *Error) Encode() ([]byte, string, error) {
	type errorResponse struct {
		Error string `json:"error"`
	}

	data, err := json.Marshal(errorResponse{Error: e.Message})
	return data, "application/json", err
}

// HTTPStatus implements an interface the web package checks to translate
// the error code into an outward status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
