package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched with errors.Is by GetStatusCode and the error mappings.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict")
	ErrInternal       = errors.New("internal error")
	ErrBadGateway     = errors.New("upstream storage failure")
	ErrServiceUnavail = errors.New("service unavailable")
)

// Response codes.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
	CodeBadGateway         = "BAD_GATEWAY"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

type kind struct {
	code     string
	status   int
	sentinel error
	fallback string
}

var (
	kindNotFound    = kind{CodeNotFound, http.StatusNotFound, ErrNotFound, "resource not found"}
	kindBadRequest  = kind{CodeBadRequest, http.StatusBadRequest, ErrBadRequest, "bad request"}
	kindConflict    = kind{CodeConflict, http.StatusConflict, ErrConflict, "resource conflict"}
	kindInternal    = kind{CodeInternal, http.StatusInternalServerError, nil, "internal error"}
	kindBadGateway  = kind{CodeBadGateway, http.StatusBadGateway, ErrBadGateway, "storage request failed"}
	kindUnavailable = kind{CodeServiceUnavailable, http.StatusServiceUnavailable, ErrServiceUnavail, "service temporarily unavailable"}
)

// statusOrder is the sentinel lookup order used by GetStatusCode.
var statusOrder = []kind{kindNotFound, kindBadRequest, kindConflict, kindBadGateway, kindUnavailable}

// AppError is an error that knows its HTTP status and response code.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Err        error          `json:"-"`
}

func newError(k kind, message string, cause error) *AppError {
	if message == "" {
		message = k.fallback
	}
	if cause == nil {
		cause = k.sentinel
	}
	return &AppError{Code: k.code, Message: message, StatusCode: k.status, Err: cause}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetails attaches details that are sent to the client.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the payload of ErrorResponse.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse drops the wrapped cause and keeps what the client may see.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: e.Code, Message: e.Message, Details: e.Details}}
}

// NotFound reports a missing bucket or object, e.g. NotFound("bucket").
func NotFound(resource string) *AppError {
	return newError(kindNotFound, resource+" not found", nil)
}

// BadRequest reports invalid input.
func BadRequest(message string) *AppError { return newError(kindBadRequest, message, nil) }

// Conflict reports a clash with existing state, such as a taken bucket name.
func Conflict(message string) *AppError { return newError(kindConflict, message, nil) }

// Internal wraps err without exposing it in the response.
func Internal(message string, err error) *AppError {
	return newError(kindInternal, message, err)
}

// BadGateway reports a failed call to the storage endpoint.
func BadGateway(message string, err error) *AppError {
	return newError(kindBadGateway, message, err)
}

// ServiceUnavailable is returned while the storage breaker is open.
func ServiceUnavailable(message string) *AppError {
	return newError(kindUnavailable, message, nil)
}

// GetStatusCode maps err to an HTTP status, defaulting to 500.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	for _, k := range statusOrder {
		if errors.Is(err, k.sentinel) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}
