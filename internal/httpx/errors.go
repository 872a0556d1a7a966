package httpx

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the upstream answers 401.
var ErrUnauthorized = errors.New("unauthorized: check the API key")

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// RequestError wraps a failure to get any response at all (DNS, dial,
// timeout, connection reset).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "request failed: " + e.Err.Error() }
func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError means the response status was fine but the body did not match
// the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Error kinds reported by Classify.
const (
	KindAuth     = "auth"
	KindAPI      = "api"
	KindRequest  = "request"
	KindDecode   = "decode"
	KindCanceled = "canceled"
	KindUnknown  = "unknown"
)

// Classify maps err onto one of the Kind constants. It returns "" for nil.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	var (
		apiErr *APIError
		reqErr *RequestError
		decErr *DecodeError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindAuth
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &decErr):
		return KindDecode
	case errors.As(err, &reqErr):
		return KindRequest
	default:
		return KindUnknown
	}
}
