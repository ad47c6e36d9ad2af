package http

import "fmt"

// Error is the closed set of failures produced while parsing and routing a request.
type Error int

const (
	// BadRequest reports a malformed request head.
	BadRequest Error = iota + 1
	// NotImplemented reports a method other than GET.
	NotImplemented
	// VersionNotSupported reports a protocol version other than HTTP/1.1.
	VersionNotSupported
	// NotFound reports a target with no route.
	NotFound
	// Incomplete reports that the buffer ended before the request head did.
	Incomplete
)

func (e Error) Error() string {
	switch e {
	case BadRequest:
		return "bad request"
	case NotImplemented:
		return "method not implemented"
	case VersionNotSupported:
		return "HTTP version not supported"
	case NotFound:
		return "not found"
	case Incomplete:
		return "incomplete request"
	default:
		return fmt.Sprintf("unknown HTTP error: %d", int(e))
	}
}

// StatusCode returns the response status code for the error.
// Incomplete maps to 400, the answer for a request that never completes.
func (e Error) StatusCode() int {
	switch e {
	case BadRequest, Incomplete:
		return StatusBadRequest
	case NotImplemented:
		return StatusNotImplemented
	case VersionNotSupported:
		return StatusHTTPVersionNotSupported
	case NotFound:
		return StatusNotFound
	default:
		return StatusInternalServerError
	}
}
