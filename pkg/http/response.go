package http

import (
	"bytes"
	"errors"
	"io"
	"strconv"
)

// HeaderField is a single response header line.
type HeaderField struct {
	Name  string
	Value string
}

// Response is an HTTP response. Header fields are written in insertion order.
type Response struct {
	StatusCode int
	Proto      string
	Header     []HeaderField
	Body       []byte
}

// NewResponse creates a new HTTP/1.1 response.
func NewResponse(statusCode int, body []byte) *Response {
	return &Response{
		StatusCode: statusCode,
		Proto:      ProtocolHTTP11,
		Body:       body,
	}
}

// AddHeader appends a header field.
func (r *Response) AddHeader(name, value string) {
	r.Header = append(r.Header, HeaderField{Name: name, Value: value})
}

// HeaderValue returns the first value stored under name, compared exactly.
func (r *Response) HeaderValue(name string) string {
	for _, f := range r.Header {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Status returns the status line text after the protocol, e.g. "404 Not Found".
func (r *Response) Status() string {
	return strconv.Itoa(r.StatusCode) + " " + StatusText(r.StatusCode)
}

// WriteTo writes the response to the given writer in HTTP format.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

// Bytes returns the serialized response.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(64 + len(r.Body))

	buf.WriteString(r.Proto)
	buf.WriteByte(' ')
	buf.WriteString(r.Status())
	buf.WriteString("\r\n")
	for _, f := range r.Header {
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)

	return buf.Bytes()
}

// ErrorResponse builds the response for err. Errors that are not an Error
// kind become 500 Internal Server Error. The body repeats the reason phrase.
func ErrorResponse(err error) *Response {
	code := StatusInternalServerError
	var kind Error
	if errors.As(err, &kind) {
		code = kind.StatusCode()
	}

	body := []byte(StatusText(code))
	resp := NewResponse(code, body)
	resp.AddHeader(HeaderContentType, "text/plain;charset=utf-8")
	resp.AddHeader(HeaderContentLength, strconv.Itoa(len(body)))
	resp.AddHeader(HeaderConnection, ConnectionClose)
	return resp
}

// ContentResponse builds a 200 OK response carrying body.
func ContentResponse(contentType string, body []byte) *Response {
	resp := NewResponse(StatusOK, body)
	resp.AddHeader(HeaderContentType, contentType)
	resp.AddHeader(HeaderContentLength, strconv.Itoa(len(body)))
	resp.AddHeader(HeaderConnection, ConnectionClose)
	return resp
}

// StatusText returns the standard text for the given status code.
func StatusText(code int) string {
	switch code {
	case StatusSwitchingProtocols:
		return "Switching Protocols"
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusHTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}
