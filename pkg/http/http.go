package http

import (
	"strings"
)

// Method constants.
const (
	MethodGet = "GET"
)

// Status codes used by the server.
const (
	StatusSwitchingProtocols      = 101
	StatusOK                      = 200
	StatusBadRequest              = 400
	StatusNotFound                = 404
	StatusInternalServerError     = 500
	StatusNotImplemented          = 501
	StatusHTTPVersionNotSupported = 505
)

// Protocol versions.
const (
	ProtocolHTTP11 = "HTTP/1.1"
)

// Header names (canonicalized). Lookups through Header are case-insensitive.
const (
	HeaderConnection          = "Connection"
	HeaderContentLength       = "Content-Length"
	HeaderContentType         = "Content-Type"
	HeaderHost                = "Host"
	HeaderUpgrade             = "Upgrade"
	HeaderSecWebSocketAccept  = "Sec-WebSocket-Accept"
	HeaderSecWebSocketKey     = "Sec-WebSocket-Key"
	HeaderSecWebSocketVersion = "Sec-WebSocket-Version"
	HeaderSecWebSocketProto   = "Sec-WebSocket-Protocol"
)

// Connection options.
const (
	ConnectionClose   = "close"
	ConnectionUpgrade = "Upgrade"
)

// Header maps lowercase field names to trimmed values. A name that appears
// more than once keeps its last value.
type Header map[string]string

// Get returns the value for the given name, case-insensitive.
// Returns empty string if the name is not present.
func (h Header) Get(name string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(name)]
}

// Lookup returns the value for the given name and whether it was present.
func (h Header) Lookup(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h[strings.ToLower(name)]
	return v, ok
}

// Set stores value under the lowercase form of name, replacing any previous value.
func (h Header) Set(name, value string) {
	if h == nil {
		return
	}
	h[strings.ToLower(name)] = value
}

// HasToken reports whether the comma-separated list stored under name
// contains token, compared case-insensitively after trimming.
func (h Header) HasToken(name, token string) bool {
	v, ok := h.Lookup(name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(v, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// Tokens returns the trimmed, non-empty elements of the comma-separated list stored under name.
func (h Header) Tokens(name string) []string {
	v, ok := h.Lookup(name)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// isTokenChar returns true if the byte is a valid token character.
func isTokenChar(c byte) bool {
	return c < 0x80 && tokenChars[c]
}

// tokenChars is a lookup table for valid HTTP token characters.
var tokenChars = [256]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true,
	'\'': true, '*': true, '+': true, '-': true, '.': true,
	'^': true, '_': true, '`': true, '|': true, '~': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true,
	'F': true, 'G': true, 'H': true, 'I': true, 'J': true,
	'K': true, 'L': true, 'M': true, 'N': true, 'O': true,
	'P': true, 'Q': true, 'R': true, 'S': true, 'T': true,
	'U': true, 'V': true, 'W': true, 'X': true, 'Y': true,
	'Z': true, 'a': true, 'b': true, 'c': true, 'd': true,
	'e': true, 'f': true, 'g': true, 'h': true, 'i': true,
	'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true,
	't': true, 'u': true, 'v': true, 'w': true, 'x': true,
	'y': true, 'z': true,
}

// isToken reports whether b is a non-empty run of token characters.
func isToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !isTokenChar(c) {
			return false
		}
	}
	return true
}
