package http

import (
	"bytes"
	"strings"

	"wsgate/pkg/ascii"
)

// requestLineTokens is the number of tokens in a request line: method, target, version.
const requestLineTokens = 3

// Request is a parsed HTTP/1.1 request head. It is not modified after Parse returns.
type Request struct {
	Method  string
	Target  string
	Version string
	Header  Header
	// HeadLen is the number of buffer bytes consumed by the request head,
	// including the terminating empty line.
	HeadLen int
}

// Parse parses the request head at the start of buf.
//
// The request line is validated before any header is read, so a request
// with an unsupported method or version fails even if its head is still
// incomplete. The method is checked before the version.
func Parse(buf []byte) (*Request, error) {
	line, rest, ok := ascii.ReadLine(buf)
	if !ok {
		return nil, Incomplete
	}

	method, target, version, err := ParseRequestLine(line)
	if err != nil {
		return nil, err
	}
	if err := validateRequestLine(method, version); err != nil {
		return nil, err
	}

	header, rest, err := parseHeaders(rest)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:  method,
		Target:  target,
		Version: version,
		Header:  header,
		HeadLen: len(buf) - len(rest),
	}, nil
}

// ParseRequestLine splits a request line (without its CRLF) into method,
// target and version. Exactly three non-empty tokens separated by single
// spaces are accepted; anything else is BadRequest.
func ParseRequestLine(line []byte) (method, target, version string, err error) {
	if !ascii.IsASCII(line) {
		return "", "", "", BadRequest
	}
	tokens, count := ascii.SplitTokens(line, requestLineTokens)
	if count != requestLineTokens {
		return "", "", "", BadRequest
	}
	for _, tok := range tokens {
		if len(tok) == 0 {
			return "", "", "", BadRequest
		}
	}
	return string(tokens[0]), string(tokens[1]), string(tokens[2]), nil
}

func validateRequestLine(method, version string) error {
	if method != MethodGet {
		return NotImplemented
	}
	if version != ProtocolHTTP11 {
		return VersionNotSupported
	}
	return nil
}

// parseHeaders reads header lines up to and including the empty line and
// returns the bytes that follow it.
func parseHeaders(buf []byte) (Header, []byte, error) {
	header := make(Header)
	for {
		line, rest, ok := ascii.ReadLine(buf)
		if !ok {
			return nil, nil, Incomplete
		}
		buf = rest
		if len(line) == 0 {
			return header, buf, nil
		}

		name, value, err := ParseHeaderLine(line)
		if err != nil {
			return nil, nil, err
		}
		header[name] = value
	}
}

// ParseHeaderLine splits a header line (without its CRLF) on the first colon.
// The name is returned lowercased and the value trimmed of surrounding
// whitespace. The name must be a non-empty token with no surrounding space.
func ParseHeaderLine(line []byte) (name, value string, err error) {
	if !ascii.IsASCII(line) {
		return "", "", BadRequest
	}
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return "", "", BadRequest
	}
	if !isToken(line[:idx]) {
		return "", "", BadRequest
	}
	name = strings.ToLower(string(line[:idx]))
	value = strings.TrimSpace(string(line[idx+1:]))
	return name, value, nil
}

// IsWebSocket reports whether the request asks for a WebSocket upgrade: a
// GET whose Connection header lists "upgrade" and whose Upgrade header is
// "websocket". Missing headers make it false.
func (r *Request) IsWebSocket() bool {
	if r.Method != MethodGet {
		return false
	}
	if !r.Header.HasToken(HeaderConnection, "upgrade") {
		return false
	}
	upgrade, ok := r.Header.Lookup(HeaderUpgrade)
	return ok && strings.EqualFold(upgrade, "websocket")
}

// Host returns the Host header value.
func (r *Request) Host() string {
	return r.Header.Get(HeaderHost)
}
