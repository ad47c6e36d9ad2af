package websocket

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wsgate/pkg/ascii"
	"wsgate/pkg/base64"
	"wsgate/pkg/http"
)

// keyLen is the number of random bytes in a Sec-WebSocket-Key nonce.
const keyLen = 16

// GenerateKey generates a valid Sec-WebSocket-Key.
func GenerateKey() (string, error) {
	// Generate 16 random bytes
	data := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		return "", err
	}

	return base64.EncodeToString(data), nil
}

// VerifyAccept reports whether accept is the correct Sec-WebSocket-Accept value for key.
func VerifyAccept(key, accept string) bool {
	return AcceptKey(key) == accept
}

// NewUpgradeRequest builds the bytes of a client upgrade request.
func NewUpgradeRequest(target, host, key string, subprotocols ...string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s %s\r\n", http.MethodGet, target, http.ProtocolHTTP11)
	fmt.Fprintf(&b, "%s: %s\r\n", http.HeaderHost, host)
	fmt.Fprintf(&b, "%s: websocket\r\n", http.HeaderUpgrade)
	fmt.Fprintf(&b, "%s: %s\r\n", http.HeaderConnection, http.ConnectionUpgrade)
	fmt.Fprintf(&b, "%s: %s\r\n", http.HeaderSecWebSocketKey, key)
	fmt.Fprintf(&b, "%s: %s\r\n", http.HeaderSecWebSocketVersion, Version)
	if len(subprotocols) > 0 {
		fmt.Fprintf(&b, "%s: %s\r\n", http.HeaderSecWebSocketProto, strings.Join(subprotocols, ", "))
	}
	b.WriteString("\r\n")
	return b.Bytes()
}

// HandshakeResult describes an accepted server handshake.
type HandshakeResult struct {
	StatusCode  int
	Header      http.Header
	Subprotocol string
	// HeadLen is the number of buffer bytes consumed by the response head.
	HeadLen int
}

// ReadHandshakeResponse parses a server handshake response from buf and
// checks it against the key the client sent. It returns http.Incomplete when
// buf does not yet hold the whole response head.
func ReadHandshakeResponse(buf []byte, key string) (*HandshakeResult, error) {
	line, rest, ok := ascii.ReadLine(buf)
	if !ok {
		return nil, http.Incomplete
	}
	code, err := parseStatusLine(line)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	for {
		line, rest, ok = ascii.ReadLine(rest)
		if !ok {
			return nil, http.Incomplete
		}
		if len(line) == 0 {
			break
		}
		name, value, err := http.ParseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		header[name] = value
	}

	if code != http.StatusSwitchingProtocols {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, code)
	}
	if !strings.EqualFold(header.Get(http.HeaderUpgrade), "websocket") {
		return nil, ErrMissingUpgrade
	}
	accept, ok := header.Lookup(http.HeaderSecWebSocketAccept)
	if !ok {
		return nil, ErrMissingSecAccept
	}
	if !VerifyAccept(key, accept) {
		return nil, ErrSecAcceptMismatch
	}

	return &HandshakeResult{
		StatusCode:  code,
		Header:      header,
		Subprotocol: header.Get(http.HeaderSecWebSocketProto),
		HeadLen:     len(buf) - len(rest),
	}, nil
}

// parseStatusLine returns the status code from a response status line.
func parseStatusLine(line []byte) (int, error) {
	if !ascii.IsASCII(line) {
		return 0, http.BadRequest
	}
	proto, rest := ascii.ReadToken(line)
	codeText, _ := ascii.ReadToken(rest)
	if string(proto) != http.ProtocolHTTP11 || len(codeText) != 3 {
		return 0, http.BadRequest
	}
	code, err := strconv.Atoi(string(codeText))
	if err != nil {
		return 0, http.BadRequest
	}
	return code, nil
}
