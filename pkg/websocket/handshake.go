package websocket

import (
	"errors"
	"slices"

	"wsgate/pkg/base64"
	"wsgate/pkg/http"
	"wsgate/pkg/sha1"
)

// Handshake errors.
var (
	ErrNotWebSocketRequest = errors.New("not a WebSocket request")
	ErrInvalidSecVersion   = errors.New("invalid Sec-WebSocket-Version")
	ErrMissingSecKey       = errors.New("missing Sec-WebSocket-Key header")
	ErrMissingSecAccept    = errors.New("missing Sec-WebSocket-Accept header")
	ErrSecAcceptMismatch   = errors.New("Sec-WebSocket-Accept mismatch")
	ErrBadStatus           = errors.New("unexpected handshake status")
	ErrMissingUpgrade      = errors.New("missing Upgrade header")
)

// GUID is appended to the client key before hashing, as defined in RFC 6455 §1.3.
const GUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// Version is the only protocol version accepted in Sec-WebSocket-Version.
const Version = "13"

// HandshakeError represents a handshake error.
type HandshakeError struct {
	Err  error
	Kind http.Error
}

func (e *HandshakeError) Error() string {
	return "websocket: " + e.Err.Error()
}

// Unwrap exposes both the cause and the HTTP error kind to errors.Is and errors.As.
func (e *HandshakeError) Unwrap() []error {
	return []error{e.Err, e.Kind}
}

func badRequest(err error) *HandshakeError {
	return &HandshakeError{Err: err, Kind: http.BadRequest}
}

// Upgrader handles WebSocket upgrade requests.
type Upgrader struct {
	// Subprotocols lists the supported subprotocols in order of preference.
	Subprotocols []string
}

// NewUpgrader creates a new Upgrader supporting the given subprotocols.
func NewUpgrader(subprotocols ...string) *Upgrader {
	return &Upgrader{Subprotocols: subprotocols}
}

// Handshake validates an upgrade request and returns the 101 Switching
// Protocols response for it. Every rejection is a *HandshakeError whose Kind
// is http.BadRequest.
func (u *Upgrader) Handshake(req *http.Request) (*http.Response, error) {
	if !req.IsWebSocket() {
		return nil, badRequest(ErrNotWebSocketRequest)
	}

	// Check Sec-WebSocket-Version
	if version, _ := req.Header.Lookup(http.HeaderSecWebSocketVersion); version != Version {
		return nil, badRequest(ErrInvalidSecVersion)
	}

	// Check Sec-WebSocket-Key
	key, ok := req.Header.Lookup(http.HeaderSecWebSocketKey)
	if !ok {
		return nil, badRequest(ErrMissingSecKey)
	}

	return buildUpgradeResponse(AcceptKey(key), u.selectSubprotocol(req)), nil
}

// selectSubprotocol returns the first client-offered subprotocol the
// upgrader supports, or "" when none match.
func (u *Upgrader) selectSubprotocol(req *http.Request) string {
	if u == nil || len(u.Subprotocols) == 0 {
		return ""
	}
	for _, offered := range req.Header.Tokens(http.HeaderSecWebSocketProto) {
		if slices.Contains(u.Subprotocols, offered) {
			return offered
		}
	}
	return ""
}

// AcceptKey computes the Sec-WebSocket-Accept value for a client key per RFC 6455.
func AcceptKey(key string) string {
	// Concatenate key with GUID
	combined := key + GUID

	// SHA1 hash
	digester := sha1.New()
	digester.Add([]byte(combined))
	digest := digester.Digest()

	// Base64 encode
	return base64.EncodeToString(digest[:])
}

// buildUpgradeResponse builds the WebSocket upgrade response.
func buildUpgradeResponse(acceptKey, subprotocol string) *http.Response {
	resp := http.NewResponse(http.StatusSwitchingProtocols, nil)
	resp.AddHeader(http.HeaderUpgrade, "websocket")
	resp.AddHeader(http.HeaderConnection, http.ConnectionUpgrade)
	resp.AddHeader(http.HeaderSecWebSocketAccept, acceptKey)
	if subprotocol != "" {
		resp.AddHeader(http.HeaderSecWebSocketProto, subprotocol)
	}
	return resp
}
