// Package websocket implements the server and client sides of the RFC 6455
// opening handshake.
//
// The server side validates an upgrade request parsed by package http and
// composes the 101 Switching Protocols response, computing
// Sec-WebSocket-Accept with the in-tree sha1 and base64 packages. The client
// side builds upgrade requests and verifies the server's accept value.
//
// Data framing (masking, opcodes, fragmentation, control frames) is not
// implemented; after a successful handshake the connection is handed to the
// caller.
//
// # Usage
//
//	u := websocket.NewUpgrader("chat")
//	resp, err := u.Handshake(req)
//	if err != nil {
//	    http.ErrorResponse(err).WriteTo(conn)
//	    return
//	}
//	resp.WriteTo(conn)
package websocket
