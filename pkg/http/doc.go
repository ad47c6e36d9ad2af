/*
Package http parses HTTP/1.1 request heads and composes responses.

The parser works on a byte buffer that already holds the bytes received from
a connection. It accepts only what a WebSocket-capable static server needs:

  - a request line of exactly three single-space separated tokens
  - the GET method and the HTTP/1.1 version
  - header fields terminated by an empty line

Bodies and chunked transfer coding are not supported.

# Errors

Every failure is one of the Error kinds. A buffer that ends before the request
head is complete yields Incomplete, which lets a caller read more bytes before
giving up; its status code is still 400 for callers that cannot.

# Usage

	req, err := http.Parse(buf)
	if errors.Is(err, http.Incomplete) {
		// read more
	}
	if err != nil {
		http.ErrorResponse(err).WriteTo(conn)
		return
	}
	if req.IsWebSocket() {
		// hand off to the handshake
	}
*/
package http
