// Package ascii provides zero-copy scanning primitives over raw request bytes.
//
// All functions return sub-slices of their input; nothing is copied. Lines
// are terminated by CRLF only, and tokens are delimited by a single ASCII
// space, as required by HTTP/1.1 message framing (RFC 7230).
package ascii
