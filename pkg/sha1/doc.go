// Package sha1 implements the SHA-1 hash algorithm as defined in FIPS 180-1.
//
// A Context accepts input in chunks of any size and produces the same 20-byte
// digest as a single Add of the concatenated input. Finalization is
// destructive: Digest writes the padding into the pending block, so a Context
// yields exactly one digest.
//
// SHA-1 is used here to compute the WebSocket accept key (RFC 6455) and must
// not be relied upon for collision resistance.
package sha1
