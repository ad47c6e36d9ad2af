package sha1

import "math/bits"

// Size is the size of a SHA-1 digest in bytes.
const Size = 20

// Initial hash values.
var iv = [5]uint32{
	0x67452301,
	0xEFCDAB89,
	0x98BADCFE,
	0x10325476,
	0xC3D2E1F0,
}

// Round constants, one per group of twenty rounds.
const (
	k0 = 0x5A827999
	k1 = 0x6ED9EBA1
	k2 = 0x8F1BBCDC
	k3 = 0xCA62C1D6
)

// Context is an incremental SHA-1 computation. It is not safe for concurrent use.
type Context struct {
	pending block
	length  uint64
	h       [5]uint32
	done    bool
}

// New returns a Context ready to accept input.
func New() *Context {
	return &Context{h: iv}
}

// Add appends p to the message. Add panics if called after Digest.
func (c *Context) Add(p []byte) {
	if c.done {
		panic("sha1: Add called after Digest")
	}
	c.length += uint64(len(p))

	for len(p) > 0 {
		n := c.pending.fill(p)
		p = p[n:]
		if c.pending.full() {
			c.compress()
			c.pending.reset()
		}
	}
}

// Write implements io.Writer so a Context can be fed with io.Copy. It never
// returns an error.
func (c *Context) Write(p []byte) (int, error) {
	c.Add(p)
	return len(p), nil
}

// Len returns the number of message bytes added so far.
func (c *Context) Len() uint64 {
	return c.length
}

// Digest pads the message, processes the final block(s) and returns the
// hash. The Context must not be used after Digest; a second call panics.
func (c *Context) Digest() [Size]byte {
	if c.done {
		panic("sha1: Digest called twice")
	}
	c.done = true

	c.pending.put(0x80)
	if !c.pending.room() {
		c.pending.zeroTail()
		c.compress()
		c.pending.reset()
	}
	c.pending.zeroTail()
	c.pending.putLength(c.length * 8)
	c.compress()

	var out [Size]byte
	for i, v := range c.h {
		out[4*i] = byte(v >> 24)
		out[4*i+1] = byte(v >> 16)
		out[4*i+2] = byte(v >> 8)
		out[4*i+3] = byte(v)
	}
	return out
}

// Sum returns the SHA-1 digest of data.
func Sum(data []byte) [Size]byte {
	c := New()
	c.Add(data)
	return c.Digest()
}

// compress mixes the full pending block into the hash state.
func (c *Context) compress() {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = wordAt(c.pending.buf[4*i:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, cc, d, e := c.h[0], c.h[1], c.h[2], c.h[3], c.h[4]
	for t := 0; t < 80; t++ {
		temp := bits.RotateLeft32(a, 5) + f(t, b, cc, d) + e + w[t] + k(t)
		e = d
		d = cc
		cc = bits.RotateLeft32(b, 30)
		b = a
		a = temp
	}

	c.h[0] += a
	c.h[1] += b
	c.h[2] += cc
	c.h[3] += d
	c.h[4] += e
}

// wordAt reads a big-endian 32-bit word from the first four bytes of p.
func wordAt(p []byte) uint32 {
	_ = p[3]
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

// f is the round-dependent nonlinear function.
func f(t int, b, c, d uint32) uint32 {
	switch {
	case t < 20:
		return (b & c) | (^b & d)
	case t < 40:
		return b ^ c ^ d
	case t < 60:
		return (b & c) | (b & d) | (c & d)
	default:
		return b ^ c ^ d
	}
}

func k(t int) uint32 {
	switch {
	case t < 20:
		return k0
	case t < 40:
		return k1
	case t < 60:
		return k2
	default:
		return k3
	}
}
