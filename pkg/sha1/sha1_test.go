package sha1

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestDigest_ReferenceVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		// 448 bits of input plus padding spill into a second block.
		{"two blocks", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
		{"exactly one block", strings.Repeat("01234567", 8), "e0c094e867ef46c350ef54a7f59dd60bed92ae83"},
		{"55 bytes", strings.Repeat("a", 55), "c1c8bbdc22796e28c0e15163d20899b65621d65a"},
		{"56 bytes", strings.Repeat("a", 56), "c2db330f6083854c99d4b5bfb6e8f29f201be699"},
		{"64 bytes", strings.Repeat("a", 64), "0098ba824b5c16427bd7a1122a5a442a25ec644d"},
		{"fox", "The quick brown fox jumps over the lazy dog", "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add([]byte(tt.input))
			got := c.Digest()
			if !bytes.Equal(got[:], mustDecodeHex(t, tt.want)) {
				t.Errorf("Digest(%q) = %x, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDigest_MillionA(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long vector in short mode")
	}
	c := New()
	chunk := bytes.Repeat([]byte("a"), 1000)
	for i := 0; i < 1000; i++ {
		c.Add(chunk)
	}
	got := c.Digest()
	want := mustDecodeHex(t, "34aa973cd4c4daa4f61eeb2bdbad27316534016f")
	if !bytes.Equal(got[:], want) {
		t.Errorf("Digest(1M x 'a') = %x, want %x", got, want)
	}
}

func TestDigest_Chunks(t *testing.T) {
	chunk := bytes.Repeat([]byte("a"), 50)

	chunked := New()
	chunked.Add(chunk)
	chunked.Add(chunk)
	chunked.Add(chunk)

	full := New()
	full.Add(bytes.Repeat([]byte("a"), 150))

	if chunked.Digest() != full.Digest() {
		t.Error("chunked input produced a different digest")
	}
}

func TestDigest_AnyPartition(t *testing.T) {
	msg := make([]byte, 300)
	for i := range msg {
		msg[i] = byte(i * 7)
	}
	want := Sum(msg)

	for size := 1; size <= 130; size++ {
		c := New()
		for rest := msg; len(rest) > 0; {
			n := size
			if n > len(rest) {
				n = len(rest)
			}
			c.Add(rest[:n])
			rest = rest[n:]
		}
		if got := c.Digest(); got != want {
			t.Fatalf("chunk size %d: digest = %x, want %x", size, got, want)
		}
	}
}

func TestDigest_EmptyAdds(t *testing.T) {
	c := New()
	c.Add(nil)
	c.Add([]byte("abc"))
	c.Add([]byte{})
	if got, want := c.Digest(), Sum([]byte("abc")); got != want {
		t.Errorf("digest with empty adds = %x, want %x", got, want)
	}
}

func TestContext_Len(t *testing.T) {
	c := New()
	c.Add([]byte("hello"))
	c.Add(make([]byte, 100))
	if c.Len() != 105 {
		t.Errorf("Len() = %d, want 105", c.Len())
	}
	if c.pending.cursor != int(c.Len()%BlockSize) {
		t.Errorf("cursor = %d, want %d", c.pending.cursor, c.Len()%BlockSize)
	}
}

func TestContext_Write(t *testing.T) {
	c := New()
	n, err := io.Copy(c, strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("io.Copy error: %v", err)
	}
	if n != 3 {
		t.Errorf("copied %d bytes, want 3", n)
	}
	if got, want := c.Digest(), Sum([]byte("abc")); got != want {
		t.Errorf("digest = %x, want %x", got, want)
	}
}

func TestContext_AddAfterDigestPanics(t *testing.T) {
	c := New()
	c.Digest()
	defer func() {
		if recover() == nil {
			t.Error("Add after Digest did not panic")
		}
	}()
	c.Add([]byte("x"))
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint32
	}{
		{[]byte{0, 0, 0, 0}, 0},
		{[]byte{0, 0, 0, 0xff}, 255},
		{[]byte{0xff, 0, 0, 0}, 4278190080},
		{[]byte{0, 0xab, 0xcd, 0xef}, 11259375},
	}
	for _, tt := range tests {
		if got := wordAt(tt.in); got != tt.want {
			t.Errorf("wordAt(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBlock_Bounds(t *testing.T) {
	var b block
	if n := b.fill(make([]byte, 100)); n != BlockSize {
		t.Errorf("fill copied %d bytes, want %d", n, BlockSize)
	}
	if !b.full() {
		t.Error("block not full after filling to capacity")
	}
	if b.put(1) {
		t.Error("put succeeded on a full block")
	}
	b.reset()
	if b.fill([]byte{1, 2, 3}) != 3 || b.cursor != 3 {
		t.Errorf("cursor = %d after partial fill, want 3", b.cursor)
	}
}
