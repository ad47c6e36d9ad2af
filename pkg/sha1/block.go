package sha1

// BlockSize is the SHA-1 block size in bytes.
const BlockSize = 64

// lengthSize is the number of trailing block bytes holding the message bit length.
const lengthSize = 8

// block is a fixed-capacity buffer with an owned write cursor.
type block struct {
	buf    [BlockSize]byte
	cursor int
}

// fill copies as much of p as fits after the cursor and returns the count.
func (b *block) fill(p []byte) int {
	n := copy(b.buf[b.cursor:], p)
	b.cursor += n
	return n
}

// full reports whether the cursor has reached capacity.
func (b *block) full() bool {
	return b.cursor == BlockSize
}

// put writes a single byte at the cursor. It reports false when the block is full.
func (b *block) put(c byte) bool {
	if b.cursor >= BlockSize {
		return false
	}
	b.buf[b.cursor] = c
	b.cursor++
	return true
}

// zeroTail clears every byte from the cursor to the end of the block and
// moves the cursor to capacity.
func (b *block) zeroTail() {
	clear(b.buf[b.cursor:])
	b.cursor = BlockSize
}

// room reports whether the bytes after the cursor can hold the length field.
func (b *block) room() bool {
	return BlockSize-b.cursor >= lengthSize
}

// putLength stores v big-endian in the last eight bytes of the block.
func (b *block) putLength(v uint64) {
	tail := b.buf[BlockSize-lengthSize:]
	for i := range tail {
		tail[i] = byte(v >> (56 - 8*i))
	}
}

func (b *block) reset() {
	b.cursor = 0
}
