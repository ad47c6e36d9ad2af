// Package base64 implements the standard Base64 encoding of RFC 4648 §4.
// Only encoding is provided.
package base64

// Alphabet is the standard 64-symbol encoding alphabet.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Padding is appended to the final quantum when the input is not a multiple of three bytes.
const Padding = '='

// EncodedLen returns the length in bytes of the encoding of n source bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// Encode returns the Base64 encoding of src. Empty input yields empty output.
func Encode(src []byte) []byte {
	dst := make([]byte, EncodedLen(len(src)))
	di := 0

	for len(src) > 0 {
		var word uint32
		n := len(src)
		if n > 3 {
			n = 3
		}
		for i := 0; i < n; i++ {
			word |= uint32(src[i]) << (16 - 8*i)
		}

		dst[di] = Alphabet[word>>18&0x3f]
		dst[di+1] = Alphabet[word>>12&0x3f]
		switch n {
		case 1:
			dst[di+2] = Padding
			dst[di+3] = Padding
		case 2:
			dst[di+2] = Alphabet[word>>6&0x3f]
			dst[di+3] = Padding
		default:
			dst[di+2] = Alphabet[word>>6&0x3f]
			dst[di+3] = Alphabet[word&0x3f]
		}

		di += 4
		src = src[n:]
	}

	return dst
}

// EncodeToString returns the Base64 encoding of src as a string.
func EncodeToString(src []byte) string {
	return string(Encode(src))
}
