package ascii

// Byte values used by the scanner.
const (
	LineFeed       byte = '\n'
	CarriageReturn byte = '\r'
	Space          byte = ' '
)

// ReadLine returns the bytes before the first CRLF in buf and the bytes after it.
// A lone LF does not end a line. ok is false when buf holds no CRLF.
func ReadLine(buf []byte) (line, rest []byte, ok bool) {
	crFound := false
	for i, c := range buf {
		switch {
		case c == CarriageReturn:
			crFound = true
		case crFound && c == LineFeed:
			return buf[:i-1], buf[i+1:], true
		default:
			crFound = false
		}
	}
	return nil, nil, false
}

// ReadToken splits buf at the first space. When buf holds no space the whole
// buffer is the token and rest is empty. Consecutive spaces yield empty tokens.
func ReadToken(buf []byte) (token, rest []byte) {
	for i, c := range buf {
		if c == Space {
			return buf[:i], buf[i+1:]
		}
	}
	return buf, buf[len(buf):]
}

// SplitTokens splits buf into space-delimited tokens, stopping after max
// tokens. The returned count is the number of tokens buf actually holds, so a
// caller can reject lines with too many or too few.
func SplitTokens(buf []byte, max int) ([][]byte, int) {
	tokens := make([][]byte, 0, max)
	count := 0
	for {
		token, rest := ReadToken(buf)
		if count < max {
			tokens = append(tokens, token)
		}
		count++
		if len(rest) == 0 && len(token) == len(buf) {
			return tokens, count
		}
		buf = rest
	}
}

// IsASCII reports whether every byte of b is in the 7-bit ASCII range.
func IsASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
