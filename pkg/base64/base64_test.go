package base64

import (
	stdbase64 "encoding/base64"
	"testing"
)

func TestEncode_RFC4648(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
	}

	for _, tt := range tests {
		if got := string(Encode([]byte(tt.input))); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEncode_HighBytes(t *testing.T) {
	tests := []struct {
		input []byte
		want  string
	}{
		{[]byte{0x00}, "AA=="},
		{[]byte{0xff, 0xfe, 0xfd}, "//79"},
		{[]byte{0xfb, 0xff}, "+/8="},
	}

	for _, tt := range tests {
		if got := EncodeToString(tt.input); got != tt.want {
			t.Errorf("EncodeToString(%x) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEncode_MatchesStandardLibrary(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	for n := 0; n <= len(src); n++ {
		got := EncodeToString(src[:n])
		want := stdbase64.StdEncoding.EncodeToString(src[:n])
		if got != want {
			t.Fatalf("length %d: got %q, want %q", n, got, want)
		}
	}
}

func TestEncodedLen(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 4, 2: 4, 3: 4, 4: 8, 20: 28} {
		if got := EncodedLen(n); got != want {
			t.Errorf("EncodedLen(%d) = %d, want %d", n, got, want)
		}
	}
}
