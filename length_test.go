package rosapi

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

var wordLengths = []struct {
	n       int
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{0x7F, []byte{0x7F}},
	{0x80, []byte{0x80, 0x80}},
	{0x3FFF, []byte{0xBF, 0xFF}},
	{0x4000, []byte{0xC0, 0x40, 0x00}},
	{0x1FFFFF, []byte{0xDF, 0xFF, 0xFF}},
	{0x200000, []byte{0xE0, 0x20, 0x00, 0x00}},
	{0xFFFFFFF, []byte{0xEF, 0xFF, 0xFF, 0xFF}},
}

func TestDetermineLength(t *testing.T) {
	tests := []struct {
		first byte
		want  int
	}{
		{'x', 0},
		{0xBF, 1},
		{0xDF, 2},
		{0xEF, 3},
	}

	for _, tt := range tests {
		got, err := DetermineLength(tt.first)
		if err != nil {
			t.Fatalf("DetermineLength(%#x) failed: %v", tt.first, err)
		}
		if got != tt.want {
			t.Errorf("DetermineLength(%#x) = %d, want %d", tt.first, got, tt.want)
		}
	}
}

func TestDetermineLength_Reserved(t *testing.T) {
	for b := 0xF0; b <= 0xFF; b++ {
		_, err := DetermineLength(byte(b))
		if !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("DetermineLength(%#x): expected ErrInvalidLength, got %v", b, err)
		}
		if !strings.Contains(err.Error(), fmt.Sprintf("%#x", b)) {
			t.Errorf("error %q does not cite %#x", err, b)
		}
	}
}

func TestEncodeLength(t *testing.T) {
	for _, tt := range wordLengths {
		got, err := EncodeLength(tt.n)
		if err != nil {
			t.Fatalf("EncodeLength(%d) failed: %v", tt.n, err)
		}
		if !bytes.Equal(got, tt.encoded) {
			t.Errorf("EncodeLength(%d) = %#x, want %#x", tt.n, got, tt.encoded)
		}
	}
}

func TestEncodeLength_TooBig(t *testing.T) {
	for _, n := range []int{0x10000000, 0x7FFFFFFF, -1} {
		_, err := EncodeLength(n)
		if !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("EncodeLength(%d): expected ErrInvalidLength, got %v", n, err)
		}
		if !strings.Contains(err.Error(), fmt.Sprint(n)) {
			t.Errorf("error %q does not cite %d", err, n)
		}
	}
}

func TestDecodeLength(t *testing.T) {
	for _, tt := range wordLengths {
		got, err := DecodeLength(tt.encoded)
		if err != nil {
			t.Fatalf("DecodeLength(%#x) failed: %v", tt.encoded, err)
		}
		if got != tt.n {
			t.Errorf("DecodeLength(%#x) = %d, want %d", tt.encoded, got, tt.n)
		}
	}
}

func TestDecodeLength_Invalid(t *testing.T) {
	tests := [][]byte{
		{0xF0},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0xF8, 0x01, 0x02},
		{0x80},
		{0xC0, 0x40},
		{0xE0, 0x20, 0x00},
		{0x05, 0x00},
		{},
	}

	for _, raw := range tests {
		_, err := DecodeLength(raw)
		if !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("DecodeLength(%#x): expected ErrInvalidLength, got %v", raw, err)
		}
		if len(raw) > 0 && !strings.Contains(err.Error(), fmt.Sprintf("%#x", raw)) {
			t.Errorf("error %q does not cite %#x", err, raw)
		}
	}
}

func TestLength_RoundTrip(t *testing.T) {
	check := func(n int) {
		encoded, err := EncodeLength(n)
		if err != nil {
			t.Fatalf("EncodeLength(%d) failed: %v", n, err)
		}
		got, err := DecodeLength(encoded)
		if err != nil {
			t.Fatalf("DecodeLength(%#x) failed: %v", encoded, err)
		}
		if got != n {
			t.Fatalf("round trip of %d gave %d", n, got)
		}
	}

	// Every value around each width class boundary.
	for _, boundary := range []int{0, 0x80, 0x4000, 0x200000, 0xFFFFFFF} {
		for n := boundary - 300; n <= boundary+300; n++ {
			if n >= 0 && n <= MaxWordLength {
				check(n)
			}
		}
	}
	for n := 0; n <= MaxWordLength; n += 9973 {
		check(n)
	}
}
