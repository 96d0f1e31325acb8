package rosapi

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodingByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "ascii"},
		{"ASCII", "ascii"},
		{"us-ascii", "ascii"},
		{"UTF-8", "utf-8"},
		{"utf8", "utf-8"},
		{"windows-1250", "windows-1250"},
		{"ISO-8859-2", "iso-8859-2"},
	}

	for _, tt := range tests {
		enc, err := EncodingByName(tt.name)
		if err != nil {
			t.Fatalf("EncodingByName(%q) failed: %v", tt.name, err)
		}
		if enc.Name() != tt.want {
			t.Errorf("EncodingByName(%q).Name() = %q, want %q", tt.name, enc.Name(), tt.want)
		}
	}

	if _, err := EncodingByName("no-such-charset"); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestASCII_RejectsNonASCII(t *testing.T) {
	_, err := ASCII.Encode("łą")
	var cerr *CharsetError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CharsetError, got %v", err)
	}
	if cerr.Rune != 'ł' || cerr.Offset != 0 {
		t.Errorf("rune = %q offset = %d", cerr.Rune, cerr.Offset)
	}
	if !strings.Contains(err.Error(), "U+0142") {
		t.Errorf("error %q does not name the code point", err)
	}

	_, err = ASCII.Decode([]byte("/ip/addres\xc5\x82/print"))
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CharsetError, got %v", err)
	}
	if cerr.Byte != 0xc5 || cerr.Offset != 10 {
		t.Errorf("byte = %#x offset = %d", cerr.Byte, cerr.Offset)
	}
}

func TestUTF8_RoundTrip(t *testing.T) {
	word := "/ip/addressł/print"
	b, err := UTF8.Encode(word)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := UTF8.Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != word {
		t.Errorf("Decode = %q, want %q", got, word)
	}
}

func TestUTF8_RejectsInvalid(t *testing.T) {
	_, err := UTF8.Decode([]byte{'a', 0xff, 'b'})
	var cerr *CharsetError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CharsetError, got %v", err)
	}
	if cerr.Offset != 1 || cerr.Byte != 0xff {
		t.Errorf("byte = %#x offset = %d", cerr.Byte, cerr.Offset)
	}

	_, err = UTF8.Encode("a\xffb")
	if !errors.As(err, &cerr) || cerr.Offset != 1 {
		t.Errorf("expected *CharsetError at offset 1, got %v", err)
	}
}

func TestCharmapEncoding(t *testing.T) {
	enc, err := EncodingByName("windows-1250")
	if err != nil {
		t.Fatalf("EncodingByName failed: %v", err)
	}

	b, err := enc.Encode("łą")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0xb3, 0xb9}) {
		t.Errorf("Encode = %#x, want 0xb3b9", b)
	}

	got, err := enc.Decode(b)
	if err != nil || got != "łą" {
		t.Errorf("Decode = %q, %v", got, err)
	}

	_, err = enc.Encode("ok€✓")
	var cerr *CharsetError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CharsetError, got %v", err)
	}
	if cerr.Rune != '✓' || cerr.Offset != 5 {
		t.Errorf("rune = %q offset = %d", cerr.Rune, cerr.Offset)
	}
}

func TestCharmapEncoding_UndefinedByte(t *testing.T) {
	enc, err := EncodingByName("windows-1250")
	if err != nil {
		t.Fatalf("EncodingByName failed: %v", err)
	}

	got, err := enc.Decode([]byte{'a', 0x81, 'b'})
	var cerr *CharsetError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CharsetError, got %q, %v", got, err)
	}
	if cerr.Op != "decode" || cerr.Offset != 1 || cerr.Byte != 0x81 {
		t.Errorf("op = %s byte = %#x offset = %d", cerr.Op, cerr.Byte, cerr.Offset)
	}
	if !strings.Contains(err.Error(), "0x81") {
		t.Errorf("error %q does not cite the byte", err)
	}
}
