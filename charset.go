package rosapi

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// errUndefinedBytes is the cause of a decode that hit bytes the charset
// leaves undefined.
var errUndefinedBytes = errors.New("undefined byte sequence")

// Encoding converts words between text and their on-wire bytes.
// Implementations must fail rather than substitute characters.
type Encoding interface {
	Name() string
	Encode(word string) ([]byte, error)
	Decode(b []byte) (string, error)
}

// Built-in encodings. ASCII is the default.
var (
	ASCII Encoding = asciiEncoding{}
	UTF8  Encoding = utf8Encoding{}
)

// EncodingByName resolves an IANA charset name such as "utf-8",
// "us-ascii" or "windows-1250".
func EncodingByName(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ascii", "us-ascii":
		return ASCII, nil
	case "utf-8", "utf8":
		return UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup encoding %q", name)
	}
	if enc == nil {
		return nil, errors.Errorf("encoding %q is not supported", name)
	}
	return &textEncoding{name: strings.ToLower(name), enc: enc}, nil
}

type asciiEncoding struct{}

func (asciiEncoding) Name() string { return "ascii" }

func (asciiEncoding) Encode(word string) ([]byte, error) {
	for i, r := range word {
		if r >= utf8.RuneSelf {
			return nil, &CharsetError{Encoding: "ascii", Op: "encode", Offset: i, Rune: r}
		}
	}
	return []byte(word), nil
}

func (asciiEncoding) Decode(b []byte) (string, error) {
	for i, c := range b {
		if c >= utf8.RuneSelf {
			return "", &CharsetError{Encoding: "ascii", Op: "decode", Offset: i, Byte: c}
		}
	}
	return string(b), nil
}

type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "utf-8" }

func (utf8Encoding) Encode(word string) ([]byte, error) {
	if i := invalidUTF8(word); i >= 0 {
		return nil, &CharsetError{Encoding: "utf-8", Op: "encode", Offset: i, Rune: utf8.RuneError}
	}
	return []byte(word), nil
}

func (utf8Encoding) Decode(b []byte) (string, error) {
	s := string(b)
	if i := invalidUTF8(s); i >= 0 {
		return "", &CharsetError{Encoding: "utf-8", Op: "decode", Offset: i, Byte: b[i]}
	}
	return s, nil
}

// invalidUTF8 returns the offset of the first invalid sequence in s, or -1.
func invalidUTF8(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return i
			}
		}
	}
	return -1
}

// textEncoding adapts an x/text charset.
type textEncoding struct {
	name string
	enc  encoding.Encoding
}

func (t *textEncoding) Name() string { return t.name }

func (t *textEncoding) Encode(word string) ([]byte, error) {
	b, err := t.enc.NewEncoder().Bytes([]byte(word))
	if err == nil {
		return b, nil
	}

	// Locate the first character the charset rejects.
	for i, r := range word {
		if _, rerr := t.enc.NewEncoder().String(string(r)); rerr != nil {
			return nil, &CharsetError{Encoding: t.name, Op: "encode", Offset: i, Rune: r, Err: rerr}
		}
	}
	return nil, &CharsetError{Encoding: t.name, Op: "encode", Offset: -1, Err: err}
}

func (t *textEncoding) Decode(b []byte) (string, error) {
	s, err := t.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &CharsetError{Encoding: t.name, Op: "decode", Offset: -1, Err: err}
	}
	// x/text decoders substitute U+FFFD for undefined input.
	if bytes.ContainsRune(s, utf8.RuneError) && !t.encodesReplacement() {
		return "", t.undefinedByte(b)
	}
	return string(s), nil
}

// encodesReplacement reports whether U+FFFD is a real character of the charset.
func (t *textEncoding) encodesReplacement() bool {
	_, err := t.enc.NewEncoder().String(string(utf8.RuneError))
	return err == nil
}

// undefinedByte locates the first byte a single byte charset cannot decode.
func (t *textEncoding) undefinedByte(b []byte) error {
	if cm, ok := t.enc.(*charmap.Charmap); ok {
		for i, c := range b {
			if cm.DecodeByte(c) == utf8.RuneError {
				return &CharsetError{Encoding: t.name, Op: "decode", Offset: i, Byte: c, Err: errUndefinedBytes}
			}
		}
	}
	return &CharsetError{Encoding: t.name, Op: "decode", Offset: -1, Err: errUndefinedBytes}
}
