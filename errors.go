package rosapi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Typed errors below match them with errors.Is.
var (
	// ErrInvalidLength is matched by every *LengthError.
	ErrInvalidLength = errors.New("invalid word length")
	// ErrUnexpectedClose is the cause of a read that returned no data.
	ErrUnexpectedClose = errors.New("unexpectedly closed connection")
	// ErrConnectionClosed is returned when operating on a closed transport.
	ErrConnectionClosed = errors.New("connection closed")
)

// LengthError reports a malformed or out of range word length prefix.
// Exactly one of Value or Raw describes the offending input.
type LengthError struct {
	Reason string
	Value  int
	Raw    []byte
}

func (e *LengthError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("rosapi: %s: %#x", e.Reason, e.Raw)
	}
	return fmt.Sprintf("rosapi: %s: %d", e.Reason, e.Value)
}

// Is reports whether target is ErrInvalidLength.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// CharsetError reports a word that cannot be represented in, or is not
// valid for, the configured text encoding.
type CharsetError struct {
	Encoding string
	Op       string // "encode" or "decode"
	Offset   int    // byte offset into the word, -1 if unknown
	Rune     rune   // offending code point when encoding
	Byte     byte   // offending byte when decoding
	Err      error  // underlying codec fault, if any
}

func (e *CharsetError) Error() string {
	switch {
	case e.Op == "encode" && e.Offset >= 0:
		return fmt.Sprintf("rosapi: %q codec can't encode character %U %q at offset %d",
			e.Encoding, e.Rune, e.Rune, e.Offset)
	case e.Op == "decode" && e.Offset >= 0:
		return fmt.Sprintf("rosapi: %q codec can't decode byte %#02x at offset %d",
			e.Encoding, e.Byte, e.Offset)
	case e.Err != nil:
		return fmt.Sprintf("rosapi: %q codec can't %s word: %v", e.Encoding, e.Op, e.Err)
	}
	return fmt.Sprintf("rosapi: %q codec can't %s word", e.Encoding, e.Op)
}

func (e *CharsetError) Unwrap() error {
	return e.Err
}

// ConnError wraps any fault raised by the underlying socket.
type ConnError struct {
	Op  string // "dial", "read" or "write"
	Err error
}

func (e *ConnError) Error() string {
	return "rosapi: " + e.Op + ": " + e.Err.Error()
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying fault was a timeout.
func (e *ConnError) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// FatalError is returned when the device terminates the session with a
// !fatal reply. Its message is the reason sent by the device.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return e.Reason
}
