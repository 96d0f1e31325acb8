package rosapi

// MaxWordLength is the largest word length the prefix scheme can carry.
const MaxWordLength = 0x0FFFFFFF

// Length prefix width classes, selected by the high bits of the first byte.
const (
	oneByteLimit   = 0x80
	twoByteLimit   = 0x4000
	threeByteLimit = 0x200000

	twoByteTag   = 0x8000
	threeByteTag = 0xC00000
	fourByteTag  = 0xE0000000
)

// lengthMasks strips the tag bits from a leading byte, indexed by the
// number of bytes that follow it.
var lengthMasks = [4]byte{0x7F, 0x3F, 0x1F, 0x0F}

// DetermineLength returns how many bytes follow the leading byte b in a
// length prefix. Leading bytes of the form 1111xxxx are reserved.
func DetermineLength(b byte) (int, error) {
	switch {
	case b&0x80 == 0x00:
		return 0, nil
	case b&0xC0 == 0x80:
		return 1, nil
	case b&0xE0 == 0xC0:
		return 2, nil
	case b&0xF0 == 0xE0:
		return 3, nil
	}
	return 0, &LengthError{Reason: "unknown control byte", Raw: []byte{b}}
}

// DecodeLength decodes a complete length prefix. The slice must hold
// exactly the leading byte and the bytes DetermineLength demands for it.
func DecodeLength(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, &LengthError{Reason: "empty length prefix", Raw: []byte{}}
	}

	extra, err := DetermineLength(b[0])
	if err != nil {
		return 0, &LengthError{Reason: "unknown control byte", Raw: b}
	}
	if len(b) != extra+1 {
		return 0, &LengthError{Reason: "length prefix size mismatch", Raw: b}
	}

	n := int(b[0] & lengthMasks[extra])
	for _, c := range b[1:] {
		n = n<<8 | int(c)
	}
	return n, nil
}

// EncodeLength encodes n using the narrowest width class that fits it.
func EncodeLength(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, &LengthError{Reason: "negative word length", Value: n}
	case n < oneByteLimit:
		return []byte{byte(n)}, nil
	case n < twoByteLimit:
		v := uint32(n) | twoByteTag
		return []byte{byte(v >> 8), byte(v)}, nil
	case n < threeByteLimit:
		v := uint32(n) | threeByteTag
		return []byte{byte(v >> 16), byte(v >> 8), byte(v)}, nil
	case n <= MaxWordLength:
		v := uint32(n) | fourByteTag
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}, nil
	}
	return nil, &LengthError{Reason: "word length too big", Value: n}
}
