package rosapi

// Decoder turns wire bytes back into words.
type Decoder struct {
	Encoding Encoding
}

// NewDecoder returns a Decoder using enc, or ASCII when enc is nil.
func NewDecoder(enc Encoding) *Decoder {
	if enc == nil {
		enc = ASCII
	}
	return &Decoder{Encoding: enc}
}

// DecodeSentence splits b into consecutive length prefixed words and
// decodes each of them. The sentence terminator must not be included.
func (d *Decoder) DecodeSentence(b []byte) ([]string, error) {
	words := make([]string, 0, 4)

	for offset := 0; offset < len(b); {
		extra, err := DetermineLength(b[offset])
		if err != nil {
			return nil, err
		}

		end := offset + 1 + extra
		if end > len(b) {
			return nil, &LengthError{Reason: "truncated length prefix", Raw: b[offset:]}
		}

		n, err := DecodeLength(b[offset:end])
		if err != nil {
			return nil, err
		}
		offset = end

		if n > len(b)-offset {
			return nil, &LengthError{Reason: "word length exceeds sentence", Value: n}
		}

		word, err := d.Encoding.Decode(b[offset : offset+n])
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		offset += n
	}

	return words, nil
}
