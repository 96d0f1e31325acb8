package rosapi

// Encoder turns words and sentences into their wire format.
type Encoder struct {
	Encoding Encoding
}

// NewEncoder returns an Encoder using enc, or ASCII when enc is nil.
func NewEncoder(enc Encoding) *Encoder {
	if enc == nil {
		enc = ASCII
	}
	return &Encoder{Encoding: enc}
}

// EncodeWord returns the length prefixed bytes of word.
func (e *Encoder) EncodeWord(word string) ([]byte, error) {
	payload, err := e.Encoding.Encode(word)
	if err != nil {
		return nil, err
	}

	prefix, err := EncodeLength(len(payload))
	if err != nil {
		return nil, err
	}

	return append(prefix, payload...), nil
}

// EncodeSentence encodes each word in order and appends the zero length
// terminator word.
func (e *Encoder) EncodeSentence(words ...string) ([]byte, error) {
	var out []byte
	for _, word := range words {
		encoded, err := e.EncodeWord(word)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded...)
	}
	return append(out, 0x00), nil
}
