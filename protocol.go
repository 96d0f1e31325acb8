// Package rosapi implements the RouterOS API wire protocol: the length
// prefixed word encoding, sentence framing, and a synchronous
// request/response Protocol over a single byte stream socket.
//
// A Protocol is not safe for concurrent use. Callers that need parallel
// sessions open one connection per session.
package rosapi

import (
	"strings"
)

// Reply tags sent by the device as the first word of a sentence.
const (
	ReplyData  = "!re"
	ReplyDone  = "!done"
	ReplyTrap  = "!trap"
	ReplyFatal = "!fatal"
	ReplyEmpty = "!empty"
)

// fatalReasonSep joins multi-word !fatal reasons.
const fatalReasonSep = ", "

// maxReadChunk bounds the size of a single transport read.
const maxReadChunk = 64 * 1024

// passwordAttr is the attribute whose value is kept out of the logs.
const passwordAttr = "=password="

// Protocol reads and writes whole sentences over a Transport.
type Protocol struct {
	transport *Transport
	encoder   *Encoder
	decoder   *Decoder
	logger    Logger
}

// New creates a Protocol over an already connected socket.
func New(sock Socket, opt ...Option) *Protocol {
	return newProtocolWithOptions(sock, buildOptions(opt))
}

// NewProtocol creates a Protocol over an existing Transport.
func NewProtocol(transport *Transport, opt ...Option) *Protocol {
	opts := buildOptions(opt)
	return &Protocol{
		transport: transport,
		encoder:   NewEncoder(opts.encoding),
		decoder:   NewDecoder(opts.encoding),
		logger:    opts.logger,
	}
}

func newProtocolWithOptions(sock Socket, opts options) *Protocol {
	return &Protocol{
		transport: newTransportWithOptions(sock, opts),
		encoder:   NewEncoder(opts.encoding),
		decoder:   NewDecoder(opts.encoding),
		logger:    opts.logger,
	}
}

// WriteSentence encodes words as one sentence and writes it in a single
// transport write.
func (p *Protocol) WriteSentence(words ...string) error {
	data, err := p.encoder.EncodeSentence(words...)
	if err != nil {
		return err
	}

	for _, word := range words {
		p.logger.Debug("--->", "word", redact(word))
	}
	return p.transport.Write(data)
}

// ReadSentence reads words until the zero length terminator and returns
// them in order. A sentence starting with !fatal closes the transport and
// returns a *FatalError carrying the device's reason. Transport and
// decoding faults are returned as they are.
func (p *Protocol) ReadSentence() ([]string, error) {
	var raw []byte
	for {
		prefix, n, err := p.readLength()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}

		payload, err := p.readFull(n)
		if err != nil {
			return nil, err
		}
		raw = append(raw, prefix...)
		raw = append(raw, payload...)
	}

	words, err := p.decoder.DecodeSentence(raw)
	if err != nil {
		return nil, err
	}

	for _, word := range words {
		p.logger.Debug("<---", "word", word)
	}

	if len(words) > 0 && words[0] == ReplyFatal {
		_ = p.transport.Close()
		return nil, &FatalError{Reason: strings.Join(words[1:], fatalReasonSep)}
	}
	return words, nil
}

// Close closes the underlying transport. Safe to call multiple times.
func (p *Protocol) Close() error {
	return p.transport.Close()
}

// Closed returns true once the transport has been closed, either by Close
// or after a !fatal reply.
func (p *Protocol) Closed() bool {
	return p.transport.IsClosed()
}

// readLength reads one length prefix and returns its raw bytes and value.
func (p *Protocol) readLength() ([]byte, int, error) {
	prefix, err := p.readFull(1)
	if err != nil {
		return nil, 0, err
	}

	extra, err := DetermineLength(prefix[0])
	if err != nil {
		return nil, 0, err
	}
	if extra > 0 {
		rest, err := p.readFull(extra)
		if err != nil {
			return nil, 0, err
		}
		prefix = append(prefix, rest...)
	}

	n, err := DecodeLength(prefix)
	if err != nil {
		return nil, 0, err
	}
	return prefix, n, nil
}

// readFull accumulates transport reads until exactly n bytes arrived.
func (p *Protocol) readFull(n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, maxReadChunk))
	for len(buf) < n {
		chunk, err := p.transport.Read(min(n-len(buf), maxReadChunk))
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)
	}
	return buf, nil
}

// redact hides password values in logged words.
func redact(word string) string {
	if strings.HasPrefix(word, passwordAttr) {
		return passwordAttr + "***"
	}
	return word
}
