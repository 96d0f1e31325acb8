package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zereker/rosapi"
)

// TrapError is a command failure reported by the device with !trap.
type TrapError struct {
	Category string
	Message  string
}

func (e *TrapError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("trap (category %s): %s", e.Category, e.Message)
	}
	return "trap: " + e.Message
}

// Record is the attribute set of one !re reply.
type Record map[string]string

// login authenticates with the plain text method of RouterOS 6.43+.
func login(p *rosapi.Protocol, username, password string) error {
	_, err := execute(p, "/login", "=name="+username, "=password="+password)
	return err
}

// execute sends one command and collects its !re replies until !done.
// A !trap is returned as *TrapError once the command finished.
func execute(p *rosapi.Protocol, words ...string) ([]Record, error) {
	if err := p.WriteSentence(words...); err != nil {
		return nil, err
	}

	var (
		records []Record
		trap    *TrapError
	)
	for {
		sentence, err := p.ReadSentence()
		if err != nil {
			return nil, err
		}
		if len(sentence) == 0 {
			continue
		}

		attrs := parseAttributes(sentence[1:])
		switch sentence[0] {
		case rosapi.ReplyData:
			records = append(records, attrs)
		case rosapi.ReplyTrap:
			if trap == nil {
				trap = &TrapError{Category: attrs["category"], Message: attrs["message"]}
			}
		case rosapi.ReplyDone:
			if trap != nil {
				return nil, trap
			}
			if len(attrs) > 0 {
				records = append(records, attrs)
			}
			return records, nil
		case rosapi.ReplyEmpty:
		default:
			return nil, errors.Errorf("unexpected reply %q", sentence[0])
		}
	}
}

// parseAttributes collects =key=value words. Other words are ignored.
func parseAttributes(words []string) Record {
	attrs := make(Record, len(words))
	for _, word := range words {
		if !strings.HasPrefix(word, "=") {
			continue
		}
		key, value, _ := strings.Cut(word[1:], "=")
		attrs[key] = value
	}
	return attrs
}
