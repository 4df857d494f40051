package stats

import (
	"fmt"
	"strings"
)

// WordCounter selects how a message body is split into words.
type WordCounter int

const (
	// SplitSpace splits on every single space: "" is one word and
	// "a  b" is three.
	SplitSpace WordCounter = iota
	// SplitFields collapses runs of whitespace: "" is zero words.
	SplitFields
)

func ParseWordCounter(s string) (WordCounter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "space":
		return SplitSpace, nil
	case "fields":
		return SplitFields, nil
	default:
		return 0, fmt.Errorf("%w: %q (want space or fields)", ErrInvalidWordCounter, s)
	}
}

func (w WordCounter) String() string {
	switch w {
	case SplitSpace:
		return "space"
	case SplitFields:
		return "fields"
	default:
		return fmt.Sprintf("WordCounter(%d)", int(w))
	}
}

// Count returns the number of words in body.
func (w WordCounter) Count(body string) int {
	if w == SplitFields {
		return len(strings.Fields(body))
	}
	return len(strings.Split(body, " "))
}
