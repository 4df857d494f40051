package parse

import (
	"fmt"
	"os"
	"strings"
)

// ParseFile reads a chat export and parses it.
func ParseFile(path string, senders []string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read chat file %s: %w", path, err)
	}
	return Parse(string(data), NewSenderSet(senders...)), nil
}

// Parse splits raw chat text into messages. Each "[" opens a message;
// text before the first one is dropped.
func Parse(raw string, senders SenderSet) Result {
	raw = strings.ToLower(raw)
	fragments := strings.Split(raw, "[")

	result := Result{Senders: senders}

	// line tracks where the current fragment's "[" sits
	line := 1 + strings.Count(fragments[0], "\n")
	for i, frag := range fragments {
		if i == 0 {
			continue
		}

		timestamp, remainder := splitFragment(frag)
		sender, body := attribute(remainder, senders)

		result.Messages = append(result.Messages, Message{
			Seq:       i,
			Timestamp: timestamp,
			Sender:    sender,
			Body:      body,
			Line:      line,
		})
		line += strings.Count(frag, "\n")
	}

	return result
}

// splitFragment returns the text before the first "]" and the text after
// the last one.
func splitFragment(frag string) (timestamp, remainder string) {
	frag = strings.Trim(frag, "\r\n")
	first := strings.Index(frag, "]")
	if first < 0 {
		return frag, ""
	}
	last := strings.LastIndex(frag, "]")
	return frag[:first], frag[last+1:]
}

func attribute(remainder string, senders SenderSet) (sender, body string) {
	if remainder == "" {
		return "", ""
	}

	// "<name>:" right after the timestamp
	head := strings.TrimLeft(remainder, " ")
	for _, name := range senders.Priority() {
		if rest, ok := strings.CutPrefix(head, name); ok && strings.HasPrefix(rest, ":") {
			return name, dropRunes(rest, 2)
		}
	}

	// name anywhere in the line; body follows its last occurrence
	for _, name := range senders.Priority() {
		idx := strings.LastIndex(remainder, name)
		if idx < 0 {
			continue
		}
		return name, dropRunes(remainder[idx+len(name):], 2)
	}

	return "", ""
}

// dropRunes skips the ": " separator that follows a sender name.
func dropRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return ""
	}
	return string(r[n:])
}
