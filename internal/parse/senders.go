package parse

import (
	"sort"
	"strings"
)

// SenderSet is the normalized universe of sender names messages are
// attributed to.
type SenderSet struct {
	names    []string
	priority []string
	index    map[string]struct{}
}

// NewSenderSet lowercases and trims names, dropping blanks and duplicates.
// Caller order is kept for reporting.
func NewSenderSet(names ...string) SenderSet {
	s := SenderSet{index: make(map[string]struct{})}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}

	// longest name first so "anna" is tried before "ann"
	s.priority = append([]string(nil), s.names...)
	sort.SliceStable(s.priority, func(i, j int) bool {
		a, b := s.priority[i], s.priority[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return s
}

// Names returns the senders in caller order.
func (s SenderSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Priority returns the senders in attribution order.
func (s SenderSet) Priority() []string {
	return append([]string(nil), s.priority...)
}

func (s SenderSet) Contains(name string) bool {
	_, ok := s.index[strings.ToLower(name)]
	return ok
}

func (s SenderSet) Len() int {
	return len(s.names)
}
