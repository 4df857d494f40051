package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// Granularity is the width of an activity bucket.
type Granularity int

const (
	Day Granularity = iota
	HourMinuteSecond
	HourMinute
	Hour
)

var _ pflag.Value = (*Granularity)(nil)

var granularityNames = map[Granularity]string{
	Day:              "day",
	HourMinuteSecond: "hms",
	HourMinute:       "hm",
	Hour:             "hour",
}

// ParseGranularity accepts day, hms, hm, hour or the numeric selectors 0-3.
func ParseGranularity(s string) (Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range granularityNames {
		if s == name {
			return g, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Granularity(n).Valid() {
		return Granularity(n), nil
	}
	return 0, fmt.Errorf("%w: %q (want day, hms, hm or hour)", ErrInvalidGranularity, s)
}

func (g Granularity) Valid() bool {
	_, ok := granularityNames[g]
	return ok
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Set and Type make Granularity usable as a pflag.Value.
func (g *Granularity) Set(s string) error {
	v, err := ParseGranularity(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

func (g *Granularity) Type() string {
	return "granularity"
}

// Label is the x axis label for charts bucketed by g.
func (g Granularity) Label() string {
	switch g {
	case Day:
		return "Time [day]"
	case HourMinuteSecond:
		return "Time [hour:minute:second]"
	case HourMinute:
		return "Time [hour:minute]"
	case Hour:
		return "Time [hour]"
	default:
		return ""
	}
}

// Key derives the bucket key of a raw timestamp such as "01.01.20, 10:45:00".
func (g Granularity) Key(timestamp string) string {
	parts := strings.Split(timestamp, ", ")
	switch g {
	case Day:
		return parts[0]
	case HourMinuteSecond:
		return parts[len(parts)-1]
	case HourMinute:
		return prefix(parts[len(parts)-1], 5)
	case Hour:
		return prefix(parts[len(parts)-1], 2)
	default:
		return ""
	}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

type Bucket struct {
	Key   string
	Count int
}

// CountByTime counts messages per bucket key. Messages whose key is empty
// are skipped. Buckets are sorted by key.
func CountByTime(msgs []parse.Message, g Granularity) ([]Bucket, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGranularity, int(g))
	}

	counts := make(map[string]int)
	for _, m := range msgs {
		key := g.Key(m.Timestamp)
		if key == "" {
			continue
		}
		counts[key]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, Bucket{Key: k, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets, nil
}
