package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/Zuo-Peng/chatstat/internal/stats"
)

const (
	SendersFile  = "number_messages_by_name.png"
	ActivityFile = "group_chat_acitivity_by_time.png"
)

var (
	ErrInvalidOutputMode = fmt.Errorf("invalid output mode")
	ErrInvalidDPI        = fmt.Errorf("invalid dpi")
	ErrEmptyChart        = fmt.Errorf("chart has no data")
)

type Kind int

const (
	Bar  Kind = iota // grouped bars, one group per category
	Area             // filled line over ordered categories
)

type Series struct {
	Label  string
	Values []float64
}

// Chart is a render request. Every series has one value per category.
type Chart struct {
	Kind       Kind
	Filename   string
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
}

func (c Chart) validate() error {
	if len(c.Series) == 0 || len(c.Categories) == 0 {
		return fmt.Errorf("%s: %w", c.Title, ErrEmptyChart)
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.Categories) {
			return fmt.Errorf("%s: series %q has %d values for %d categories",
				c.Title, s.Label, len(s.Values), len(c.Categories))
		}
	}
	return nil
}

// Empty reports whether the chart has nothing to draw.
func (c Chart) Empty() bool {
	return len(c.Categories) == 0
}

// Renderer draws charts for display or export.
type Renderer interface {
	Render(charts ...Chart) error
}

// Senders builds the grouped bar chart of messages and words per sender.
func Senders(rows []stats.SenderStats) Chart {
	return Chart{
		Kind:       Bar,
		Filename:   SendersFile,
		Title:      "Number messages per sender",
		XLabel:     "Sender [name]",
		YLabel:     "Messages [number]",
		Categories: lo.Map(rows, func(r stats.SenderStats, _ int) string { return r.Sender }),
		Series: []Series{
			{Label: "Messages", Values: lo.Map(rows, func(r stats.SenderStats, _ int) float64 { return float64(r.Messages) })},
			{Label: "Words", Values: lo.Map(rows, func(r stats.SenderStats, _ int) float64 { return float64(r.Words) })},
		},
	}
}

// Activity builds the filled activity chart for sorted buckets.
func Activity(buckets []stats.Bucket, g stats.Granularity) Chart {
	return Chart{
		Kind:       Area,
		Filename:   ActivityFile,
		Title:      "Total group activity by time",
		XLabel:     g.Label(),
		YLabel:     "Total messages [number]",
		Categories: lo.Map(buckets, func(b stats.Bucket, _ int) string { return b.Key }),
		Series: []Series{
			{Label: "Messages", Values: lo.Map(buckets, func(b stats.Bucket, _ int) float64 { return float64(b.Count) })},
		},
	}
}

// OutputMode selects between showing charts and saving them as PNG.
type OutputMode int

const (
	Display OutputMode = iota
	SaveToFile
)

// ParseOutputMode accepts display, save or the numeric selectors 0 and 1.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "display", "show", "0":
		return Display, nil
	case "save", "file", "1":
		return SaveToFile, nil
	}
	return 0, fmt.Errorf("%w: %q (want display or save)", ErrInvalidOutputMode, s)
}

func (m OutputMode) String() string {
	switch m {
	case Display:
		return "display"
	case SaveToFile:
		return "save"
	default:
		return "OutputMode(" + strconv.Itoa(int(m)) + ")"
	}
}

var _ pflag.Value = (*OutputMode)(nil)

func (m *OutputMode) Set(s string) error {
	v, err := ParseOutputMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *OutputMode) Type() string {
	return "mode"
}
