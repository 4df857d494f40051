package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatstat/internal/chart"
)

const defaultWidth = 80

var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Text draws charts as horizontal bars, one row per category and series.
type Text struct {
	W     io.Writer
	Width int
}

func (t Text) Render(charts ...chart.Chart) error {
	for i, c := range charts {
		if i > 0 {
			if _, err := io.WriteString(t.W, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(t.W, Chart(c, t.Width)); err != nil {
			return err
		}
	}
	return nil
}

var barGlyphs = map[chart.Kind]string{
	chart.Bar:  "█",
	chart.Area: "▒",
}

// Chart renders one chart within width columns.
func Chart(c chart.Chart, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("%s / %s", c.YLabel, c.XLabel)))
	b.WriteString("\n")

	if c.Empty() {
		b.WriteString(axisStyle.Render("(no data)"))
		b.WriteString("\n")
		return b.String()
	}

	labelW := 0
	for _, cat := range c.Categories {
		labelW = max(labelW, runewidth.StringWidth(cat))
	}
	seriesW := 0
	if len(c.Series) > 1 {
		for _, s := range c.Series {
			seriesW = max(seriesW, runewidth.StringWidth(s.Label))
		}
	}

	maxVal := 0.0
	valueW := 1
	for _, s := range c.Series {
		for _, v := range s.Values {
			maxVal = max(maxVal, v)
			valueW = max(valueW, len(formatValue(v)))
		}
	}

	// label | series | bar | value
	barW := width - labelW - 3 - valueW - 1
	if seriesW > 0 {
		barW -= seriesW + 1
	}
	barW = max(barW, 1)

	glyph := barGlyphs[c.Kind]
	for i, cat := range c.Categories {
		for si, s := range c.Series {
			label := ""
			if si == 0 {
				label = cat
			}
			b.WriteString(runewidth.FillRight(label, labelW))
			b.WriteString(axisStyle.Render(" │ "))
			if seriesW > 0 {
				b.WriteString(runewidth.FillRight(s.Label, seriesW))
				b.WriteString(" ")
			}

			n := 0
			if maxVal > 0 {
				n = int(s.Values[i] / maxVal * float64(barW))
			}
			style := seriesStyles[si%len(seriesStyles)]
			b.WriteString(style.Render(strings.Repeat(glyph, n)))
			b.WriteString(" ")
			b.WriteString(formatValue(s.Values[i]))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
