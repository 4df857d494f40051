package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/config"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/render"
	"github.com/Zuo-Peng/chatstat/internal/tui"
)

// loadChat parses the configured chat export.
func loadChat(cfg *config.Config, logger *slog.Logger) (parse.Result, error) {
	if cfg.ChatFile == "" {
		return parse.Result{}, errNoChatFile
	}
	if len(cfg.Senders) == 0 {
		return parse.Result{}, errNoSenders
	}

	res, err := parse.ParseFile(cfg.ChatFile, cfg.Senders)
	if err != nil {
		return parse.Result{}, err
	}

	unattributed := 0
	for _, m := range res.Messages {
		if m.Sender == "" {
			unattributed++
		}
	}
	logger.Info("parsed chat", "path", cfg.ChatFile, "messages", res.Count(), "unattributed", unattributed)
	return res, nil
}

// newRenderer picks the chart renderer for the configured output mode.
// Display mode uses the interactive viewer on a terminal and plain text
// otherwise.
func newRenderer(cfg *config.Config) (chart.Renderer, error) {
	mode, err := chart.ParseOutputMode(cfg.OutputMode)
	if err != nil {
		return nil, err
	}
	if mode == chart.SaveToFile {
		return chart.NewPNG(cfg.OutputDir, cfg.DPI)
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		return tui.Display{}, nil
	}
	return render.Text{W: os.Stdout, Width: terminalWidth(fd)}, nil
}

func terminalWidth(fd int) int {
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return 80
}

// renderCharts skips charts without data and reports where saved charts went.
func renderCharts(r chart.Renderer, logger *slog.Logger, charts ...chart.Chart) error {
	var keep []chart.Chart
	for _, c := range charts {
		if c.Empty() {
			logger.Warn("nothing to plot", "chart", c.Title)
			continue
		}
		keep = append(keep, c)
	}
	if len(keep) == 0 {
		return nil
	}

	if err := r.Render(keep...); err != nil {
		return err
	}
	if png, ok := r.(*chart.PNG); ok {
		for _, c := range keep {
			logger.Info("saved chart", "path", png.Path(c), "dpi", png.DPI)
		}
	}
	return nil
}
