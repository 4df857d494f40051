package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand. They
// override the config file and environment only when set explicitly.
type globalOptions struct {
	configPath string
	chatFile   string
	senders    []string
	mode       chart.OutputMode
	outDir     string
	dpi        int
	logLevel   string
}

func (o *globalOptions) bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&o.configPath, "config", "", "Config file (default $CHATSTAT_CONFIG or ~/.config/chatstat/config.toml)")
	fs.StringVarP(&o.chatFile, "file", "f", "", "Chat export to analyse")
	fs.StringSliceVarP(&o.senders, "senders", "s", nil, "Sender names to attribute messages to (comma separated)")
	fs.Var(&o.mode, "mode", "Chart output: display or save")
	fs.StringVar(&o.outDir, "out", "", "Directory for saved charts")
	fs.IntVar(&o.dpi, "dpi", chart.DefaultDPI, "Resolution of saved charts (300-400)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// load resolves the configuration for cmd and builds its logger.
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("file") {
		cfg.ChatFile = o.chatFile
	}
	if fs.Changed("senders") {
		cfg.Senders = o.senders
	}
	if fs.Changed("mode") {
		cfg.OutputMode = o.mode.String()
	}
	if fs.Changed("out") {
		cfg.OutputDir = o.outDir
	}
	if fs.Changed("dpi") {
		cfg.DPI = o.dpi
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	logger.Debug("config loaded", "chat_file", cfg.ChatFile, "senders", cfg.Senders, "mode", cfg.OutputMode)
	return cfg, logger, nil
}

var (
	errNoChatFile = fmt.Errorf("no chat file configured (set chat_file or pass --file)")
	errNoSenders  = fmt.Errorf("no senders configured (set senders or pass --senders)")
)
