package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

func sendersCmd(opts *globalOptions) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "senders",
		Short: "Count messages and words per sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			words, err := stats.ParseWordCounter(cfg.WordSplit)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cfg)
			if err != nil {
				return err
			}

			res, err := loadChat(cfg, logger)
			if err != nil {
				return err
			}

			rows := stats.CountBySender(res.Messages, res.Senders, words)
			if table {
				stats.WriteSenderTable(os.Stdout, rows)
			} else if err := stats.WriteSenderReport(os.Stdout, rows); err != nil {
				return err
			}

			return renderCharts(renderer, logger, chart.Senders(rows))
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Print the counts as a table")

	return cmd
}
