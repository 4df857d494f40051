package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

func reportCmd(opts *globalOptions) *cobra.Command {
	granularity := stats.Hour

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print sender counts and plot sender and activity charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("granularity") {
				if granularity, err = stats.ParseGranularity(cfg.Granularity); err != nil {
					return err
				}
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

			if err := stats.WriteMessageCount(os.Stdout, res.Count()); err != nil {
				return err
			}
			rows := stats.CountBySender(res.Messages, res.Senders, words)
			if err := stats.WriteSenderReport(os.Stdout, rows); err != nil {
				return err
			}

			buckets, err := stats.CountByTime(res.Messages, granularity)
			if err != nil {
				return err
			}

			return renderCharts(renderer, logger, chart.Senders(rows), chart.Activity(buckets, granularity))
		},
	}

	cmd.Flags().VarP(&granularity, "granularity", "g", "Bucket width: day, hms, hm or hour")

	return cmd
}
