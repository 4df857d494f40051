package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

func activityCmd(opts *globalOptions) *cobra.Command {
	granularity := stats.Hour
	var list bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Count messages by time of day or by day",
		Long: `Buckets messages by a slice of their timestamp and plots the counts.
Granularity is one of day, hms (hour:minute:second), hm (hour:minute) or hour.`,
		Args: cobra.NoArgs,
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
			renderer, err := newRenderer(cfg)
			if err != nil {
				return err
			}

			res, err := loadChat(cfg, logger)
			if err != nil {
				return err
			}

			buckets, err := stats.CountByTime(res.Messages, granularity)
			if err != nil {
				return err
			}
			if list {
				for _, b := range buckets {
					fmt.Printf("%s\t%d\n", b.Key, b.Count)
				}
			}

			return renderCharts(renderer, logger, chart.Activity(buckets, granularity))
		},
	}

	cmd.Flags().VarP(&granularity, "granularity", "g", "Bucket width: day, hms, hm or hour")
	cmd.Flags().BoolVar(&list, "list", false, "Print the bucket counts")

	return cmd
}
