package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

func indexCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index [root]",
		Short: "Parse chat exports under the chat root and index their messages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.ChatRoot = args[0]
			}
			if len(cfg.Senders) == 0 {
				return errNoSenders
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", cfg.ChatRoot)

			stats, err := index.IndexAll(db, cfg.ChatRoot, cfg.Senders, logger)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}
}
