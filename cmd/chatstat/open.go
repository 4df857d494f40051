package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/open"
)

func openCmd(opts *globalOptions) *cobra.Command {
	var seq int

	cmd := &cobra.Command{
		Use:   "open <chatKey>",
		Short: "Open the chat export in $EDITOR at a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenMessage(db, args[0], seq)
		},
	}

	cmd.Flags().IntVar(&seq, "message", -1, "Message number to jump to")

	return cmd
}
