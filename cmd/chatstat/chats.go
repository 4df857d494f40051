package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

func chatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List indexed chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chats, err := db.ListChats()
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}
			if len(chats) == 0 {
				fmt.Fprintln(os.Stderr, "No chats indexed (run 'chatstat index' first).")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Chat", "Messages", "First", "Last", "Senders"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for _, c := range chats {
				table.Append([]string{c.ChatKey, strconv.Itoa(c.MessageCount), c.FirstTs, c.LastTs, c.Senders})
			}
			table.Render()
			return nil
		},
	}
}
