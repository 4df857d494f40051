package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/search"
	"github.com/Zuo-Peng/chatstat/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	return strings.ReplaceAll(snippet, "<<<", sColorReset)
}

func searchCmd(opts *globalOptions) *cobra.Command {
	var sender, chat string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed messages",
		Long: `Search indexed messages using FTS5. On a terminal an interactive browser
opens; otherwise output is TSV for fzf integration:
  chatKey, seq, timestamp, sender, snippet

Example:
  chatstat search "$*" | fzf --ansi --delimiter='\t' --with-nth=3.. \
    --preview 'chatstat preview {1} --hit {2} --query {q}' \
    --bind 'enter:execute(chatstat open {1} --message {2})'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			// refresh the index before searching
			if len(cfg.Senders) > 0 {
				if _, err := index.IndexAll(db, cfg.ChatRoot, cfg.Senders, logger); err != nil {
					logger.Warn("refresh index", "err", err)
				}
			}

			sOpts := search.Options{
				Chat:   chat,
				Sender: sender,
				Limit:  limit,
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], sOpts)
			}

			sOpts.Query = args[0]
			results, err := search.Search(db, sOpts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.NewReplacer("\t", " ", "\n", " ").Replace(r.Snippet)
				// first two fields (chatKey, seq) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s%s%s\t%s\n",
					r.ChatKey,
					r.Seq,
					sColorDim, r.Timestamp, sColorReset,
					sColorBlue, r.Sender, sColorReset,
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&chat, "chat", "", "Only messages from this chat key")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
