package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/scan"
)

func doctorCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, chat file, chat root and index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Granularity: %s\n", cfg.Granularity)
			fmt.Printf("  Output:      %s (dir %s, %d dpi)\n", cfg.OutputMode, cfg.OutputDir, cfg.DPI)
			fmt.Printf("  Word split:  %s\n", cfg.WordSplit)
			senders := parse.NewSenderSet(cfg.Senders...)
			if senders.Len() == 0 {
				fmt.Println("  Senders:     NONE (set senders or pass --senders)")
			} else {
				fmt.Printf("  Senders:     %v (attribution order %v)\n", senders.Names(), senders.Priority())
			}

			fmt.Println("\n=== Chat file ===")
			if cfg.ChatFile == "" {
				fmt.Println("  NOT SET")
			} else if res, err := parse.ParseFile(cfg.ChatFile, cfg.Senders); err != nil {
				fmt.Printf("  %s (%v)\n", cfg.ChatFile, err)
			} else {
				attributed := 0
				for _, m := range res.Messages {
					if m.Sender != "" {
						attributed++
					}
				}
				fmt.Printf("  %s (OK)\n", cfg.ChatFile)
				fmt.Printf("  Messages:   %d\n", res.Count())
				fmt.Printf("  Attributed: %d\n", attributed)
			}

			fmt.Println("\n=== Chat root ===")
			checkDir(cfg.ChatRoot)
			if files, err := scan.ScanRoot(cfg.ChatRoot); err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Chat exports: %d\n", len(files))
			}

			fmt.Println("\n=== Index ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatstat index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chatCount, err := db.ChatCount()
			if err != nil {
				return fmt.Errorf("count chats: %w", err)
			}
			msgCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Printf("  Chats:    %d\n", chatCount)
			fmt.Printf("  Messages: %d\n", msgCount)

			if ftsCount, err := db.FTSCount(); err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else if ftsCount == msgCount {
				fmt.Printf("  FTS5:     %d (synced)\n", ftsCount)
			} else {
				fmt.Printf("  FTS5:     MISMATCH (messages=%d, fts=%d)\n", msgCount, ftsCount)
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("  Size:     %s\n", humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}
}

func checkDir(path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s (NOT FOUND)\n", path)
	} else if !info.IsDir() {
		fmt.Printf("  %s (single file)\n", path)
	} else {
		fmt.Printf("  %s (OK)\n", path)
	}
}
