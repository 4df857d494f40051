package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:           "chatstat",
		Short:         "Chat export statistics - message, word and activity counts per sender",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(reportCmd(&opts))
	rootCmd.AddCommand(sendersCmd(&opts))
	rootCmd.AddCommand(activityCmd(&opts))
	rootCmd.AddCommand(indexCmd(&opts))
	rootCmd.AddCommand(chatsCmd(&opts))
	rootCmd.AddCommand(searchCmd(&opts))
	rootCmd.AddCommand(previewCmd(&opts))
	rootCmd.AddCommand(openCmd(&opts))
	rootCmd.AddCommand(doctorCmd(&opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
