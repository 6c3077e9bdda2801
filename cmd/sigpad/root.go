package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/sigpad"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "sigpad",
	Short:   "Signature capture demos",
	Version: sigpad.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			sigpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
