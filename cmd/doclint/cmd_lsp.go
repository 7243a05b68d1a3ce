package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/doclint/lsp"
)

func newLSPCmd() *cobra.Command {
	var (
		jobs     int
		debounce time.Duration
		poll     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, lsp.Options{
				Jobs:     jobs,
				Debounce: debounce,
				Poll:     poll,
			})
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of units checked in parallel (default: number of CPUs)")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay between an edit and the check it triggers")
	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "interval for rescanning unit files on disk (0 disables)")

	return cmd
}
