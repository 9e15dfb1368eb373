package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl/pkg/session"
	"github.com/aretw0/scrawl/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit notes interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore()
		defer store.Close()

		err := tui.Run(context.Background(), store,
			session.WithSort(cfg.Sort),
			session.WithLocale(cfg.Locale),
		)
		if err != nil {
			fatal("TUI failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
