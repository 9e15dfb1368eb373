package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to the notebook as they happen",
	Long: `Watch prints one line per change (CREATE, MODIFY, DELETE or RELOAD) until
interrupted. Changes made by other processes are seen with the fs adapter.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := mustOpenStore()
		defer store.Close()

		src := lifecycle.NewSource(store)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to watch notebook", err)
		}
		fmt.Fprintln(os.Stderr, "Watching for changes, press Ctrl+C to stop.")

		for e := range src.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
