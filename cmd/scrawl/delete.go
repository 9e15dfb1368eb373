package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl/pkg/core"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Long:    `Delete permanently removes a note from the notebook.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		store := mustOpenStore()
		defer store.Close()

		// The store treats an unknown id as a no-op; the CLI reports it.
		if _, ok := store.Get(id); !ok {
			fatal("Error deleting note", fmt.Errorf("%w: %s", core.ErrNotFound, id))
		}
		if err := store.Delete(context.Background(), id); err != nil {
			fatal("Error deleting note", err)
		}

		fmt.Printf("Note deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
