package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title] [body]",
	Short: "Add a note",
	Long:  `Add creates a note with the given title and optional body and prints its ID.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		body := ""
		if len(args) == 2 {
			body = args[1]
		}

		store := mustOpenStore()
		defer store.Close()

		note, err := store.Add(context.Background(), args[0], body)
		if err != nil {
			fatal("Failed to add note", err)
		}
		fmt.Printf("Note added: %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
