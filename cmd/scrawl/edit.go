package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl/pkg/core"
)

var (
	editTitle string
	editBody  string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Edit replaces the title and/or body of a note. Only the flags given are
applied, so "edit ID --title X" keeps the body.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var e core.Edit
		if cmd.Flags().Changed("title") {
			e.Title = &editTitle
		}
		if cmd.Flags().Changed("body") {
			e.Body = &editBody
		}
		if e.IsZero() {
			fatal("Nothing to edit", errors.New("pass --title and/or --body"))
		}

		store := mustOpenStore()
		defer store.Close()

		note, err := store.CommitEdit(context.Background(), args[0], e)
		if err != nil {
			fatal("Failed to edit note", err)
		}
		fmt.Printf("Note updated: %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "New body")
}
