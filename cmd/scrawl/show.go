package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show prints the title and body of a note, or the whole note as JSON with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore()
		defer store.Close()

		note, ok := store.Get(args[0])
		if !ok {
			fatal("Error reading note", fmt.Errorf("%w: %s", core.ErrNotFound, args[0]))
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Println(note.Title)
		if note.Body != "" {
			fmt.Println()
			fmt.Println(note.Body)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
