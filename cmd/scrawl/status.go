package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the notebook as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		name, path := resolveTarget()
		store := mustOpenStore()
		defer store.Close()

		status := struct {
			Version string `json:"version"`
			Adapter string `json:"adapter"`
			Path    string `json:"path"`
			Store   any    `json:"store"`
		}{
			Version: strings.TrimSpace(scrawl.Version),
			Adapter: name,
			Path:    path,
			Store:   store.State(),
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
