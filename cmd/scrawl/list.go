package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/scrawl/pkg/view"
)

var (
	listJSON  bool
	listYAML  bool
	listQuery string
	listSort  string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List prints the notes matching --query (case-insensitive, title or body)
ordered by --sort: title, dateCreated or dateUpdated.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sort := cfg.Sort
		if listSort != "" {
			var err error
			if sort, err = view.ParseSortOption(listSort); err != nil {
				fatal("Invalid sort", err)
			}
		}

		store := mustOpenStore()
		defer store.Close()

		notes := view.Projection{Locale: cfg.Locale}.Apply(store.Notes(), listQuery, sort)

		switch {
		case listJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
		case listYAML:
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding YAML", err)
			}
			encoder.Close()
		default:
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.UpdatedAt.Local().Format("2006-01-02 15:04"), n.Title)
			}
			w.Flush()
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Only notes whose title or body contain this text")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort order: title, dateCreated, dateUpdated (default from config)")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
