package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scrawl"
	"github.com/aretw0/scrawl/internal/config"
	"github.com/aretw0/scrawl/internal/platform"
)

var (
	verbose    bool
	configPath string
	adapter    string
	notesPath  string
	readOnly   bool

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scrawl",
	Short: "Keep short notes from the terminal",
	Long: `Scrawl keeps a list of short title/body notes in a single file
(JSON or YAML) or SQLite database. Search them, sort them and edit them from
the command line or from the interactive UI (scrawl tui).

A .scrawl directory in the current directory or any parent holds a
project-local notebook, used instead of the one in the config file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			fatal("Failed to load config", err)
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/scrawl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVarP(&notesPath, "path", "p", "", "Notes file or database")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse every change to the notes")
}

// resolveTarget applies flag > project-local notebook > config precedence.
func resolveTarget() (string, string) {
	name := cfg.Adapter
	if adapter != "" {
		name = adapter
	}

	if notesPath != "" {
		return name, config.ExpandNotesPath(notesPath)
	}

	if name == "fs" {
		if wd, err := os.Getwd(); err == nil {
			if root, err := platform.FindRoot(wd); err == nil {
				slog.Debug("using project notebook", "root", root)
				return name, platform.LocalPath(root)
			}
		}
	}
	return name, cfg.NotesPath(name)
}

func openStore() (*scrawl.Store, error) {
	name, path := resolveTarget()
	slog.Debug("opening notebook", "adapter", name, "path", path)
	return scrawl.New(path,
		scrawl.WithAdapter(name),
		scrawl.WithReadOnly(readOnly),
		scrawl.WithLogger(slog.Default()),
		scrawl.WithWatcherErrorHandler(func(err error) {
			slog.Warn("watcher error", "error", err)
		}),
	)
}

func mustOpenStore() *scrawl.Store {
	store, err := openStore()
	if err != nil {
		fatal("Failed to open notebook", err)
	}
	return store
}
