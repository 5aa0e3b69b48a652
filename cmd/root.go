package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bilimpath/bilim/internal/config"
	"github.com/bilimpath/bilim/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bilim",
	Short: "Terminal client for the BilimPath learning platform",
	Long:  "Bilim is a terminal client for BilimPath: browse your subjects, track mastery, and take adaptive exams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "BilimPath API base URL (default "+config.DefaultAPIBaseURL+")")
	rootCmd.PersistentFlags().String("db", "", "Path to the local SQLite database file")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (logging is off otherwise)")

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore resolves the database path from config and opens the store.
func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}
