package cmd

import (
	"fmt"
	"os"

	"provisionhub/config"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/version"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	dbPath       string // Bound to --dbpath flag
	logFileFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "provisionhub",
	Short:   "Provision Intelligence Hub: browse and analyse healthcare provisioning records",
	Version: version.AppVersion,
	Long: `provisionhub keeps services, service groups, clusters and ABCD classification sets
in a local SQLite database and presents them as searchable, sortable and filterable tables,
on the command line, in an interactive terminal browser, or over an HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile, logFileFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}

		finalDBPath := config.AppConfig.Database.Path
		if dbPath != "" {
			expandedPath, err := config.ExpandTilde(dbPath)
			if err != nil {
				logger.Error("Error expanding tilde in --dbpath flag '%s': %v. Using original.", dbPath, err)
				expandedPath = dbPath
			}
			finalDBPath = expandedPath
			logger.Info("PersistentPreRunE: Using database path from --dbpath flag: '%s'", finalDBPath)
		}
		if finalDBPath == "" {
			logger.Error("PersistentPreRunE: Database path is empty after checking flag and config! Falling back to 'provisionhub.db' in CWD.")
			finalDBPath = "provisionhub.db"
		}
		config.AppConfig.Database.Path = finalDBPath

		if err := database.InitDB(finalDBPath); err != nil {
			return fmt.Errorf("failed to initialize database at %s: %w", finalDBPath, err)
		}
		logger.Debug("Database initialized at: %s (from rootCmd PersistentPreRunE)", finalDBPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := database.CloseDB(); err != nil {
			logger.Error("Closing database: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/provisionhub/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to SQLite database file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config/default)")
}
