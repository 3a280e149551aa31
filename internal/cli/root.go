package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/infrastructure/config"
)

// Global flags
var (
	envFile string
	verbose bool
)

// Set by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Upload training run results to a Notion database",
	Long: `runlog records machine-learning training runs in a Notion database.

Each run is written to a local JSON archive and then submitted as a new row
of the configured database. The database must already have the expected
columns (Title, 상태, Model, Loss_A, ..., Run Date).

Configuration is read from the environment, after loading a .env file:
  NOTION_API_KEY      integration token
  NOTION_DATABASE_ID  target database`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	logger = newLogger(verbose)

	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = loaded
	return nil
}

func newLogger(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "runlog",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
