package fitlog

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/app"
)

var (
	dbPath  string
	verbose bool
	logger  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "fitlog tracks weight, workouts, meals, and water from your terminal",
	Long:  "fitlog is a local-first fitness tracking CLI: a single-user SQLite store with live views over weight entries, workout logs, meal logs, and water intake.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		level := cfg.Level()
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().Timestamp().Logger()
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
