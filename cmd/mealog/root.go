// ABOUTME: Root command and shared store handle for mealog.
// ABOUTME: Opens the database exactly once before any subcommand runs.

package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mealog/mealog/internal/config"
	"github.com/mealog/mealog/internal/db"
	"github.com/spf13/cobra"
)

// dbConn is the store handle every command operates on. It is
// constructed once in PersistentPreRunE, never lazily.
var dbConn *sql.DB
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "mealog",
	Short:   "Personal meal log",
	Long:    `Log meals with notes and photos, entirely on-device. Browse by day, week, or full history.`,
	Version: fmt.Sprintf("%s (%s, %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dbFlag, _ := cmd.Flags().GetString("db"); dbFlag != "" {
			cfg.DBPath = dbFlag
		}

		dbConn, err = db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the meal database (overrides config)")
}
