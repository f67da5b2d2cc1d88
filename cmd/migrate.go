/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/archivo-digital/apiserver/config"
	"github.com/archivo-digital/apiserver/internal/db"
	"github.com/spf13/cobra"
)

var (
	migrationsURL string
	migrateDownBy int
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger := newLogger(cfg.Log, cmd.ErrOrStderr())

		if err := db.MigrateUp(cfg.Database, migrationsURL); err != nil {
			return err
		}
		logger.Info("migrations applied", "source", migrationsURL)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger := newLogger(cfg.Log, cmd.ErrOrStderr())

		if err := db.MigrateDown(cfg.Database, migrationsURL, migrateDownBy); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", migrateDownBy)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateCmd.PersistentFlags().StringVar(&migrationsURL, "source", db.DefaultMigrationsURL, "migrations source URL")
	migrateDownCmd.Flags().IntVar(&migrateDownBy, "steps", 1, "number of migrations to roll back")
}
