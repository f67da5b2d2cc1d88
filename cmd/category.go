/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/archivo-digital/apiserver/config"
	"github.com/archivo-digital/apiserver/internal/db"
	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// categoryCmd manages top-level categories, which have no HTTP create route.
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage catalog categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy, closeDB, err := openTaxonomy(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		category, err := taxonomy.CreateCategory(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", category.ID, category.Name)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy, closeDB, err := openTaxonomy(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		categories, err := taxonomy.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, category := range categories {
			fmt.Fprintf(tw, "%d\t%s\n", category.ID, category.Name)
		}
		return tw.Flush()
	},
}

func openTaxonomy(cmd *cobra.Command) (*services.TaxonomyService, func(), error) {
	cfg := config.LoadConfig()
	newLogger(cfg.Log, cmd.ErrOrStderr())

	dbConn, err := db.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}

	taxonomy := services.NewTaxonomyService(
		store.NewCategoryRepository(dbConn),
		store.NewSubcategoryRepository(dbConn),
		store.NewFolderRepository(dbConn),
		store.NewFileRepository(dbConn),
	)
	return taxonomy, func() { _ = dbConn.Close() }, nil
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
}
