package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/database/seeders"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/database"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/migration"
)

// withDB loads config, opens the database and hands it to fn.
func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck
	return fn(db)
}

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return migration.New(db, cmd.OutOrStdout()).Run()
		})
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			return migration.New(db, cmd.OutOrStdout()).Rollback()
		})
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			return migration.New(db, cmd.OutOrStdout()).Status()
		})
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(db, cmd.OutOrStdout())
		})
	},
}
