package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := migration.New(database.DB, cmd.OutOrStdout()).Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
		return nil
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := migration.New(database.DB, cmd.OutOrStdout()).Rollback()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) rolled back\n", n)
		return nil
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := migration.New(database.DB, cmd.OutOrStdout()).Status()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
		for _, r := range rows {
			batch := "-"
			if r.Ran {
				batch = fmt.Sprint(r.Batch)
			}
			fmt.Fprintf(w, "%s\t%t\t%s\n", r.Name, r.Ran, batch)
		}
		return w.Flush()
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()

		return seeders.RunAll(cmd.Context(), database.DB, cmd.OutOrStdout())
	},
}

// storefront user:promote <email>
var userPromoteCmd = &cobra.Command{
	Use:   "user:promote <email>",
	Short: "Grant the admin role to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()

		users := repositories.NewUserRepository(database.DB)
		if err := users.SetRole(cmd.Context(), args[0], models.RoleAdmin); err != nil {
			return fmt.Errorf("promote %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", args[0])
		return nil
	},
}
