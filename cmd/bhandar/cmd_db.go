package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/database/seeders"
	"github.com/shashiranjanraj/bhandar/pkg/database"
	"github.com/shashiranjanraj/bhandar/pkg/migration"
)

// bootDB loads config and opens the relational database.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// bootStores opens both the relational database and the document store.
func bootStores() error {
	if err := bootDB(); err != nil {
		return err
	}
	return database.ConnectMongo(context.Background())
}

// bhandar migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations...")
		return migration.New(database.DB).Run()
	},
}

// bhandar migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch...")
		return migration.New(database.DB).Rollback()
	},
}

// bhandar migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// bhandar seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all relational seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders...")
		return seeders.RunAll(database.DB)
	},
}

// bhandar seed:products
var seedProductsCmd = &cobra.Command{
	Use:   "seed:products",
	Short: "Load a demo inventory into the product store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		ctx := context.Background()
		if err := database.ConnectMongo(ctx); err != nil {
			return err
		}
		defer database.DisconnectMongo(ctx)

		n, err := seeders.SeedProducts(ctx, repositories.NewProductRepository())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Product store already has data, nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded %d products.\n", n)
		return nil
	},
}
