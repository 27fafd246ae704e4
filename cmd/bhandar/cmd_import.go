package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/pkg/database"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
)

// bhandar import <file.csv> — bulk-import products without the server.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a product CSV directly into the product store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		ctx := context.Background()
		if err := database.ConnectMongo(ctx); err != nil {
			return err
		}
		defer database.DisconnectMongo(ctx)

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		pool := workerpool.New(4)
		defer pool.Shutdown()

		csv := services.NewCSVService(repositories.NewProductRepository(), pool)
		n, err := csv.Import(ctx, f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d products.\n", n)
		return nil
	},
}
