package seeders

import (
	"context"
	"time"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
)

// SeedProducts loads a small demo inventory into the product store.
// Run via CLI: bhandar seed:products. It only writes when the store
// is empty, so reseeding is safe.
func SeedProducts(ctx context.Context, store repositories.ProductStore) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	in := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		return &t
	}

	demo := []models.Product{
		{Name: "Basmati Rice 5kg", Category: "Grocery", Price: 620, Quantity: 40, Supplier: "Annapurna Traders"},
		{Name: "Milk 1L", Category: "Dairy", Price: 68, Quantity: 12, ExpiryDate: in(3), Supplier: "Sagar Dairy"},
		{Name: "Paneer 200g", Category: "Dairy", Price: 95, Quantity: 0, ExpiryDate: in(5), Supplier: "Sagar Dairy"},
		{Name: "Bread", Category: "Bakery", Price: 45, Quantity: 8, ExpiryDate: in(2), Supplier: "Daily Bake"},
		{Name: "Sunflower Oil 1L", Category: "Grocery", Price: 140, Quantity: 25, Supplier: "Annapurna Traders"},
		{Name: "Detergent 1kg", Category: "Household", Price: 110, Quantity: 3, Supplier: "CleanCo"},
		{Name: "Toothpaste", Category: "Personal Care", Price: 55, Quantity: 0, Supplier: "CleanCo"},
		{Name: "Curd 400g", Category: "Dairy", Price: 40, Quantity: 18, ExpiryDate: in(6), Supplier: "Sagar Dairy"},
	}

	return store.InsertMany(ctx, demo)
}
