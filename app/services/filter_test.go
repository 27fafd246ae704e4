package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bhandar/app/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func namesOf(products []models.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func sampleInventory(t *testing.T) []models.Product {
	t.Helper()
	milkExpiry := day(t, "2026-09-03")
	breadExpiry := day(t, "2026-08-25") // already expired relative to "now"
	return []models.Product{
		{Name: "Milk", Category: "Dairy", Quantity: 5, ExpiryDate: &milkExpiry},
		{Name: "Bread", Category: "Bakery", Quantity: 0, ExpiryDate: &breadExpiry},
		{Name: "Rice", Category: "Grocery", Quantity: 40},
		{Name: "Buttermilk", Category: "Dairy", Quantity: 12},
	}
}

func TestFilterEmptyCriteriaReturnsAllInOrder(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{}, now)

	assert.Equal(t, []string{"Milk", "Bread", "Rice", "Buttermilk"}, namesOf(got))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	_ = Filter(products, Criteria{Status: StatusInStock}, now)

	assert.Equal(t, []string{"Milk", "Bread", "Rice", "Buttermilk"}, namesOf(products))
}

func TestFilterStatusPartition(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	in := Filter(products, Criteria{Status: StatusInStock}, now)
	out := Filter(products, Criteria{Status: StatusOutOfStock}, now)

	// Every product lands in exactly one of the two sets.
	assert.Len(t, in, 3)
	assert.Len(t, out, 1)
	assert.Equal(t, []string{"Bread"}, namesOf(out))
	assert.NotContains(t, namesOf(in), "Bread")
}

func TestFilterSearchMatchesNameCaseInsensitively(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{Search: "milk"}, now)

	// Substring match on the name only: "Milk" and "Buttermilk".
	assert.Equal(t, []string{"Milk", "Buttermilk"}, namesOf(got))
}

func TestFilterSearchDoesNotMatchCategory(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{Search: "dairy"}, now)

	assert.Empty(t, got)
}

func TestFilterCategoryExactCaseInsensitive(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{Category: "dairy"}, now)

	assert.Equal(t, []string{"Milk", "Buttermilk"}, namesOf(got))
}

func TestFilterExpiringSoonIncludesExpired(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{Expiry: ExpiryExpiringSoon}, now)

	// Milk expires within the window; Bread is already expired but
	// still satisfies the criterion. Products without an expiry never do.
	assert.Equal(t, []string{"Milk", "Bread"}, namesOf(got))
}

func TestFilterExpiringSoonWindowBoundary(t *testing.T) {
	now := day(t, "2026-08-30")
	onBoundary := now.Add(7 * 24 * time.Hour)
	beyond := onBoundary.Add(time.Hour)

	products := []models.Product{
		{Name: "OnBoundary", Quantity: 1, ExpiryDate: &onBoundary},
		{Name: "Beyond", Quantity: 1, ExpiryDate: &beyond},
	}

	got := Filter(products, Criteria{Expiry: ExpiryExpiringSoon}, now)

	assert.Equal(t, []string{"OnBoundary"}, namesOf(got))
}

func TestFilterCombinesCriteriaWithAnd(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)

	got := Filter(products, Criteria{Search: "milk", Status: StatusInStock, Category: "Dairy"}, now)

	assert.Equal(t, []string{"Milk", "Buttermilk"}, namesOf(got))

	got = Filter(products, Criteria{Search: "milk", Status: StatusOutOfStock}, now)
	assert.Empty(t, got)
}

func TestFilterIsIdempotent(t *testing.T) {
	now := day(t, "2026-08-30")
	products := sampleInventory(t)
	c := Criteria{Status: StatusInStock, Category: "Dairy"}

	once := Filter(products, c, now)
	twice := Filter(once, c, now)

	assert.Equal(t, once, twice)
}
