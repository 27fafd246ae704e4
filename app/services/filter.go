package services

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/collection"
)

// Status filter values accepted by Criteria.
const (
	StatusAny        = ""
	StatusInStock    = "in"
	StatusOutOfStock = "out"
)

// ExpiryExpiringSoon selects products expiring within the window.
const ExpiryExpiringSoon = "expiring-soon"

const expiryFilterWindow = 7 * 24 * time.Hour

// Criteria mirrors the dashboard's client-side filter controls.
// Empty fields match everything; set fields are ANDed together.
type Criteria struct {
	Search   string // case-insensitive substring of the product name
	Status   string // "", "in", "out"
	Expiry   string // "", "expiring-soon"
	Category string // exact category, case-insensitive
}

// Empty reports whether every criterion is unset.
func (c Criteria) Empty() bool {
	return c.Search == "" && c.Status == "" && c.Expiry == "" && c.Category == ""
}

// Filter applies c to products and returns the matches in their original
// order. The input slice is never modified; now anchors the expiry window.
//
// The expiry criterion intentionally has no lower bound: already-expired
// products also satisfy "expiring-soon", matching what the dashboard shows.
func Filter(products []models.Product, c Criteria, now time.Time) []models.Product {
	if c.Empty() {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	search := strings.ToLower(c.Search)
	horizon := now.Add(expiryFilterWindow)

	return collection.Filter(products, func(p models.Product) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			return false
		}

		switch c.Status {
		case StatusInStock:
			if p.Quantity <= 0 {
				return false
			}
		case StatusOutOfStock:
			if p.Quantity != 0 {
				return false
			}
		}

		if c.Expiry == ExpiryExpiringSoon && !p.ExpiresWithin(horizon) {
			return false
		}

		if c.Category != "" && !strings.EqualFold(p.Category, c.Category) {
			return false
		}

		return true
	})
}
