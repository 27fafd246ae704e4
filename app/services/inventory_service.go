package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/pkg/cache"
	"github.com/shashiranjanraj/bhandar/pkg/event"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
	"github.com/shashiranjanraj/bhandar/pkg/validate"
)

// Summary is the dashboard headline: product counts by stock condition.
type Summary struct {
	Total        int `json:"total"`
	LowStock     int `json:"lowStock"`
	OutOfStock   int `json:"outOfStock"`
	ExpiringSoon int `json:"expiringSoon"`
}

const summaryCacheKey = "summary:inventory"
const summaryCacheTTL = 30 * time.Second

// InventoryService answers the stock queries behind the dashboard.
type InventoryService struct {
	store     repositories.ProductStore
	threshold int
	window    time.Duration
}

func NewInventoryService(store repositories.ProductStore) *InventoryService {
	return &InventoryService{
		store:     store,
		threshold: config.LowStockThreshold(),
		window:    time.Duration(config.ExpiryWindowDays()) * 24 * time.Hour,
	}
}

// ListAll returns every product, newest first.
func (s *InventoryService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.store.All(ctx)
}

// ListLowStock returns products at or below the configured threshold
// that still have at least one unit.
func (s *InventoryService) ListLowStock(ctx context.Context) ([]models.Product, error) {
	return s.store.LowStock(ctx, s.threshold)
}

// ListOutOfStock returns products with zero quantity.
func (s *InventoryService) ListOutOfStock(ctx context.Context) ([]models.Product, error) {
	return s.store.OutOfStock(ctx)
}

// ListExpiringSoon returns products expiring between now and the end of
// the configured window. Already-expired products are excluded here;
// the in-memory dashboard filter is the lenient one.
func (s *InventoryService) ListExpiringSoon(ctx context.Context, now time.Time) ([]models.Product, error) {
	return s.store.ExpiringBetween(ctx, now, now.Add(s.window))
}

// Search matches q against product names and categories; category, when
// set, narrows to one exact category.
func (s *InventoryService) Search(ctx context.Context, q, category string) ([]models.Product, error) {
	return s.store.Search(ctx, q, category)
}

// Categories returns the distinct categories in use.
func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// Create validates and persists one product, then fires product.created
// and drops the cached summary.
func (s *InventoryService) Create(ctx context.Context, p *models.Product) (map[string]string, error) {
	if errs := validate.Struct(p); validate.HasErrors(errs) {
		return errs, nil
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}

	cache.Forget(summaryCacheKey)
	event.FireAsync(event.ProductCreated, *p)
	if p.Quantity > 0 && p.Quantity <= s.threshold {
		event.FireAsync(event.StockLow, *p)
	}
	return nil, nil
}

// Summarize runs the four dashboard counts concurrently and joins them.
// Any failing count zeroes the whole summary so the dashboard never
// renders a half-true picture. Fresh results are cached briefly.
func (s *InventoryService) Summarize(ctx context.Context) (Summary, error) {
	var cached Summary
	if cache.Get(summaryCacheKey, &cached) {
		return cached, nil
	}

	now := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	var total int64
	var low, out, expiring []models.Product

	g.Go(func() error {
		var err error
		total, err = s.store.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		low, err = s.store.LowStock(ctx, s.threshold)
		return err
	})
	g.Go(func() error {
		var err error
		out, err = s.store.OutOfStock(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		expiring, err = s.store.ExpiringBetween(ctx, now, now.Add(s.window))
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("inventory: summarize: %w", err)
	}

	summary := Summary{
		Total:        int(total),
		LowStock:     len(low),
		OutOfStock:   len(out),
		ExpiringSoon: len(expiring),
	}

	cache.Set(summaryCacheKey, summary, summaryCacheTTL)
	metrics.SetInventoryGauges(summary.Total, summary.LowStock, summary.OutOfStock, summary.ExpiringSoon)
	return summary, nil
}

// InvalidateSummary drops the cached summary. Import and seed paths call
// this after bulk writes.
func (s *InventoryService) InvalidateSummary() {
	cache.Forget(summaryCacheKey)
}

// Threshold exposes the configured low-stock cutoff.
func (s *InventoryService) Threshold() int { return s.threshold }
