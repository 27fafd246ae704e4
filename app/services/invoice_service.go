package services

import (
	"context"
	"fmt"
	"math"

	"github.com/bwmarrin/snowflake"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
)

// InvoiceLine is one requested line of a new invoice.
type InvoiceLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"gt=0"`
}

// GenerateInvoiceInput is the payload of POST /invoices/generate.
type GenerateInvoiceInput struct {
	CustomerName string        `json:"customerName"`
	Items        []InvoiceLine `json:"items" validate:"required"`
}

// InvoiceService turns cart lines into persisted invoices with unique
// invoice numbers.
type InvoiceService struct {
	invoices repositories.InvoiceStore
	products repositories.ProductStore
	node     *snowflake.Node
}

func NewInvoiceService(invoices repositories.InvoiceStore, products repositories.ProductStore) (*InvoiceService, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("invoice: snowflake node: %w", err)
	}
	return &InvoiceService{invoices: invoices, products: products, node: node}, nil
}

// Generate resolves every line against the product store, captures unit
// prices, and persists the invoice. Unknown product ids fail the whole
// request; nothing is written in that case.
func (s *InvoiceService) Generate(ctx context.Context, in GenerateInvoiceInput) (models.Invoice, error) {
	if len(in.Items) == 0 {
		return models.Invoice{}, fmt.Errorf("invoice: at least one item is required")
	}

	items := make([]models.InvoiceItem, 0, len(in.Items))
	total := 0.0

	for _, line := range in.Items {
		oid, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return models.Invoice{}, fmt.Errorf("invoice: bad product id %q", line.ProductID)
		}
		if line.Quantity <= 0 {
			return models.Invoice{}, fmt.Errorf("invoice: quantity for %s must be positive", line.ProductID)
		}

		p, err := s.products.FindByID(ctx, oid)
		if err != nil {
			return models.Invoice{}, fmt.Errorf("invoice: resolve product %s: %w", line.ProductID, err)
		}

		subtotal := round2(p.Price * float64(line.Quantity))
		items = append(items, models.InvoiceItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	inv := models.Invoice{
		Number:       "INV-" + s.node.Generate().String(),
		CustomerName: in.CustomerName,
		Items:        items,
		Total:        round2(total),
	}
	if err := s.invoices.Insert(ctx, &inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// List returns all invoices, newest first.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return s.invoices.All(ctx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
