package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/database"
)

const invoicesCollection = "invoices"

// InvoiceStore is the persistence surface for generated invoices.
type InvoiceStore interface {
	Insert(ctx context.Context, inv *models.Invoice) error
	All(ctx context.Context) ([]models.Invoice, error)
}

// InvoiceRepository is the MongoDB-backed InvoiceStore.
type InvoiceRepository struct {
	col *mongo.Collection
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{col: database.Collection(invoicesCollection)}
}

func NewInvoiceRepositoryWith(col *mongo.Collection) *InvoiceRepository {
	return &InvoiceRepository{col: col}
}

func (r *InvoiceRepository) Insert(ctx context.Context, inv *models.Invoice) error {
	inv.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, inv)
	if err != nil {
		return fmt.Errorf("invoices: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inv.ID = oid
	}
	return nil
}

// All returns invoices, newest first.
func (r *InvoiceRepository) All(ctx context.Context) ([]models.Invoice, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer cur.Close(ctx)

	invoices := []models.Invoice{}
	if err := cur.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("invoices: decode: %w", err)
	}
	return invoices, nil
}
