package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/database"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
)

// ProductStore is the read/write surface the inventory services depend on.
// The Mongo implementation below is swapped for a mock in service tests.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
	OutOfStock(ctx context.Context) ([]models.Product, error)
	ExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Product, error)
	Search(ctx context.Context, q, category string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	InsertMany(ctx context.Context, ps []models.Product) (int, error)
	Count(ctx context.Context) (int64, error)
}

const productsCollection = "products"

// ProductRepository is the MongoDB-backed ProductStore.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection(productsCollection)}
}

// NewProductRepositoryWith lets tests and the CLI point the repository
// at an explicit collection handle.
func NewProductRepositoryWith(col *mongo.Collection) *ProductRepository {
	return &ProductRepository{col: col}
}

func (r *ProductRepository) find(ctx context.Context, label string, filter bson.M, opts ...*options.FindOptions) ([]models.Product, error) {
	start := time.Now()
	defer metrics.ObserveStoreQuery(label, start)

	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("products: %s: %w", label, err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: %s decode: %w", label, err)
	}
	return products, nil
}

// All returns every product, newest first.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, "all", bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// LowStock returns products with at least one unit but no more than threshold.
func (r *ProductRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	return r.find(ctx, "low_stock", bson.M{
		"quantity": bson.M{"$gt": 0, "$lte": threshold},
	})
}

// OutOfStock returns products with zero quantity.
func (r *ProductRepository) OutOfStock(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, "out_of_stock", bson.M{"quantity": 0})
}

// ExpiringBetween returns products whose expiry date falls inside [from, to].
// Products without an expiry date never match.
func (r *ProductRepository) ExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Product, error) {
	return r.find(ctx, "expiring", bson.M{
		"expiryDate": bson.M{"$gte": from, "$lte": to},
	})
}

// Search matches q case-insensitively against name or category.
// A non-empty category narrows to that exact category.
func (r *ProductRepository) Search(ctx context.Context, q, category string) ([]models.Product, error) {
	filter := bson.M{}
	if q != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"category": re},
		}
	}
	if category != "" {
		filter["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(category) + "$", Options: "i"}
	}
	return r.find(ctx, "search", filter)
}

// Categories returns the distinct category values in use.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	start := time.Now()
	defer metrics.ObserveStoreQuery("categories", start)

	raw, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("products: categories: %w", err)
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return models.Product{}, fmt.Errorf("products: find %s: %w", id.Hex(), err)
	}
	return p, nil
}

// Insert persists a new product, stamping timestamps and the default
// reorder level.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.ReorderLevel == 0 {
		p.ReorderLevel = models.DefaultReorderLevel
	}

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// InsertMany persists a batch and returns how many documents were written.
func (r *ProductRepository) InsertMany(ctx context.Context, ps []models.Product) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(ps))
	for i := range ps {
		ps[i].CreatedAt, ps[i].UpdatedAt = now, now
		if ps[i].ReorderLevel == 0 {
			ps[i].ReorderLevel = models.DefaultReorderLevel
		}
		docs[i] = ps[i]
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("products: insert many: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("products: count: %w", err)
	}
	return n, nil
}
