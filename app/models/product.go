package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is an inventory item stored in the products collection.
// ExpiryDate is nil for goods that never expire.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id,omitempty"`
	Name         string             `bson:"name"                   json:"name"         validate:"required,min=1,max=200"`
	SKU          string             `bson:"sku,omitempty"          json:"sku,omitempty"`
	Category     string             `bson:"category"               json:"category"     validate:"required"`
	Price        float64            `bson:"price"                  json:"price"        validate:"gte=0"`
	Quantity     int                `bson:"quantity"               json:"quantity"     validate:"gte=0"`
	ReorderLevel int                `bson:"reorderLevel,omitempty" json:"reorderLevel,omitempty"`
	ExpiryDate   *time.Time         `bson:"expiryDate,omitempty"   json:"expiryDate,omitempty"`
	Supplier     string             `bson:"supplier,omitempty"     json:"supplier,omitempty"`
	Barcode      string             `bson:"barcode,omitempty"      json:"barcode,omitempty"`
	ImageURL     string             `bson:"imageUrl,omitempty"     json:"imageUrl,omitempty"`
	Description  string             `bson:"description,omitempty"  json:"description,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"              json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"              json:"updatedAt"`
}

// DefaultReorderLevel is applied when a product is created without one.
const DefaultReorderLevel = 5

// InStock reports whether any units remain.
func (p Product) InStock() bool { return p.Quantity > 0 }

// ExpiresWithin reports whether the product has an expiry date falling
// on or before the given horizon. Products without an expiry never match.
func (p Product) ExpiresWithin(horizon time.Time) bool {
	return p.ExpiryDate != nil && !p.ExpiryDate.After(horizon)
}
