package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceItem is one line of an invoice. Unit price is captured at
// generation time so later price edits do not rewrite history.
type InvoiceItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name"      json:"name"`
	Quantity  int                `bson:"quantity"  json:"quantity"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	Subtotal  float64            `bson:"subtotal"  json:"subtotal"`
}

// Invoice is a generated sales invoice stored in the invoices collection.
type Invoice struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id,omitempty"`
	Number       string             `bson:"number"                 json:"number"`
	CustomerName string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	Items        []InvoiceItem      `bson:"items"                  json:"items"`
	Total        float64            `bson:"total"                  json:"total"`
	CreatedAt    time.Time          `bson:"createdAt"              json:"createdAt"`
}
