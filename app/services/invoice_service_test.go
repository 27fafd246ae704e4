package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bhandar/app/models"
)

type MockInvoiceStore struct {
	mock.Mock
}

func (m *MockInvoiceStore) Insert(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceStore) All(ctx context.Context) ([]models.Invoice, error) {
	args := m.Called(ctx)
	var invoices []models.Invoice
	if v := args.Get(0); v != nil {
		invoices = v.([]models.Invoice)
	}
	return invoices, args.Error(1)
}

func TestGenerateCapturesPricesAndTotals(t *testing.T) {
	products := new(MockProductStore)
	invoices := new(MockInvoiceStore)
	svc, err := NewInvoiceService(invoices, products)
	require.NoError(t, err)

	milkID := primitive.NewObjectID()
	riceID := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, milkID).
		Return(models.Product{ID: milkID, Name: "Milk", Price: 1.55}, nil)
	products.On("FindByID", mock.Anything, riceID).
		Return(models.Product{ID: riceID, Name: "Rice", Price: 80}, nil)

	var saved models.Invoice
	invoices.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = *args.Get(1).(*models.Invoice)
		}).
		Return(nil)

	inv, err := svc.Generate(context.Background(), GenerateInvoiceInput{
		CustomerName: "Asha Stores",
		Items: []InvoiceLine{
			{ProductID: milkID.Hex(), Quantity: 3},
			{ProductID: riceID.Hex(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, 4.65, inv.Items[0].Subtotal)
	assert.Equal(t, 1.55, inv.Items[0].UnitPrice)
	assert.Equal(t, 160.0, inv.Items[1].Subtotal)
	assert.Equal(t, 164.65, inv.Total)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	assert.Equal(t, inv.Number, saved.Number)
}

func TestGenerateUnknownProductFailsTheWholeRequest(t *testing.T) {
	products := new(MockProductStore)
	invoices := new(MockInvoiceStore)
	svc, err := NewInvoiceService(invoices, products)
	require.NoError(t, err)

	missing := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, missing).
		Return(models.Product{}, context.DeadlineExceeded)

	_, err = svc.Generate(context.Background(), GenerateInvoiceInput{
		Items: []InvoiceLine{{ProductID: missing.Hex(), Quantity: 1}},
	})
	require.Error(t, err)
	invoices.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGenerateRejectsEmptyAndMalformedInput(t *testing.T) {
	products := new(MockProductStore)
	invoices := new(MockInvoiceStore)
	svc, err := NewInvoiceService(invoices, products)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), GenerateInvoiceInput{})
	assert.Error(t, err)

	_, err = svc.Generate(context.Background(), GenerateInvoiceInput{
		Items: []InvoiceLine{{ProductID: "not-an-object-id", Quantity: 1}},
	})
	assert.Error(t, err)

	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
