package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bhandar/app/models"
)

// MockProductStore is a testify mock of repositories.ProductStore.
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) All(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStore) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	args := m.Called(ctx, threshold)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStore) OutOfStock(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStore) ExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Product, error) {
	args := m.Called(ctx, from, to)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStore) Search(ctx context.Context, q, category string) ([]models.Product, error) {
	args := m.Called(ctx, q, category)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStore) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var categories []string
	if v := args.Get(0); v != nil {
		categories = v.([]string)
	}
	return categories, args.Error(1)
}

func (m *MockProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductStore) Insert(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductStore) InsertMany(ctx context.Context, ps []models.Product) (int, error) {
	args := m.Called(ctx, ps)
	return args.Int(0), args.Error(1)
}

func (m *MockProductStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSummarizeJoinsAllFourCounts(t *testing.T) {
	store := new(MockProductStore)
	svc := NewInventoryService(store)
	svc.InvalidateSummary()

	store.On("Count", mock.Anything).Return(int64(10), nil)
	store.On("LowStock", mock.Anything, svc.Threshold()).
		Return(make([]models.Product, 3), nil)
	store.On("OutOfStock", mock.Anything).
		Return(make([]models.Product, 2), nil)
	store.On("ExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(make([]models.Product, 1), nil)

	summary, err := svc.Summarize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 10, LowStock: 3, OutOfStock: 2, ExpiringSoon: 1}, summary)
	store.AssertExpectations(t)
}

func TestSummarizeZeroesEverythingOnAnyFailure(t *testing.T) {
	store := new(MockProductStore)
	svc := NewInventoryService(store)
	svc.InvalidateSummary()

	store.On("Count", mock.Anything).Return(int64(10), nil)
	store.On("LowStock", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	store.On("OutOfStock", mock.Anything).Return([]models.Product{}, nil).Maybe()
	store.On("ExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Product{}, nil).Maybe()

	summary, err := svc.Summarize(context.Background())

	require.Error(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestListExpiringSoonUsesConfiguredWindow(t *testing.T) {
	store := new(MockProductStore)
	svc := NewInventoryService(store)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var gotFrom, gotTo time.Time
	store.On("ExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotFrom = args.Get(1).(time.Time)
			gotTo = args.Get(2).(time.Time)
		}).
		Return([]models.Product{}, nil)

	_, err := svc.ListExpiringSoon(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, now, gotFrom)
	assert.Equal(t, now.AddDate(0, 0, 7), gotTo)
}

func TestCreateRejectsInvalidProductWithoutStoreAccess(t *testing.T) {
	store := new(MockProductStore)
	svc := NewInventoryService(store)

	errs, err := svc.Create(context.Background(), &models.Product{Name: "", Category: ""})

	require.NoError(t, err)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "category")
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreatePersistsValidProduct(t *testing.T) {
	store := new(MockProductStore)
	svc := NewInventoryService(store)

	p := models.Product{Name: "Milk", Category: "Dairy", Price: 68, Quantity: 12}
	store.On("Insert", mock.Anything, &p).Return(nil)

	errs, err := svc.Create(context.Background(), &p)

	require.NoError(t, err)
	assert.Nil(t, errs)
	store.AssertExpectations(t)
}
