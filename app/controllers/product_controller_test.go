package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
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

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newProductController(t *testing.T, store *MockProductStore) *ProductController {
	t.Helper()
	pool := workerpool.New(2)
	t.Cleanup(pool.Shutdown)
	inventory := services.NewInventoryService(store)
	return NewProductController(inventory, services.NewCSVService(store, pool))
}

func TestIndexListsAllProducts(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("All", mock.Anything).
		Return([]models.Product{{Name: "Milk"}, {Name: "Rice"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ctl.Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 2)
}

func TestIndexStockZeroSwitchesToOutOfStock(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("OutOfStock", mock.Anything).
		Return([]models.Product{{Name: "Bread"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?stock=0", nil)
	rec := httptest.NewRecorder()
	ctl.Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	store.AssertNotCalled(t, "All", mock.Anything)
	store.AssertExpectations(t)
}

func TestIndexQuerySwitchesToSearch(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("Search", mock.Anything, "milk", "").
		Return([]models.Product{{Name: "Milk"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=milk", nil)
	rec := httptest.NewRecorder()
	ctl.Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

func TestIndexStoreFailureIsA500(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("All", mock.Anything).Return(nil, context.DeadlineExceeded)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ctl.Index(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEmptyListIsNotAnError(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("LowStock", mock.Anything, mock.Anything).
		Return([]models.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/low-stock", nil)
	rec := httptest.NewRecorder()
	ctl.LowStock(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)))
}

func TestSummaryReportsCounts(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("Count", mock.Anything).Return(int64(4), nil)
	store.On("LowStock", mock.Anything, mock.Anything).
		Return(make([]models.Product, 1), nil)
	store.On("OutOfStock", mock.Anything).
		Return(make([]models.Product, 2), nil)
	store.On("ExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(make([]models.Product, 1), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/summary", nil)
	rec := httptest.NewRecorder()
	ctl.Summary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	var summary services.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, services.Summary{Total: 4, LowStock: 1, OutOfStock: 2, ExpiringSoon: 1}, summary)
}

func TestCreateValidationFailureReturns422(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	body := strings.NewReader(`{"name":"","category":"","price":-1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	rec := httptest.NewRecorder()
	ctl.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBulkUploadRequiresFile(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/bulk-upload", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	ctl.BulkUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHonorsDashboardFilters(t *testing.T) {
	store := new(MockProductStore)
	ctl := newProductController(t, store)

	store.On("All", mock.Anything).Return([]models.Product{
		{Name: "Milk", Category: "Dairy", Quantity: 5},
		{Name: "Bread", Category: "Bakery", Quantity: 0},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/export?status=out", nil)
	rec := httptest.NewRecorder()
	ctl.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2) // header + Bread only
	assert.Contains(t, lines[1], `"Bread"`)
}
