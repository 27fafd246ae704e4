package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
)

func newCSVService(t *testing.T, store *MockProductStore) *CSVService {
	t.Helper()
	pool := workerpool.New(2)
	t.Cleanup(pool.Shutdown)
	return NewCSVService(store, pool)
}

func TestImportInsertsEveryRow(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	csv := strings.Join([]string{
		"name,category,price,quantity,reorderLevel,expiryDate",
		"Milk,Dairy,68,12,10,2026-09-03",
		"Rice,Grocery,620,40,,",
	}, "\n")

	var got []models.Product
	store.On("InsertMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).([]models.Product)
		}).
		Return(2, nil)

	n, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, got, 2)

	assert.Equal(t, "Milk", got[0].Name)
	assert.Equal(t, 68.0, got[0].Price)
	assert.Equal(t, 12, got[0].Quantity)
	assert.Equal(t, 10, got[0].ReorderLevel)
	require.NotNil(t, got[0].ExpiryDate)
	assert.Equal(t, 2026, got[0].ExpiryDate.Year())

	assert.Equal(t, "Rice", got[1].Name)
	assert.Nil(t, got[1].ExpiryDate)
}

func TestImportSurfacesStoreError(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	csv := "name,category,price,quantity\nMilk,Dairy,68,12\n"

	store.On("InsertMany", mock.Anything, mock.Anything).
		Return(0, context.DeadlineExceeded)

	n, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, n)
}

func TestImportRejectsWholeFileOnOneBadRow(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	csv := strings.Join([]string{
		"name,category,price,quantity",
		"Milk,Dairy,68,12",
		"Bread,Bakery,not-a-price,8",
		"Rice,Grocery,620,40",
	}, "\n")

	n, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.Error(t, err)
	assert.Equal(t, 0, n)
	// The error names the offending row (header is row 1).
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "price")
	store.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestImportCountsOneRejectionPerBadFile(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	rejected := metrics.CSVRowsImported.WithLabelValues("rejected")
	before := testutil.ToFloat64(rejected)

	csv := strings.Join([]string{
		"name,category,price,quantity",
		"Milk,Dairy,68,12",
		"Bread,Bakery,not-a-price,8",
		"Rice,Grocery,620,40",
	}, "\n")

	_, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.Error(t, err)

	// One bad row, one rejection counted; the good rows are not blamed.
	assert.Equal(t, 1.0, testutil.ToFloat64(rejected)-before)
}

func TestImportRejectsNegativeQuantity(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	csv := "name,category,price,quantity\nMilk,Dairy,68,-1\n"

	_, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestImportRejectsEmptyFile(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	_, err := svc.Import(context.Background(), strings.NewReader("name,category,price,quantity\n"))

	require.Error(t, err)
}

func TestExportCSVQuotesValuesLikeTheDashboard(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	expiry := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	products := []models.Product{{
		Name:       "Milk, Full Cream",
		Category:   "Dairy",
		Price:      1.5,
		Quantity:   12,
		ExpiryDate: &expiry,
		CreatedAt:  created,
		UpdatedAt:  created,
	}}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, products))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"name,sku,category,price,quantity,reorderLevel,expiryDate,supplier,barcode,imageUrl,description,createdAt,updatedAt",
		lines[0])

	// Strings are JSON-quoted (protecting the embedded comma), numbers
	// stay bare, absent values export as "".
	assert.Equal(t,
		`"Milk, Full Cream","","Dairy",1.5,12,0,"2026-09-03T00:00:00Z","","","","","2026-08-01T10:30:00Z","2026-08-01T10:30:00Z"`,
		lines[1])
}

func TestExportCSVEmptyInventoryWritesHeaderOnly(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1)
}

func TestExportXLSXWritesWorkbook(t *testing.T) {
	store := new(MockProductStore)
	svc := newCSVService(t, store)

	products := []models.Product{{Name: "Milk", Category: "Dairy", Price: 68, Quantity: 12}}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(&buf, products))

	// XLSX files are zip archives.
	assert.Equal(t, "PK", buf.String()[:2])
}
