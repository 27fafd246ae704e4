package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/pkg/bind"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/response"

	"github.com/shashiranjanraj/bhandar/app/models"
)

// ProductController serves the inventory endpoints of the dashboard.
type ProductController struct {
	inventory *services.InventoryService
	csv       *services.CSVService
}

func NewProductController(inventory *services.InventoryService, csv *services.CSVService) *ProductController {
	return &ProductController{inventory: inventory, csv: csv}
}

// Index handles GET /products. Without query parameters it lists
// everything; ?stock=0 narrows to out-of-stock, ?q= and ?category=
// switch to search.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		products []models.Product
		err      error
	)
	switch {
	case q.Get("stock") == "0":
		products, err = c.inventory.ListOutOfStock(ctx)
	case q.Get("q") != "" || q.Get("category") != "":
		products, err = c.inventory.Search(ctx, q.Get("q"), q.Get("category"))
	default:
		products, err = c.inventory.ListAll(ctx)
	}
	if err != nil {
		logger.WithCtx(ctx).Error("list products failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Success(w, products)
}

// LowStock handles GET /products/low-stock.
func (c *ProductController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.inventory.ListLowStock(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("low-stock query failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load low-stock products")
		return
	}
	response.Success(w, products)
}

// ExpiringSoon handles GET /products/expiring-soon.
func (c *ProductController) ExpiringSoon(w http.ResponseWriter, r *http.Request) {
	products, err := c.inventory.ListExpiringSoon(r.Context(), time.Now())
	if err != nil {
		logger.WithCtx(r.Context()).Error("expiring-soon query failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load expiring products")
		return
	}
	response.Success(w, products)
}

// Categories handles GET /products/categories.
func (c *ProductController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.inventory.Categories(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("categories query failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	response.Success(w, categories)
}

// Summary handles GET /products/summary.
func (c *ProductController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.inventory.Summarize(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("summary failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load summary")
		return
	}
	response.Success(w, summary)
}

// Create handles POST /products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	errs, err := bind.JSON(r, &p)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	errs, err = c.inventory.Create(r.Context(), &p)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	response.Created(w, p)
}

// BulkUpload handles POST /products/bulk-upload (multipart field "file").
func (c *ProductController) BulkUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := bind.File(r, "file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if file == nil {
		response.Error(w, http.StatusBadRequest, "a CSV file is required")
		return
	}
	defer file.Close()

	n, err := c.csv.Import(r.Context(), file)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c.inventory.InvalidateSummary()
	response.Message(w, fmt.Sprintf("%d products", n), nil)
}

// Export handles GET /products/export. The dashboard's filter controls
// arrive as query parameters so the download honors the visible subset.
// format=xlsx switches to a spreadsheet; CSV is the default.
func (c *ProductController) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	products, err := c.inventory.ListAll(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("export failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}

	products = services.Filter(products, services.Criteria{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Expiry:   q.Get("expiry"),
		Category: q.Get("category"),
	}, time.Now())

	name := "products-" + time.Now().Format("2006-01-02")
	if q.Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
		if err := c.csv.ExportXLSX(w, products); err != nil {
			logger.WithCtx(ctx).Error("xlsx export failed", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	if err := c.csv.ExportCSV(w, products); err != nil {
		logger.WithCtx(ctx).Error("csv export failed", "error", err)
	}
}

// Healthz responds once the server is able to reach its stores.
func Healthz(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status": "ok",
		"env":    config.AppEnv(),
	})
}
