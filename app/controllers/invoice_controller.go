package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/bind"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/response"
)

// InvoiceController serves invoice generation and listing.
type InvoiceController struct {
	invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

// Generate handles POST /invoices/generate.
func (c *InvoiceController) Generate(w http.ResponseWriter, r *http.Request) {
	var in services.GenerateInvoiceInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	inv, err := c.invoices.Generate(r.Context(), in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("invoice generation failed", "error", err)
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	response.Created(w, inv)
}

// Index handles GET /invoices.
func (c *InvoiceController) Index(w http.ResponseWriter, r *http.Request) {
	invoices, err := c.invoices.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list invoices failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load invoices")
		return
	}
	response.Success(w, invoices)
}
