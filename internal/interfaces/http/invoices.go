package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/domain/entity"
	"github.com/garyjia/biztime/internal/errs"
)

// CreateInvoiceRequest is the body of POST /invoices
type CreateInvoiceRequest struct {
	CompCode string  `json:"comp_code"`
	Amt      float64 `json:"amt"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:id
type UpdateInvoiceRequest struct {
	Amt  float64 `json:"amt"`
	Paid bool    `json:"paid"`
}

var (
	createInvoiceFields = []string{"comp_code", "amt"}
	updateInvoiceFields = []string{"amt", "paid"}
)

// InvoicesResponse wraps the invoice list
type InvoicesResponse struct {
	Invoices []*entity.Invoice `json:"invoices"`
}

// InvoiceResponse wraps a single invoice
type InvoiceResponse struct {
	Invoice *entity.Invoice `json:"invoice"`
}

// UpdatedInvoiceResponse is returned by PUT /invoices/:id
type UpdatedInvoiceResponse struct {
	Status  string          `json:"status"`
	Invoice *entity.Invoice `json:"invoice"`
}

// ListInvoices handles GET /invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, InvoicesResponse{Invoices: invoices})
}

// GetInvoice handles GET /invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if invoice == nil {
		_ = c.Error(invoiceNotFound(c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, InvoiceResponse{Invoice: invoice})
}

// CreateInvoice handles POST /invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	err := h.bindFields(c, &req, createInvoiceFields,
		"Please provide a json value with comp_code and amt values")
	if err != nil {
		_ = c.Error(err)
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), req.CompCode, req.Amt, h.now())
	if err != nil {
		_ = c.Error(h.invoiceWriteError(err, req.CompCode))
		return
	}

	h.logger.Info("Invoice created", zap.Int64("id", invoice.ID), zap.String("comp_code", invoice.CompCode))
	c.JSON(http.StatusCreated, InvoiceResponse{Invoice: invoice})
}

// UpdateInvoice handles PUT /invoices/:id. Both amt and paid are required;
// paying stamps paid_date once, unpaying clears it.
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateInvoiceRequest
	err = h.bindFields(c, &req, updateInvoiceFields,
		"Please provide a valid json with amt and paid values")
	if err != nil {
		_ = c.Error(err)
		return
	}

	invoice, err := h.invoices.Update(c.Request.Context(), id, req.Amt, req.Paid, h.now())
	if err != nil {
		_ = c.Error(h.invoiceWriteError(err, ""))
		return
	}
	if invoice == nil {
		_ = c.Error(invoiceNotFound(c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, UpdatedInvoiceResponse{Status: StatusUpdated, Invoice: invoice})
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	invoice, err := h.invoices.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if invoice == nil {
		_ = c.Error(invoiceNotFound(c.Param("id")))
		return
	}

	h.logger.Info("Invoice deleted", zap.Int64("id", id))
	c.JSON(http.StatusAccepted, DeletedResponse{Status: StatusDeleted, Data: invoice.Ref()})
}

// invoiceWriteError maps store constraint violations to 400s
func (h *Handlers) invoiceWriteError(err error, compCode string) error {
	switch {
	case errors.Is(err, port.ErrMissingReference):
		return errs.BadRequest(fmt.Sprintf("Company code %s does not exist", compCode))
	case errors.Is(err, port.ErrInvalidValue):
		return errs.BadRequest("Invoice amt must be greater than zero")
	}
	return err
}

// invoiceID parses the :id path parameter. An id that is not an integer
// cannot match any invoice, so it is reported as not found.
func invoiceID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invoiceNotFound(raw)
	}
	return id, nil
}

func invoiceNotFound(id string) *errs.Error {
	return errs.NotFound(fmt.Sprintf("Invoice id %s not found", id))
}
