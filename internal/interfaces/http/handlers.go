package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/errs"
	"github.com/garyjia/biztime/pkg/utils"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	companies port.CompanyRepository
	invoices  port.InvoiceRepository
	pinger    port.Pinger
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	companies port.CompanyRepository,
	invoices port.InvoiceRepository,
	pinger port.Pinger,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		companies: companies,
		invoices:  invoices,
		pinger:    pinger,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register mounts the company and invoice routes on r
func (h *Handlers) Register(r gin.IRouter) {
	companies := r.Group("/companies")
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/:code", h.GetCompany)
		companies.POST("", h.CreateCompany)
		companies.PUT("/:code", h.UpdateCompany)
		companies.DELETE("/:code", h.DeleteCompany)
	}

	invoices := r.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}
}

// StatusUpdated and StatusDeleted tag the bodies of successful writes
const (
	StatusUpdated = "updated"
	StatusDeleted = "deleted"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// DeletedResponse is returned by both delete endpoints
type DeletedResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
	}

	if err := h.pinger.PingContext(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// bindFields decodes a JSON object body into dst after checking that every
// required key is present and not null. Any failure is a 400 carrying message.
func (h *Handlers) bindFields(c *gin.Context, dst interface{}, required []string, message string) error {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&fields, binding.JSON); err != nil {
		return errs.BadRequest(message)
	}
	if !utils.HasAllFields(fields, required) {
		h.logger.Debug("Request body missing fields",
			zap.String("path", c.FullPath()),
			zap.Strings("missing", utils.MissingFields(fields, required)))
		return errs.BadRequest(message)
	}
	if nulls := nullFields(fields, required); len(nulls) > 0 {
		h.logger.Debug("Request body has null fields",
			zap.String("path", c.FullPath()),
			zap.Strings("null", nulls))
		return errs.BadRequest(message)
	}
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		return errs.BadRequest(message)
	}
	return nil
}

var jsonNull = []byte("null")

// nullFields returns the required fields whose value is a JSON null
func nullFields(fields map[string]json.RawMessage, required []string) []string {
	var nulls []string
	for _, name := range required {
		if bytes.Equal(bytes.TrimSpace(fields[name]), jsonNull) {
			nulls = append(nulls, name)
		}
	}
	return nulls
}
