package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/domain/entity"
	"github.com/garyjia/biztime/internal/errs"
	"github.com/garyjia/biztime/pkg/utils"
)

// CreateCompanyRequest is the body of POST /companies
type CreateCompanyRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCompanyRequest is the body of PUT /companies/:code
type UpdateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	createCompanyFields = []string{"code", "name", "description"}
	updateCompanyFields = []string{"name", "description"}
)

// CompaniesResponse wraps the company list
type CompaniesResponse struct {
	Companies []*entity.Company `json:"companies"`
}

// CompanyResponse wraps a single company
type CompanyResponse struct {
	Company *entity.Company `json:"company"`
}

// CompanyDetailResponse wraps a company with its invoices
type CompanyDetailResponse struct {
	Company *entity.CompanyDetail `json:"company"`
}

// UpdatedCompanyResponse is returned by PUT /companies/:code
type UpdatedCompanyResponse struct {
	Status  string          `json:"status"`
	Company *entity.Company `json:"company"`
}

// ListCompanies handles GET /companies
func (h *Handlers) ListCompanies(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CompaniesResponse{Companies: companies})
}

// GetCompany handles GET /companies/:code
func (h *Handlers) GetCompany(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	company, err := h.companies.GetByCode(ctx, code)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if company == nil {
		_ = c.Error(companyNotFound(code))
		return
	}

	invoices, err := h.invoices.ListByCompany(ctx, code)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CompanyDetailResponse{
		Company: &entity.CompanyDetail{Company: *company, Invoices: invoices},
	})
}

// CreateCompany handles POST /companies. The code is stored as its slug.
func (h *Handlers) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	err := h.bindFields(c, &req, createCompanyFields,
		"Please provide a json value with code, name, and description values")
	if err != nil {
		_ = c.Error(err)
		return
	}

	code := utils.Slugify(req.Code)
	if code == "" {
		_ = c.Error(errs.BadRequest("Company code must contain at least one letter or digit"))
		return
	}

	company, err := h.companies.Create(c.Request.Context(), &entity.Company{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
	})
	if errors.Is(err, port.ErrDuplicateKey) {
		_ = c.Error(errs.Conflict(fmt.Sprintf("A company with code %s or name %s already exists", code, req.Name)))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Company created", zap.String("code", company.Code))
	c.JSON(http.StatusCreated, CompanyResponse{Company: company})
}

// UpdateCompany handles PUT /companies/:code. The code itself never changes.
func (h *Handlers) UpdateCompany(c *gin.Context) {
	code := c.Param("code")

	var req UpdateCompanyRequest
	err := h.bindFields(c, &req, updateCompanyFields,
		"Please provide a valid json with name and description values")
	if err != nil {
		_ = c.Error(err)
		return
	}

	company, err := h.companies.Update(c.Request.Context(), code, req.Name, req.Description)
	if errors.Is(err, port.ErrDuplicateKey) {
		_ = c.Error(errs.Conflict(fmt.Sprintf("A company named %s already exists", req.Name)))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	if company == nil {
		_ = c.Error(companyNotFound(code))
		return
	}

	c.JSON(http.StatusOK, UpdatedCompanyResponse{Status: StatusUpdated, Company: company})
}

// DeleteCompany handles DELETE /companies/:code
func (h *Handlers) DeleteCompany(c *gin.Context) {
	code := c.Param("code")

	company, err := h.companies.Delete(c.Request.Context(), code)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if company == nil {
		_ = c.Error(companyNotFound(code))
		return
	}

	h.logger.Info("Company deleted", zap.String("code", code))
	c.JSON(http.StatusAccepted, DeletedResponse{Status: StatusDeleted, Data: company.Ref()})
}

func companyNotFound(code string) *errs.Error {
	return errs.NotFound(fmt.Sprintf("Company code %s not found", code))
}
