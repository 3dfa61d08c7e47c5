package repository

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/domain/entity"
)

// CompanyRepository implements port.CompanyRepository
type CompanyRepository struct {
	db     Store
	logger *zap.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db Store, logger *zap.Logger) port.CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every company ordered by code
func (r *CompanyRepository) List(ctx context.Context) ([]*entity.Company, error) {
	query := `SELECT code, name, description FROM companies ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list companies", zap.Error(err))
		return nil, wrapError("list companies", err)
	}
	defer rows.Close()

	companies := make([]*entity.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, wrapError("scan company", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// GetByCode retrieves a company by its code
func (r *CompanyRepository) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	query := `SELECT code, name, description FROM companies WHERE code = ?`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get company", zap.String("code", code), zap.Error(err))
		return nil, wrapError("get company", err)
	}
	return company, nil
}

// Create inserts a company and returns the stored row
func (r *CompanyRepository) Create(ctx context.Context, company *entity.Company) (*entity.Company, error) {
	query := `
		INSERT INTO companies (code, name, description)
		VALUES (?, ?, ?)
		RETURNING code, name, description
	`

	created, err := scanCompany(r.db.QueryRowContext(ctx, query,
		company.Code,
		company.Name,
		company.Description,
	))
	if err != nil {
		r.logger.Error("Failed to create company", zap.String("code", company.Code), zap.Error(err))
		return nil, wrapError("create company", err)
	}
	return created, nil
}

// Update replaces name and description of the company with the given code
func (r *CompanyRepository) Update(ctx context.Context, code, name, description string) (*entity.Company, error) {
	query := `
		UPDATE companies
		SET name = ?, description = ?
		WHERE code = ?
		RETURNING code, name, description
	`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, name, description, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to update company", zap.String("code", code), zap.Error(err))
		return nil, wrapError("update company", err)
	}
	return company, nil
}

// Delete removes a company and returns the row as it was before deletion.
// Its invoices go with it through the ON DELETE CASCADE foreign key.
func (r *CompanyRepository) Delete(ctx context.Context, code string) (*entity.Company, error) {
	query := `DELETE FROM companies WHERE code = ? RETURNING code, name, description`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to delete company", zap.String("code", code), zap.Error(err))
		return nil, wrapError("delete company", err)
	}
	return company, nil
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var company entity.Company
	if err := row.Scan(&company.Code, &company.Name, &company.Description); err != nil {
		return nil, err
	}
	return &company, nil
}
