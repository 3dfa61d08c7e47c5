package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/domain/entity"
)

// InvoiceRepository implements port.InvoiceRepository
type InvoiceRepository struct {
	db     Store
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db Store, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every invoice ordered by id
func (r *InvoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	query := `
		SELECT id, comp_code, amt, paid, add_date, paid_date
		FROM invoices
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, wrapError("list invoices", err)
	}
	return r.collect(rows)
}

// ListByCompany returns the invoices billed to a company, ordered by id
func (r *InvoiceRepository) ListByCompany(ctx context.Context, compCode string) ([]*entity.Invoice, error) {
	query := `
		SELECT id, comp_code, amt, paid, add_date, paid_date
		FROM invoices
		WHERE comp_code = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, compCode)
	if err != nil {
		r.logger.Error("Failed to list invoices by company", zap.String("comp_code", compCode), zap.Error(err))
		return nil, wrapError("list invoices", err)
	}
	return r.collect(rows)
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `
		SELECT id, comp_code, amt, paid, add_date, paid_date
		FROM invoices
		WHERE id = ?
	`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get invoice by ID", zap.Int64("id", id), zap.Error(err))
		return nil, wrapError("get invoice", err)
	}
	return invoice, nil
}

// Create inserts an unpaid invoice dated addedAt
func (r *InvoiceRepository) Create(ctx context.Context, compCode string, amt float64, addedAt time.Time) (*entity.Invoice, error) {
	query := `
		INSERT INTO invoices (comp_code, amt, add_date)
		VALUES (?, ?, ?)
		RETURNING id, comp_code, amt, paid, add_date, paid_date
	`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, compCode, amt, addedAt))
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.String("comp_code", compCode), zap.Error(err))
		return nil, wrapError("create invoice", err)
	}
	return invoice, nil
}

// Update sets amt and paid in one statement. paid_date keeps its value while
// the invoice stays paid, takes at on the first payment and is cleared when
// paid is false.
func (r *InvoiceRepository) Update(ctx context.Context, id int64, amt float64, paid bool, at time.Time) (*entity.Invoice, error) {
	query := `
		UPDATE invoices
		SET amt = ?,
			paid = ?,
			paid_date = CASE WHEN ? THEN COALESCE(paid_date, ?) ELSE NULL END
		WHERE id = ?
		RETURNING id, comp_code, amt, paid, add_date, paid_date
	`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, amt, paid, paid, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", id), zap.Error(err))
		return nil, wrapError("update invoice", err)
	}
	return invoice, nil
}

// Delete removes an invoice and returns the row as it was before deletion
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `
		DELETE FROM invoices
		WHERE id = ?
		RETURNING id, comp_code, amt, paid, add_date, paid_date
	`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return nil, wrapError("delete invoice", err)
	}
	return invoice, nil
}

func (r *InvoiceRepository) collect(rows *sql.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()

	invoices := make([]*entity.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, wrapError("scan invoice", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var invoice entity.Invoice
	var addDate, paidDate nullTime

	err := row.Scan(
		&invoice.ID,
		&invoice.CompCode,
		&invoice.Amt,
		&invoice.Paid,
		&addDate,
		&paidDate,
	)
	if err != nil {
		return nil, err
	}

	invoice.AddDate = addDate.Time
	invoice.PaidDate = paidDate.ptr()
	return &invoice, nil
}
