package port

import (
	"context"
	"errors"
	"time"

	"github.com/garyjia/biztime/internal/domain/entity"
)

var (
	// ErrDuplicateKey is returned when a write collides with a unique key
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingReference is returned when a write points at a row that does not exist
	ErrMissingReference = errors.New("referenced record does not exist")

	// ErrInvalidValue is returned when a write violates a check or not-null constraint
	ErrInvalidValue = errors.New("value violates a constraint")
)

// CompanyRepository defines persistence operations for Company.
// Lookups and writes that match no row return (nil, nil).
type CompanyRepository interface {
	List(ctx context.Context) ([]*entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) (*entity.Company, error)
	Update(ctx context.Context, code, name, description string) (*entity.Company, error)
	Delete(ctx context.Context, code string) (*entity.Company, error)
}

// InvoiceRepository defines persistence operations for Invoice.
// Lookups and writes that match no row return (nil, nil).
type InvoiceRepository interface {
	List(ctx context.Context) ([]*entity.Invoice, error)
	ListByCompany(ctx context.Context, compCode string) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	Create(ctx context.Context, compCode string, amt float64, addedAt time.Time) (*entity.Invoice, error)

	// Update sets amt and paid. A first transition to paid stamps paid_date
	// with at, unpaying clears paid_date.
	Update(ctx context.Context, id int64, amt float64, paid bool, at time.Time) (*entity.Invoice, error)
	Delete(ctx context.Context, id int64) (*entity.Invoice, error)
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}
