package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/application/port"
	"github.com/garyjia/biztime/internal/domain/entity"
	"github.com/garyjia/biztime/internal/infrastructure/persistence/repository"
	"github.com/garyjia/biztime/pkg/database"
	"github.com/garyjia/biztime/pkg/database/databasetest"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type testAPI struct {
	server    *Server
	db        *database.DB
	companies port.CompanyRepository
	invoices  port.InvoiceRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := databasetest.New(t)
	logger := zap.NewNop()
	companies := repository.NewCompanyRepository(db, logger)
	invoices := repository.NewInvoiceRepository(db, logger)

	server := NewServer(DefaultServerConfig(), companies, invoices, db, logger)
	server.handlers.now = func() time.Time { return fixedNow }

	return &testAPI{server: server, db: db, companies: companies, invoices: invoices}
}

// do sends body as-is when it is a string, JSON-encoded otherwise
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.server.Router().ServeHTTP(w, req)
	return w
}

func (a *testAPI) seedCompany(t *testing.T, code, name string) *entity.Company {
	t.Helper()
	company, err := a.companies.Create(context.Background(), &entity.Company{
		Code:        code,
		Name:        name,
		Description: "This is " + name,
	})
	require.NoError(t, err)
	return company
}

func (a *testAPI) seedInvoice(t *testing.T, compCode string, amt float64) *entity.Invoice {
	t.Helper()
	invoice, err := a.invoices.Create(context.Background(), compCode, amt, fixedNow.Add(-24*time.Hour))
	require.NoError(t, err)
	return invoice
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())

	var resp ErrorResponse
	decode(t, w, &resp)
	require.NotNil(t, resp.Error)
	require.Equal(t, status, resp.Error.Status)
	if message != "" {
		require.Equal(t, message, resp.Error.Message)
	}
}
