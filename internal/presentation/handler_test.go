package presentation_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/backup"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/migrate"
	"github.com/tmms/tailor-master-service/internal/presentation"
	"github.com/tmms/tailor-master-service/internal/repository"
	"github.com/tmms/tailor-master-service/internal/storage"
)

type app struct {
	router chi.Router
	token  string
}

func newApp(t *testing.T) *app {
	t.Helper()
	logger.Init()

	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "tmms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, migrate.Up(store.DB()))

	customerRepo := repository.NewCustomerRepository(store)
	measurementRepo := repository.NewMeasurementRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)

	customers := application.NewCustomersService(customerRepo)
	measurements := application.NewMeasurementsService(measurementRepo, customers)
	orders := application.NewOrdersService(orderRepo, customers)
	auth := application.NewAuthService(userRepo, time.Hour)
	dashboard := application.NewDashboardService(customerRepo, measurementRepo, orderRepo)
	transfer := application.NewTransferService(customerRepo, measurementRepo, orderRepo, customers)
	demo := application.NewDemoService(customers, measurements, orders)
	backups := backup.NewService(store, filepath.Join(dir, "backups"))

	require.NoError(t, auth.EnsureDefaultAdmin(t.Context()))

	r := chi.NewRouter()
	h := presentation.NewHandler(customers, measurements, orders, auth, dashboard, transfer, demo, backups)
	h.Register(r)

	a := &app{router: r}
	resp := a.do(t, http.MethodPost, "/login", map[string]string{
		"username": "admin", "password": "password",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var login map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	a.token = login["token"]
	return a
}

func (a *app) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestAPIRequiresToken(t *testing.T) {
	a := newApp(t)

	anon := &app{router: a.router}
	assert.Equal(t, http.StatusUnauthorized, anon.do(t, http.MethodGet, "/api/dashboard", nil).Code)

	anon.token = "bogus"
	assert.Equal(t, http.StatusUnauthorized, anon.do(t, http.MethodGet, "/api/dashboard", nil).Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newApp(t)
	a.token = ""
	resp := a.do(t, http.MethodPost, "/login", map[string]string{
		"username": "admin", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCustomerToOrderWorkflow(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodPost, "/api/customers", map[string]string{
		"full_name":     "Ahmed Khan",
		"mobile_number": "050-111-2222",
		"address":       "Shop Street 5",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	customer := decode[map[string]any](t, resp)
	naap := customer["naap_number"].(string)
	assert.Equal(t, fmt.Sprintf("%d-0001", time.Now().Year()), naap)
	customerID := int64(customer["id"].(float64))

	resp = a.do(t, http.MethodGet, "/api/customers/naap/"+naap, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = a.do(t, http.MethodGet, "/api/customers?q=Ahmed", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = a.do(t, http.MethodPost, "/api/measurements", map[string]any{
		"customer_id":  customerID,
		"dress_type":   "Shalwar Kameez",
		"measurements": map[string]string{"length": "40", "chest": "22"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, http.MethodGet, "/api/measurements", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	history := decode[[]map[string]any](t, resp)
	require.Len(t, history, 1)
	assert.Equal(t, "length: 40, chest: 22", history[0]["summary"])

	resp = a.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": customerID,
		"price":       1500.0,
		"amount_paid": 500.0,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	order := decode[map[string]any](t, resp)
	assert.Equal(t, "Partially Paid", order["payment_status"])
	orderID := int64(order["id"].(float64))

	resp = a.do(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/payments", orderID), map[string]any{
		"amount": 1000.0,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	paid := decode[map[string]any](t, resp)
	assert.Equal(t, "Paid", paid["payment_status"])

	resp = a.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", orderID), map[string]string{
		"status": "Delivered",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = a.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[[]map[string]any](t, resp), "delivered orders leave the open list")

	resp = a.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decode[map[string]any](t, resp)
	assert.Equal(t, float64(1), stats["customers"])
	assert.Equal(t, float64(1), stats["measurements"])
	assert.Equal(t, float64(0), stats["open_orders"])
	assert.Equal(t, float64(1500), stats["revenue"])
}

func TestExportEndpoints(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodGet, "/api/export/measurements.xlsx", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code, "nothing to export yet")

	resp = a.do(t, http.MethodPost, "/api/customers", map[string]string{
		"full_name": "Ahmed Khan", "mobile_number": "050-111-2222",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	customerID := int64(decode[map[string]any](t, resp)["id"].(float64))

	resp = a.do(t, http.MethodPost, "/api/measurements", map[string]any{
		"customer_id":  customerID,
		"dress_type":   "Kurta",
		"measurements": map[string]string{"length": "38"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	measurementID := int64(decode[map[string]any](t, resp)["id"].(float64))

	resp = a.do(t, http.MethodGet, fmt.Sprintf("/api/export/measurements/%d/pdf", measurementID), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))

	resp = a.do(t, http.MethodGet, "/api/export/measurements.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Body.Bytes())

	resp = a.do(t, http.MethodGet, "/api/export/data.json", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var dump application.DataDump
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dump))
	assert.Len(t, dump.Customers, 1)
	assert.Len(t, dump.Measurements, 1)
}

func TestBackupEndpoints(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodPost, "/api/customers", map[string]string{
		"full_name": "Ahmed Khan", "mobile_number": "050-111-2222",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, http.MethodPost, "/api/backups", nil)
	require.Equal(t, http.StatusCreated, resp.Code)
	created := decode[map[string]any](t, resp)
	name := created["name"].(string)

	resp = a.do(t, http.MethodGet, "/api/backups", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[[]map[string]any](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, name, list[0]["name"])

	resp = a.do(t, http.MethodPost, "/api/backups/"+name+"/restore", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = a.do(t, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)
}

func TestGenerateDemoData(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodPost, "/api/demo/generate?count=3", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decode[map[string]any](t, resp)
	assert.Equal(t, float64(3), stats["customers"])
	assert.Equal(t, float64(3), stats["measurements"])
}
