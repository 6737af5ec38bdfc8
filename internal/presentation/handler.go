package presentation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/backup"
	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

type Handler struct {
	customers    *application.CustomersService
	measurements *application.MeasurementsService
	orders       *application.OrdersService
	auth         *application.AuthService
	dashboard    *application.DashboardService
	transfer     *application.TransferService
	demo         *application.DemoService
	backups      *backup.Service
}

func NewHandler(
	customers *application.CustomersService,
	measurements *application.MeasurementsService,
	orders *application.OrdersService,
	auth *application.AuthService,
	dashboard *application.DashboardService,
	transfer *application.TransferService,
	demo *application.DemoService,
	backups *backup.Service,
) *Handler {
	return &Handler{
		customers:    customers,
		measurements: measurements,
		orders:       orders,
		auth:         auth,
		dashboard:    dashboard,
		transfer:     transfer,
		demo:         demo,
		backups:      backups,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.Login)

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(h.auth))

		r.Post("/logout", h.Logout)
		r.Post("/account/password", h.ChangePassword)
		r.Post("/account/username", h.ChangeUsername)

		r.Post("/customers", h.CreateCustomer)
		r.Get("/customers", h.ListCustomers)
		r.Get("/customers/{id}", h.GetCustomer)
		r.Get("/customers/naap/{naap}", h.GetCustomerByNaap)
		r.Get("/customers/{id}/orders", h.ListCustomerOrders)

		r.Post("/measurements", h.CreateMeasurement)
		r.Get("/measurements", h.MeasurementHistory)
		r.Get("/measurements/{id}", h.GetMeasurement)
		r.Put("/measurements/{id}", h.UpdateMeasurement)

		r.Post("/orders", h.CreateOrder)
		r.Get("/orders", h.ListOpenOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Patch("/orders/{id}/status", h.UpdateOrderStatus)
		r.Post("/orders/{id}/payments", h.RecordPayment)

		r.Get("/dashboard", h.Dashboard)

		r.Get("/export/measurements/{id}/pdf", h.ExportMeasurementPDF)
		r.Get("/export/measurements.xlsx", h.ExportExcel)
		r.Get("/export/data.json", h.ExportJSON)
		r.Post("/import/data.json", h.ImportJSON)

		r.Post("/backups", h.CreateBackup)
		r.Get("/backups", h.ListBackups)
		r.Post("/backups/{name}/restore", h.RestoreBackup)

		r.Post("/demo/generate", h.GenerateDemo)
	})
}

// --- customers ---

type createCustomerRequest struct {
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
	DateOfEntry  string `json:"date_of_entry"`
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c := &domain.Customer{
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
		DateOfEntry:  req.DateOfEntry,
	}
	if err := h.customers.AddCustomer(r.Context(), c); err != nil {
		if errors.Is(err, application.ErrValidation) {
			helpers.HttpError(w, http.StatusBadRequest, "full_name and mobile_number are required")
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "failed to add customer")
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}
	if c == nil {
		helpers.HttpError(w, http.StatusNotFound, "customer not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) GetCustomerByNaap(w http.ResponseWriter, r *http.Request) {
	naap := strings.TrimSpace(chi.URLParam(r, "naap"))
	if naap == "" {
		helpers.HttpError(w, http.StatusBadRequest, "naap is empty")
		return
	}

	c, err := h.customers.GetByNaap(r.Context(), naap)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}
	if c == nil {
		helpers.HttpError(w, http.StatusNotFound, "customer not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, c)
}
