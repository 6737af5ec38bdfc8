package presentation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

type createOrderRequest struct {
	CustomerID    int64   `json:"customer_id"`
	MeasurementID *int64  `json:"measurement_id"`
	DueDate       string  `json:"due_date"`
	Price         float64 `json:"price"`
	AmountPaid    float64 `json:"amount_paid"`
	Notes         string  `json:"notes"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	o := &domain.Order{
		CustomerID:    req.CustomerID,
		MeasurementID: req.MeasurementID,
		DueDate:       req.DueDate,
		Price:         req.Price,
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
	}
	if err := h.orders.AddOrder(r.Context(), o); err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			helpers.HttpError(w, http.StatusBadRequest, "customer_id and a positive price are required")
		case errors.Is(err, application.ErrNotFound):
			helpers.HttpError(w, http.StatusNotFound, "customer not found")
		default:
			helpers.HttpError(w, http.StatusInternalServerError, "failed to add order")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) ListOpenOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOpen(r.Context())
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	orders, err := h.orders.ListByCustomer(r.Context(), id)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, application.ErrBadStatus):
			helpers.HttpError(w, http.StatusBadRequest, "invalid order status")
		case errors.Is(err, application.ErrNotFound):
			helpers.HttpError(w, http.StatusNotFound, "order not found")
		default:
			helpers.HttpError(w, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id, "order_status": req.Status})
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	o, err := h.orders.RecordPayment(r.Context(), id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			helpers.HttpError(w, http.StatusBadRequest, "amount must be positive")
		case errors.Is(err, application.ErrNotFound):
			helpers.HttpError(w, http.StatusNotFound, "order not found")
		default:
			helpers.HttpError(w, http.StatusInternalServerError, "failed to record payment")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, o)
}
