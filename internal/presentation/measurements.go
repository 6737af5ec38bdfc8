package presentation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

type measurementRequest struct {
	CustomerID           int64             `json:"customer_id"`
	DressType            string            `json:"dress_type"`
	Values               map[string]string `json:"measurements"`
	CollarType           string            `json:"collar_type"`
	StitchType           string            `json:"stitch_type"`
	FabricType           string            `json:"fabric_type"`
	TailorInstructions   string            `json:"tailor_instructions"`
	UrgentDelivery       bool              `json:"urgent_delivery"`
	ExpectedDeliveryDate string            `json:"expected_delivery_date"`
}

func (req *measurementRequest) toDomain() *domain.Measurement {
	return &domain.Measurement{
		CustomerID:           req.CustomerID,
		DressType:            req.DressType,
		Values:               req.Values,
		CollarType:           req.CollarType,
		StitchType:           req.StitchType,
		FabricType:           req.FabricType,
		TailorInstructions:   req.TailorInstructions,
		UrgentDelivery:       req.UrgentDelivery,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
	}
}

func (h *Handler) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req measurementRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	m := req.toDomain()
	if err := h.measurements.AddMeasurement(r.Context(), m); err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			helpers.HttpError(w, http.StatusBadRequest, "customer_id and dress_type are required")
		case errors.Is(err, application.ErrNotFound):
			helpers.HttpError(w, http.StatusNotFound, "customer not found")
		default:
			helpers.HttpError(w, http.StatusInternalServerError, "failed to add measurement")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, m)
}

// MeasurementHistory lists the measurement history, each entry carrying a
// short summary string for table display.
func (h *Handler) MeasurementHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.measurements.History(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	type entry struct {
		domain.Measurement
		Summary string `json:"summary"`
	}
	out := make([]entry, 0, len(list))
	for i := range list {
		out = append(out, entry{
			Measurement: list[i],
			Summary:     application.Summary(&list[i], 3),
		})
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) GetMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}

	m, err := h.measurements.GetByID(r.Context(), id)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get measurement")
		return
	}
	if m == nil {
		helpers.HttpError(w, http.StatusNotFound, "measurement not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) UpdateMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(chi.URLParam(r, "id"))
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}

	var req measurementRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	m := req.toDomain()
	m.ID = id
	if err := h.measurements.UpdateMeasurement(r.Context(), m); err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			helpers.HttpError(w, http.StatusBadRequest, "dress_type is required")
		case errors.Is(err, application.ErrNotFound):
			helpers.HttpError(w, http.StatusNotFound, "measurement not found")
		default:
			helpers.HttpError(w, http.StatusInternalServerError, "failed to update measurement")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id})
}
