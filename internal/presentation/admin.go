package presentation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/export"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		logger.Warn("dashboard stats failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, stats)
}

// --- exports ---

func (h *Handler) ExportMeasurementPDF(w http.ResponseWriter, r *http.Request) {
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

	pdf, err := export.MeasurementPDF(m)
	if err != nil {
		logger.Warn("pdf export failed", "id", id, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}

	name := fmt.Sprintf("TM_Measurement_%s.pdf", m.CustomerNaap)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	list, err := h.measurements.History(r.Context(), "")
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to load measurements")
		return
	}
	if len(list) == 0 {
		helpers.HttpError(w, http.StatusNotFound, "no measurement records to export")
		return
	}

	xlsx, err := export.MeasurementsExcel(list)
	if err != nil {
		logger.Warn("excel export failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to render Excel file")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tmms_export.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	dump, err := h.transfer.ExportJSON(r.Context())
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to export data")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tmms_export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dump)
}

func (h *Handler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = application.ImportMerge
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	res, err := h.transfer.ImportJSON(r.Context(), raw, mode)
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			helpers.HttpError(w, http.StatusBadRequest, err.Error())
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "import failed")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// --- backups ---

func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	name, err := h.backups.Create(r.Context())
	if err != nil {
		logger.Warn("backup failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, map[string]string{
		"status": "ok",
		"name":   name,
	})
}

func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	list, err := h.backups.List()
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.backups.Restore(r.Context(), name); err != nil {
		logger.Warn("restore failed", "name", name, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "restore failed: "+err.Error())
		return
	}

	// кэш после рестора невалиден
	h.customers.InvalidateCache()

	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"restored_at": time.Now().Format(time.RFC3339),
	})
}

// --- demo data ---

func (h *Handler) GenerateDemo(w http.ResponseWriter, r *http.Request) {
	n := helpers.QueryInt(r, "count", 1, 1000)

	created, err := h.demo.Generate(r.Context(), n)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to generate demo data")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status":        "ok",
		"created_naaps": created,
	})
}
