package presentation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			helpers.HttpError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "login failed")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": strings.TrimSpace(req.Username),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	h.auth.Logout(token)
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err := h.auth.ChangePassword(r.Context(), Username(r), req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, application.ErrWeakPassword):
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrInvalidCredentials):
		helpers.HttpError(w, http.StatusUnauthorized, "incorrect current password")
	case err != nil:
		helpers.HttpError(w, http.StatusInternalServerError, "failed to change password")
	default:
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handler) ChangeUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewUsername string `json:"new_username"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err := h.auth.ChangeUsername(r.Context(), Username(r), req.NewUsername)
	switch {
	case errors.Is(err, application.ErrValidation):
		helpers.HttpError(w, http.StatusBadRequest, "new_username is required")
	case errors.Is(err, application.ErrUsernameTaken):
		helpers.HttpError(w, http.StatusConflict, "username already taken")
	case err != nil:
		helpers.HttpError(w, http.StatusInternalServerError, "failed to change username")
	default:
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "username": strings.TrimSpace(req.NewUsername)})
	}
}
