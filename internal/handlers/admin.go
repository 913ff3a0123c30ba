package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/bhushan0206/HeartAndHands/internal/store"
)

// AdminHandler serves catalog maintenance. It carries no authentication.
type AdminHandler struct {
	Store *store.Store
}

// storeError maps a store failure onto a response. It returns false when
// err is nil.
func storeError(w http.ResponseWriter, err error, action string) bool {
	switch {
	case err == nil:
		return false
	case models.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("Admin operation failed", "action", action, "error", err)
		writeError(w, http.StatusInternalServerError, "Error "+action)
	}
	return true
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats(r.Context())
	if storeError(w, err, "fetching stats") {
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories(r.Context())
	if storeError(w, err, "fetching categories") {
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type categoryPatch struct {
	Active *bool `json:"active"`
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPatch
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "active is required")
		return
	}
	id := r.PathValue("id")
	if storeError(w, h.Store.SetCategoryActive(r.Context(), id, *req.Active), "updating category") {
		return
	}
	slog.Info("Category updated", "id", id, "active", *req.Active)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.Store.ListCreators(r.Context())
	if storeError(w, err, "fetching creators") {
		return
	}
	writeJSON(w, http.StatusOK, creators)
}
