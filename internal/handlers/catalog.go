package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/filter"
	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/bhushan0206/HeartAndHands/internal/store"
)

// CatalogHandler serves the public gallery and shop listings.
type CatalogHandler struct {
	Store *store.Store
}

type portfolioResponse struct {
	Items      []models.PortfolioItem `json:"items"`
	Categories []string               `json:"categories"`
	Filter     filter.State           `json:"filter"`
}

type productsResponse struct {
	Items       []models.Product `json:"items"`
	Categories  []string         `json:"categories"`
	Creators    []string         `json:"creators"`
	Filter      filter.State     `json:"filter"`
	ActiveCount int              `json:"activeFilters"`
	Total       int              `json:"total"`
}

func (h *CatalogHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	state, err := filter.ParseState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.Store.ListPortfolio(r.Context())
	if err != nil {
		slog.Error("Failed to list portfolio", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching portfolio")
		return
	}
	active, err := h.Store.ActiveCategoryIDs(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	writeJSON(w, http.StatusOK, portfolioResponse{
		Items:      filter.Portfolio(items, state),
		Categories: append([]string{filter.All}, active...),
		Filter:     state,
	})
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	state, err := filter.ParseState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.Store.ListProducts(r.Context())
	if err != nil {
		slog.Error("Failed to list products", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	inactive, err := h.Store.InactiveCategoryIDs(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	writeJSON(w, http.StatusOK, productsResponse{
		Items:       filter.Products(products, state),
		Categories:  filter.Hide(filter.Categories(products), inactive...),
		Creators:    filter.Creators(products),
		Filter:      state,
		ActiveCount: state.ActiveCount(),
		Total:       len(products),
	})
}

func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProduct(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		slog.Error("Failed to fetch product", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Creators lists the active creator profiles for the "meet the makers" section.
func (h *CatalogHandler) Creators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.Store.ActiveCreators(r.Context())
	if err != nil {
		slog.Error("Failed to list creators", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching creators")
		return
	}
	writeJSON(w, http.StatusOK, creators)
}
