package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

func (h *AdminHandler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var item models.PortfolioItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = ""
	if storeError(w, h.Store.CreatePortfolioItem(r.Context(), &item), "creating portfolio item") {
		return
	}
	slog.Info("Portfolio item created", "id", item.ID, "title", item.Title)
	writeJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var item models.PortfolioItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = r.PathValue("id")
	if storeError(w, h.Store.UpdatePortfolioItem(r.Context(), &item), "updating portfolio item") {
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *AdminHandler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if storeError(w, h.Store.DeletePortfolioItem(r.Context(), id), "deleting portfolio item") {
		return
	}
	slog.Info("Portfolio item deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// newProduct starts from the defaults a product gets when the body omits them.
func newProduct() models.Product {
	return models.Product{InStock: true}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p := newProduct()
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = ""
	if storeError(w, h.Store.CreateProduct(r.Context(), &p), "creating product") {
		return
	}
	slog.Info("Product created", "id", p.ID, "title", p.Title, "price", p.Price.StringFixed(2))
	created, err := h.Store.GetProduct(r.Context(), p.ID)
	if storeError(w, err, "fetching product") {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	p := newProduct()
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = r.PathValue("id")
	if storeError(w, h.Store.UpdateProduct(r.Context(), &p), "updating product") {
		return
	}
	updated, err := h.Store.GetProduct(r.Context(), p.ID)
	if storeError(w, err, "fetching product") {
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product. Carts still holding it report the line as stale.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if storeError(w, h.Store.DeleteProduct(r.Context(), id), "deleting product") {
		return
	}
	slog.Info("Product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
