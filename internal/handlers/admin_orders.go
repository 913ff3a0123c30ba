package handlers

import (
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

type ordersPage struct {
	Orders      []models.Order `json:"orders"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	Limit       int            `json:"limit"`
	Total       int            `json:"total"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	offset := (page - 1) * limit

	orders, err := h.Store.ListOrders(r.Context(), limit, offset)
	if storeError(w, err, "fetching orders") {
		return
	}

	totalOrders, err := h.Store.GetTotalOrdersCount(r.Context())
	if storeError(w, err, "fetching total order count") {
		return
	}

	totalPages := (totalOrders + limit - 1) / limit
	if totalPages == 0 { // Handle case with no orders
		totalPages = 1
	}

	writeJSON(w, http.StatusOK, ordersPage{
		Orders:      orders,
		CurrentPage: page,
		TotalPages:  totalPages,
		Limit:       limit,
		Total:       totalOrders,
	})
}
