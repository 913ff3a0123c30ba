package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bhushan0206/HeartAndHands/internal/cart"
	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/bhushan0206/HeartAndHands/internal/session"
	"github.com/bhushan0206/HeartAndHands/internal/store"
)

// CartHandler serves the visitor's cart, checkout and notifications.
type CartHandler struct {
	Visitors *Visitors
}

type cartResponse struct {
	session.View
	Outcome  string `json:"outcome,omitempty"`
	Rejected string `json:"rejected,omitempty"`
}

type addItemRequest struct {
	ItemID              string               `json:"itemId"`
	Quantity            *int                 `json:"quantity"`
	SelectedDate        string               `json:"selectedDate"`
	SelectedTime        string               `json:"selectedTime"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod"`
	SpecialInstructions string               `json:"specialInstructions"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// rejection reports whether err is a cart rule refusing the change, as
// opposed to a failure to carry it out.
func rejection(err error) bool {
	for _, target := range []error{
		cart.ErrInvalidQuantity,
		cart.ErrPaymentMethod,
		cart.ErrUnavailableDate,
		cart.ErrOutOfStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	s, err := h.Visitors.Session(w, r)
	if err != nil {
		slog.Error("Failed to resolve visitor session", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Session unavailable")
		return nil
	}
	return s
}

// fail writes the response for a session call that could not complete.
func (h *CartHandler) fail(w http.ResponseWriter, s *session.Session, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, session.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "Session expired, please retry")
	default:
		slog.Error("Cart operation failed", "session", s.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating cart")
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	v, err := s.Cart(r.Context())
	if err != nil {
		h.fail(w, s, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{View: v})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	s := h.session(w, r)
	if s == nil {
		return
	}
	v, outcome, err := s.AddItem(r.Context(), req.ItemID, quantity, cart.Options{
		SelectedDate:        req.SelectedDate,
		SelectedTime:        req.SelectedTime,
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, cartResponse{View: v, Outcome: outcome.String()})
	case rejection(err):
		writeJSON(w, http.StatusOK, cartResponse{View: v, Rejected: err.Error()})
	default:
		h.fail(w, s, err)
	}
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s := h.session(w, r)
	if s == nil {
		return
	}
	v, err := s.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, cartResponse{View: v})
	case rejection(err):
		writeJSON(w, http.StatusOK, cartResponse{View: v, Rejected: err.Error()})
	default:
		h.fail(w, s, err)
	}
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	v, err := s.RemoveItem(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, s, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{View: v})
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	conf, err := s.Checkout(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, conf)
	case errors.Is(err, cart.ErrEmptyCart):
		writeError(w, http.StatusConflict, "Your cart is empty")
	case errors.Is(err, session.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "Session expired, please retry")
	default:
		slog.Error("Checkout failed", "session", s.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "We could not place your order")
	}
}

func (h *CartHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.Notifications())
}

func (h *CartHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	s := h.session(w, r)
	if s == nil {
		return
	}
	s.Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}
