package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// OrderHandler handles order HTTP requests. All routes require
// authentication.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// HandleList returns the user's orders, newest first. By default both
// purchases and sales are included; asBuyer/asSeller restrict to one role
// and status filters on an exact status.
// GET /api/orders?status=&asBuyer=&asSeller=
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	q := r.URL.Query()
	filter := domain.OrderFilter{
		Status:   domain.OrderStatus(q.Get("status")),
		AsBuyer:  q.Get("asBuyer") == "true",
		AsSeller: q.Get("asSeller") == "true",
	}

	orders, err := h.orders.List(r.Context(), user.ID, filter)
	if err != nil {
		writeDomainError(w, err, "list orders")
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

// HandleGet returns a single order. Only the buyer or seller may view it.
// GET /api/orders/{id}
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeDomainError(w, err, "get order")
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// HandleCreate places an order for a vinyl with the authenticated user as
// buyer. The order starts pending and snapshots the listing's current
// price.
// POST /api/orders
// Request: {"vinylId":"..."}
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		VinylID string `json:"vinylId"`
	}
	if err := readJSON(r, &req); err != nil || req.VinylID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	order, err := h.orders.Create(r.Context(), user.ID, req.VinylID)
	if err != nil {
		writeDomainError(w, err, "create order")
		return
	}
	writeJSON(w, http.StatusCreated, toOrderDTO(order))
}

// HandleUpdateStatus advances the order state machine. Only the seller may
// change the status, and only along a valid transition.
// PATCH /api/orders/{id}/status
// Request: {"status":"paid"}
func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), user.ID, domain.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(w, err, "update order status")
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}
