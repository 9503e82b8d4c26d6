package handlers

import (
	"net/http"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// ListOrders handles GET /api/orders. Only the caller's orders are listed.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	caller := auth.FromContext(r.Context())
	page := pageFrom(r)

	result, err := h.orders.ListOrders(r.Context(), caller.UserID, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	orders := make([]orderListView, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, orderListItem(o, result.AvailablePlaces))
	}
	respondList(w, page, result.Total, orders)
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	caller := auth.FromContext(r.Context())

	var req models.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), caller.UserID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, orderCreated(*order))
}
