package http

import (
	"net/http"
	"strconv"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/service"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var basket service.Basket
	if err := decodeJSON(r, &basket); err != nil {
		writeServiceError(w, r, err)
		return
	}

	quote, err := h.orders.Preview(r.Context(), basket)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var basket service.Basket
	if err := decodeJSON(r, &basket); err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := h.orders.Create(r.Context(), claims.UserID, basket)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// List returns every order for staff and only the caller's own orders for
// customers.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var (
		views []service.OrderView
		err   error
	)
	if claims.Role == string(domain.RoleWorker) || claims.Role == string(domain.RoleAdmin) {
		views, err = h.orders.List(r.Context())
	} else {
		views, err = h.orders.ListByUser(r.Context(), claims.UserID)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// a customer only ever sees their own orders
	if claims.Role == string(domain.RoleCustomer) && view.UserID != claims.UserID {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := h.orders.Accept(r.Context(), id, claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := h.orders.Return(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if claims.Role == string(domain.RoleCustomer) {
		view, err := h.orders.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if view.UserID != claims.UserID {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
	}

	if err := h.orders.Cancel(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"cancelled": id})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, service.Validationf("invalid %s: %q", name, raw)
	}
	return int32(id), nil
}
