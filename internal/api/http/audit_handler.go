package http

import (
	"net/http"
	"strconv"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/service"
)

type AuditHandler struct {
	audit service.AuditService
}

func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Query filters: orderId, dateFrom, dateTo (both YYYY-MM-DD, inclusive whole
// days), q for a substring match and take for the row cap.
func (h *AuditHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := domain.AuditQuery{Text: r.URL.Query().Get("q")}

	if raw := r.URL.Query().Get("orderId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeServiceError(w, r, service.Validationf("invalid orderId: %q", raw))
			return
		}
		orderID := int32(id)
		q.OrderID = &orderID
	}
	if raw := r.URL.Query().Get("dateFrom"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeServiceError(w, r, service.Validationf("invalid dateFrom: %q", raw))
			return
		}
		q.DateFrom = &from
	}
	if raw := r.URL.Query().Get("dateTo"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeServiceError(w, r, service.Validationf("invalid dateTo: %q", raw))
			return
		}
		q.DateTo = &to
	}
	if raw := r.URL.Query().Get("take"); raw != "" {
		take, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeServiceError(w, r, service.Validationf("invalid take: %q", raw))
			return
		}
		q.Limit = int32(take)
	}

	entries, err := h.audit.Query(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
