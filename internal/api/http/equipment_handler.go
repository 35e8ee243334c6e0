package http

import (
	"net/http"

	"skirent-backend/internal/service"

	"github.com/shopspring/decimal"
)

type EquipmentHandler struct {
	equipment service.EquipmentService
}

func NewEquipmentHandler(equipment service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.equipment.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *EquipmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	views, err := h.equipment.Availability(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type addEquipmentRequest struct {
	Type     string          `json:"type"`
	Size     string          `json:"size"`
	Quantity int32           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (h *EquipmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	units, err := h.equipment.Add(r.Context(), req.Type, req.Size, req.Quantity, req.Price)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, units)
}

type updatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (h *EquipmentHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req updatePriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.equipment.UpdatePrice(r.Context(), id, req.Price); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.equipment.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type deleteAvailableRequest struct {
	Type     string `json:"type"`
	Size     string `json:"size"`
	Quantity int32  `json:"quantity"`
}

// DeleteAvailable bulk-removes unreserved units of one (type, size) pair.
func (h *EquipmentHandler) DeleteAvailable(w http.ResponseWriter, r *http.Request) {
	var req deleteAvailableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	removed, err := h.equipment.DeleteAvailable(r.Context(), req.Type, req.Size, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"removed": removed})
}
