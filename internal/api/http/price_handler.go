package http

import (
	"net/http"

	"skirent-backend/internal/service"

	"github.com/shopspring/decimal"
)

type PriceHandler struct {
	prices service.PriceService
}

func NewPriceHandler(prices service.PriceService) *PriceHandler {
	return &PriceHandler{prices: prices}
}

func (h *PriceHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.prices.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type upsertPriceRequest struct {
	Type  string          `json:"type"`
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
	Note  string          `json:"note"`
}

func (h *PriceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	entry, err := h.prices.Upsert(r.Context(), req.Type, req.Size, req.Price, req.Note)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *PriceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	typeLabel := r.URL.Query().Get("type")
	sizeLabel := r.URL.Query().Get("size")

	removed, err := h.prices.Delete(r.Context(), typeLabel, sizeLabel)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"removed_units": removed})
}
