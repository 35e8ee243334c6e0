package http

import (
	"net/http"

	"skirent-backend/internal/service"

	"github.com/gorilla/mux"
)

type WorkerHandler struct {
	workers    service.WorkerService
	rentalInfo service.RentalInfoService
}

func NewWorkerHandler(workers service.WorkerService, rentalInfo service.RentalInfoService) *WorkerHandler {
	return &WorkerHandler{workers: workers, rentalInfo: rentalInfo}
}

func (h *WorkerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.WorkerInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	worker, err := h.workers.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, worker)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := h.workers.Delete(r.Context(), email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workers)
}

func (h *WorkerHandler) RentalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.rentalInfo.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
