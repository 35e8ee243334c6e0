// Package http is the REST surface of the rental backend, served with
// gorilla/mux.
package http

import (
	"net/http"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/security"
	"skirent-backend/internal/service"

	"github.com/gorilla/mux"
)

type Services struct {
	Orders     service.OrderService
	Equipment  service.EquipmentService
	Prices     service.PriceService
	Audit      service.AuditService
	Auth       service.AuthService
	Workers    service.WorkerService
	RentalInfo service.RentalInfoService
}

// NewRouter wires every endpoint. Reads on the public catalog need no token;
// order placement needs any authenticated user; issue/return and inventory
// management are staff actions; the catalog, the audit log and the worker
// directory are admin-only.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	auth := NewAuthMiddleware(tokens)
	staff := auth.RequireRole(domain.RoleWorker, domain.RoleAdmin)
	admin := auth.RequireRole(domain.RoleAdmin)

	orders := NewOrderHandler(svcs.Orders)
	equipment := NewEquipmentHandler(svcs.Equipment)
	prices := NewPriceHandler(svcs.Prices)
	audit := NewAuditHandler(svcs.Audit)
	authH := NewAuthHandler(svcs.Auth)
	workers := NewWorkerHandler(svcs.Workers, svcs.RentalInfo)

	r := mux.NewRouter()
	r.Use(RequestLogger)
	api := r.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/auth/register", authH.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/orders/preview", orders.Preview).Methods(http.MethodPost)
	api.HandleFunc("/equipment", equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/availability", equipment.Availability).Methods(http.MethodGet)
	api.HandleFunc("/rentalinfo", workers.RentalInfo).Methods(http.MethodGet)

	// any authenticated user
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Authenticate)
	authed.HandleFunc("/orders", orders.Create).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orders.List).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}", orders.Get).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}", orders.Cancel).Methods(http.MethodDelete)

	// staff
	authed.HandleFunc("/orders/{id:[0-9]+}/accept", staff(orders.Accept)).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{id:[0-9]+}/returned", staff(orders.Return)).Methods(http.MethodPost)
	authed.HandleFunc("/equipment", staff(equipment.Add)).Methods(http.MethodPost)
	authed.HandleFunc("/equipment", staff(equipment.DeleteAvailable)).Methods(http.MethodDelete)
	authed.HandleFunc("/equipment/{id:[0-9]+}", staff(equipment.UpdatePrice)).Methods(http.MethodPut)
	authed.HandleFunc("/equipment/{id:[0-9]+}", staff(equipment.Delete)).Methods(http.MethodDelete)

	// admin
	authed.HandleFunc("/prices", admin(prices.List)).Methods(http.MethodGet)
	authed.HandleFunc("/prices", admin(prices.Upsert)).Methods(http.MethodPost)
	authed.HandleFunc("/prices", admin(prices.Delete)).Methods(http.MethodDelete)
	authed.HandleFunc("/auditlog", admin(audit.Query)).Methods(http.MethodGet)
	authed.HandleFunc("/workers", admin(workers.List)).Methods(http.MethodGet)
	authed.HandleFunc("/workers", admin(workers.Register)).Methods(http.MethodPost)
	authed.HandleFunc("/workers/{email}", admin(workers.Delete)).Methods(http.MethodDelete)

	return r
}
