package handler

import (
	"net/http"
	"time"

	"github.com/segyhp/loan-origination/pkg/response"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Routes bundles everything the API router needs.
type Routes struct {
	Orders         *OrderHandler
	DebtCapacity   *DebtCapacityHandler
	Health         *HealthHandler
	Redis          *redis.Client
	IdempotencyTTL time.Duration
}

func NewRouter(routes Routes) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", routes.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", routes.Health.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.JSONMiddleware)

	idempotent := IdempotencyMiddleware(routes.Redis, routes.IdempotencyTTL)

	api.Handle("/loan-requests", idempotent(http.HandlerFunc(routes.Orders.CreateLoanRequest))).Methods(http.MethodPost)
	api.HandleFunc("/loan-requests", routes.Orders.ListLoanRequests).Methods(http.MethodGet)
	api.HandleFunc("/loan-requests/{id}", routes.Orders.GetLoanRequest).Methods(http.MethodGet)
	api.HandleFunc("/loan-requests/{id}/decision", routes.Orders.UpdateDecision).Methods(http.MethodPut)
	api.HandleFunc("/pending-requests", routes.Orders.ListPendingRequests).Methods(http.MethodGet)
	api.HandleFunc("/loan-products", routes.Orders.ListLoanProducts).Methods(http.MethodGet)
	api.HandleFunc("/debt-capacity", routes.DebtCapacity.Submit).Methods(http.MethodPost)

	return router
}
