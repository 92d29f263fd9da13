package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Analyst routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyst", handler.GetAnalysis).Methods("GET")
	api.HandleFunc("/analyst", handler.Preflight).Methods("OPTIONS")
	api.HandleFunc("/analyst/{ticker}", handler.GetAnalysis).Methods("GET")
	api.HandleFunc("/analyst/{ticker}", handler.Preflight).Methods("OPTIONS")

	return r
}
