package main

import (
	"log"
	"net/http"

	httphandlers "paisa/internal/interfaces/http"
	"paisa/internal/shared/config"
	"paisa/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/auth/login", deps.AuthHandler.HandleLogin)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT, deps.UserRepo)

	mux.Handle("/tags", authMiddleware(http.HandlerFunc(deps.TagHandler.HandleTags)))
	mux.Handle("/tags/{id}", authMiddleware(http.HandlerFunc(deps.TagHandler.HandleTagByID)))
	mux.Handle("/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/transactions/search", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleSearch)))
	mux.Handle("/transactions/{id}", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))
	mux.Handle("/reports", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleReports)))

	// Apply global middleware
	handler := middleware.Logging(middleware.RequestID(middleware.CORS(mux)))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
