package http

import (
	"net/http"

	"pharmacy-backend/internal/delivery/http/handler"
	"pharmacy-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	accountHandler    *handler.AccountHandler
	productHandler    *handler.ProductHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	healthHandler     http.Handler
	metricsHandler    http.Handler
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	healthHandler http.Handler,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		accountHandler:    accountHandler,
		productHandler:    productHandler,
		cartHandler:       cartHandler,
		orderHandler:      orderHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		healthHandler:     healthHandler,
		metricsHandler:    metricsHandler,
	}
}

// authenticated requires any valid token.
func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(h)
}

// adminOnly requires a valid token whose stored role is Admin.
func (r *Router) adminOnly(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequireAdmin(h))
}

// Setup registers every route. CORS wraps the whole router so preflight
// requests to any path are answered.
func (r *Router) Setup() http.Handler {
	// Operational endpoints
	r.router.Handle("/health", r.healthHandler).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)
	authProtected.HandleFunc("/me", r.authHandler.UpdateMe).Methods(http.MethodPut)
	authProtected.HandleFunc("/password", r.authHandler.ChangePassword).Methods(http.MethodPut)

	// Catalogue: public reads, admin writes. /seed is registered before /{id}.
	api.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	api.Handle("/products", r.adminOnly(r.productHandler.Create)).Methods(http.MethodPost)
	api.Handle("/products/seed", r.adminOnly(r.productHandler.Seed)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	api.Handle("/products/{id}", r.adminOnly(r.productHandler.Update)).Methods(http.MethodPut)
	api.Handle("/products/{id}", r.adminOnly(r.productHandler.Delete)).Methods(http.MethodDelete)

	// Cart (any authenticated account)
	api.Handle("/cart", r.authenticated(r.cartHandler.Get)).Methods(http.MethodGet)
	api.Handle("/cart", r.authenticated(r.cartHandler.Add)).Methods(http.MethodPost)
	api.Handle("/cart", r.authenticated(r.cartHandler.Update)).Methods(http.MethodPut)
	api.Handle("/cart", r.authenticated(r.cartHandler.Remove)).Methods(http.MethodDelete)
	api.Handle("/cart/clear", r.authenticated(r.cartHandler.Clear)).Methods(http.MethodDelete)

	// Orders. /all is registered before /{id}.
	api.Handle("/orders/checkout", r.authenticated(r.orderHandler.Checkout)).Methods(http.MethodPost)
	api.Handle("/orders", r.authenticated(r.orderHandler.GetMine)).Methods(http.MethodGet)
	api.Handle("/orders/all", r.adminOnly(r.orderHandler.GetAll)).Methods(http.MethodGet)
	api.Handle("/orders/{id}", r.authenticated(r.orderHandler.GetByID)).Methods(http.MethodGet)
	api.Handle("/orders/{id}/status", r.adminOnly(r.orderHandler.UpdateStatus)).Methods(http.MethodPut)

	// User management (admin)
	api.Handle("/users", r.adminOnly(r.accountHandler.GetAll)).Methods(http.MethodGet)
	api.Handle("/users/{id}/approve", r.adminOnly(r.accountHandler.Approve)).Methods(http.MethodPut)
	api.Handle("/users/{id}", r.adminOnly(r.accountHandler.Delete)).Methods(http.MethodDelete)

	// Audit logs (admin)
	api.Handle("/audit-logs", r.adminOnly(r.auditLogHandler.GetAllAuditLogs)).Methods(http.MethodGet)
	api.Handle("/audit-logs/{id}", r.adminOnly(r.auditLogHandler.GetAuditLog)).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}
