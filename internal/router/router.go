package router

import (
	"fmt"
	"net/http"
	"time"

	"pizza-orders/internal/forms"
	"pizza-orders/internal/handlers"
	"pizza-orders/internal/metrics"
	"pizza-orders/internal/middleware"
	"pizza-orders/internal/repository"
	"pizza-orders/internal/services"
	"pizza-orders/internal/session"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Deps carries everything the router needs; the repositories decide which
// storage backend serves the requests.
type Deps struct {
	Orders    repository.OrderRepository
	Users     repository.UserRepository
	Catalog   repository.CatalogRepository
	Sessions  *session.Manager
	Metrics   *metrics.Metrics
	RateLimit rate.Limit
	RateBurst int
	// CSRFKey must be 32 bytes.
	CSRFKey []byte
	Secure  bool
	Logger  zerolog.Logger
}

func SetupRouter(deps Deps) (*mux.Router, error) {
	logger := deps.Logger

	if len(deps.CSRFKey) != 32 {
		return nil, fmt.Errorf("csrf key must be 32 bytes, got %d", len(deps.CSRFKey))
	}

	view, err := handlers.NewRenderer(deps.Sessions, logger)
	if err != nil {
		return nil, err
	}
	validator := forms.NewValidator()

	userService := services.NewUserService(deps.Users, logger)
	orderService := services.NewOrderService(deps.Orders, deps.Catalog, deps.Metrics, logger)

	authHandler := handlers.NewAuthHandler(userService, validator, view, deps.Metrics, logger)
	orderHandler := handlers.NewOrderHandler(orderService, validator, view, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(deps.RateLimit, deps.RateBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(deps.Metrics.Middleware())
	r.Use(middleware.PerformanceMonitoring(logger, time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	// Matches OPTIONS on every path so the CORS middleware can answer preflights.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")

	pages := r.PathPrefix("/").Subrouter()
	pages.Use(deps.Sessions.Middleware())
	pages.Use(middleware.RequireForm())
	pages.Use(middleware.CSRF(deps.CSRFKey, deps.Secure, logger))

	pages.HandleFunc("/login", authHandler.Login).Methods("GET", "POST")
	pages.HandleFunc("/create", authHandler.Create).Methods("GET", "POST")

	protected := pages.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireLogin(deps.Sessions, logger))
	protected.HandleFunc("/", orderHandler.Index).Methods("GET")
	protected.HandleFunc("/pizza", orderHandler.Create).Methods("GET", "POST")
	protected.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	protected.HandleFunc("/confirm_delete/{id:[0-9]+}", orderHandler.ConfirmDelete).Methods("GET", "POST")
	protected.HandleFunc("/edit_order/{id:[0-9]+}", orderHandler.Edit).Methods("GET", "POST")

	return r, nil
}
