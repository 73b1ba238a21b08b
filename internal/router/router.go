package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/mveldsman/gxproxy/internal/middleware"
	"github.com/mveldsman/gxproxy/internal/middleware/metrics"
	"github.com/mveldsman/gxproxy/internal/setup"
)

// New creates and configures the mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// CORS for the browser frontend; credentials are required so the
	// session_UID cookie survives cross-origin requests
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	))

	r.Use(mw.RequestID)
	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Everything else requires an established backend session
	authed := r.NewRoute().Subrouter()
	authed.Use(mw.RequireSession(deps.Session))
	authed.HandleFunc("/diary", h.GetDiary).Methods("GET")
	authed.HandleFunc("/booking_statuses", h.GetBookingStatuses).Methods("GET")
	authed.HandleFunc("/bookings", h.GetBookings).Methods("GET")
	authed.HandleFunc("/add_booking", h.AddBooking).Methods("POST")

	return r
}
