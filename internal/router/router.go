package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/handlers"
	"github.com/cx-tal-miterani/airline-booking/internal/metrics"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the cross-cutting pieces the router wires around handlers
type Options struct {
	Tokens        auth.TokenParser
	Idempotency   func(http.Handler) http.Handler
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	AllowedOrigin string
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(opts.AllowedOrigin))
	r.Use(metricsMiddleware(opts.Metrics))

	idempotent := opts.Idempotency
	if idempotent == nil {
		idempotent = func(next http.Handler) http.Handler { return next }
	}

	// Public routes ignore the Authorization header, so a stale token
	// cannot lock a client out of signing in again.
	public := r.PathPrefix("/api/auth").Subrouter()
	public.HandleFunc("/register", h.Register).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/token", h.Token).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for real-time seat updates
	r.HandleFunc("/api/flights/{id}/ws", h.FlightSeats).Methods(http.MethodGet)

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Authenticate(opts.Tokens))

	// Airports
	api.HandleFunc("/airports", read(auth.ResourceAirport, h.ListAirports)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airports", write(auth.ResourceAirport, h.CreateAirport)).Methods(http.MethodPost)
	api.HandleFunc("/airports/{id}", read(auth.ResourceAirport, h.GetAirport)).Methods(http.MethodGet, http.MethodOptions)

	// Routes
	api.HandleFunc("/routes", read(auth.ResourceRoute, h.ListRoutes)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/routes", write(auth.ResourceRoute, h.CreateRoute)).Methods(http.MethodPost)
	api.HandleFunc("/routes/{id}", read(auth.ResourceRoute, h.GetRoute)).Methods(http.MethodGet, http.MethodOptions)

	// Airplane types
	api.HandleFunc("/airplane-types", read(auth.ResourceAirplaneType, h.ListAirplaneTypes)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airplane-types", write(auth.ResourceAirplaneType, h.CreateAirplaneType)).Methods(http.MethodPost)

	// Airplanes
	api.HandleFunc("/airplanes", read(auth.ResourceAirplane, h.ListAirplanes)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airplanes", write(auth.ResourceAirplane, h.CreateAirplane)).Methods(http.MethodPost)

	// Crews
	api.HandleFunc("/crews", read(auth.ResourceCrew, h.ListCrews)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/crews", write(auth.ResourceCrew, h.CreateCrew)).Methods(http.MethodPost)
	api.HandleFunc("/crews/{id}", read(auth.ResourceCrew, h.GetCrew)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/crews/{id}", write(auth.ResourceCrew, h.UpdateCrew)).Methods(http.MethodPut)
	api.HandleFunc("/crews/{id}", write(auth.ResourceCrew, h.PatchCrew)).Methods(http.MethodPatch)
	api.HandleFunc("/crews/{id}", write(auth.ResourceCrew, h.DeleteCrew)).Methods(http.MethodDelete)

	// Flights
	api.HandleFunc("/flights", read(auth.ResourceFlight, h.ListFlights)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights", write(auth.ResourceFlight, h.CreateFlight)).Methods(http.MethodPost)
	api.HandleFunc("/flights/{id}", read(auth.ResourceFlight, h.GetFlight)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{id}", write(auth.ResourceFlight, h.UpdateFlight)).Methods(http.MethodPut)
	api.HandleFunc("/flights/{id}", write(auth.ResourceFlight, h.PatchFlight)).Methods(http.MethodPatch)

	// Orders
	api.HandleFunc("/orders", read(auth.ResourceOrder, h.ListOrders)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/orders", idempotent(write(auth.ResourceOrder, h.CreateOrder))).Methods(http.MethodPost)

	// Health check and metrics
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return r
}

func read(resource auth.Resource, next http.HandlerFunc) http.HandlerFunc {
	return handlers.Guard(auth.ActionRead, resource, next)
}

func write(resource auth.Resource, next http.HandlerFunc) http.HandlerFunc {
	return handlers.Guard(auth.ActionWrite, resource, next)
}

func corsMiddleware(origin string) mux.MiddlewareFunc {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// metricsMiddleware observes request latency labelled by route template so
// ids in the path do not blow up cardinality
func metricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
		})
	}
}
