package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/cx-tal-miterani/airline-booking/internal/service"
	"github.com/gorilla/mux"
)

// SeatSubscriber attaches websocket clients to a flight's seat updates
type SeatSubscriber interface {
	ServeWS(w http.ResponseWriter, r *http.Request, flightID int64)
}

// Handler contains HTTP handlers for the API
type Handler struct {
	catalog service.CatalogService
	flights service.FlightService
	orders  service.OrderService
	auth    service.AuthService
	seats   SeatSubscriber
	log     logger.Logger
}

// Deps groups the services the handlers delegate to
type Deps struct {
	Catalog service.CatalogService
	Flights service.FlightService
	Orders  service.OrderService
	Auth    service.AuthService
	Seats   SeatSubscriber
	Log     logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(deps Deps) *Handler {
	return &Handler{
		catalog: deps.Catalog,
		flights: deps.Flights,
		orders:  deps.Orders,
		auth:    deps.Auth,
		seats:   deps.Seats,
		log:     deps.Log,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, errorResponse{Error: message, Kind: kind})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, kindValidation, "Invalid request body")
		return false
	}
	return true
}

// pathID parses the {id} route variable
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, kindNotFound, "Not found")
		return 0, false
	}
	return id, true
}

// pageFrom reads ?page=&limit=. Bad values fall back to defaults.
func pageFrom(r *http.Request) models.Page {
	q := r.URL.Query()
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("limit"))
	return models.NewPage(number, size)
}

type listResponse struct {
	Count   int         `json:"count"`
	Page    int         `json:"page"`
	Results interface{} `json:"results"`
}

func respondList(w http.ResponseWriter, page models.Page, total int, results interface{}) {
	respondJSON(w, http.StatusOK, listResponse{Count: total, Page: page.Number, Results: results})
}

// Guard rejects callers that may not perform action on resource before the
// handler runs
func Guard(action auth.Action, resource auth.Resource, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Check(auth.FromContext(r.Context()), action, resource); err != nil {
			writeAuthError(w, err)
			return
		}
		next(w, r)
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrAuthenticationRequired) {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		respondError(w, http.StatusUnauthorized, kindAuthenticationRequired, err.Error())
		return
	}
	respondError(w, http.StatusForbidden, kindPermissionDenied, err.Error())
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
