package handlers

import (
	"net/http"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// ListFlights handles GET /api/flights
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	result, err := h.flights.ListFlights(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	flights := make([]flightListView, 0, len(result.Flights))
	for _, f := range result.Flights {
		flights = append(flights, flightListItem(f, result.AvailablePlaces[f.ID]))
	}
	respondList(w, page, result.Total, flights)
}

// GetFlight handles GET /api/flights/{id}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.flights.GetFlight(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flightDetail(detail.Flight, detail.TakenPlaces))
}

// CreateFlight handles POST /api/flights
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req models.FlightInput
	if !decodeJSON(w, r, &req) {
		return
	}
	flight, err := h.flights.CreateFlight(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, flightWritten(*flight))
}

// UpdateFlight handles PUT /api/flights/{id}
func (h *Handler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.FlightInput
	if !decodeJSON(w, r, &req) {
		return
	}
	flight, err := h.flights.UpdateFlight(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flightWritten(*flight))
}

// PatchFlight handles PATCH /api/flights/{id}
func (h *Handler) PatchFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.FlightPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	flight, err := h.flights.PatchFlight(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flightWritten(*flight))
}

// FlightSeats handles GET /api/flights/{id}/ws
func (h *Handler) FlightSeats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.seats.ServeWS(w, r, id)
}
