package handlers

import (
	"net/http"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// ListAirports handles GET /api/airports
func (h *Handler) ListAirports(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	airports, total, err := h.catalog.ListAirports(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondList(w, page, total, airports)
}

// GetAirport handles GET /api/airports/{id}
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	airport, err := h.catalog.GetAirport(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, airport)
}

// CreateAirport handles POST /api/airports
func (h *Handler) CreateAirport(w http.ResponseWriter, r *http.Request) {
	var req models.Airport
	if !decodeJSON(w, r, &req) {
		return
	}
	airport, err := h.catalog.CreateAirport(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, airport)
}

// ListRoutes handles GET /api/routes?source=&destination=
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	filter := models.RouteFilter{
		Source:      r.URL.Query().Get("source"),
		Destination: r.URL.Query().Get("destination"),
	}

	routes, total, err := h.catalog.ListRoutes(r.Context(), filter, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := make([]routeListView, 0, len(routes))
	for _, route := range routes {
		results = append(results, routeListItem(route))
	}
	respondList(w, page, total, results)
}

// GetRoute handles GET /api/routes/{id}
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	route, err := h.catalog.GetRoute(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, route)
}

// CreateRoute handles POST /api/routes
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req models.RouteInput
	if !decodeJSON(w, r, &req) {
		return
	}
	route, err := h.catalog.CreateRoute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, routeWritten(*route))
}

// ListAirplaneTypes handles GET /api/airplane-types
func (h *Handler) ListAirplaneTypes(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	types, total, err := h.catalog.ListAirplaneTypes(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondList(w, page, total, types)
}

// CreateAirplaneType handles POST /api/airplane-types
func (h *Handler) CreateAirplaneType(w http.ResponseWriter, r *http.Request) {
	var req models.AirplaneType
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.catalog.CreateAirplaneType(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// ListAirplanes handles GET /api/airplanes
func (h *Handler) ListAirplanes(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	airplanes, total, err := h.catalog.ListAirplanes(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := make([]airplaneListView, 0, len(airplanes))
	for _, a := range airplanes {
		results = append(results, airplaneListItem(a))
	}
	respondList(w, page, total, results)
}

// CreateAirplane handles POST /api/airplanes
func (h *Handler) CreateAirplane(w http.ResponseWriter, r *http.Request) {
	var req models.AirplaneInput
	if !decodeJSON(w, r, &req) {
		return
	}
	airplane, err := h.catalog.CreateAirplane(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, airplaneListItem(*airplane))
}

// ListCrews handles GET /api/crews
func (h *Handler) ListCrews(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	crews, total, err := h.catalog.ListCrews(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := make([]crewView, 0, len(crews))
	for _, c := range crews {
		results = append(results, crewItem(c))
	}
	respondList(w, page, total, results)
}

// GetCrew handles GET /api/crews/{id}
func (h *Handler) GetCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	crew, err := h.catalog.GetCrew(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, crewItem(*crew))
}

// CreateCrew handles POST /api/crews
func (h *Handler) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var req models.Crew
	if !decodeJSON(w, r, &req) {
		return
	}
	crew, err := h.catalog.CreateCrew(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, crewItem(*crew))
}

// UpdateCrew handles PUT /api/crews/{id}
func (h *Handler) UpdateCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.Crew
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	crew, err := h.catalog.UpdateCrew(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, crewItem(*crew))
}

// PatchCrew handles PATCH /api/crews/{id}
func (h *Handler) PatchCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.CrewPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	crew, err := h.catalog.PatchCrew(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, crewItem(*crew))
}

// DeleteCrew handles DELETE /api/crews/{id}
func (h *Handler) DeleteCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCrew(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
