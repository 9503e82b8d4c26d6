package handlers

import (
	"net/http"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Token handles POST /api/auth/token
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.auth.Token(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, token)
}
