package handlers

import (
	"errors"
	"net/http"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/service"
)

const (
	kindAuthenticationRequired = "authentication_required"
	kindAuthenticationFailed   = "authentication_failed"
	kindPermissionDenied       = "permission_denied"
	kindValidation             = "validation"
	kindNotFound               = "not_found"
	kindConflict               = "conflict"
	kindInternal               = "internal"
)

type errorResponse struct {
	Error   string                  `json:"error"`
	Kind    string                  `json:"kind"`
	Field   string                  `json:"field,omitempty"`
	Tickets []booking.TicketFailure `json:"tickets,omitempty"`
}

// writeError maps a service error onto a status and the error body. Anything
// unrecognised is logged and hidden behind a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		orderErr *booking.OrderError
		valErr   *service.ValidationError
	)

	switch {
	case errors.As(err, &orderErr):
		respondJSON(w, orderErrorStatus(orderErr), orderErrorResponse(orderErr))

	case errors.As(err, &valErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: valErr.Message,
			Kind:  kindValidation,
			Field: valErr.Field,
		})

	case errors.Is(err, auth.ErrAuthenticationRequired), errors.Is(err, auth.ErrPermissionDenied):
		writeAuthError(w, err)

	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, kindAuthenticationFailed, err.Error())

	case errors.Is(err, booking.ErrEmptyOrder):
		respondError(w, http.StatusBadRequest, string(booking.KindEmptyOrder), err.Error())

	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, kindNotFound, "Not found")

	case errors.Is(err, database.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, kindValidation, "Referenced object does not exist")

	case errors.Is(err, database.ErrInvalidValue):
		respondError(w, http.StatusBadRequest, kindValidation, "Value out of range")

	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusConflict, kindConflict, "Object already exists")

	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, kindInternal, "Internal server error")
	}
}

// orderErrorStatus is 409 when every failure is a seat conflict, 400 otherwise
func orderErrorStatus(e *booking.OrderError) int {
	kinds := e.Kinds()
	if len(kinds) == 1 && kinds[0] == booking.KindSeatConflict {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func orderErrorResponse(e *booking.OrderError) errorResponse {
	msg := e.Error()
	if len(e.Failures) > 0 {
		msg = e.Failures[0].Message
	}
	return errorResponse{
		Error:   msg,
		Kind:    string(e.Kind()),
		Tickets: e.Failures,
	}
}
