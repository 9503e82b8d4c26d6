package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Kind classifies why a ticket request was rejected
type Kind string

const (
	KindEmptyOrder             Kind = "empty_order"
	KindBookingWindowViolation Kind = "booking_window_violation"
	KindOutOfBounds            Kind = "out_of_bounds"
	KindSeatConflict           Kind = "seat_conflict"
	KindNotFound               Kind = "not_found"
)

var (
	ErrEmptyOrder             = errors.New("order must contain at least one ticket")
	ErrBookingWindowViolation = errors.New(BookingWindowMessage)
	ErrOutOfBounds            = errors.New("seat is outside the airplane layout")
	ErrSeatConflict           = errors.New("seat is already taken")
	ErrNotFound               = errors.New("not found")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrEmptyOrder, KindEmptyOrder},
	{ErrBookingWindowViolation, KindBookingWindowViolation},
	{ErrOutOfBounds, KindOutOfBounds},
	{ErrSeatConflict, KindSeatConflict},
	{ErrNotFound, KindNotFound},
}

// KindOf returns the kind of a booking error, or "" for anything else
func KindOf(err error) Kind {
	var orderErr *OrderError
	if errors.As(err, &orderErr) {
		return orderErr.Kind()
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// TicketFailure explains why one ticket request of an order was rejected
type TicketFailure struct {
	Index    int    `json:"index"`
	FlightID int64  `json:"flight"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	Kind     Kind   `json:"kind"`
	Message  string `json:"message"`

	err error
}

func newFailure(index int, req models.TicketRequest, err error) TicketFailure {
	return TicketFailure{
		Index:    index,
		FlightID: req.FlightID,
		Row:      req.Row,
		Seat:     req.Seat,
		Kind:     KindOf(err),
		Message:  err.Error(),
		err:      err,
	}
}

// OrderError rejects a whole order. It lists every failed ticket request.
type OrderError struct {
	Failures []TicketFailure
}

func (e *OrderError) Error() string {
	if len(e.Failures) == 0 {
		return "order rejected"
	}
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("ticket %d: %s", f.Index, f.Message))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the sentinel of every failure to errors.Is
func (e *OrderError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.err != nil {
			errs = append(errs, f.err)
		}
	}
	return errs
}

// Kind returns the kind of the first failure
func (e *OrderError) Kind() Kind {
	if len(e.Failures) == 0 {
		return ""
	}
	return e.Failures[0].Kind
}

// Kinds returns the distinct failure kinds in order of appearance
func (e *OrderError) Kinds() []Kind {
	seen := make(map[Kind]bool, len(e.Failures))
	var out []Kind
	for _, f := range e.Failures {
		if !seen[f.Kind] {
			seen[f.Kind] = true
			out = append(out, f.Kind)
		}
	}
	return out
}
