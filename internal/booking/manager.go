package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

var errDuplicateSeat = fmt.Errorf("seat requested more than once in the order: %w", ErrSeatConflict)

// OrderManager turns ticket requests into committed orders. All checks and
// the allocation run in one transaction; an order is stored whole or not at
// all.
type OrderManager struct {
	store  Store
	ledger *Ledger
	now    func() time.Time
}

// Option configures an OrderManager
type Option func(*OrderManager)

// WithClock overrides the time source used by the booking window check
func WithClock(now func() time.Time) Option {
	return func(m *OrderManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewOrderManager creates an order manager over the store
func NewOrderManager(store Store, opts ...Option) *OrderManager {
	m := &OrderManager{
		store:  store,
		ledger: NewLedger(store),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PlaceOrder validates every request and commits the order with all of its
// tickets. Validation failures come back as *OrderError.
func (m *OrderManager) PlaceOrder(ctx context.Context, userID int64, reqs []models.TicketRequest) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}

	now := m.now()
	var placed *models.Order

	err := m.store.WithinTransaction(ctx, func(ctx context.Context) error {
		flights, err := m.store.LockFlights(ctx, flightIDs(reqs))
		if err != nil {
			return fmt.Errorf("lock flights: %w", err)
		}

		if failures := missingFlights(reqs, flights); len(failures) > 0 {
			return &OrderError{Failures: failures}
		}
		if failures := closedWindows(reqs, flights, now); len(failures) > 0 {
			return &OrderError{Failures: failures}
		}
		failures, err := m.unavailableSeats(ctx, reqs, flights)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return &OrderError{Failures: failures}
		}

		order := &models.Order{UserID: userID}
		if err := m.store.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, req := range reqs {
			ticket, err := m.ledger.Allocate(ctx, flights[req.FlightID], req.Row, req.Seat, order.ID)
			if err != nil {
				if errors.Is(err, ErrSeatConflict) || errors.Is(err, ErrOutOfBounds) {
					return &OrderError{Failures: []TicketFailure{newFailure(i, req, err)}}
				}
				return fmt.Errorf("allocate ticket %d: %w", i, err)
			}
			order.Tickets = append(order.Tickets, *ticket)
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return placed, nil
}

type seatKey struct {
	flightID  int64
	row, seat int
}

func (m *OrderManager) unavailableSeats(ctx context.Context, reqs []models.TicketRequest, flights map[int64]models.Flight) ([]TicketFailure, error) {
	var failures []TicketFailure
	requested := make(map[seatKey]bool, len(reqs))

	for i, req := range reqs {
		flight := flights[req.FlightID]
		if !SeatInBounds(flight.Airplane, req.Row, req.Seat) {
			failures = append(failures, newFailure(i, req, ErrOutOfBounds))
			continue
		}

		key := seatKey{flightID: req.FlightID, row: req.Row, seat: req.Seat}
		if requested[key] {
			failures = append(failures, newFailure(i, req, errDuplicateSeat))
			continue
		}
		requested[key] = true

		taken, err := m.ledger.IsOccupied(ctx, req.FlightID, req.Row, req.Seat)
		if err != nil {
			return nil, err
		}
		if taken {
			failures = append(failures, newFailure(i, req, ErrSeatConflict))
		}
	}

	return failures, nil
}

func missingFlights(reqs []models.TicketRequest, flights map[int64]models.Flight) []TicketFailure {
	var failures []TicketFailure
	for i, req := range reqs {
		if _, ok := flights[req.FlightID]; !ok {
			failures = append(failures, newFailure(i, req, fmt.Errorf("flight %d: %w", req.FlightID, ErrNotFound)))
		}
	}
	return failures
}

func closedWindows(reqs []models.TicketRequest, flights map[int64]models.Flight, now time.Time) []TicketFailure {
	var failures []TicketFailure
	for i, req := range reqs {
		if !IsBookable(flights[req.FlightID], now) {
			failures = append(failures, newFailure(i, req, ErrBookingWindowViolation))
		}
	}
	return failures
}

// flightIDs returns the distinct flight ids in ascending order so that
// concurrent transactions take row locks in the same order.
func flightIDs(reqs []models.TicketRequest) []int64 {
	seen := make(map[int64]bool, len(reqs))
	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		if !seen[req.FlightID] {
			seen[req.FlightID] = true
			ids = append(ids, req.FlightID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
