package booking

import (
	"context"
	"fmt"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Ledger is the authoritative record of occupied (flight, row, seat) triples
type Ledger struct {
	tickets TicketStore
}

// NewLedger creates a ledger on top of a ticket store
func NewLedger(tickets TicketStore) *Ledger {
	return &Ledger{tickets: tickets}
}

// IsOccupied reports whether a ticket exists for the seat
func (l *Ledger) IsOccupied(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	taken, err := l.tickets.IsOccupied(ctx, flightID, row, seat)
	if err != nil {
		return false, fmt.Errorf("check seat %d/%d on flight %d: %w", row, seat, flightID, err)
	}
	return taken, nil
}

// Allocate records a ticket for the seat under the order
func (l *Ledger) Allocate(ctx context.Context, flight models.Flight, row, seat int, orderID int64) (*models.Ticket, error) {
	if !SeatInBounds(flight.Airplane, row, seat) {
		return nil, ErrOutOfBounds
	}

	taken, err := l.IsOccupied(ctx, flight.ID, row, seat)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSeatConflict
	}

	t := &models.Ticket{
		FlightID: flight.ID,
		Row:      row,
		Seat:     seat,
		OrderID:  orderID,
	}
	if err := l.tickets.CreateTicket(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
