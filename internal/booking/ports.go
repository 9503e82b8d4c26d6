package booking

import (
	"context"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Transactor runs fn inside one storage transaction. Store calls made with
// the ctx handed to fn take part in that transaction; returning an error from
// fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FlightLocker loads flights for booking
type FlightLocker interface {
	// LockFlights returns the flights with their airplanes and keeps them
	// locked against concurrent bookings until the transaction ends.
	// Unknown ids are absent from the map.
	LockFlights(ctx context.Context, ids []int64) (map[int64]models.Flight, error)
}

// TicketStore persists orders and tickets
type TicketStore interface {
	IsOccupied(ctx context.Context, flightID int64, row, seat int) (bool, error)
	// CreateOrder sets ID and CreatedAt on o
	CreateOrder(ctx context.Context, o *models.Order) error
	// CreateTicket sets ID on t. It fails with ErrSeatConflict when the seat
	// is already recorded for the flight.
	CreateTicket(ctx context.Context, t *models.Ticket) error
}

// Store is everything the order manager needs from persistence
type Store interface {
	Transactor
	FlightLocker
	TicketStore
}

// AvailabilityReader reads committed tickets for projections
type AvailabilityReader interface {
	CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error)
	TakenPlaces(ctx context.Context, flightID int64) ([]models.Place, error)
}
