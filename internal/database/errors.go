package database

import (
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = booking.ErrNotFound
	// ErrConflict reports a unique constraint violation outside the ticket seat key
	ErrConflict = errors.New("already exists")
	// ErrInvalidReference reports a foreign key pointing at a missing row
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidValue reports a value rejected by a check constraint
	ErrInvalidValue = errors.New("value violates a table constraint")
	// ErrTicketsOutsideLayout rejects an airplane change that would strand sold seats
	ErrTicketsOutsideLayout = errors.New("tickets already sold for seats outside the airplane layout")
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	ticketSeatConstraint = "tickets_flight_row_seat_key"
)

// mapError translates driver errors into package errors. Unknown errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		if pgErr.ConstraintName == ticketSeatConstraint {
			return booking.ErrSeatConflict
		}
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", ErrInvalidValue, pgErr.ConstraintName)
	}
	return err
}
