package booking

import (
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

const (
	// BookingCutoff is the minimum lead time before departure for new tickets
	BookingCutoff = 3 * time.Hour

	// BookingWindowMessage is returned verbatim to clients
	BookingWindowMessage = "Booking tickets is available no later than three hours before departure"
)

// IsBookable reports whether tickets for the flight may still be sold at now
func IsBookable(f models.Flight, now time.Time) bool {
	return f.DepartureTime.Sub(now) > BookingCutoff
}
