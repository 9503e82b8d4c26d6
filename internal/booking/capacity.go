package booking

import "github.com/cx-tal-miterani/airline-booking/internal/models"

// Capacity returns the number of seats on the airplane
func Capacity(a models.Airplane) int {
	if a.Rows <= 0 || a.SeatsInRow <= 0 {
		return 0
	}
	return a.Rows * a.SeatsInRow
}

// SeatInBounds reports whether (row, seat) exists on the airplane.
// Rows and seats are numbered from 1.
func SeatInBounds(a models.Airplane, row, seat int) bool {
	return row >= 1 && row <= a.Rows && seat >= 1 && seat <= a.SeatsInRow
}
