package models

import "time"

// Order is a user's atomic purchase of one or more tickets
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// Ticket is a claim on one (flight, row, seat)
type Ticket struct {
	ID       int64 `json:"id"`
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	OrderID  int64 `json:"order_id"`

	// Flight is populated by listing queries only
	Flight *Flight `json:"-"`
}

// Place is a seat coordinate on an airplane
type Place struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// TicketRequest asks for one seat on one flight
type TicketRequest struct {
	FlightID int64 `json:"flight"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets"`
}
