package models

import "time"

// OrderPlacedEvent is emitted after an order and its tickets were committed
type OrderPlacedEvent struct {
	EventID    string         `json:"event_id" bson:"event_id"`
	OrderID    int64          `json:"order_id" bson:"order_id"`
	UserID     int64          `json:"user_id" bson:"user_id"`
	PlacedAt   time.Time      `json:"placed_at" bson:"placed_at"`
	Tickets    []TicketRecord `json:"tickets" bson:"tickets"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}

// TicketRecord is the flattened ticket carried by order events
type TicketRecord struct {
	TicketID int64 `json:"ticket_id" bson:"ticket_id"`
	FlightID int64 `json:"flight_id" bson:"flight_id"`
	Row      int   `json:"row" bson:"row"`
	Seat     int   `json:"seat" bson:"seat"`
}

// NewOrderPlacedEvent flattens an order into an event
func NewOrderPlacedEvent(eventID string, o Order, occurredAt time.Time) OrderPlacedEvent {
	tickets := make([]TicketRecord, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, TicketRecord{
			TicketID: t.ID,
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}
	return OrderPlacedEvent{
		EventID:    eventID,
		OrderID:    o.ID,
		UserID:     o.UserID,
		PlacedAt:   o.CreatedAt,
		Tickets:    tickets,
		OccurredAt: occurredAt,
	}
}
