package models

import "time"

// Airport is a departure or arrival point of a route
type Airport struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

// Route connects a source airport with a destination airport
type Route struct {
	ID          int64   `json:"id"`
	Source      Airport `json:"source"`
	Destination Airport `json:"destination"`
	Distance    int     `json:"distance"`
}

// AirplaneType is a purely descriptive airplane category
type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Airplane describes the physical seating layout used by flights
type Airplane struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Rows         int          `json:"rows"`
	SeatsInRow   int          `json:"seats_in_row"`
	AirplaneType AirplaneType `json:"airplane_type"`
}

// Crew is a staff member that can be assigned to flights
type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName returns "first last"
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Flight is a scheduled trip of an airplane along a route
type Flight struct {
	ID            int64     `json:"id"`
	Route         Route     `json:"route"`
	Airplane      Airplane  `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []Crew    `json:"crew,omitempty"`
}

// FlightInput carries the writable fields of a flight
type FlightInput struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

// RouteInput carries the writable fields of a route
type RouteInput struct {
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

// RouteFilter narrows route lists by case-insensitive city substrings
type RouteFilter struct {
	Source      string
	Destination string
}

// AirplaneInput carries the writable fields of an airplane
type AirplaneInput struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type"`
}

// FlightPatch carries a partial flight update. Nil fields keep their value.
type FlightPatch struct {
	RouteID       *int64     `json:"route"`
	AirplaneID    *int64     `json:"airplane"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	CrewIDs       *[]int64   `json:"crew"`
}

// InputOf returns the writable fields of a stored flight
func InputOf(f Flight) FlightInput {
	crew := make([]int64, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.ID)
	}
	return FlightInput{
		RouteID:       f.Route.ID,
		AirplaneID:    f.Airplane.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		CrewIDs:       crew,
	}
}

// Apply overlays the set fields on in
func (p FlightPatch) Apply(in FlightInput) FlightInput {
	if p.RouteID != nil {
		in.RouteID = *p.RouteID
	}
	if p.AirplaneID != nil {
		in.AirplaneID = *p.AirplaneID
	}
	if p.DepartureTime != nil {
		in.DepartureTime = *p.DepartureTime
	}
	if p.ArrivalTime != nil {
		in.ArrivalTime = *p.ArrivalTime
	}
	if p.CrewIDs != nil {
		in.CrewIDs = *p.CrewIDs
	}
	return in
}

// CrewPatch carries a partial crew update
type CrewPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Apply overlays the set fields on c
func (p CrewPatch) Apply(c Crew) Crew {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	return c
}
