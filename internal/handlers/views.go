package handlers

import (
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Each read context gets its own projection. Models are never written to the
// wire directly except where the shape already matches.

type routeListView struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func routeListItem(r models.Route) routeListView {
	return routeListView{
		ID:          r.ID,
		Source:      r.Source.ClosestBigCity,
		Destination: r.Destination.ClosestBigCity,
		Distance:    r.Distance,
	}
}

type routeWriteView struct {
	ID          int64 `json:"id"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func routeWritten(r models.Route) routeWriteView {
	return routeWriteView{
		ID:          r.ID,
		Source:      r.Source.ID,
		Destination: r.Destination.ID,
		Distance:    r.Distance,
	}
}

func routeLabel(r models.Route) string {
	return r.Source.ClosestBigCity + " - " + r.Destination.ClosestBigCity
}

type airplaneListView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

func airplaneListItem(a models.Airplane) airplaneListView {
	return airplaneListView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     booking.Capacity(a),
		AirplaneType: a.AirplaneType.Name,
	}
}

type crewView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func crewItem(c models.Crew) crewView {
	return crewView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

type flightListView struct {
	ID              int64     `json:"id"`
	Route           string    `json:"route"`
	AirplaneName    string    `json:"airplane_name"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	Capacity        int       `json:"capacity"`
	AvailablePlaces int       `json:"available_places"`
}

func flightListItem(f models.Flight, available int) flightListView {
	return flightListView{
		ID:              f.ID,
		Route:           routeLabel(f.Route),
		AirplaneName:    f.Airplane.Name,
		DepartureTime:   f.DepartureTime,
		ArrivalTime:     f.ArrivalTime,
		Capacity:        booking.Capacity(f.Airplane),
		AvailablePlaces: available,
	}
}

type flightDetailView struct {
	ID            int64            `json:"id"`
	Route         models.Route     `json:"route"`
	Airplane      airplaneListView `json:"airplane"`
	DepartureTime time.Time        `json:"departure_time"`
	ArrivalTime   time.Time        `json:"arrival_time"`
	Crew          []string         `json:"crew"`
	TakenPlaces   []models.Place   `json:"taken_places"`
}

func flightDetail(f models.Flight, taken []models.Place) flightDetailView {
	crew := make([]string, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.FullName())
	}
	if taken == nil {
		taken = []models.Place{}
	}
	return flightDetailView{
		ID:            f.ID,
		Route:         f.Route,
		Airplane:      airplaneListItem(f.Airplane),
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Crew:          crew,
		TakenPlaces:   taken,
	}
}

type flightWriteView struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func flightWritten(f models.Flight) flightWriteView {
	crew := make([]int64, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.ID)
	}
	return flightWriteView{
		ID:            f.ID,
		Route:         f.Route.ID,
		Airplane:      f.Airplane.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Crew:          crew,
	}
}

type ticketView struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderView struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []ticketView `json:"tickets"`
}

func orderCreated(o models.Order) orderView {
	tickets := make([]ticketView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, ticketView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID})
	}
	return orderView{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

type ticketListView struct {
	ID     int64          `json:"id"`
	Row    int            `json:"row"`
	Seat   int            `json:"seat"`
	Flight flightListView `json:"flight"`
}

type orderListView struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketListView `json:"tickets"`
}

func orderListItem(o models.Order, available map[int64]int) orderListView {
	tickets := make([]ticketListView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		view := ticketListView{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if t.Flight != nil {
			view.Flight = flightListItem(*t.Flight, available[t.FlightID])
		} else {
			view.Flight = flightListView{ID: t.FlightID}
		}
		tickets = append(tickets, view)
	}
	return orderListView{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}
