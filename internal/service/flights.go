package service

import (
	"context"
	"errors"

	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

type flightService struct {
	flights      FlightStore
	availability Availability
}

// NewFlightService creates a new flight service
func NewFlightService(flights FlightStore, availability Availability) FlightService {
	return &flightService{flights: flights, availability: availability}
}

func (s *flightService) ListFlights(ctx context.Context, page models.Page) (*FlightPage, error) {
	flights, total, err := s.flights.ListFlights(ctx, page)
	if err != nil {
		return nil, err
	}

	available, err := s.availability.AvailableFor(ctx, flights)
	if err != nil {
		return nil, err
	}

	return &FlightPage{Flights: flights, Total: total, AvailablePlaces: available}, nil
}

func (s *flightService) GetFlight(ctx context.Context, id int64) (*FlightDetail, error) {
	flight, err := s.flights.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.availability.TakenPlaces(ctx, id)
	if err != nil {
		return nil, err
	}

	return &FlightDetail{Flight: *flight, TakenPlaces: taken}, nil
}

func validateFlight(in models.FlightInput) error {
	switch {
	case in.RouteID <= 0:
		return invalid("route", "this field is required")
	case in.AirplaneID <= 0:
		return invalid("airplane", "this field is required")
	case in.DepartureTime.IsZero():
		return invalid("departure_time", "this field is required")
	case in.ArrivalTime.IsZero():
		return invalid("arrival_time", "this field is required")
	case !in.ArrivalTime.After(in.DepartureTime):
		return invalid("arrival_time", "must be after departure_time")
	}
	return nil
}

func (s *flightService) CreateFlight(ctx context.Context, in models.FlightInput) (*models.Flight, error) {
	if err := validateFlight(in); err != nil {
		return nil, err
	}
	return s.flights.CreateFlight(ctx, in)
}

func (s *flightService) UpdateFlight(ctx context.Context, id int64, in models.FlightInput) (*models.Flight, error) {
	if err := validateFlight(in); err != nil {
		return nil, err
	}
	flight, err := s.flights.UpdateFlight(ctx, id, in)
	if errors.Is(err, database.ErrTicketsOutsideLayout) {
		return nil, invalid("airplane", "tickets already sold for seats this airplane does not have")
	}
	return flight, err
}

// PatchFlight updates only the fields set in patch
func (s *flightService) PatchFlight(ctx context.Context, id int64, patch models.FlightPatch) (*models.Flight, error) {
	current, err := s.flights.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateFlight(ctx, id, patch.Apply(models.InputOf(*current)))
}
