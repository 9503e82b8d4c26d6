package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// ErrValidation is matched by every ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// FlightPage is a page of flights with their available places
type FlightPage struct {
	Flights         []models.Flight
	Total           int
	AvailablePlaces map[int64]int
}

// FlightDetail is one flight with the seats already sold
type FlightDetail struct {
	Flight      models.Flight
	TakenPlaces []models.Place
}

// OrderPage is a page of orders. AvailablePlaces covers every flight
// referenced by the tickets.
type OrderPage struct {
	Orders          []models.Order
	Total           int
	AvailablePlaces map[int64]int
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// CatalogService manages the reference data flights are built from
type CatalogService interface {
	ListAirports(ctx context.Context, page models.Page) ([]models.Airport, int, error)
	GetAirport(ctx context.Context, id int64) (*models.Airport, error)
	CreateAirport(ctx context.Context, a models.Airport) (*models.Airport, error)

	ListRoutes(ctx context.Context, filter models.RouteFilter, page models.Page) ([]models.Route, int, error)
	GetRoute(ctx context.Context, id int64) (*models.Route, error)
	CreateRoute(ctx context.Context, in models.RouteInput) (*models.Route, error)

	ListAirplaneTypes(ctx context.Context, page models.Page) ([]models.AirplaneType, int, error)
	CreateAirplaneType(ctx context.Context, t models.AirplaneType) (*models.AirplaneType, error)

	ListAirplanes(ctx context.Context, page models.Page) ([]models.Airplane, int, error)
	CreateAirplane(ctx context.Context, in models.AirplaneInput) (*models.Airplane, error)

	ListCrews(ctx context.Context, page models.Page) ([]models.Crew, int, error)
	GetCrew(ctx context.Context, id int64) (*models.Crew, error)
	CreateCrew(ctx context.Context, c models.Crew) (*models.Crew, error)
	UpdateCrew(ctx context.Context, c models.Crew) (*models.Crew, error)
	PatchCrew(ctx context.Context, id int64, patch models.CrewPatch) (*models.Crew, error)
	DeleteCrew(ctx context.Context, id int64) error
}

// FlightService manages flights and their availability
type FlightService interface {
	ListFlights(ctx context.Context, page models.Page) (*FlightPage, error)
	GetFlight(ctx context.Context, id int64) (*FlightDetail, error)
	CreateFlight(ctx context.Context, in models.FlightInput) (*models.Flight, error)
	UpdateFlight(ctx context.Context, id int64, in models.FlightInput) (*models.Flight, error)
	PatchFlight(ctx context.Context, id int64, patch models.FlightPatch) (*models.Flight, error)
}

// OrderService places and lists ticket orders
type OrderService interface {
	ListOrders(ctx context.Context, userID int64, page models.Page) (*OrderPage, error)
	PlaceOrder(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Order, error)
}

// AuthService registers users and issues tokens
type AuthService interface {
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	Token(ctx context.Context, creds models.Credentials) (*TokenResponse, error)
	EnsureAdmin(ctx context.Context, creds models.Credentials) (*models.User, error)
}
