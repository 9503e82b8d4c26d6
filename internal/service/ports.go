package service

import (
	"context"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// CatalogStore persists airports, routes, airplanes and crews
type CatalogStore interface {
	ListAirports(ctx context.Context, page models.Page) ([]models.Airport, int, error)
	GetAirport(ctx context.Context, id int64) (*models.Airport, error)
	CreateAirport(ctx context.Context, a *models.Airport) error
	ListRoutes(ctx context.Context, filter models.RouteFilter, page models.Page) ([]models.Route, int, error)
	GetRoute(ctx context.Context, id int64) (*models.Route, error)
	CreateRoute(ctx context.Context, in models.RouteInput) (*models.Route, error)
	ListAirplaneTypes(ctx context.Context, page models.Page) ([]models.AirplaneType, int, error)
	CreateAirplaneType(ctx context.Context, t *models.AirplaneType) error
	ListAirplanes(ctx context.Context, page models.Page) ([]models.Airplane, int, error)
	CreateAirplane(ctx context.Context, in models.AirplaneInput) (*models.Airplane, error)
	ListCrews(ctx context.Context, page models.Page) ([]models.Crew, int, error)
	GetCrew(ctx context.Context, id int64) (*models.Crew, error)
	CreateCrew(ctx context.Context, c *models.Crew) error
	UpdateCrew(ctx context.Context, c *models.Crew) error
	DeleteCrew(ctx context.Context, id int64) error
}

// FlightStore persists flights
type FlightStore interface {
	ListFlights(ctx context.Context, page models.Page) ([]models.Flight, int, error)
	GetFlight(ctx context.Context, id int64) (*models.Flight, error)
	CreateFlight(ctx context.Context, in models.FlightInput) (*models.Flight, error)
	UpdateFlight(ctx context.Context, id int64, in models.FlightInput) (*models.Flight, error)
}

// OrderStore reads committed orders
type OrderStore interface {
	ListOrders(ctx context.Context, userID int64, page models.Page) ([]models.Order, int, error)
}

// UserStore persists API accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Promote(ctx context.Context, id int64, passwordHash string) (*models.User, error)
}

// Availability projects seat availability from sold tickets
type Availability interface {
	AvailableFor(ctx context.Context, flights []models.Flight) (map[int64]int, error)
	TakenPlaces(ctx context.Context, flightID int64) ([]models.Place, error)
}

// OrderPlacer commits an order atomically
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID int64, reqs []models.TicketRequest) (*models.Order, error)
}

// SeatNotifier pushes sold seats to live subscribers
type SeatNotifier interface {
	BroadcastSeatsTaken(flightID, orderID int64, places []models.Place)
}

// WorkflowStarter kicks off post-commit processing of an order
type WorkflowStarter interface {
	StartOrderPlaced(ctx context.Context, orderID int64) (string, error)
}

// TokenSigner issues access tokens
type TokenSigner interface {
	Issue(u models.User) (string, time.Time, error)
}
