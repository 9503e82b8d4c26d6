package mocks

import (
	"context"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/cx-tal-miterani/airline-booking/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListAirports(ctx context.Context, page models.Page) ([]models.Airport, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Airport), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) GetAirport(ctx context.Context, id int64) (*models.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airport), args.Error(1)
}

func (m *MockCatalogService) CreateAirport(ctx context.Context, a models.Airport) (*models.Airport, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airport), args.Error(1)
}

func (m *MockCatalogService) ListRoutes(ctx context.Context, filter models.RouteFilter, page models.Page) ([]models.Route, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Route), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) GetRoute(ctx context.Context, id int64) (*models.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockCatalogService) CreateRoute(ctx context.Context, in models.RouteInput) (*models.Route, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockCatalogService) ListAirplaneTypes(ctx context.Context, page models.Page) ([]models.AirplaneType, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.AirplaneType), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) CreateAirplaneType(ctx context.Context, t models.AirplaneType) (*models.AirplaneType, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AirplaneType), args.Error(1)
}

func (m *MockCatalogService) ListAirplanes(ctx context.Context, page models.Page) ([]models.Airplane, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Airplane), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) CreateAirplane(ctx context.Context, in models.AirplaneInput) (*models.Airplane, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airplane), args.Error(1)
}

func (m *MockCatalogService) ListCrews(ctx context.Context, page models.Page) ([]models.Crew, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Crew), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) GetCrew(ctx context.Context, id int64) (*models.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crew), args.Error(1)
}

func (m *MockCatalogService) CreateCrew(ctx context.Context, c models.Crew) (*models.Crew, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crew), args.Error(1)
}

func (m *MockCatalogService) UpdateCrew(ctx context.Context, c models.Crew) (*models.Crew, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crew), args.Error(1)
}

func (m *MockCatalogService) PatchCrew(ctx context.Context, id int64, patch models.CrewPatch) (*models.Crew, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crew), args.Error(1)
}

func (m *MockCatalogService) DeleteCrew(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFlightService is a mock implementation of FlightService
type MockFlightService struct {
	mock.Mock
}

func (m *MockFlightService) ListFlights(ctx context.Context, page models.Page) (*service.FlightPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FlightPage), args.Error(1)
}

func (m *MockFlightService) GetFlight(ctx context.Context, id int64) (*service.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FlightDetail), args.Error(1)
}

func (m *MockFlightService) CreateFlight(ctx context.Context, in models.FlightInput) (*models.Flight, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightService) UpdateFlight(ctx context.Context, id int64, in models.FlightInput) (*models.Flight, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightService) PatchFlight(ctx context.Context, id int64, patch models.FlightPatch) (*models.Flight, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID int64, page models.Page) (*service.OrderPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderPage), args.Error(1)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Token(ctx context.Context, creds models.Credentials) (*service.TokenResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenResponse), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, creds models.Credentials) (*models.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var (
	_ service.CatalogService = (*MockCatalogService)(nil)
	_ service.FlightService  = (*MockFlightService)(nil)
	_ service.OrderService   = (*MockOrderService)(nil)
	_ service.AuthService    = (*MockAuthService)(nil)
)
