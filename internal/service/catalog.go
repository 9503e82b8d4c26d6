package service

import (
	"context"
	"strings"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

type catalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListAirports(ctx context.Context, page models.Page) ([]models.Airport, int, error) {
	return s.store.ListAirports(ctx, page)
}

func (s *catalogService) GetAirport(ctx context.Context, id int64) (*models.Airport, error) {
	return s.store.GetAirport(ctx, id)
}

func (s *catalogService) CreateAirport(ctx context.Context, a models.Airport) (*models.Airport, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.ClosestBigCity = strings.TrimSpace(a.ClosestBigCity)
	if a.Name == "" {
		return nil, invalid("name", "this field is required")
	}
	if a.ClosestBigCity == "" {
		return nil, invalid("closest_big_city", "this field is required")
	}
	if err := s.store.CreateAirport(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *catalogService) ListRoutes(ctx context.Context, filter models.RouteFilter, page models.Page) ([]models.Route, int, error) {
	filter.Source = strings.TrimSpace(filter.Source)
	filter.Destination = strings.TrimSpace(filter.Destination)
	return s.store.ListRoutes(ctx, filter, page)
}

func (s *catalogService) GetRoute(ctx context.Context, id int64) (*models.Route, error) {
	return s.store.GetRoute(ctx, id)
}

func (s *catalogService) CreateRoute(ctx context.Context, in models.RouteInput) (*models.Route, error) {
	switch {
	case in.SourceID <= 0:
		return nil, invalid("source", "this field is required")
	case in.DestinationID <= 0:
		return nil, invalid("destination", "this field is required")
	case in.SourceID == in.DestinationID:
		return nil, invalid("destination", "must differ from source")
	case in.Distance <= 0:
		return nil, invalid("distance", "must be positive")
	}
	return s.store.CreateRoute(ctx, in)
}

func (s *catalogService) ListAirplaneTypes(ctx context.Context, page models.Page) ([]models.AirplaneType, int, error) {
	return s.store.ListAirplaneTypes(ctx, page)
}

func (s *catalogService) CreateAirplaneType(ctx context.Context, t models.AirplaneType) (*models.AirplaneType, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, invalid("name", "this field is required")
	}
	if err := s.store.CreateAirplaneType(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *catalogService) ListAirplanes(ctx context.Context, page models.Page) ([]models.Airplane, int, error) {
	return s.store.ListAirplanes(ctx, page)
}

func (s *catalogService) CreateAirplane(ctx context.Context, in models.AirplaneInput) (*models.Airplane, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return nil, invalid("name", "this field is required")
	case in.Rows <= 0:
		return nil, invalid("rows", "must be positive")
	case in.SeatsInRow <= 0:
		return nil, invalid("seats_in_row", "must be positive")
	case in.AirplaneTypeID <= 0:
		return nil, invalid("airplane_type", "this field is required")
	}
	return s.store.CreateAirplane(ctx, in)
}

func (s *catalogService) ListCrews(ctx context.Context, page models.Page) ([]models.Crew, int, error) {
	return s.store.ListCrews(ctx, page)
}

func (s *catalogService) GetCrew(ctx context.Context, id int64) (*models.Crew, error) {
	return s.store.GetCrew(ctx, id)
}

func validateCrew(c *models.Crew) error {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	if c.FirstName == "" {
		return invalid("first_name", "this field is required")
	}
	if c.LastName == "" {
		return invalid("last_name", "this field is required")
	}
	return nil
}

func (s *catalogService) CreateCrew(ctx context.Context, c models.Crew) (*models.Crew, error) {
	if err := validateCrew(&c); err != nil {
		return nil, err
	}
	if err := s.store.CreateCrew(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *catalogService) UpdateCrew(ctx context.Context, c models.Crew) (*models.Crew, error) {
	if err := validateCrew(&c); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCrew(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PatchCrew updates only the fields set in patch
func (s *catalogService) PatchCrew(ctx context.Context, id int64, patch models.CrewPatch) (*models.Crew, error) {
	current, err := s.store.GetCrew(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateCrew(ctx, patch.Apply(*current))
}

func (s *catalogService) DeleteCrew(ctx context.Context, id int64) error {
	return s.store.DeleteCrew(ctx, id)
}
