package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository stores the reference data flights are built from
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new gorm catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func paginate(page models.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit())
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// --- Airports ---

func (r *CatalogRepository) ListAirports(ctx context.Context, page models.Page) ([]models.Airport, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&airportRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airports: %w", err)
	}

	var records []airportRecord
	if err := r.db.WithContext(ctx).Scopes(paginate(page)).Order("id").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list airports: %w", err)
	}

	airports := make([]models.Airport, 0, len(records))
	for _, rec := range records {
		airports = append(airports, rec.toModel())
	}
	return airports, int(total), nil
}

func (r *CatalogRepository) GetAirport(ctx context.Context, id int64) (*models.Airport, error) {
	var rec airportRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, mapError(err)
	}
	a := rec.toModel()
	return &a, nil
}

func (r *CatalogRepository) CreateAirport(ctx context.Context, a *models.Airport) error {
	rec := airportRecord{Name: a.Name, ClosestBigCity: a.ClosestBigCity}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create airport: %w", mapError(err))
	}
	a.ID = rec.ID
	return nil
}

// --- Routes ---

func (r *CatalogRepository) routeQuery(ctx context.Context, filter models.RouteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&routeRecord{})
	if filter.Source != "" {
		q = q.Joins("JOIN airports src ON src.id = routes.source_id").
			Where("src.closest_big_city ILIKE ?", containsPattern(filter.Source))
	}
	if filter.Destination != "" {
		q = q.Joins("JOIN airports dst ON dst.id = routes.destination_id").
			Where("dst.closest_big_city ILIKE ?", containsPattern(filter.Destination))
	}
	return q
}

// ListRoutes returns routes whose source and destination cities contain the
// filter strings, ignoring case
func (r *CatalogRepository) ListRoutes(ctx context.Context, filter models.RouteFilter, page models.Page) ([]models.Route, int, error) {
	var total int64
	if err := r.routeQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	var records []routeRecord
	err := r.routeQuery(ctx, filter).
		Preload("Source").
		Preload("Destination").
		Scopes(paginate(page)).
		Order("routes.id").
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]models.Route, 0, len(records))
	for _, rec := range records {
		routes = append(routes, rec.toModel())
	}
	return routes, int(total), nil
}

func (r *CatalogRepository) GetRoute(ctx context.Context, id int64) (*models.Route, error) {
	var rec routeRecord
	err := r.db.WithContext(ctx).Preload("Source").Preload("Destination").First(&rec, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	route := rec.toModel()
	return &route, nil
}

func (r *CatalogRepository) CreateRoute(ctx context.Context, in models.RouteInput) (*models.Route, error) {
	rec := routeRecord{SourceID: in.SourceID, DestinationID: in.DestinationID, Distance: in.Distance}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create route: %w", mapError(err))
	}
	return r.GetRoute(ctx, rec.ID)
}

// --- Airplane types ---

func (r *CatalogRepository) ListAirplaneTypes(ctx context.Context, page models.Page) ([]models.AirplaneType, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&airplaneTypeRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airplane types: %w", err)
	}

	var records []airplaneTypeRecord
	if err := r.db.WithContext(ctx).Scopes(paginate(page)).Order("id").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list airplane types: %w", err)
	}

	types := make([]models.AirplaneType, 0, len(records))
	for _, rec := range records {
		types = append(types, rec.toModel())
	}
	return types, int(total), nil
}

func (r *CatalogRepository) CreateAirplaneType(ctx context.Context, t *models.AirplaneType) error {
	rec := airplaneTypeRecord{Name: t.Name}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create airplane type: %w", mapError(err))
	}
	t.ID = rec.ID
	return nil
}

// --- Airplanes ---

func (r *CatalogRepository) ListAirplanes(ctx context.Context, page models.Page) ([]models.Airplane, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&airplaneRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airplanes: %w", err)
	}

	var records []airplaneRecord
	err := r.db.WithContext(ctx).
		Preload("AirplaneType").
		Scopes(paginate(page)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list airplanes: %w", err)
	}

	airplanes := make([]models.Airplane, 0, len(records))
	for _, rec := range records {
		airplanes = append(airplanes, rec.toModel())
	}
	return airplanes, int(total), nil
}

func (r *CatalogRepository) CreateAirplane(ctx context.Context, in models.AirplaneInput) (*models.Airplane, error) {
	rec := airplaneRecord{
		Name:           in.Name,
		Rows:           in.Rows,
		SeatsInRow:     in.SeatsInRow,
		AirplaneTypeID: in.AirplaneTypeID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create airplane: %w", mapError(err))
	}

	if err := r.db.WithContext(ctx).Preload("AirplaneType").First(&rec, rec.ID).Error; err != nil {
		return nil, mapError(err)
	}
	a := rec.toModel()
	return &a, nil
}

// --- Crews ---

func (r *CatalogRepository) ListCrews(ctx context.Context, page models.Page) ([]models.Crew, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&crewRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count crews: %w", err)
	}

	var records []crewRecord
	if err := r.db.WithContext(ctx).Scopes(paginate(page)).Order("id").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list crews: %w", err)
	}

	crews := make([]models.Crew, 0, len(records))
	for _, rec := range records {
		crews = append(crews, rec.toModel())
	}
	return crews, int(total), nil
}

func (r *CatalogRepository) GetCrew(ctx context.Context, id int64) (*models.Crew, error) {
	var rec crewRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, mapError(err)
	}
	c := rec.toModel()
	return &c, nil
}

func (r *CatalogRepository) CreateCrew(ctx context.Context, c *models.Crew) error {
	rec := crewRecord{FirstName: c.FirstName, LastName: c.LastName}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create crew: %w", mapError(err))
	}
	c.ID = rec.ID
	return nil
}

func (r *CatalogRepository) UpdateCrew(ctx context.Context, c *models.Crew) error {
	res := r.db.WithContext(ctx).
		Model(&crewRecord{ID: c.ID}).
		Updates(map[string]any{"first_name": c.FirstName, "last_name": c.LastName})
	if res.Error != nil {
		return fmt.Errorf("failed to update crew: %w", mapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteCrew(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&crewRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete crew: %w", mapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
