package booking

import (
	"context"
	"fmt"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Projector derives seat availability straight from committed tickets
type Projector struct {
	reader AvailabilityReader
}

// NewProjector creates a projector over the ticket reader
func NewProjector(reader AvailabilityReader) *Projector {
	return &Projector{reader: reader}
}

// AvailablePlaces returns capacity minus the tickets sold for the flight
func (p *Projector) AvailablePlaces(ctx context.Context, f models.Flight) (int, error) {
	available, err := p.AvailableFor(ctx, []models.Flight{f})
	if err != nil {
		return 0, err
	}
	return available[f.ID], nil
}

// AvailableFor computes available places for a page of flights with one read
func (p *Projector) AvailableFor(ctx context.Context, flights []models.Flight) (map[int64]int, error) {
	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}

	counts, err := p.reader.CountTickets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	available := make(map[int64]int, len(flights))
	for _, f := range flights {
		available[f.ID] = Capacity(f.Airplane) - counts[f.ID]
	}
	return available, nil
}

// TakenPlaces lists every occupied seat of the flight exactly once
func (p *Projector) TakenPlaces(ctx context.Context, flightID int64) ([]models.Place, error) {
	places, err := p.reader.TakenPlaces(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("taken places: %w", err)
	}
	if places == nil {
		places = []models.Place{}
	}
	return places, nil
}
