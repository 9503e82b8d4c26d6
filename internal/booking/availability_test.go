package booking

import (
	"context"
	"testing"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_SingleTicket(t *testing.T) {
	flight := testFlight(1, fixedNow.Add(24*time.Hour))
	store := newMemStore(flight)
	manager := newTestManager(store)
	projector := NewProjector(store)

	_, err := manager.PlaceOrder(context.Background(), 7, []models.TicketRequest{{FlightID: 1, Row: 2, Seat: 8}})
	require.NoError(t, err)

	available, err := projector.AvailablePlaces(context.Background(), flight)
	require.NoError(t, err)
	assert.Equal(t, 479, available)

	taken, err := projector.TakenPlaces(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Place{{Row: 2, Seat: 8}}, taken)
}

func TestProjector_TracksAllocations(t *testing.T) {
	first := testFlight(1, fixedNow.Add(24*time.Hour))
	second := testFlight(2, fixedNow.Add(48*time.Hour))
	store := newMemStore(first, second)
	manager := newTestManager(store)
	projector := NewProjector(store)

	const n = 5
	for i := 1; i <= n; i++ {
		_, err := manager.PlaceOrder(context.Background(), 7, []models.TicketRequest{{FlightID: 1, Row: i, Seat: 1}})
		require.NoError(t, err)
	}

	available, err := projector.AvailableFor(context.Background(), []models.Flight{first, second})
	require.NoError(t, err)
	assert.Equal(t, 480-n, available[first.ID])
	assert.Equal(t, 480, available[second.ID])
}

func TestProjector_NoTickets(t *testing.T) {
	store := newMemStore(testFlight(1, fixedNow.Add(24*time.Hour)))
	projector := NewProjector(store)

	taken, err := projector.TakenPlaces(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, taken)
	assert.Empty(t, taken)
}
