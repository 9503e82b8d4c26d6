package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

type txKey struct{}

type pendingWrites struct {
	orders  []models.Order
	tickets []models.Ticket
}

// memStore serializes transactions with one lock, the in-process analogue of
// the flight row locks taken by the postgres store.
type memStore struct {
	txMu sync.Mutex

	mu      sync.RWMutex
	flights map[int64]models.Flight
	orders  []models.Order
	tickets []models.Ticket
	nextID  int64

	failTicketAt int
	ticketCalls  int
}

func newMemStore(flights ...models.Flight) *memStore {
	s := &memStore{flights: make(map[int64]models.Flight)}
	for _, f := range flights {
		s.flights[f.ID] = f
	}
	return s
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	w := &pendingWrites{}
	if err := fn(context.WithValue(ctx, txKey{}, w)); err != nil {
		return err
	}

	s.mu.Lock()
	s.orders = append(s.orders, w.orders...)
	s.tickets = append(s.tickets, w.tickets...)
	s.mu.Unlock()
	return nil
}

func (s *memStore) pending(ctx context.Context) *pendingWrites {
	w, _ := ctx.Value(txKey{}).(*pendingWrites)
	return w
}

func (s *memStore) LockFlights(ctx context.Context, ids []int64) (map[int64]models.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]models.Flight, len(ids))
	for _, id := range ids {
		if f, ok := s.flights[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (s *memStore) occupied(ctx context.Context, flightID int64, row, seat int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.tickets
	if w := s.pending(ctx); w != nil {
		all = append(append([]models.Ticket{}, all...), w.tickets...)
	}
	for _, t := range all {
		if t.FlightID == flightID && t.Row == row && t.Seat == seat {
			return true
		}
	}
	return false
}

func (s *memStore) IsOccupied(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	return s.occupied(ctx, flightID, row, seat), nil
}

func (s *memStore) CreateOrder(ctx context.Context, o *models.Order) error {
	w := s.pending(ctx)
	if w == nil {
		return errors.New("no transaction")
	}
	s.mu.Lock()
	s.nextID++
	o.ID = s.nextID
	s.mu.Unlock()
	o.CreatedAt = time.Now()
	w.orders = append(w.orders, *o)
	return nil
}

func (s *memStore) CreateTicket(ctx context.Context, t *models.Ticket) error {
	w := s.pending(ctx)
	if w == nil {
		return errors.New("no transaction")
	}
	s.ticketCalls++
	if s.failTicketAt > 0 && s.ticketCalls == s.failTicketAt {
		return errors.New("disk full")
	}
	if s.occupied(ctx, t.FlightID, t.Row, t.Seat) {
		return ErrSeatConflict
	}
	s.mu.Lock()
	s.nextID++
	t.ID = s.nextID
	s.mu.Unlock()
	w.tickets = append(w.tickets, *t)
	return nil
}

func (s *memStore) CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[int64]int, len(flightIDs))
	for _, t := range s.tickets {
		counts[t.FlightID]++
	}
	return counts, nil
}

func (s *memStore) TakenPlaces(ctx context.Context, flightID int64) ([]models.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var places []models.Place
	for _, t := range s.tickets {
		if t.FlightID == flightID {
			places = append(places, models.Place{Row: t.Row, Seat: t.Seat})
		}
	}
	sort.Slice(places, func(i, j int) bool {
		if places[i].Row != places[j].Row {
			return places[i].Row < places[j].Row
		}
		return places[i].Seat < places[j].Seat
	})
	return places, nil
}

func (s *memStore) committed() (orders int, tickets int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders), len(s.tickets)
}

func testFlight(id int64, departure time.Time) models.Flight {
	return models.Flight{
		ID: id,
		Route: models.Route{
			ID:          1,
			Source:      models.Airport{ID: 1, Name: "airport1", ClosestBigCity: "Paris"},
			Destination: models.Airport{ID: 2, Name: "airport2", ClosestBigCity: "Berlin"},
			Distance:    5000,
		},
		Airplane: models.Airplane{
			ID:           1,
			Name:         "test",
			Rows:         60,
			SeatsInRow:   8,
			AirplaneType: models.AirplaneType{ID: 1, Name: "type"},
		},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
	}
}
