package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles flight, order and ticket storage. It implements the
// booking store and availability ports on top of pgx.
type Repository struct {
	*TxManager
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{TxManager: NewTxManager(pool)}
}

// --- Flight Operations ---

const selectFlights = `
	SELECT f.id, f.departure_time, f.arrival_time,
	       r.id, r.distance,
	       src.id, src.name, src.closest_big_city,
	       dst.id, dst.name, dst.closest_big_city,
	       a.id, a.name, a.row_count, a.seats_in_row,
	       t.id, t.name
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN airplane_types t ON t.id = a.airplane_type_id
`

func scanFlight(row pgx.Row) (models.Flight, error) {
	var f models.Flight
	err := row.Scan(
		&f.ID, &f.DepartureTime, &f.ArrivalTime,
		&f.Route.ID, &f.Route.Distance,
		&f.Route.Source.ID, &f.Route.Source.Name, &f.Route.Source.ClosestBigCity,
		&f.Route.Destination.ID, &f.Route.Destination.Name, &f.Route.Destination.ClosestBigCity,
		&f.Airplane.ID, &f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow,
		&f.Airplane.AirplaneType.ID, &f.Airplane.AirplaneType.Name,
	)
	return f, err
}

func collectFlights(rows pgx.Rows) ([]models.Flight, error) {
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flights: %w", err)
	}
	return flights, nil
}

// LockFlights loads the flights and locks their rows until the surrounding
// transaction ends. Rows are locked in ascending id order.
func (r *Repository) LockFlights(ctx context.Context, ids []int64) (map[int64]models.Flight, error) {
	rows, err := r.executor(ctx).Query(ctx, selectFlights+`
		WHERE f.id = ANY($1)
		ORDER BY f.id
		FOR UPDATE OF f
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock flights: %w", err)
	}

	flights, err := collectFlights(rows)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]models.Flight, len(flights))
	for _, f := range flights {
		out[f.ID] = f
	}
	return out, nil
}

// ListFlights returns a page of flights ordered by departure and the total count
func (r *Repository) ListFlights(ctx context.Context, page models.Page) ([]models.Flight, int, error) {
	q := r.executor(ctx)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count flights: %w", err)
	}

	rows, err := q.Query(ctx, selectFlights+`
		ORDER BY f.departure_time, f.id
		LIMIT $1 OFFSET $2
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query flights: %w", err)
	}

	flights, err := collectFlights(rows)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

// GetFlight returns a flight with its crew
func (r *Repository) GetFlight(ctx context.Context, id int64) (*models.Flight, error) {
	f, err := scanFlight(r.executor(ctx).QueryRow(ctx, selectFlights+`WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	crews, err := r.flightCrews(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	f.Crew = crews[id]
	if f.Crew == nil {
		f.Crew = []models.Crew{}
	}
	return &f, nil
}

func (r *Repository) flightsByID(ctx context.Context, ids []int64) (map[int64]models.Flight, error) {
	rows, err := r.executor(ctx).Query(ctx, selectFlights+`WHERE f.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	flights, err := collectFlights(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Flight, len(flights))
	for _, f := range flights {
		out[f.ID] = f
	}
	return out, nil
}

func (r *Repository) flightCrews(ctx context.Context, flightIDs []int64) (map[int64][]models.Crew, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name
		FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id
	`, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query flight crews: %w", err)
	}
	defer rows.Close()

	crews := make(map[int64][]models.Crew)
	for rows.Next() {
		var flightID int64
		var c models.Crew
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		crews[flightID] = append(crews[flightID], c)
	}
	return crews, rows.Err()
}

// CreateFlight inserts a flight and its crew assignment
func (r *Repository) CreateFlight(ctx context.Context, in models.FlightInput) (*models.Flight, error) {
	var created *models.Flight
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.executor(ctx)

		var id int64
		err := q.QueryRow(ctx, `
			INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, in.RouteID, in.AirplaneID, in.DepartureTime, in.ArrivalTime).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create flight: %w", mapError(err))
		}

		if err := r.assignCrew(ctx, id, in.CrewIDs); err != nil {
			return err
		}

		created, err = r.GetFlight(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateFlight replaces the writable fields and the crew of a flight. The
// flight row is locked first so no ticket can be sold while the new airplane
// layout is checked against the tickets already issued.
func (r *Repository) UpdateFlight(ctx context.Context, id int64, in models.FlightInput) (*models.Flight, error) {
	var updated *models.Flight
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.executor(ctx)

		var locked int64
		if err := q.QueryRow(ctx, `SELECT id FROM flights WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			return mapError(err)
		}

		if err := r.checkLayout(ctx, id, in.AirplaneID); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `
			UPDATE flights
			SET route_id = $1, airplane_id = $2, departure_time = $3, arrival_time = $4
			WHERE id = $5
		`, in.RouteID, in.AirplaneID, in.DepartureTime, in.ArrivalTime, id)
		if err != nil {
			return fmt.Errorf("failed to update flight: %w", mapError(err))
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := q.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear flight crew: %w", err)
		}
		if err := r.assignCrew(ctx, id, in.CrewIDs); err != nil {
			return err
		}

		updated, err = r.GetFlight(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkLayout fails with ErrTicketsOutsideLayout when a ticket of the flight
// names a row or seat the airplane does not have
func (r *Repository) checkLayout(ctx context.Context, flightID, airplaneID int64) error {
	q := r.executor(ctx)

	var rows, seats int
	err := q.QueryRow(ctx, `SELECT row_count, seats_in_row FROM airplanes WHERE id = $1`, airplaneID).Scan(&rows, &seats)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInvalidReference
	}
	if err != nil {
		return fmt.Errorf("failed to load airplane layout: %w", err)
	}

	var outside bool
	err = q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE flight_id = $1 AND (row_number > $2 OR seat_number > $3)
		)
	`, flightID, rows, seats).Scan(&outside)
	if err != nil {
		return fmt.Errorf("failed to check tickets against layout: %w", err)
	}
	if outside {
		return ErrTicketsOutsideLayout
	}
	return nil
}

func (r *Repository) assignCrew(ctx context.Context, flightID int64, crewIDs []int64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	_, err := r.executor(ctx).Exec(ctx, `
		INSERT INTO flight_crews (flight_id, crew_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, flightID, crewIDs)
	if err != nil {
		return fmt.Errorf("failed to assign crew: %w", mapError(err))
	}
	return nil
}

// --- Ticket Operations ---

// IsOccupied reports whether a ticket exists for the seat
func (r *Repository) IsOccupied(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	var taken bool
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE flight_id = $1 AND row_number = $2 AND seat_number = $3
		)
	`, flightID, row, seat).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check seat: %w", err)
	}
	return taken, nil
}

// CreateTicket inserts a ticket. A duplicate seat maps to booking.ErrSeatConflict.
func (r *Repository) CreateTicket(ctx context.Context, t *models.Ticket) error {
	err := r.executor(ctx).QueryRow(ctx, `
		INSERT INTO tickets (order_id, flight_id, row_number, seat_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.OrderID, t.FlightID, t.Row, t.Seat).Scan(&t.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// CountTickets returns the number of sold tickets per flight
func (r *Repository) CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(flightIDs))
	if len(flightIDs) == 0 {
		return counts, nil
	}

	rows, err := r.executor(ctx).Query(ctx, `
		SELECT flight_id, COUNT(*)
		FROM tickets
		WHERE flight_id = ANY($1)
		GROUP BY flight_id
	`, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan ticket count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// TakenPlaces lists the occupied seats of a flight ordered by row and seat
func (r *Repository) TakenPlaces(ctx context.Context, flightID int64) ([]models.Place, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT row_number, seat_number
		FROM tickets
		WHERE flight_id = $1
		ORDER BY row_number, seat_number
	`, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to query taken places: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// --- Order Operations ---

// CreateOrder inserts an order row for the user
func (r *Repository) CreateOrder(ctx context.Context, o *models.Order) error {
	err := r.executor(ctx).QueryRow(ctx, `
		INSERT INTO orders (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`, o.UserID).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", mapError(err))
	}
	return nil
}

// ListOrders returns a page of the user's orders, newest first, with their
// tickets and the flights those tickets are for
func (r *Repository) ListOrders(ctx context.Context, userID int64, page models.Page) ([]models.Order, int, error) {
	q := r.executor(ctx)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read orders: %w", err)
	}

	if err := r.attachTickets(ctx, orders, true); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetOrder returns an order with its tickets
func (r *Repository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT id, user_id, created_at FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	orders := []models.Order{o}
	if err := r.attachTickets(ctx, orders, false); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *Repository) attachTickets(ctx context.Context, orders []models.Order, withFlights bool) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
		orders[i].Tickets = []models.Ticket{}
	}

	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, order_id, flight_id, row_number, seat_number
		FROM tickets
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	flightSet := make(map[int64]bool)
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat); err != nil {
			return fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
		flightSet[t.FlightID] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read tickets: %w", err)
	}
	rows.Close()

	var flights map[int64]models.Flight
	if withFlights && len(flightSet) > 0 {
		flightIDs := make([]int64, 0, len(flightSet))
		for id := range flightSet {
			flightIDs = append(flightIDs, id)
		}
		flights, err = r.flightsByID(ctx, flightIDs)
		if err != nil {
			return err
		}
	}

	for _, t := range tickets {
		if f, ok := flights[t.FlightID]; ok {
			t.Flight = &f
		}
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return nil
}
