package service

import (
	"context"
	"errors"

	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/metrics"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

type orderService struct {
	placer       OrderPlacer
	orders       OrderStore
	availability Availability
	notifier     SeatNotifier
	starter      WorkflowStarter
	metrics      *metrics.Metrics
	log          logger.Logger
}

// OrderDeps groups the collaborators of the order service
type OrderDeps struct {
	Placer       OrderPlacer
	Orders       OrderStore
	Availability Availability
	Notifier     SeatNotifier
	Starter      WorkflowStarter
	Metrics      *metrics.Metrics
	Log          logger.Logger
}

// NewOrderService creates a new order service
func NewOrderService(deps OrderDeps) OrderService {
	return &orderService{
		placer:       deps.Placer,
		orders:       deps.Orders,
		availability: deps.Availability,
		notifier:     deps.Notifier,
		starter:      deps.Starter,
		metrics:      deps.Metrics,
		log:          deps.Log,
	}
}

// ListOrders returns the caller's orders, newest first
func (s *orderService) ListOrders(ctx context.Context, userID int64, page models.Page) (*OrderPage, error) {
	orders, total, err := s.orders.ListOrders(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var flights []models.Flight
	for _, o := range orders {
		for _, t := range o.Tickets {
			if t.Flight == nil || seen[t.FlightID] {
				continue
			}
			seen[t.FlightID] = true
			flights = append(flights, *t.Flight)
		}
	}

	available, err := s.availability.AvailableFor(ctx, flights)
	if err != nil {
		return nil, err
	}

	return &OrderPage{Orders: orders, Total: total, AvailablePlaces: available}, nil
}

// PlaceOrder commits the order, then notifies seat watchers and starts the
// post-commit workflow. Failures after the commit are logged only.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.placer.PlaceOrder(ctx, userID, req.Tickets)
	if err != nil {
		for _, kind := range rejectionKinds(err) {
			s.metrics.OrdersRejected.WithLabelValues(string(kind)).Inc()
		}
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.TicketsAllocated.Add(float64(len(order.Tickets)))
	s.log.Info("order placed", "order_id", order.ID, "user_id", userID, "tickets", len(order.Tickets))

	s.broadcast(order)

	runID, err := s.starter.StartOrderPlaced(context.WithoutCancel(ctx), order.ID)
	if err != nil {
		s.log.Error("failed to start order workflow", "order_id", order.ID, "error", err)
	} else {
		s.log.Debug("order workflow started", "order_id", order.ID, "run_id", runID)
	}

	return order, nil
}

func (s *orderService) broadcast(order *models.Order) {
	var flightIDs []int64
	byFlight := make(map[int64][]models.Place)
	for _, t := range order.Tickets {
		if _, ok := byFlight[t.FlightID]; !ok {
			flightIDs = append(flightIDs, t.FlightID)
		}
		byFlight[t.FlightID] = append(byFlight[t.FlightID], models.Place{Row: t.Row, Seat: t.Seat})
	}
	for _, id := range flightIDs {
		s.notifier.BroadcastSeatsTaken(id, order.ID, byFlight[id])
	}
}

func rejectionKinds(err error) []booking.Kind {
	var orderErr *booking.OrderError
	if errors.As(err, &orderErr) {
		return orderErr.Kinds()
	}
	if kind := booking.KindOf(err); kind != "" {
		return []booking.Kind{kind}
	}
	return nil
}
