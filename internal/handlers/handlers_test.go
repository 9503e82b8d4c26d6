package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/cx-tal-miterani/airline-booking/internal/service"
	"github.com/cx-tal-miterani/airline-booking/internal/service/mocks"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	anonymous = auth.Anonymous()
	user      = auth.Identity{UserID: 7, Email: "user@example.com", Role: auth.RoleUser}
	admin     = auth.Identity{UserID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}
)

type testDeps struct {
	catalog *mocks.MockCatalogService
	flights *mocks.MockFlightService
	orders  *mocks.MockOrderService
	auth    *mocks.MockAuthService
}

func newTestDeps() *testDeps {
	return &testDeps{
		catalog: new(mocks.MockCatalogService),
		flights: new(mocks.MockFlightService),
		orders:  new(mocks.MockOrderService),
		auth:    new(mocks.MockAuthService),
	}
}

func (d *testDeps) assertExpectations(t *testing.T) {
	d.catalog.AssertExpectations(t)
	d.flights.AssertExpectations(t)
	d.orders.AssertExpectations(t)
	d.auth.AssertExpectations(t)
}

func setupTestRouter(d *testDeps) *mux.Router {
	h := NewHandler(Deps{
		Catalog: d.catalog,
		Flights: d.flights,
		Orders:  d.orders,
		Auth:    d.auth,
		Log:     logger.NewNop(),
	})

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/token", h.Token).Methods(http.MethodPost)
	api.HandleFunc("/airports", Guard(auth.ActionRead, auth.ResourceAirport, h.ListAirports)).Methods(http.MethodGet)
	api.HandleFunc("/airports", Guard(auth.ActionWrite, auth.ResourceAirport, h.CreateAirport)).Methods(http.MethodPost)
	api.HandleFunc("/routes", Guard(auth.ActionRead, auth.ResourceRoute, h.ListRoutes)).Methods(http.MethodGet)
	api.HandleFunc("/routes", Guard(auth.ActionWrite, auth.ResourceRoute, h.CreateRoute)).Methods(http.MethodPost)
	api.HandleFunc("/airplanes", Guard(auth.ActionRead, auth.ResourceAirplane, h.ListAirplanes)).Methods(http.MethodGet)
	api.HandleFunc("/crews", Guard(auth.ActionRead, auth.ResourceCrew, h.ListCrews)).Methods(http.MethodGet)
	api.HandleFunc("/crews", Guard(auth.ActionWrite, auth.ResourceCrew, h.CreateCrew)).Methods(http.MethodPost)
	api.HandleFunc("/crews/{id}", Guard(auth.ActionWrite, auth.ResourceCrew, h.PatchCrew)).Methods(http.MethodPatch)
	api.HandleFunc("/crews/{id}", Guard(auth.ActionWrite, auth.ResourceCrew, h.DeleteCrew)).Methods(http.MethodDelete)
	api.HandleFunc("/flights", Guard(auth.ActionRead, auth.ResourceFlight, h.ListFlights)).Methods(http.MethodGet)
	api.HandleFunc("/flights", Guard(auth.ActionWrite, auth.ResourceFlight, h.CreateFlight)).Methods(http.MethodPost)
	api.HandleFunc("/flights/{id}", Guard(auth.ActionRead, auth.ResourceFlight, h.GetFlight)).Methods(http.MethodGet)
	api.HandleFunc("/flights/{id}", Guard(auth.ActionWrite, auth.ResourceFlight, h.UpdateFlight)).Methods(http.MethodPut)
	api.HandleFunc("/orders", Guard(auth.ActionRead, auth.ResourceOrder, h.ListOrders)).Methods(http.MethodGet)
	api.HandleFunc("/orders", Guard(auth.ActionWrite, auth.ResourceOrder, h.CreateOrder)).Methods(http.MethodPost)
	return r
}

func do(router http.Handler, id auth.Identity, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithIdentity(req.Context(), id))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func testFlight() models.Flight {
	departure := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	return models.Flight{
		ID: 3,
		Route: models.Route{
			ID:          1,
			Source:      models.Airport{ID: 1, Name: "airport1", ClosestBigCity: "Paris"},
			Destination: models.Airport{ID: 2, Name: "airport2", ClosestBigCity: "Berlin"},
			Distance:    5000,
		},
		Airplane: models.Airplane{
			ID: 4, Name: "test", Rows: 60, SeatsInRow: 8,
			AirplaneType: models.AirplaneType{ID: 1, Name: "type"},
		},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
		Crew:          []models.Crew{{ID: 9, FirstName: "Ada", LastName: "Lovelace"}},
	}
}

func TestHandler_ListFlights(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	flight := testFlight()
	d.flights.On("ListFlights", mock.Anything, models.NewPage(1, 10)).Return(&service.FlightPage{
		Flights:         []models.Flight{flight},
		Total:           1,
		AvailablePlaces: map[int64]int{3: 479},
	}, nil)

	rec := do(router, user, http.MethodGet, "/api/flights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Count   int              `json:"count"`
		Page    int              `json:"page"`
		Results []flightListView `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, 1, response.Page)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Paris - Berlin", response.Results[0].Route)
	assert.Equal(t, "test", response.Results[0].AirplaneName)
	assert.Equal(t, 480, response.Results[0].Capacity)
	assert.Equal(t, 479, response.Results[0].AvailablePlaces)

	d.assertExpectations(t)
}

func TestHandler_ListFlightsPagination(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.flights.On("ListFlights", mock.Anything, models.Page{Number: 3, Size: 25}).
		Return(&service.FlightPage{Total: 0}, nil)

	rec := do(router, user, http.MethodGet, "/api/flights?page=3&limit=25", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, []interface{}{}, body["results"])

	d.assertExpectations(t)
}

func TestHandler_GetFlight(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setup          func(d *testDeps)
		expectedStatus int
	}{
		{
			name: "flight found",
			path: "/api/flights/3",
			setup: func(d *testDeps) {
				d.flights.On("GetFlight", mock.Anything, int64(3)).Return(&service.FlightDetail{
					Flight:      testFlight(),
					TakenPlaces: []models.Place{{Row: 2, Seat: 8}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "flight not found",
			path: "/api/flights/99",
			setup: func(d *testDeps) {
				d.flights.On("GetFlight", mock.Anything, int64(99)).Return(nil, database.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			path:           "/api/flights/abc",
			setup:          func(d *testDeps) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			router := setupTestRouter(d)
			tt.setup(d)

			rec := do(router, user, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			d.assertExpectations(t)
		})
	}
}

func TestHandler_GetFlightDetailProjection(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.flights.On("GetFlight", mock.Anything, int64(3)).Return(&service.FlightDetail{
		Flight:      testFlight(),
		TakenPlaces: []models.Place{{Row: 2, Seat: 8}},
	}, nil)

	rec := do(router, user, http.MethodGet, "/api/flights/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response flightDetailView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []models.Place{{Row: 2, Seat: 8}}, response.TakenPlaces)
	assert.Equal(t, []string{"Ada Lovelace"}, response.Crew)
	assert.Equal(t, "Paris", response.Route.Source.ClosestBigCity)
	assert.Equal(t, 480, response.Airplane.Capacity)
}

func TestHandler_CreateOrder(t *testing.T) {
	req := models.CreateOrderRequest{Tickets: []models.TicketRequest{{FlightID: 3, Row: 2, Seat: 8}}}
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		identity       auth.Identity
		body           interface{}
		setup          func(d *testDeps)
		expectedStatus int
		expectedKind   string
		expectedError  string
	}{
		{
			name:     "order placed",
			identity: user,
			body:     req,
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(&models.Order{
					ID: 11, UserID: 7, CreatedAt: created,
					Tickets: []models.Ticket{{ID: 21, FlightID: 3, Row: 2, Seat: 8, OrderID: 11}},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "anonymous",
			identity:       anonymous,
			body:           req,
			setup:          func(d *testDeps) {},
			expectedStatus: http.StatusUnauthorized,
			expectedKind:   "authentication_required",
		},
		{
			name:           "invalid body",
			identity:       user,
			body:           "{not json",
			setup:          func(d *testDeps) {},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "validation",
		},
		{
			name:     "empty order",
			identity: user,
			body:     models.CreateOrderRequest{},
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), models.CreateOrderRequest{}).
					Return(nil, booking.ErrEmptyOrder)
			},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "empty_order",
		},
		{
			name:     "booking window violation",
			identity: user,
			body:     req,
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(nil, &booking.OrderError{
					Failures: []booking.TicketFailure{{
						Index: 0, FlightID: 3, Row: 2, Seat: 8,
						Kind:    booking.KindBookingWindowViolation,
						Message: booking.BookingWindowMessage,
					}},
				})
			},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "booking_window_violation",
			expectedError:  "Booking tickets is available no later than three hours before departure",
		},
		{
			name:     "seat conflict only",
			identity: user,
			body:     req,
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(nil, &booking.OrderError{
					Failures: []booking.TicketFailure{{Kind: booking.KindSeatConflict, Message: "seat is already taken"}},
				})
			},
			expectedStatus: http.StatusConflict,
			expectedKind:   "seat_conflict",
		},
		{
			name:     "seat conflict mixed with out of bounds",
			identity: user,
			body:     req,
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(nil, &booking.OrderError{
					Failures: []booking.TicketFailure{
						{Index: 0, Kind: booking.KindSeatConflict, Message: "seat is already taken"},
						{Index: 1, Kind: booking.KindOutOfBounds, Message: "seat is outside the airplane layout"},
					},
				})
			},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "seat_conflict",
		},
		{
			name:     "storage failure",
			identity: user,
			body:     req,
			setup: func(d *testDeps) {
				d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKind:   "internal",
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			router := setupTestRouter(d)
			tt.setup(d)

			rec := do(router, tt.identity, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			body := decodeBody(t, rec)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, body["kind"])
			}
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
			d.assertExpectations(t)
		})
	}
}

func TestHandler_CreateOrderResponse(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	req := models.CreateOrderRequest{Tickets: []models.TicketRequest{{FlightID: 3, Row: 2, Seat: 8}}}
	d.orders.On("PlaceOrder", mock.Anything, int64(7), req).Return(&models.Order{
		ID: 11, UserID: 7,
		Tickets: []models.Ticket{{ID: 21, FlightID: 3, Row: 2, Seat: 8, OrderID: 11}},
	}, nil)

	rec := do(router, user, http.MethodPost, "/api/orders", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var response orderView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, int64(11), response.ID)
	assert.Equal(t, []ticketView{{ID: 21, Row: 2, Seat: 8, Flight: 3}}, response.Tickets)
}

func TestHandler_OrderErrorListsTickets(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.orders.On("PlaceOrder", mock.Anything, int64(7), mock.Anything).Return(nil, &booking.OrderError{
		Failures: []booking.TicketFailure{
			{Index: 1, FlightID: 3, Row: 61, Seat: 1, Kind: booking.KindOutOfBounds, Message: "seat is outside the airplane layout"},
		},
	})

	rec := do(router, user, http.MethodPost, "/api/orders", models.CreateOrderRequest{
		Tickets: []models.TicketRequest{{FlightID: 3, Row: 1, Seat: 1}, {FlightID: 3, Row: 61, Seat: 1}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var response errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Tickets, 1)
	assert.Equal(t, 1, response.Tickets[0].Index)
	assert.Equal(t, 61, response.Tickets[0].Row)
	assert.Equal(t, booking.KindOutOfBounds, response.Tickets[0].Kind)
}

func TestHandler_ListOrders(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	flight := testFlight()
	d.orders.On("ListOrders", mock.Anything, int64(7), models.NewPage(1, 10)).Return(&service.OrderPage{
		Orders: []models.Order{{
			ID: 11, UserID: 7,
			Tickets: []models.Ticket{{ID: 21, FlightID: 3, Row: 2, Seat: 8, Flight: &flight}},
		}},
		Total:           1,
		AvailablePlaces: map[int64]int{3: 479},
	}, nil)

	rec := do(router, user, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Count   int             `json:"count"`
		Results []orderListView `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Results, 1)
	require.Len(t, response.Results[0].Tickets, 1)

	ticket := response.Results[0].Tickets[0]
	assert.Equal(t, 2, ticket.Row)
	assert.Equal(t, 8, ticket.Seat)
	assert.Equal(t, int64(3), ticket.Flight.ID)
	assert.Equal(t, 479, ticket.Flight.AvailablePlaces)

	d.assertExpectations(t)
}

func TestHandler_ListOrdersRequiresAuthentication(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	rec := do(router, anonymous, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	d.orders.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Permissions(t *testing.T) {
	tests := []struct {
		name           string
		identity       auth.Identity
		method         string
		path           string
		body           interface{}
		expectedStatus int
	}{
		{"anonymous reads airports", anonymous, http.MethodGet, "/api/airports", nil, http.StatusUnauthorized},
		{"user creates airport", user, http.MethodPost, "/api/airports", models.Airport{Name: "x", ClosestBigCity: "y"}, http.StatusForbidden},
		{"user reads crews", user, http.MethodGet, "/api/crews", nil, http.StatusForbidden},
		{"user creates flight", user, http.MethodPost, "/api/flights", models.FlightInput{}, http.StatusForbidden},
		{"anonymous deletes crew", anonymous, http.MethodDelete, "/api/crews/1", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			router := setupTestRouter(d)

			rec := do(router, tt.identity, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			d.assertExpectations(t)
		})
	}
}

func TestHandler_AdminCreatesCrew(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.catalog.On("CreateCrew", mock.Anything, models.Crew{FirstName: "Grace", LastName: "Hopper"}).
		Return(&models.Crew{ID: 5, FirstName: "Grace", LastName: "Hopper"}, nil)

	rec := do(router, admin, http.MethodPost, "/api/crews", map[string]string{"first_name": "Grace", "last_name": "Hopper"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Grace Hopper", body["full_name"])
	d.assertExpectations(t)
}

func TestHandler_DeleteCrew(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.catalog.On("DeleteCrew", mock.Anything, int64(5)).Return(nil).Once()
	d.catalog.On("DeleteCrew", mock.Anything, int64(6)).Return(database.ErrNotFound).Once()

	rec := do(router, admin, http.MethodDelete, "/api/crews/5", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(router, admin, http.MethodDelete, "/api/crews/6", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	d.assertExpectations(t)
}

func TestHandler_PatchCrew(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	last := "Johnson"
	d.catalog.On("PatchCrew", mock.Anything, int64(5), models.CrewPatch{LastName: &last}).
		Return(&models.Crew{ID: 5, FirstName: "Amelia", LastName: "Johnson"}, nil)

	rec := do(router, admin, http.MethodPatch, "/api/crews/5", `{"last_name":"Johnson"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Amelia Johnson", body["full_name"])

	rec = do(router, admin, http.MethodPatch, "/api/crews/5", `{"id":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, user, http.MethodPatch, "/api/crews/5", `{"last_name":"Johnson"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	d.assertExpectations(t)
}

func TestHandler_UpdateFlightLayoutConflict(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	departure := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	in := models.FlightInput{RouteID: 1, AirplaneID: 9, DepartureTime: departure, ArrivalTime: departure.Add(2 * time.Hour)}
	d.flights.On("UpdateFlight", mock.Anything, int64(3), mock.AnythingOfType("models.FlightInput")).
		Return(nil, &service.ValidationError{Field: "airplane", Message: "tickets already sold for seats this airplane does not have"})

	rec := do(router, admin, http.MethodPut, "/api/flights/3", in)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, "airplane", body["field"])
	d.assertExpectations(t)
}

func TestHandler_ListRoutesFilter(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	route := testFlight().Route
	d.catalog.On("ListRoutes", mock.Anything, models.RouteFilter{Source: "par", Destination: "ber"}, models.NewPage(1, 10)).
		Return([]models.Route{route}, 1, nil)

	rec := do(router, user, http.MethodGet, "/api/routes?source=par&destination=ber", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Results []routeListView `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []routeListView{{ID: 1, Source: "Paris", Destination: "Berlin", Distance: 5000}}, response.Results)
	d.assertExpectations(t)
}

func TestHandler_CreateRouteValidation(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	in := models.RouteInput{SourceID: 1, DestinationID: 1, Distance: 10}
	d.catalog.On("CreateRoute", mock.Anything, in).
		Return(nil, &service.ValidationError{Field: "destination", Message: "must differ from source"})

	rec := do(router, admin, http.MethodPost, "/api/routes", in)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, "destination", body["field"])
	d.assertExpectations(t)
}

func TestHandler_ListAirplanesCapacity(t *testing.T) {
	d := newTestDeps()
	router := setupTestRouter(d)

	d.catalog.On("ListAirplanes", mock.Anything, models.NewPage(1, 10)).
		Return([]models.Airplane{testFlight().Airplane}, 1, nil)

	rec := do(router, user, http.MethodGet, "/api/airplanes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Results []airplaneListView `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Results, 1)
	assert.Equal(t, 480, response.Results[0].Capacity)
	assert.Equal(t, "type", response.Results[0].AirplaneType)
}

func TestHandler_Auth(t *testing.T) {
	creds := models.Credentials{Email: "ada@example.com", Password: "correct horse"}

	t.Run("register", func(t *testing.T) {
		d := newTestDeps()
		router := setupTestRouter(d)
		d.auth.On("Register", mock.Anything, creds).Return(&models.User{ID: 1, Email: creds.Email}, nil)

		rec := do(router, anonymous, http.MethodPost, "/api/auth/register", creds)
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, creds.Email, body["email"])
		assert.NotContains(t, body, "password")
		d.assertExpectations(t)
	})

	t.Run("token", func(t *testing.T) {
		d := newTestDeps()
		router := setupTestRouter(d)
		d.auth.On("Token", mock.Anything, creds).
			Return(&service.TokenResponse{AccessToken: "abc", TokenType: "Bearer", ExpiresAt: 1}, nil)

		rec := do(router, anonymous, http.MethodPost, "/api/auth/token", creds)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc", decodeBody(t, rec)["access_token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		d := newTestDeps()
		router := setupTestRouter(d)
		d.auth.On("Token", mock.Anything, creds).Return(nil, auth.ErrInvalidCredentials)

		rec := do(router, anonymous, http.MethodPost, "/api/auth/token", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication_failed", decodeBody(t, rec)["kind"])
	})
}
