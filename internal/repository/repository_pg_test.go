package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a PostgreSQL database, e.g.
// TEST_DATABASE_DSN="host=localhost port=5432 user=airport password=airport dbname=airport_test sslmode=disable"
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("PostgreSQL not available: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE tickets, orders, flight_crews, flights, crews, airplanes, airplane_types, routes, airports, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type fixture struct {
	userID     int64
	flightID   int64
	airplaneID int64
}

// seed creates one 10x6 airplane flying one flight.
func seed(t *testing.T, pool *pgxpool.Pool) fixture {
	t.Helper()
	ctx := context.Background()

	user := &domain.User{Email: "user@example.com", PasswordHash: "x"}
	require.NoError(t, NewUserRepository(pool).Create(ctx, user))

	airports := NewAirportRepository(pool)
	src := &domain.Airport{Name: "Boryspil", ClosestBigCity: "Kyiv"}
	dst := &domain.Airport{Name: "Heathrow", ClosestBigCity: "London"}
	require.NoError(t, airports.Create(ctx, src))
	require.NoError(t, airports.Create(ctx, dst))

	route := &domain.Route{SourceID: src.ID, DestinationID: dst.ID, Distance: 2100}
	require.NoError(t, NewRouteRepository(pool).Create(ctx, route))

	airplaneType := &domain.AirplaneType{Name: "Narrow-body"}
	require.NoError(t, NewAirplaneTypeRepository(pool).Create(ctx, airplaneType))
	airplane := &domain.Airplane{Name: "Boeing 737", Rows: 10, SeatsInRow: 6, AirplaneTypeID: airplaneType.ID}
	require.NoError(t, NewAirplaneRepository(pool).Create(ctx, airplane))

	crew := &domain.Crew{FirstName: "Amelia", LastName: "Earhart"}
	require.NoError(t, NewCrewRepository(pool).Create(ctx, crew))

	departure := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	flight := &domain.Flight{RouteID: route.ID, AirplaneID: airplane.ID, DepartureTime: departure, ArrivalTime: departure.Add(3 * time.Hour), CrewIDs: []int64{crew.ID}}
	require.NoError(t, NewFlightRepository(pool).Create(ctx, flight))

	return fixture{userID: user.ID, flightID: flight.ID, airplaneID: airplane.ID}
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func TestOrderRepository_Create(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	repo := NewOrderRepository(pool)

	order, err := repo.Create(context.Background(), fx.userID, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: fx.flightID},
		{Row: 1, Seat: 2, FlightID: fx.flightID},
		{Row: 2, Seat: 1, FlightID: fx.flightID},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Tickets, 3)
	require.NotNil(t, order.Tickets[0].Flight)
	assert.Equal(t, 60-3, order.Tickets[0].Flight.TicketsAvailable)

	assert.Equal(t, 1, countRows(t, pool, "orders"))
	assert.Equal(t, 3, countRows(t, pool, "tickets"))
}

func TestOrderRepository_Create_DuplicateInBatch(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)

	_, err := NewOrderRepository(pool).Create(context.Background(), fx.userID, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: fx.flightID},
		{Row: 1, Seat: 1, FlightID: fx.flightID},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSeat)
	assert.Equal(t, 0, countRows(t, pool, "orders"))
	assert.Equal(t, 0, countRows(t, pool, "tickets"))
}

func TestOrderRepository_Create_OutOfRange(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)

	_, err := NewOrderRepository(pool).Create(context.Background(), fx.userID, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: fx.flightID},
		{Row: 11, Seat: 1, FlightID: fx.flightID},
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "tickets[1].row")
	assert.Equal(t, 0, countRows(t, pool, "orders"))
	assert.Equal(t, 0, countRows(t, pool, "tickets"))
}

func TestOrderRepository_Create_UnknownFlight(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)

	_, err := NewOrderRepository(pool).Create(context.Background(), fx.userID, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: fx.flightID + 1000},
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "tickets[0].flight")
}

func TestOrderRepository_Create_ConcurrentSameSeat(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	repo := NewOrderRepository(pool)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Each attempt also books a seat of its own, which must not survive a loss.
			_, err := repo.Create(context.Background(), fx.userID, []domain.TicketSpec{
				{Row: 10, Seat: 1 + i%6, FlightID: fx.flightID},
				{Row: 5, Seat: 5, FlightID: fx.flightID},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicateSeat):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, countRows(t, pool, "orders"))
	assert.Equal(t, 2, countRows(t, pool, "tickets"))
}

func TestFlightRepository_Availability(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	ctx := context.Background()

	_, err := NewOrderRepository(pool).Create(ctx, fx.userID, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: fx.flightID},
		{Row: 1, Seat: 2, FlightID: fx.flightID},
		{Row: 1, Seat: 3, FlightID: fx.flightID},
	})
	require.NoError(t, err)

	flights := NewFlightRepository(pool)
	list, err := flights.List(ctx, domain.FlightFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 57, list[0].TicketsAvailable)
	assert.Equal(t, []string{"Amelia Earhart"}, list[0].Crews)

	detail, err := flights.GetByID(ctx, fx.flightID)
	require.NoError(t, err)
	assert.Len(t, detail.TakenPlaces, 3)
	assert.Equal(t, 60, detail.Airplane.Capacity)
}

func TestFlightRepository_ListFilters(t *testing.T) {
	pool := testPool(t)
	seed(t, pool)
	flights := NewFlightRepository(pool)
	ctx := context.Background()

	day := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	other := day.AddDate(0, 0, 1)

	list, err := flights.List(ctx, domain.FlightFilter{Source: "bory", Departure: &day})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = flights.List(ctx, domain.FlightFilter{Departure: &other})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = flights.List(ctx, domain.FlightFilter{Airplane: "airbus"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderRepository_ListAndDelete(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	first, err := repo.Create(ctx, fx.userID, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: fx.flightID}})
	require.NoError(t, err)
	second, err := repo.Create(ctx, fx.userID, []domain.TicketSpec{{Row: 2, Seat: 1, FlightID: fx.flightID}})
	require.NoError(t, err)

	page, err := repo.List(ctx, fx.userID, domain.OrderFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, second.ID, page.Orders[0].ID)
	assert.Len(t, page.Orders[0].Tickets, 1)

	other, err := repo.List(ctx, fx.userID+1, domain.OrderFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, other.Count)

	_, err = repo.GetByID(ctx, fx.userID+1, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, fx.userID, first.ID))
	assert.Equal(t, 1, countRows(t, pool, "tickets"))
	assert.ErrorIs(t, repo.Delete(ctx, fx.userID, first.ID), domain.ErrNotFound)
}

func TestRouteRepository_NegativeDistance(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	airport := &domain.Airport{Name: "Loop", ClosestBigCity: "Nowhere"}
	require.NoError(t, NewAirportRepository(pool).Create(ctx, airport))

	err := NewRouteRepository(pool).Create(ctx, &domain.Route{SourceID: airport.ID, DestinationID: airport.ID, Distance: -1})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "distance")

	// Self-referential routes are accepted.
	require.NoError(t, NewRouteRepository(pool).Create(ctx, &domain.Route{SourceID: airport.ID, DestinationID: airport.ID, Distance: 0}))
}

// Orders naming the same seats in opposite order race for the same keys.
func TestOrderRepository_Create_ConcurrentCrossedSeats(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	repo := NewOrderRepository(pool)

	first := domain.TicketSpec{Row: 3, Seat: 1, FlightID: fx.flightID}
	second := domain.TicketSpec{Row: 7, Seat: 6, FlightID: fx.flightID}

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		specs := []domain.TicketSpec{first, second}
		if i%2 == 1 {
			specs = []domain.TicketSpec{second, first}
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Create(context.Background(), fx.userID, specs)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicateSeat):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 2, countRows(t, pool, "tickets"))
}

func TestOrderRepository_Create_KeepsRequestOrder(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)

	order, err := NewOrderRepository(pool).Create(context.Background(), fx.userID, []domain.TicketSpec{
		{Row: 9, Seat: 2, FlightID: fx.flightID},
		{Row: 1, Seat: 4, FlightID: fx.flightID},
	})
	require.NoError(t, err)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, 9, order.Tickets[0].Row)
	assert.Equal(t, 1, order.Tickets[1].Row)
}

func TestAirplaneRepository_Update_KeepsSoldPlaces(t *testing.T) {
	pool := testPool(t)
	fx := seed(t, pool)
	ctx := context.Background()
	airplanes := NewAirplaneRepository(pool)

	_, err := NewOrderRepository(pool).Create(ctx, fx.userID, []domain.TicketSpec{{Row: 8, Seat: 5, FlightID: fx.flightID}})
	require.NoError(t, err)

	current, err := airplanes.GetByID(ctx, fx.airplaneID)
	require.NoError(t, err)
	shrunk := &domain.Airplane{ID: fx.airplaneID, Name: current.Name, Rows: 7, SeatsInRow: 4, AirplaneTypeID: current.AirplaneType.ID}

	var verr *domain.ValidationError
	require.True(t, errors.As(airplanes.Update(ctx, shrunk), &verr))
	assert.Contains(t, verr.Fields, "rows")
	assert.Contains(t, verr.Fields, "seats_in_row")

	fitted := &domain.Airplane{ID: fx.airplaneID, Name: current.Name, Rows: 8, SeatsInRow: 5, AirplaneTypeID: current.AirplaneType.ID}
	require.NoError(t, airplanes.Update(ctx, fitted))

	missing := &domain.Airplane{ID: fx.airplaneID + 100, Name: "Ghost", Rows: 1, SeatsInRow: 1, AirplaneTypeID: current.AirplaneType.ID}
	assert.ErrorIs(t, airplanes.Update(ctx, missing), domain.ErrNotFound)
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewOrderRepository(pool))
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
}
