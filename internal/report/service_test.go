package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/customer"
	"github.com/wheelease/wheelease/internal/refdata"
	"github.com/wheelease/wheelease/internal/rental"
	"github.com/wheelease/wheelease/internal/vehicle"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	svc     *Service
	rentals *rental.MemoryStore
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	log, err := logger.NewLogrusLogger("error", "text", "stdout", "")
	require.NoError(t, err)

	tables := refdata.Fixture()
	vehicles := vehicle.NewMemoryStore(tables)
	vehicles.SeedFixture()
	customers := customer.NewMemoryStore()
	rentals := rental.NewMemoryStore()

	ctx := context.Background()
	for _, c := range []customer.Customer{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
	} {
		cc := c
		_, err := customers.Create(ctx, &cc)
		require.NoError(t, err)
	}

	src := NewMemorySource(vehicles, customers, rentals, tables)
	svc := NewService(src, log, 0)
	svc.now = func() time.Time { return now }
	return &fixture{svc: svc, rentals: rentals}
}

func (f *fixture) addRental(t *testing.T, vehicleID string, customerID int, start, end string) {
	t.Helper()
	err := f.rentals.CreateNoOverlap(context.Background(), &rental.Rental{
		ID:         vehicleID + "-" + start,
		VehicleID:  vehicleID,
		CustomerID: customerID,
		StartDate:  date(start),
		EndDate:    date(end),
	})
	require.NoError(t, err)
}

func TestUnknownKind(t *testing.T) {
	_, err := ParseKind("unknown_kind")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("ParseKind(unknown) = %v, want ErrNotFound", err)
	}
}

func TestCatalogueListsFiveReports(t *testing.T) {
	cat := Catalogue()
	require.Len(t, cat, 5)
	for _, info := range cat {
		k, err := ParseKind(string(info.Kind))
		require.NoError(t, err)
		assert.Equal(t, info.Kind, k)
	}
}

func TestAvailableVehiclesExcludesRented(t *testing.T) {
	now := date("2024-06-10")
	f := newFixture(t, now)
	// vehicle 1 is rented over today, vehicle 3 only in the past
	f.addRental(t, "1", 1, "2024-06-08", "2024-06-12")
	f.addRental(t, "3", 2, "2024-05-01", "2024-05-03")

	res, err := f.svc.Run(context.Background(), KindAvailableVehicles, Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"VehicleID", "Manufacturer", "Model", "Address", "City", "Category"}, res.Columns)

	var ids []string
	for _, row := range res.Rows {
		ids = append(ids, row[0].(string))
	}
	assert.NotContains(t, ids, "1")
	assert.Contains(t, ids, "2")
	assert.Contains(t, ids, "3")
}

func TestAvailableVehiclesSortedByCategoryThenLocation(t *testing.T) {
	f := newFixture(t, date("2024-06-10"))

	res, err := f.svc.Run(context.Background(), KindAvailableVehicles, Params{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	// fixture categories: Economy (1), Mid Size (2), Premium (3)
	assert.Equal(t, "Economy", res.Rows[0][5])
	assert.Equal(t, "Mid Size", res.Rows[1][5])
	assert.Equal(t, "Premium", res.Rows[2][5])
}

func TestRentalSummaryGroupsByCategory(t *testing.T) {
	now := date("2024-06-10")
	f := newFixture(t, now)
	f.addRental(t, "1", 1, "2024-06-10", "2024-06-12") // Economy
	f.addRental(t, "2", 2, "2024-06-10", "2024-06-11") // Mid Size
	f.addRental(t, "3", 1, "2024-06-09", "2024-06-11") // started yesterday

	res, err := f.svc.Run(context.Background(), KindRentalSummary, Params{Date: now})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []interface{}{"2024-06-10", "Economy", 1}, res.Rows[0])
	assert.Equal(t, []interface{}{"2024-06-10", "Mid Size", 1}, res.Rows[1])
}

func TestUtilisationRate(t *testing.T) {
	f := newFixture(t, date("2024-06-30"))
	// 10-day period, vehicle 1 rented 5 days, vehicle 2 idle
	f.addRental(t, "1", 1, "2024-06-01", "2024-06-05")

	res, err := f.svc.Run(context.Background(), KindUtilisationRate, Params{
		PeriodStart: date("2024-06-01"),
		PeriodEnd:   date("2024-06-10"),
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "1", res.Rows[0][0])
	assert.InDelta(t, 0.5, res.Rows[0][3].(float64), 1e-9)
	assert.InDelta(t, 0.0, res.Rows[1][3].(float64), 1e-9)
}

func TestUtilisationClampsRentalToPeriod(t *testing.T) {
	f := newFixture(t, date("2024-06-30"))
	// rental extends beyond both ends of the 10-day period
	f.addRental(t, "1", 1, "2024-05-20", "2024-07-20")

	res, err := f.svc.Run(context.Background(), KindUtilisationRate, Params{
		PeriodStart: date("2024-06-01"),
		PeriodEnd:   date("2024-06-10"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Rows[0][3].(float64), 1e-9)
}

func TestLoyaltyRequiresTwoRentalsInTrailingYear(t *testing.T) {
	now := date("2024-06-10")
	f := newFixture(t, now)
	// customer 1: two rentals this year
	f.addRental(t, "1", 1, "2024-01-01", "2024-01-05")
	f.addRental(t, "1", 1, "2024-03-01", "2024-03-05")
	// customer 2: one recent, one beyond the trailing year
	f.addRental(t, "2", 2, "2024-02-01", "2024-02-03")
	f.addRental(t, "2", 2, "2022-01-01", "2022-01-03")

	res, err := f.svc.Run(context.Background(), KindLoyalty, Params{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.Rows[0][0])
	assert.Equal(t, "Ada", res.Rows[0][1])
	assert.Equal(t, 2, res.Rows[0][4])
}

func TestLocationPerformanceRevenueOrder(t *testing.T) {
	f := newFixture(t, date("2024-06-10"))
	// branch 1 hosts vehicles 1 (rate 35) and 3 (rate 90), branch 2 hosts vehicle 2 (rate 55)
	f.addRental(t, "3", 1, "2024-06-01", "2024-06-05") // 5 days * 90 = 450 at branch 1
	f.addRental(t, "2", 2, "2024-06-01", "2024-06-02") // 2 days * 55 = 110 at branch 2

	res, err := f.svc.Run(context.Background(), KindLocationPerformance, Params{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	assert.Equal(t, 1, res.Rows[0][0])
	assert.InDelta(t, 450, res.Rows[0][3].(float64), 1e-9)
	assert.InDelta(t, 5, res.Rows[0][4].(float64), 1e-9)
	assert.Equal(t, 1, res.Rows[0][5])

	assert.Equal(t, 2, res.Rows[1][0])
	assert.InDelta(t, 110, res.Rows[1][3].(float64), 1e-9)

	// branch 3 has no vehicles, zero revenue
	assert.Equal(t, 3, res.Rows[2][0])
	assert.InDelta(t, 0, res.Rows[2][3].(float64), 1e-9)
}
