package rental

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
)

type stubVehicles map[string]bool

func (s stubVehicles) Exists(_ context.Context, reg string) (bool, error) { return s[reg], nil }

type stubCustomers map[int]bool

func (s stubCustomers) Exists(_ context.Context, id int) (bool, error) { return s[id], nil }

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	log, err := logger.NewLogrusLogger("error", "text", "stdout", "")
	require.NoError(t, err)
	store := NewMemoryStore()
	svc := NewService(store,
		stubVehicles{"1": true, "2": true},
		stubCustomers{1: true, 2: true},
		log, 0)
	return svc, store
}

func TestCreateRental(t *testing.T) {
	svc, _ := newTestService(t)

	r, err := svc.Create(context.Background(), CreateInput{
		VehicleID:  "1",
		CustomerID: 1,
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-05"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "1", r.VehicleID)
	assert.Equal(t, 5, r.Days())
}

func TestCreateRentalValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		VehicleID:  "1",
		CustomerID: 1,
		StartDate:  date("2024-01-10"),
		EndDate:    date("2024-01-05"),
	})
	assert.True(t, errors.Is(err, errs.ErrValidation), "end before start: %v", err)

	_, err = svc.Create(context.Background(), CreateInput{
		CustomerID: 1,
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-05"),
	})
	assert.True(t, errors.Is(err, errs.ErrValidation), "missing vehicle: %v", err)
}

func TestCreateRentalUnknownReferences(t *testing.T) {
	svc, _ := newTestService(t)

	in := CreateInput{
		VehicleID:  "99",
		CustomerID: 1,
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-05"),
	}
	_, err := svc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, errs.ErrNotFound), "unknown vehicle: %v", err)

	in.VehicleID = "1"
	in.CustomerID = 99
	_, err = svc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, errs.ErrNotFound), "unknown customer: %v", err)
}

func TestCreateRentalOverlapConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 1,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})
	require.NoError(t, err)

	// overlapping window on the same vehicle
	_, err = svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 2,
		StartDate: date("2024-01-03"), EndDate: date("2024-01-10"),
	})
	assert.True(t, errors.Is(err, errs.ErrConflict), "overlap: %v", err)

	// identical window is also a conflict
	_, err = svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 2,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})
	assert.True(t, errors.Is(err, errs.ErrConflict), "identical: %v", err)

	// same window on a different vehicle is fine
	_, err = svc.Create(ctx, CreateInput{
		VehicleID: "2", CustomerID: 2,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})
	assert.NoError(t, err)

	// same vehicle after the window ends is fine
	_, err = svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 1,
		StartDate: date("2024-01-06"), EndDate: date("2024-01-08"),
	})
	assert.NoError(t, err)
}

func TestListByCustomerOrderAndRestart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// create out of date order
	for _, win := range [][2]string{
		{"2024-03-01", "2024-03-02"},
		{"2024-01-01", "2024-01-02"},
		{"2024-02-01", "2024-02-02"},
	} {
		_, err := svc.Create(ctx, CreateInput{
			VehicleID: "1", CustomerID: 1,
			StartDate: date(win[0]), EndDate: date(win[1]),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreateInput{
		VehicleID: "2", CustomerID: 2,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-02"),
	})
	require.NoError(t, err)

	seq := svc.ListByCustomer(1)

	collect := func() []string {
		var starts []string
		for r, err := range seq {
			require.NoError(t, err)
			starts = append(starts, r.StartDate.Format("2006-01-02"))
		}
		return starts
	}

	want := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	assert.Equal(t, want, collect())
	// the sequence is restartable
	assert.Equal(t, want, collect())

	// early break must not panic or leak
	for range seq {
		break
	}
}

func TestListByCustomerSeesNewRentals(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seq := svc.ListByCustomer(1)

	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 0, count())

	_, err := svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 1,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-02"),
	})
	require.NoError(t, err)

	// a second traversal re-reads the ledger
	assert.Equal(t, 1, count())
}

func TestActiveVehicleIDs(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 1,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{
		VehicleID: "2", CustomerID: 2,
		StartDate: date("2024-02-01"), EndDate: date("2024-02-05"),
	})
	require.NoError(t, err)

	ids, err := store.ActiveVehicleIDs(ctx, date("2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"1": {}}, ids)

	ok, err := store.HasActiveRental(ctx, "2", date("2024-02-05"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.HasActiveRental(ctx, "2", date("2024-02-06"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	start := date("2024-01-01")
	for i := 0; i < 15; i++ {
		day := start.AddDate(0, 0, i*2)
		_, err := svc.Create(ctx, CreateInput{
			VehicleID: "1", CustomerID: 1,
			StartDate: day, EndDate: day,
		})
		require.NoError(t, err)
	}

	page1, total, err := svc.List(ctx, 1, DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	page2, _, err := svc.List(ctx, 2, DefaultPageSize)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.True(t, page2[0].StartDate.After(page1[9].StartDate))
}

func TestGetRental(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{
		VehicleID: "1", CustomerID: 1,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestConcurrentCreateSameWindow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const n = 8
	errsCh := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := svc.Create(ctx, CreateInput{
				VehicleID: "1", CustomerID: 1,
				StartDate: date("2024-05-01"), EndDate: date("2024-05-03"),
			})
			errsCh <- err
		}()
	}

	okCount := 0
	for i := 0; i < n; i++ {
		if err := <-errsCh; err == nil {
			okCount++
		} else if !errors.Is(err, errs.ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("exactly one create should win, got %d", okCount)
	}

	_, total, err := svc.List(ctx, 1, DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
