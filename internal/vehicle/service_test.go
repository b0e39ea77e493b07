package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/refdata"
)

// stubLedger fakes the rental ledger view of vehicle occupancy.
type stubLedger struct {
	active map[string]struct{}
}

func (l *stubLedger) HasActiveRental(_ context.Context, vehicleID string, _ time.Time) (bool, error) {
	_, ok := l.active[vehicleID]
	return ok, nil
}

func (l *stubLedger) ActiveVehicleIDs(_ context.Context, _ time.Time) (map[string]struct{}, error) {
	return l.active, nil
}

func newTestService(t *testing.T, ledger *stubLedger) *Service {
	t.Helper()
	log, err := logger.NewLogrusLogger("error", "text", "stdout", "")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	tables := refdata.Fixture()
	store := NewMemoryStore(tables)
	store.SeedFixture()
	return NewService(store, refdata.NewStaticSource(tables), ledger, log, 0)
}

func TestCreateValidatesReferences(t *testing.T) {
	svc := newTestService(t, &stubLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{TypeID: 99, CategoryID: 1, ManufacturerID: 1})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown type = %v, want ErrValidation", err)
	}
	_, err = svc.Create(ctx, CreateInput{TypeID: 1, CategoryID: 99, ManufacturerID: 1})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown category = %v, want ErrValidation", err)
	}
	_, err = svc.Create(ctx, CreateInput{TypeID: 1, CategoryID: 1, ManufacturerID: 99})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown manufacturer = %v, want ErrValidation", err)
	}

	id, err := svc.Create(ctx, CreateInput{TypeID: 3, CategoryID: 3, ManufacturerID: 3, ModelName: "Cooper"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "4" {
		t.Fatalf("id = %q, want \"4\"", id)
	}
}

func TestGetDerivesRentedFromLedger(t *testing.T) {
	ledger := &stubLedger{active: map[string]struct{}{"1": {}}}
	svc := newTestService(t, ledger)
	ctx := context.Background()

	d, err := svc.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Status != StatusRented {
		t.Fatalf("status = %q, want Rented", d.Status)
	}

	d, err = svc.Get(ctx, "3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// op status without active rental stays as stored
	if d.Status != StatusUnavailable {
		t.Fatalf("status = %q, want Unavailable", d.Status)
	}
}

func TestListDerivesStatuses(t *testing.T) {
	ledger := &stubLedger{active: map[string]struct{}{"2": {}}}
	svc := newTestService(t, ledger)

	items, total, err := svc.List(context.Background(), Filter{}, 1, DefaultPageSize)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	byID := make(map[string]Status, len(items))
	for _, d := range items {
		byID[d.Registration] = d.Status
	}
	if byID["1"] != StatusAvailable {
		t.Errorf("vehicle 1 status = %q, want Available", byID["1"])
	}
	if byID["2"] != StatusRented {
		t.Errorf("vehicle 2 status = %q, want Rented", byID["2"])
	}
}

func TestUpdateRejectsRentedStatus(t *testing.T) {
	svc := newTestService(t, &stubLedger{})
	rented := StatusRented
	err := svc.Update(context.Background(), "1", UpdateFields{OpStatus: &rented})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("set Rented = %v, want ErrValidation", err)
	}
}

func TestDeleteBlockedByActiveRental(t *testing.T) {
	ledger := &stubLedger{active: map[string]struct{}{"1": {}}}
	svc := newTestService(t, ledger)
	ctx := context.Background()

	err := svc.Delete(ctx, "1")
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("delete rented vehicle = %v, want ErrConflict", err)
	}

	if err := svc.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// absent id is a no-op
	if err := svc.Delete(ctx, "99"); err != nil {
		t.Fatalf("Delete absent = %v, want nil", err)
	}
}
