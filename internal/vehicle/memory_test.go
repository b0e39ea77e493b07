package vehicle

import (
	"context"
	"errors"
	"testing"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/refdata"
)

func seededStore() *MemoryStore {
	m := NewMemoryStore(refdata.Fixture())
	m.SeedFixture()
	return m
}

func TestMemoryCreateAssignsNextID(t *testing.T) {
	m := seededStore()
	ctx := context.Background()

	id, err := m.Create(ctx, &Vehicle{
		TypeID:         3,
		CategoryID:     3,
		ManufacturerID: 3,
		ModelName:      "Cooper",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "4" {
		t.Fatalf("Create id = %q, want \"4\"", id)
	}

	d, err := m.Get(ctx, "4")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Type != "Scooter" {
		t.Errorf("Type = %q, want Scooter", d.Type)
	}
	if d.Category != "Premium" {
		t.Errorf("Category = %q, want Premium", d.Category)
	}
	if d.Manufacturer != "Mini" {
		t.Errorf("Manufacturer = %q, want Mini", d.Manufacturer)
	}
}

func TestMemoryCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	m := NewMemoryStore(refdata.Fixture())
	id, err := m.Create(context.Background(), &Vehicle{TypeID: 1, CategoryID: 1, ManufacturerID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "1" {
		t.Fatalf("Create id = %q, want \"1\"", id)
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	m := seededStore()
	_, err := m.Get(context.Background(), "99")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get(99) = %v, want ErrNotFound", err)
	}
	_, err = m.Get(context.Background(), "not-a-number")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get(not-a-number) = %v, want ErrNotFound", err)
	}
}

func TestMemoryDeleteIdempotent(t *testing.T) {
	m := seededStore()
	ctx := context.Background()

	if err := m.Delete(ctx, "99"); err != nil {
		t.Fatalf("Delete absent id: %v", err)
	}
	if err := m.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if _, err := m.Get(ctx, "1"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryListFilterAndPagination(t *testing.T) {
	m := NewMemoryStore(refdata.Fixture())
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		categoryID := 1
		if i%3 == 0 {
			categoryID = 2
		}
		_, err := m.Create(ctx, &Vehicle{TypeID: 1, CategoryID: categoryID, ManufacturerID: 6, ModelName: "Yaris Hatchback"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, total, err := m.List(ctx, Filter{}, 10, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}
	if len(items) != 5 {
		t.Errorf("page 2 len = %d, want 5", len(items))
	}

	// total must reflect the filtered predicate, not the whole table
	items, total, err = m.List(ctx, Filter{Category: "Mid Size"}, 0, 10)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if total != 5 {
		t.Errorf("filtered total = %d, want 5", total)
	}
	for _, d := range items {
		if d.Category != "Mid Size" {
			t.Errorf("filter leak: got category %q", d.Category)
		}
	}
}

func TestMemoryUpdate(t *testing.T) {
	m := seededStore()
	ctx := context.Background()

	mileage := 12000
	if err := m.Update(ctx, "1", UpdateFields{Mileage: &mileage}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d, err := m.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Mileage != 12000 {
		t.Errorf("Mileage = %d, want 12000", d.Mileage)
	}
	if d.Model != "Yaris Hatchback" {
		t.Errorf("untouched field changed: %q", d.Model)
	}

	if err := m.Update(ctx, "99", UpdateFields{Mileage: &mileage}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Update absent = %v, want ErrNotFound", err)
	}
}
