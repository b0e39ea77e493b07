package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	log, err := logger.NewLogrusLogger("error", "text", "stdout", "")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewService(NewMemoryStore(), log, 0)
}

func TestCreateCustomer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateInput{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	c, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want trimmed Ada", c.FirstName)
	}
	// optional fields default to empty
	if c.AddressLine2 != "" || c.LicenseNumber != "" {
		t.Errorf("optional fields not empty: %q %q", c.AddressLine2, c.LicenseNumber)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing first name", CreateInput{LastName: "Lovelace", Email: "a@b.c"}},
		{"missing last name", CreateInput{FirstName: "Ada", Email: "a@b.c"}},
		{"missing email", CreateInput{FirstName: "Ada", LastName: "Lovelace"}},
		{"blank email", CreateInput{FirstName: "Ada", LastName: "Lovelace", Email: "   "}},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, c.in); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get(42) = %v, want ErrNotFound", err)
	}
}

func TestListCustomersPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, CreateInput{FirstName: "A", LastName: "B", Email: "a@b.c"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page1, total, err := svc.List(ctx, 1, DefaultPageSize)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}
	if len(page1) != 10 {
		t.Errorf("page 1 len = %d, want 10", len(page1))
	}

	page2, _, err := svc.List(ctx, 2, DefaultPageSize)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2) != 5 {
		t.Errorf("page 2 len = %d, want 5", len(page2))
	}
	if page2[0].ID != 11 {
		t.Errorf("page 2 starts at id %d, want 11", page2[0].ID)
	}
}
