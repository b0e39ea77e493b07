package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestWrappersMatchSentinels(t *testing.T) {
	if !errors.Is(Validationf("end before start"), ErrValidation) {
		t.Fatalf("expected validation sentinel")
	}
	if !errors.Is(NotFoundf("vehicle %s", "AB12"), ErrNotFound) {
		t.Fatalf("expected not-found sentinel")
	}
	if !errors.Is(Conflictf("vehicle already booked"), ErrConflict) {
		t.Fatalf("expected conflict sentinel")
	}
}

func TestStorageClassification(t *testing.T) {
	if Storage(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	if !errors.Is(Storage(context.DeadlineExceeded), ErrTimeout) {
		t.Fatalf("expected deadline to map to timeout")
	}
	if !errors.Is(Storage(errors.New("dial tcp: refused")), ErrStorage) {
		t.Fatalf("expected raw error to map to storage")
	}

	// already-classified errors must pass through unchanged in category
	wrapped := fmt.Errorf("create rental: %w", ErrConflict)
	if !errors.Is(Storage(wrapped), ErrConflict) {
		t.Fatalf("expected conflict to survive classification")
	}
	if errors.Is(Storage(wrapped), ErrStorage) {
		t.Fatalf("conflict must not be reclassified as storage")
	}
}
