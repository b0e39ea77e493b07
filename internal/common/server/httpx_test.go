package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wheelease/wheelease/internal/common/errs"
)

func TestNewPageEnvelopeTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{15, 10, 2},
		{10, 10, 1},
		{0, 10, 0},
		{21, 10, 3},
	}
	for _, c := range cases {
		env := NewPageEnvelope(nil, 1, c.size, c.total)
		if env.TotalPages != c.want {
			t.Fatalf("total=%d size=%d: got %d pages, want %d", c.total, c.size, env.TotalPages, c.want)
		}
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.Validationf("bad dates"), http.StatusBadRequest},
		{errs.NotFoundf("vehicle"), http.StatusNotFound},
		{errs.Conflictf("already booked"), http.StatusConflict},
		{errs.ErrTimeout, http.StatusGatewayTimeout},
		{errs.ErrStorage, http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, c.err)
		if rec.Code != c.want {
			t.Fatalf("%v: got status %d, want %d", c.err, rec.Code, c.want)
		}
	}
}

func TestParsePageDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	if got := ParsePage(r); got != 1 {
		t.Fatalf("expected default page 1, got %d", got)
	}
	r = httptest.NewRequest(http.MethodGet, "/vehicles?page=3", nil)
	if got := ParsePage(r); got != 3 {
		t.Fatalf("expected page 3, got %d", got)
	}
	r = httptest.NewRequest(http.MethodGet, "/vehicles?page=-2", nil)
	if got := ParsePage(r); got != 1 {
		t.Fatalf("expected negative page to fall back to 1, got %d", got)
	}
}
