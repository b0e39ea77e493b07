package rental

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// MemoryStore 内存账本，用于开发和测试。
// 互斥锁同时充当 CreateNoOverlap 的临界区：检查与插入不可分割。
type MemoryStore struct {
	mu      sync.Mutex
	rentals map[string]*Rental
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rentals: make(map[string]*Rental)}
}

func (s *MemoryStore) CreateNoOverlap(ctx context.Context, r *Rental) error {
	if err := ctx.Err(); err != nil {
		return errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rentals {
		if existing.VehicleID != r.VehicleID {
			continue
		}
		if Overlaps(existing.StartDate, existing.EndDate, r.StartDate, r.EndDate) {
			return errs.Conflictf("vehicle %s already rented from %s to %s",
				r.VehicleID,
				existing.StartDate.Format("2006-01-02"),
				existing.EndDate.Format("2006-01-02"))
		}
	}
	cp := *r
	s.rentals[r.ID] = &cp
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id string) (*Rental, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rentals[id]
	if !ok {
		return nil, errs.NotFoundf("rental %s not found", id)
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) ByCustomer(ctx context.Context, customerID int) ([]Rental, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []Rental
	for _, r := range s.rentals {
		if r.CustomerID == customerID {
			list = append(list, *r)
		}
	}
	sortByStart(list)
	return list, nil
}

func (s *MemoryStore) List(ctx context.Context, offset, limit int) ([]Rental, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, errs.Storage(err)
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		all = append(all, *r)
	}
	sortByStart(all)
	total := int64(len(all))
	if offset >= len(all) {
		return []Rental{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// All 返回全部租约，按开始日期升序（报表投影用）。
func (s *MemoryStore) All(ctx context.Context) ([]Rental, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		all = append(all, *r)
	}
	sortByStart(all)
	return all, nil
}

func (s *MemoryStore) HasActiveRental(ctx context.Context, vehicleID string, on time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rentals {
		if r.VehicleID == vehicleID && r.ActiveOn(on) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ActiveVehicleIDs(ctx context.Context, on time.Time) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]struct{})
	for _, r := range s.rentals {
		if r.ActiveOn(on) {
			set[r.VehicleID] = struct{}{}
		}
	}
	return set, nil
}

// sortByStart orders by start date, then id for a stable tiebreak.
func sortByStart(list []Rental) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartDate.Before(list[j].StartDate)
	})
}
