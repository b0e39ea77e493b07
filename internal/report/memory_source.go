package report

import (
	"context"
	"sort"
	"time"

	"github.com/wheelease/wheelease/internal/customer"
	"github.com/wheelease/wheelease/internal/refdata"
	"github.com/wheelease/wheelease/internal/rental"
	"github.com/wheelease/wheelease/internal/vehicle"
)

// VehicleLister / CustomerLister / RentalLister 由内存存储实现。
type VehicleLister interface {
	All(ctx context.Context) ([]vehicle.Vehicle, error)
}

type CustomerLister interface {
	All(ctx context.Context) ([]customer.Customer, error)
}

type RentalLister interface {
	All(ctx context.Context) ([]rental.Rental, error)
}

// MemorySource 在进程内对内存存储做与 GormSource 等价的聚合。
type MemorySource struct {
	vehicles  VehicleLister
	customers CustomerLister
	rentals   RentalLister
	tables    *refdata.Tables
}

func NewMemorySource(vehicles VehicleLister, customers CustomerLister, rentals RentalLister, tables *refdata.Tables) *MemorySource {
	return &MemorySource{vehicles: vehicles, customers: customers, rentals: rentals, tables: tables}
}

func (s *MemorySource) AvailableVehicles(ctx context.Context, on time.Time) ([]AvailableVehicleRow, error) {
	vehicles, err := s.vehicles.All(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.All(ctx)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{})
	for _, r := range rentals {
		if r.ActiveOn(on) {
			occupied[r.VehicleID] = struct{}{}
		}
	}

	var rows []AvailableVehicleRow
	for _, v := range vehicles {
		if _, ok := occupied[v.Registration]; ok {
			continue
		}
		category, _ := s.tables.CategoryName(v.CategoryID)
		manufacturer, _ := s.tables.ManufacturerName(v.ManufacturerID)
		branch := s.tables.Branches[v.BranchID]
		rows = append(rows, AvailableVehicleRow{
			VehicleID:    v.Registration,
			Manufacturer: manufacturer,
			Model:        v.ModelName,
			Address:      branch.Address,
			City:         branch.City,
			Category:     category,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].Address != rows[j].Address {
			return rows[i].Address < rows[j].Address
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows, nil
}

func (s *MemorySource) RentalSummary(ctx context.Context, on time.Time) ([]RentalSummaryRow, error) {
	vehicles, err := s.vehicles.All(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.All(ctx)
	if err != nil {
		return nil, err
	}

	categoryOf := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		name, _ := s.tables.CategoryName(v.CategoryID)
		categoryOf[v.Registration] = name
	}

	day := rental.DateOnly(on)
	counts := make(map[string]int)
	for _, r := range rentals {
		if rental.DateOnly(r.StartDate).Equal(day) {
			counts[categoryOf[r.VehicleID]]++
		}
	}

	var rows []RentalSummaryRow
	for category, n := range counts {
		rows = append(rows, RentalSummaryRow{Date: day, Category: category, Rentals: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

func (s *MemorySource) UtilisationRate(ctx context.Context, start, end time.Time) ([]UtilisationRow, error) {
	vehicles, err := s.vehicles.All(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.All(ctx)
	if err != nil {
		return nil, err
	}

	start = rental.DateOnly(start)
	end = rental.DateOnly(end)
	periodDays := int(end.Sub(start)/(24*time.Hour)) + 1
	if periodDays < 1 {
		periodDays = 1
	}

	rentedDays := make(map[string]int)
	for _, r := range rentals {
		if !rental.Overlaps(r.StartDate, r.EndDate, start, end) {
			continue
		}
		from := rental.DateOnly(r.StartDate)
		if from.Before(start) {
			from = start
		}
		to := rental.DateOnly(r.EndDate)
		if to.After(end) {
			to = end
		}
		rentedDays[r.VehicleID] += int(to.Sub(from)/(24*time.Hour)) + 1
	}

	rows := make([]UtilisationRow, 0, len(vehicles))
	for _, v := range vehicles {
		manufacturer, _ := s.tables.ManufacturerName(v.ManufacturerID)
		rows = append(rows, UtilisationRow{
			VehicleID:    v.Registration,
			Manufacturer: manufacturer,
			Model:        v.ModelName,
			Rate:         float64(rentedDays[v.Registration]) / float64(periodDays),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rate != rows[j].Rate {
			return rows[i].Rate > rows[j].Rate
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows, nil
}

func (s *MemorySource) Loyalty(ctx context.Context, since time.Time) ([]LoyaltyRow, error) {
	customers, err := s.customers.All(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.All(ctx)
	if err != nil {
		return nil, err
	}

	since = rental.DateOnly(since)
	counts := make(map[int]int)
	for _, r := range rentals {
		if !rental.DateOnly(r.StartDate).Before(since) {
			counts[r.CustomerID]++
		}
	}

	var rows []LoyaltyRow
	for _, c := range customers {
		if counts[c.ID] >= 2 {
			rows = append(rows, LoyaltyRow{
				CustomerID:   c.ID,
				FirstName:    c.FirstName,
				LastName:     c.LastName,
				Email:        c.Email,
				TotalRentals: counts[c.ID],
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRentals != rows[j].TotalRentals {
			return rows[i].TotalRentals > rows[j].TotalRentals
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows, nil
}

func (s *MemorySource) LocationPerformance(ctx context.Context) ([]LocationPerformanceRow, error) {
	vehicles, err := s.vehicles.All(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.All(ctx)
	if err != nil {
		return nil, err
	}

	type vehicleInfo struct {
		branchID int
		price    float64
	}
	info := make(map[string]vehicleInfo, len(vehicles))
	for _, v := range vehicles {
		var price float64
		if rate, ok := s.tables.DailyRates[v.DailyRateID]; ok {
			price = rate.Price
		}
		info[v.Registration] = vehicleInfo{branchID: v.BranchID, price: price}
	}

	type acc struct {
		revenue float64
		days    int
		rentals int
	}
	perBranch := make(map[int]*acc)
	for id := range s.tables.Branches {
		perBranch[id] = &acc{}
	}
	for _, r := range rentals {
		vi, ok := info[r.VehicleID]
		if !ok {
			continue
		}
		a, ok := perBranch[vi.branchID]
		if !ok {
			a = &acc{}
			perBranch[vi.branchID] = a
		}
		days := r.Days()
		a.revenue += float64(days) * vi.price
		a.days += days
		a.rentals++
	}

	rows := make([]LocationPerformanceRow, 0, len(perBranch))
	for id, a := range perBranch {
		branch := s.tables.Branches[id]
		avg := 0.0
		if a.rentals > 0 {
			avg = float64(a.days) / float64(a.rentals)
		}
		rows = append(rows, LocationPerformanceRow{
			BranchID: id,
			Address:  branch.Address,
			City:     branch.City,
			Revenue:  a.revenue,
			AvgDays:  avg,
			Rentals:  a.rentals,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].BranchID < rows[j].BranchID
	})
	return rows, nil
}
