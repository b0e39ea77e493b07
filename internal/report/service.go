package report

import (
	"context"
	"time"

	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/rental"
)

// Params 报表参数。零值取默认：日期为今天，周期为最近 30 天。
type Params struct {
	Date        time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Result 列标题加数据行，所有报表统一的出参形状。
type Result struct {
	Kind    Kind            `json:"kind"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Service 报表投影。只读，不产生任何副作用。
type Service struct {
	src       Source
	log       logger.Logger
	opTimeout time.Duration
	now       func() time.Time
}

func NewService(src Source, log logger.Logger, opTimeout time.Duration) *Service {
	return &Service{src: src, log: log, opTimeout: opTimeout, now: time.Now}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// Run 执行一种报表并返回列标题和行。
func (s *Service) Run(ctx context.Context, kind Kind, p Params) (*Result, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	today := rental.DateOnly(s.now())
	if p.Date.IsZero() {
		p.Date = today
	}
	if p.PeriodEnd.IsZero() {
		p.PeriodEnd = today
	}
	if p.PeriodStart.IsZero() {
		p.PeriodStart = p.PeriodEnd.AddDate(0, 0, -29)
	}

	switch kind {
	case KindAvailableVehicles:
		rows, err := s.src.AvailableVehicles(ctx, p.Date)
		if err != nil {
			return nil, err
		}
		out := &Result{
			Kind:    kind,
			Columns: []string{"VehicleID", "Manufacturer", "Model", "Address", "City", "Category"},
		}
		for _, r := range rows {
			out.Rows = append(out.Rows, []interface{}{r.VehicleID, r.Manufacturer, r.Model, r.Address, r.City, r.Category})
		}
		return out, nil

	case KindRentalSummary:
		rows, err := s.src.RentalSummary(ctx, p.Date)
		if err != nil {
			return nil, err
		}
		out := &Result{
			Kind:    kind,
			Columns: []string{"Date", "Category", "Rentals"},
		}
		for _, r := range rows {
			out.Rows = append(out.Rows, []interface{}{r.Date.Format("2006-01-02"), r.Category, r.Rentals})
		}
		return out, nil

	case KindUtilisationRate:
		rows, err := s.src.UtilisationRate(ctx, p.PeriodStart, p.PeriodEnd)
		if err != nil {
			return nil, err
		}
		out := &Result{
			Kind:    kind,
			Columns: []string{"VehicleID", "Manufacturer", "Model", "UtilisationRate"},
		}
		for _, r := range rows {
			out.Rows = append(out.Rows, []interface{}{r.VehicleID, r.Manufacturer, r.Model, r.Rate})
		}
		return out, nil

	case KindLoyalty:
		rows, err := s.src.Loyalty(ctx, today.AddDate(0, 0, -365))
		if err != nil {
			return nil, err
		}
		out := &Result{
			Kind:    kind,
			Columns: []string{"CustomerID", "FirstName", "LastName", "Email", "TotalRentals"},
		}
		for _, r := range rows {
			out.Rows = append(out.Rows, []interface{}{r.CustomerID, r.FirstName, r.LastName, r.Email, r.TotalRentals})
		}
		return out, nil

	case KindLocationPerformance:
		rows, err := s.src.LocationPerformance(ctx)
		if err != nil {
			return nil, err
		}
		out := &Result{
			Kind:    kind,
			Columns: []string{"LocationID", "Address", "City", "TotalRevenue", "AvgRentalDays", "Rentals"},
		}
		for _, r := range rows {
			out.Rows = append(out.Rows, []interface{}{r.BranchID, r.Address, r.City, r.Revenue, r.AvgDays, r.Rentals})
		}
		return out, nil
	}

	// Run 只接受 ParseKind 产出的值，走到这里说明调用方绕过了边界校验
	_, err := ParseKind(string(kind))
	return nil, err
}
