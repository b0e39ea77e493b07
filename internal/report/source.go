package report

import (
	"context"
	"time"
)

// 各报表的类型化行。列名由 Service 统一给出（见 service.go），
// Source 实现只负责算出有序的行。

type AvailableVehicleRow struct {
	VehicleID    string
	Manufacturer string
	Model        string
	Address      string
	City         string
	Category     string
}

type RentalSummaryRow struct {
	Date     time.Time
	Category string
	Rentals  int
}

type UtilisationRow struct {
	VehicleID    string
	Manufacturer string
	Model        string
	Rate         float64
}

type LoyaltyRow struct {
	CustomerID   int
	FirstName    string
	LastName     string
	Email        string
	TotalRentals int
}

type LocationPerformanceRow struct {
	BranchID int
	Address  string
	City     string
	Revenue  float64
	AvgDays  float64
	Rentals  int
}

// Source 报表数据源。GormSource 用 SQL 聚合，MemorySource 在内存里算，
// 两者对同一份数据必须给出相同的行。
type Source interface {
	// AvailableVehicles 给定日期无租约覆盖的车辆，按类别、网点排序。
	AvailableVehicles(ctx context.Context, on time.Time) ([]AvailableVehicleRow, error)
	// RentalSummary 开始日期等于给定日期的租约数，按类别分组。
	RentalSummary(ctx context.Context, on time.Time) ([]RentalSummaryRow, error)
	// UtilisationRate 周期内每辆车的出租天数占比，降序。
	UtilisationRate(ctx context.Context, start, end time.Time) ([]UtilisationRow, error)
	// Loyalty 自 since 起租约数 >= 2 的客户，按租约数降序。
	Loyalty(ctx context.Context, since time.Time) ([]LoyaltyRow, error)
	// LocationPerformance 每个网点的总收入/平均租期/租约数，按收入降序。
	LocationPerformance(ctx context.Context) ([]LocationPerformanceRow, error)
}
