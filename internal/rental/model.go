package rental

import "time"

// Rental 是 rental 表的 GORM 模型（账本条目）。
// 账本是车辆占用的唯一事实来源：没有显式状态字段，
// Scheduled/Active/Completed 由日期区间在读取时推导（见 status.go）。
type Rental struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	VehicleID   string    `gorm:"index;size:16;not null" json:"vehicleId"`
	CustomerID  int       `gorm:"index;not null" json:"customerId"`
	DriverID    int       `json:"driverId"`
	InsuranceID int       `json:"insuranceId"`
	StartDate   time.Time `gorm:"index;not null" json:"startDate"`
	EndDate     time.Time `gorm:"index;not null" json:"endDate"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Rental) TableName() string { return "rental" }

// Days 租期天数（闭区间，起止同日算 1 天）。
func (r *Rental) Days() int {
	return int(DateOnly(r.EndDate).Sub(DateOnly(r.StartDate))/(24*time.Hour)) + 1
}
