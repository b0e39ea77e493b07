package vehicle

import (
	"time"
)

// Status 车辆可用性（持久化为字符串）。
// Rented 永远不直接写库：是否租出由租赁账本在读取时推导，
// 库里只保存运营状态（Available / InService / Unavailable）。
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusRented      Status = "Rented"
	StatusInService   Status = "InService"
	StatusUnavailable Status = "Unavailable"
)

// Vehicle 是 vehicle 表的 GORM 模型。
type Vehicle struct {
	Registration   string `gorm:"primaryKey;size:16"`
	TypeID         int    `gorm:"not null"`
	CategoryID     int    `gorm:"index;not null"`
	ManufacturerID int    `gorm:"index;not null"`
	ModelName      string `gorm:"column:model;size:64"`
	Mileage        int    `gorm:"not null;default:0"`
	BranchID       int    `gorm:"index"`
	DailyRateID    int
	OpStatus       Status    `gorm:"column:op_status;type:varchar(16);not null;default:'Available'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Vehicle) TableName() string { return "vehicle" }

// Details 是 vehicle_details 投影：车辆及其参照数据解析后的展示行。
type Details struct {
	Registration   string  `json:"registration"`
	Type           string  `json:"type"`
	Category       string  `json:"category"`
	Manufacturer   string  `json:"manufacturer"`
	Model          string  `json:"model"`
	Mileage        int     `json:"mileage"`
	Branch         string  `json:"branch"`
	DailyRatePrice float64 `json:"dailyRatePrice"`
	Status         Status  `json:"status"`
}

// Filter 列表过滤条件（各字段为空表示不过滤，非空字段取与）。
type Filter struct {
	Category     string
	Manufacturer string
	Model        string
}

// UpdateFields 可变字段；nil 表示不修改。可用性不在其列（账本推导）。
type UpdateFields struct {
	ModelName   *string
	Mileage     *int
	BranchID    *int
	DailyRateID *int
	OpStatus    *Status
}
