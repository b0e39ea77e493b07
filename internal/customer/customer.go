package customer

import (
	"time"
)

// Customer 是 customer 表的 GORM 模型。
// 主键一经创建不可变；驾照号格式由上游校验，这里不做约束。
type Customer struct {
	ID            int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string `gorm:"size:64;not null" json:"firstName"`
	LastName      string `gorm:"size:64;not null" json:"lastName"`
	AddressLine1  string `gorm:"size:128" json:"addressLine1"`
	AddressLine2  string `gorm:"size:128" json:"addressLine2"` // 可选，默认空串
	City          string `gorm:"size:64" json:"city"`
	Postcode      string `gorm:"size:16" json:"postcode"`
	PhoneNumber   string `gorm:"size:32" json:"phoneNumber"`
	Email         string `gorm:"size:128;not null" json:"email"`
	LicenseNumber string `gorm:"size:32" json:"licenseNumber"` // 可选，默认空串
	DateOfBirth   time.Time `json:"dateOfBirth"`
	DateOfRegistration time.Time `gorm:"autoCreateTime" json:"dateOfRegistration"`
}

func (Customer) TableName() string { return "customer" }
