package vehicle

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// Repo 基于 GORM 的 Store 实现。明细行通过参照表 join 得出
// （相当于原库里的 vehicle_details 视图）。
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

const detailsSelect = `vehicle.registration, vehicle_type.name AS type, vehicle_category.name AS category,
manufacturer.name AS manufacturer, vehicle.model, vehicle.mileage, branch.address AS branch,
daily_rate.price AS daily_rate_price, vehicle.op_status AS status`

func (r *Repo) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("vehicle").
		Select(detailsSelect).
		Joins("JOIN vehicle_type ON vehicle_type.id = vehicle.type_id").
		Joins("JOIN vehicle_category ON vehicle_category.id = vehicle.category_id").
		Joins("JOIN manufacturer ON manufacturer.id = vehicle.manufacturer_id").
		Joins("LEFT JOIN branch ON branch.id = vehicle.branch_id").
		Joins("LEFT JOIN daily_rate ON daily_rate.id = vehicle.daily_rate_id")
}

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("vehicle_category.name = ?", f.Category)
	}
	if f.Manufacturer != "" {
		q = q.Where("manufacturer.name = ?", f.Manufacturer)
	}
	if f.Model != "" {
		q = q.Where("vehicle.model = ?", f.Model)
	}
	return q
}

func (r *Repo) List(ctx context.Context, f Filter, offset, limit int) ([]Details, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	q := applyFilter(r.detailsQuery(ctx), f)

	// total 必须针对过滤后的谓词统计，分页元数据才正确
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Details
	if err := q.Order("vehicle.registration ASC").Offset(offset).Limit(limit).Scan(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Details, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var d Details
	err := r.detailsQuery(ctx).Where("vehicle.registration = ?", id).Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("vehicle %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repo db is nil")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&Vehicle{}).Where("registration = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo) Create(ctx context.Context, v *Vehicle) (string, error) {
	if r == nil || r.db == nil {
		return "", fmt.Errorf("repo db is nil")
	}
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", errs.Conflictf("vehicle %s already registered", v.Registration)
		}
		return "", err
	}
	return v.Registration, nil
}

func (r *Repo) Update(ctx context.Context, id string, fields UpdateFields) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}

	values := map[string]interface{}{}
	if fields.ModelName != nil {
		values["model"] = *fields.ModelName
	}
	if fields.Mileage != nil {
		values["mileage"] = *fields.Mileage
	}
	if fields.BranchID != nil {
		values["branch_id"] = *fields.BranchID
	}
	if fields.DailyRateID != nil {
		values["daily_rate_id"] = *fields.DailyRateID
	}
	if fields.OpStatus != nil {
		values["op_status"] = *fields.OpStatus
	}
	if len(values) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&Vehicle{}).Where("registration = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFoundf("vehicle %s", id)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	// 删除不存在的行不算错误
	return r.db.WithContext(ctx).Where("registration = ?", id).Delete(&Vehicle{}).Error
}
