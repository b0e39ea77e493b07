package rental

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// Repo GORM 实现的租约账本。
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// CreateNoOverlap 在一个事务内锁定车辆的既有租约行再插入，
// 保证并发创建时重叠检查与写入的原子性。
func (r *Repo) CreateNoOverlap(ctx context.Context, rt *Rental) error {
	if r == nil || r.db == nil {
		return errors.New("repo db is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Rental
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vehicle_id = ?", rt.VehicleID).
			Where("start_date <= ? AND end_date >= ?", rt.EndDate, rt.StartDate).
			Take(&existing).Error
		if err == nil {
			return errs.Conflictf("vehicle %s already rented from %s to %s",
				rt.VehicleID,
				existing.StartDate.Format("2006-01-02"),
				existing.EndDate.Format("2006-01-02"))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(rt).Error
	})
	return errs.Storage(err)
}

func (r *Repo) ByID(ctx context.Context, id string) (*Rental, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("repo db is nil")
	}
	var rt Rental
	err := r.db.WithContext(ctx).Take(&rt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("rental %s not found", id)
	}
	if err != nil {
		return nil, errs.Storage(err)
	}
	return &rt, nil
}

func (r *Repo) ByCustomer(ctx context.Context, customerID int) ([]Rental, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("repo db is nil")
	}
	var list []Rental
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC").
		Find(&list).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return list, nil
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]Rental, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, errors.New("repo db is nil")
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&Rental{}).Count(&total).Error; err != nil {
		return nil, 0, errs.Storage(err)
	}
	var list []Rental
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, errs.Storage(err)
	}
	return list, total, nil
}

func (r *Repo) HasActiveRental(ctx context.Context, vehicleID string, on time.Time) (bool, error) {
	if r == nil || r.db == nil {
		return false, errors.New("repo db is nil")
	}
	day := DateOnly(on)
	var n int64
	err := r.db.WithContext(ctx).Model(&Rental{}).
		Where("vehicle_id = ?", vehicleID).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&n).Error
	if err != nil {
		return false, errs.Storage(err)
	}
	return n > 0, nil
}

func (r *Repo) ActiveVehicleIDs(ctx context.Context, on time.Time) (map[string]struct{}, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("repo db is nil")
	}
	day := DateOnly(on)
	var ids []string
	err := r.db.WithContext(ctx).Model(&Rental{}).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Distinct("vehicle_id").
		Pluck("vehicle_id", &ids).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
