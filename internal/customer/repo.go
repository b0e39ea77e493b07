package customer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wheelease/wheelease/internal/common/errs"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]Customer, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var customers []Customer
	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Customer, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var c Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("customer %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Exists(ctx context.Context, id int) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repo db is nil")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo) Create(ctx context.Context, c *Customer) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}
