package refdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/middleware"
)

// Source 对外暴露的参照数据来源。
type Source interface {
	Tables(ctx context.Context) (*Tables, error)
}

// StaticSource 固定的内存参照数据（开发/测试路径）。
type StaticSource struct {
	tables *Tables
}

func NewStaticSource(t *Tables) *StaticSource {
	return &StaticSource{tables: t}
}

func (s *StaticSource) Tables(context.Context) (*Tables, error) {
	return s.tables, nil
}

// Provider 从数据库加载参照表，首次加载后在进程内缓存（只读数据）。
// 加载动作经熔断器保护：数据库持续不可用时快速失败。
type Provider struct {
	db *gorm.DB
	cb *middleware.CircuitBreaker

	mu     sync.RWMutex
	cached *Tables
}

func NewProvider(db *gorm.DB) *Provider {
	return &Provider{
		db: db,
		cb: middleware.NewCircuitBreaker("refdata", 5, 30*time.Second),
	}
}

func (p *Provider) Tables(ctx context.Context) (*Tables, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var t *Tables
	err := p.cb.Call(ctx, func() error {
		loaded, loadErr := p.load(ctx)
		if loadErr != nil {
			return loadErr
		}
		t = loaded
		return nil
	})
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("load reference tables: %w", err))
	}

	p.mu.Lock()
	p.cached = t
	p.mu.Unlock()
	return t, nil
}

func (p *Provider) load(ctx context.Context) (*Tables, error) {
	db := p.db.WithContext(ctx)

	var types []VehicleType
	if err := db.Find(&types).Error; err != nil {
		return nil, err
	}
	var categories []Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}
	var manufacturers []Manufacturer
	if err := db.Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	var models []Model
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	var branches []Branch
	if err := db.Find(&branches).Error; err != nil {
		return nil, err
	}
	var rates []DailyRate
	if err := db.Find(&rates).Error; err != nil {
		return nil, err
	}

	t := &Tables{
		Types:         make(map[int]string, len(types)),
		Categories:    make(map[int]string, len(categories)),
		Manufacturers: make(map[int]string, len(manufacturers)),
		Models:        make(map[int]Model, len(models)),
		Branches:      make(map[int]Branch, len(branches)),
		DailyRates:    make(map[int]DailyRate, len(rates)),
	}
	for _, v := range types {
		t.Types[v.ID] = v.Name
	}
	for _, v := range categories {
		t.Categories[v.ID] = v.Name
	}
	for _, v := range manufacturers {
		t.Manufacturers[v.ID] = v.Name
	}
	for _, v := range models {
		t.Models[v.ID] = v
	}
	for _, v := range branches {
		t.Branches[v.ID] = v
	}
	for _, v := range rates {
		t.DailyRates[v.ID] = v
	}
	return t, nil
}

// Migrate 建参照表。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&VehicleType{}, &Category{}, &Manufacturer{},
		&Model{}, &Branch{}, &DailyRate{},
	)
}

// Seed 按 Fixture 写入参照数据（幂等：主键冲突直接跳过）。
func Seed(ctx context.Context, db *gorm.DB) error {
	f := Fixture()
	tx := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})

	for id, name := range f.Types {
		if err := tx.Create(&VehicleType{ID: id, Name: name}).Error; err != nil {
			return err
		}
	}
	for id, name := range f.Categories {
		if err := tx.Create(&Category{ID: id, Name: name}).Error; err != nil {
			return err
		}
	}
	for id, name := range f.Manufacturers {
		if err := tx.Create(&Manufacturer{ID: id, Name: name}).Error; err != nil {
			return err
		}
	}
	for _, m := range f.Models {
		m := m
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	for _, b := range f.Branches {
		b := b
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
	}
	for _, r := range f.DailyRates {
		r := r
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
	}
	return nil
}
