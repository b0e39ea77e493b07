package vehicle

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/refdata"
)

// MemoryStore 内存字典实现（开发/测试路径）。
// 主键为递增数字：max(现有 id)+1，空表从 1 开始。
type MemoryStore struct {
	mu       sync.RWMutex
	tables   *refdata.Tables
	vehicles map[int]*Vehicle
}

func NewMemoryStore(tables *refdata.Tables) *MemoryStore {
	return &MemoryStore{
		tables:   tables,
		vehicles: make(map[int]*Vehicle),
	}
}

// SeedFixture 写入与原始字典库一致的三辆示例车。
func (m *MemoryStore) SeedFixture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[1] = &Vehicle{Registration: "1", TypeID: 1, CategoryID: 1, ManufacturerID: 6, ModelName: "Yaris Hatchback", BranchID: 1, DailyRateID: 1, OpStatus: StatusAvailable}
	m.vehicles[2] = &Vehicle{Registration: "2", TypeID: 2, CategoryID: 2, ManufacturerID: 8, ModelName: "Gold Wing Tour", BranchID: 2, DailyRateID: 2, OpStatus: StatusInService}
	m.vehicles[3] = &Vehicle{Registration: "3", TypeID: 3, CategoryID: 3, ManufacturerID: 9, ModelName: "SXL 150", BranchID: 1, DailyRateID: 3, OpStatus: StatusUnavailable}
}

func (m *MemoryStore) details(v *Vehicle) Details {
	typeName, _ := m.tables.TypeName(v.TypeID)
	category, _ := m.tables.CategoryName(v.CategoryID)
	manufacturer, _ := m.tables.ManufacturerName(v.ManufacturerID)
	branch, _ := m.tables.BranchName(v.BranchID)
	var price float64
	if rate, ok := m.tables.DailyRates[v.DailyRateID]; ok {
		price = rate.Price
	}
	return Details{
		Registration:   v.Registration,
		Type:           typeName,
		Category:       category,
		Manufacturer:   manufacturer,
		Model:          v.ModelName,
		Mileage:        v.Mileage,
		Branch:         branch,
		DailyRatePrice: price,
		Status:         v.OpStatus,
	}
}

func matches(d Details, f Filter) bool {
	if f.Category != "" && d.Category != f.Category {
		return false
	}
	if f.Manufacturer != "" && d.Manufacturer != f.Manufacturer {
		return false
	}
	if f.Model != "" && d.Model != f.Model {
		return false
	}
	return true
}

func (m *MemoryStore) List(ctx context.Context, f Filter, offset, limit int) ([]Details, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int, 0, len(m.vehicles))
	for id := range m.vehicles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	filtered := make([]Details, 0, len(ids))
	for _, id := range ids {
		d := m.details(m.vehicles[id])
		if matches(d, f) {
			filtered = append(filtered, d)
		}
	}

	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []Details{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// All 返回全部车辆的原始记录（报表投影用）。
func (m *MemoryStore) All(ctx context.Context) ([]Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, 0, len(m.vehicles))
	for id := range m.vehicles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	all := make([]Vehicle, 0, len(ids))
	for _, id := range ids {
		all = append(all, *m.vehicles[id])
	}
	return all, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Details, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := strconv.Atoi(id)
	if err != nil {
		return nil, errs.NotFoundf("vehicle %s", id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vehicles[key]
	if !ok {
		return nil, errs.NotFoundf("vehicle %s", id)
	}
	d := m.details(v)
	return &d, nil
}

func (m *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := strconv.Atoi(id)
	if err != nil {
		return false, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vehicles[key]
	return ok, nil
}

func (m *MemoryStore) Create(ctx context.Context, v *Vehicle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := 1
	for id := range m.vehicles {
		if id >= next {
			next = id + 1
		}
	}

	stored := *v
	stored.Registration = strconv.Itoa(next)
	m.vehicles[next] = &stored
	return stored.Registration, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fields UpdateFields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := strconv.Atoi(id)
	if err != nil {
		return errs.NotFoundf("vehicle %s", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[key]
	if !ok {
		return errs.NotFoundf("vehicle %s", id)
	}
	if fields.ModelName != nil {
		v.ModelName = *fields.ModelName
	}
	if fields.Mileage != nil {
		v.Mileage = *fields.Mileage
	}
	if fields.BranchID != nil {
		v.BranchID = *fields.BranchID
	}
	if fields.DailyRateID != nil {
		v.DailyRateID = *fields.DailyRateID
	}
	if fields.OpStatus != nil {
		v.OpStatus = *fields.OpStatus
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vehicles, key)
	return nil
}
