package customer

import (
	"context"
	"sort"
	"sync"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// MemoryStore 内存字典实现（开发/测试路径）。
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[int]*Customer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{customers: make(map[int]*Customer)}
}

// All 返回全部客户（报表投影用）。
func (m *MemoryStore) All(ctx context.Context) ([]Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, 0, len(m.customers))
	for id := range m.customers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	all := make([]Customer, 0, len(ids))
	for _, id := range ids {
		all = append(all, *m.customers[id])
	}
	return all, nil
}

func (m *MemoryStore) List(ctx context.Context, offset, limit int) ([]Customer, int64, error) {
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

	ids := make([]int, 0, len(m.customers))
	for id := range m.customers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	total := int64(len(ids))
	if offset >= len(ids) {
		return []Customer{}, total, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	out := make([]Customer, 0, end-offset)
	for _, id := range ids[offset:end] {
		out = append(out, *m.customers[id])
	}
	return out, total, nil
}

func (m *MemoryStore) Get(ctx context.Context, id int) (*Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, errs.NotFoundf("customer %d", id)
	}
	copied := *c
	return &copied, nil
}

func (m *MemoryStore) Exists(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.customers[id]
	return ok, nil
}

func (m *MemoryStore) Create(ctx context.Context, c *Customer) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := 1
	for id := range m.customers {
		if id >= next {
			next = id + 1
		}
	}
	stored := *c
	stored.ID = next
	m.customers[next] = &stored
	return next, nil
}
