package rental

import (
	"context"
	"time"
)

// Store 租约账本的持久化接口。
// CreateNoOverlap 是账本的核心操作：重叠检查与插入必须在同一个
// 临界区内完成（数据库事务加行锁，或内存实现的互斥锁），
// 并发创建同一辆车的重叠租约时恰好一个成功。
type Store interface {
	// CreateNoOverlap 原子地检查车辆在租期内无既有租约并插入。
	// 区间相交时返回包装 errs.ErrConflict 的错误。
	CreateNoOverlap(ctx context.Context, r *Rental) error

	// ByID returns the rental or an errs.ErrNotFound error.
	ByID(ctx context.Context, id string) (*Rental, error)

	// ByCustomer 返回某客户的全部租约，按开始日期升序。
	ByCustomer(ctx context.Context, customerID int) ([]Rental, error)

	// List 分页返回全部租约（开始日期升序）及总数。
	List(ctx context.Context, offset, limit int) ([]Rental, int64, error)

	// HasActiveRental 给定日期车辆是否被某个租约覆盖。
	HasActiveRental(ctx context.Context, vehicleID string, on time.Time) (bool, error)

	// ActiveVehicleIDs 给定日期所有被占用车辆的注册号集合。
	ActiveVehicleIDs(ctx context.Context, on time.Time) (map[string]struct{}, error)
}
