package vehicle

import (
	"context"
)

// Store 车辆登记表的存储抽象。
// 两个实现：GORM/MySQL（生产）与内存字典（开发、测试）。
type Store interface {
	// List 返回过滤后的车辆明细分页，total 为过滤后的总行数。
	List(ctx context.Context, f Filter, offset, limit int) ([]Details, int64, error)
	// Get 返回单辆车的明细；不存在时返回 errs.ErrNotFound。
	Get(ctx context.Context, id string) (*Details, error)
	// Exists 仅检查主键是否存在。
	Exists(ctx context.Context, id string) (bool, error)
	// Create 写入新车辆并返回主键。内存实现忽略传入的 Registration，
	// 自行分配递增数字键；持久化实现以登记号为主键。
	Create(ctx context.Context, v *Vehicle) (string, error)
	// Update 按字段覆盖；不存在时返回 errs.ErrNotFound。
	Update(ctx context.Context, id string, fields UpdateFields) error
	// Delete 幂等：删除不存在的主键不算错误。
	Delete(ctx context.Context, id string) error
}
