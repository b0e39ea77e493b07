package customer

import "context"

// Store 客户登记表的存储抽象。客户不提供更新/删除操作。
type Store interface {
	List(ctx context.Context, offset, limit int) ([]Customer, int64, error)
	Get(ctx context.Context, id int) (*Customer, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, c *Customer) (int, error)
}
