package rental

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
)

const DefaultPageSize = 10

// VehicleResolver 校验租约引用的车辆存在。
type VehicleResolver interface {
	Exists(ctx context.Context, registration string) (bool, error)
}

// CustomerResolver 校验租约引用的客户存在。
type CustomerResolver interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// Service 租约账本业务逻辑。
type Service struct {
	store     Store
	vehicles  VehicleResolver
	customers CustomerResolver
	log       logger.Logger
	opTimeout time.Duration
	now       func() time.Time
}

func NewService(store Store, vehicles VehicleResolver, customers CustomerResolver, log logger.Logger, opTimeout time.Duration) *Service {
	return &Service{
		store:     store,
		vehicles:  vehicles,
		customers: customers,
		log:       log,
		opTimeout: opTimeout,
		now:       time.Now,
	}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// CreateInput 创建租约的入参。日期只取日部分。
type CreateInput struct {
	VehicleID   string
	CustomerID  int
	DriverID    int
	InsuranceID int
	StartDate   time.Time
	EndDate     time.Time
}

// Create 校验入参与引用，然后原子地写入账本。
// 车辆在租期内已有租约时返回 ErrConflict，由调用方决定换车或换期。
func (s *Service) Create(ctx context.Context, in CreateInput) (*Rental, error) {
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.VehicleID == "" {
		return nil, errs.Validationf("vehicle id is required")
	}
	if in.CustomerID <= 0 {
		return nil, errs.Validationf("customer id is required")
	}
	start := DateOnly(in.StartDate)
	end := DateOnly(in.EndDate)
	if start.IsZero() || end.IsZero() {
		return nil, errs.Validationf("start and end dates are required")
	}
	if end.Before(start) {
		return nil, errs.Validationf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ok, err := s.vehicles.Exists(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NotFoundf("vehicle %s not found", in.VehicleID)
	}
	ok, err = s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NotFoundf("customer %d not found", in.CustomerID)
	}

	r := &Rental{
		ID:          uuid.NewString(),
		VehicleID:   in.VehicleID,
		CustomerID:  in.CustomerID,
		DriverID:    in.DriverID,
		InsuranceID: in.InsuranceID,
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.store.CreateNoOverlap(ctx, r); err != nil {
		return nil, err
	}
	s.log.WithFields(map[string]interface{}{
		"rental":   r.ID,
		"vehicle":  r.VehicleID,
		"customer": r.CustomerID,
	}).Infof("rental created")
	return r, nil
}

// Get 按 id 查询租约。
func (s *Service) Get(ctx context.Context, id string) (*Rental, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.store.ByID(ctx, id)
}

// List 分页列出全部租约。
func (s *Service) List(ctx context.Context, page, pageSize int) ([]Rental, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.store.List(ctx, (page-1)*pageSize, pageSize)
}

// ListByCustomer 返回某客户租约的惰性序列，按开始日期升序。
// 序列可重复遍历，每次遍历重新读取账本；遍历中的存储错误
// 作为第二个值产出一次后终止。
func (s *Service) ListByCustomer(customerID int) iter.Seq2[Rental, error] {
	return func(yield func(Rental, error) bool) {
		ctx, cancel := s.opCtx(context.Background())
		defer cancel()
		list, err := s.store.ByCustomer(ctx, customerID)
		if err != nil {
			yield(Rental{}, err)
			return
		}
		for _, r := range list {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// StateOf 按当前时刻推导租约状态。
func (s *Service) StateOf(r *Rental) State {
	return r.StateAt(s.now())
}
