package vehicle

import (
	"context"
	"strings"
	"time"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/refdata"
)

// DefaultPageSize 列表默认页大小。
const DefaultPageSize = 10

// Ledger 是车辆登记表对租赁账本的只读依赖：
// 可用性由账本推导，登记表自身绝不写 Rented。
type Ledger interface {
	HasActiveRental(ctx context.Context, vehicleID string, on time.Time) (bool, error)
	ActiveVehicleIDs(ctx context.Context, on time.Time) (map[string]struct{}, error)
}

// Service 封装车辆登记表的用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	store     Store
	ref       refdata.Source
	ledger    Ledger
	log       logger.Logger
	opTimeout time.Duration
	now       func() time.Time
}

func NewService(store Store, ref refdata.Source, ledger Ledger, log logger.Logger, opTimeout time.Duration) *Service {
	return &Service{
		store:     store,
		ref:       ref,
		ledger:    ledger,
		log:       log,
		opTimeout: opTimeout,
		now:       time.Now,
	}
}

// CreateInput 新建车辆的入参。
type CreateInput struct {
	Registration   string
	TypeID         int
	CategoryID     int
	ManufacturerID int
	ModelName      string
	Mileage        int
	BranchID       int
	DailyRateID    int
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// List 分页列出车辆明细，可用性按账本推导。
func (s *Service) List(ctx context.Context, f Filter, page, pageSize int) ([]Details, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	items, total, err := s.store.List(ctx, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, errs.Storage(err)
	}

	active, err := s.ledger.ActiveVehicleIDs(ctx, s.now().UTC())
	if err != nil {
		return nil, 0, errs.Storage(err)
	}
	for i := range items {
		items[i].Status = deriveStatus(items[i], active)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Details, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.Validationf("id required")
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, errs.Storage(err)
	}

	rented, err := s.ledger.HasActiveRental(ctx, id, s.now().UTC())
	if err != nil {
		return nil, errs.Storage(err)
	}
	if rented {
		d.Status = StatusRented
	} else if d.Status == StatusRented {
		// 库里残留的 Rented 视为缓存漂移，以账本为准
		d.Status = StatusAvailable
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	tables, err := s.ref.Tables(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := tables.TypeName(in.TypeID); !ok {
		return "", errs.Validationf("unknown vehicle type %d", in.TypeID)
	}
	if _, ok := tables.CategoryName(in.CategoryID); !ok {
		return "", errs.Validationf("unknown category %d", in.CategoryID)
	}
	if _, ok := tables.ManufacturerName(in.ManufacturerID); !ok {
		return "", errs.Validationf("unknown manufacturer %d", in.ManufacturerID)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	id, err := s.store.Create(ctx, &Vehicle{
		Registration:   strings.TrimSpace(in.Registration),
		TypeID:         in.TypeID,
		CategoryID:     in.CategoryID,
		ManufacturerID: in.ManufacturerID,
		ModelName:      strings.TrimSpace(in.ModelName),
		Mileage:        in.Mileage,
		BranchID:       in.BranchID,
		DailyRateID:    in.DailyRateID,
		OpStatus:       StatusAvailable,
	})
	if err != nil {
		return "", errs.Storage(err)
	}

	if s.log != nil {
		s.log.WithField("vehicle_id", id).Info("vehicle created")
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, fields UpdateFields) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.Validationf("id required")
	}
	if fields.OpStatus != nil && *fields.OpStatus == StatusRented {
		return errs.Validationf("rented status is ledger-derived and cannot be set")
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.store.Update(ctx, id, fields); err != nil {
		return errs.Storage(err)
	}
	return nil
}

// Delete 幂等删除；有进行中的租约时拒绝，避免产生孤儿租赁记录。
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.Validationf("id required")
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return errs.Storage(err)
	}
	if !exists {
		return nil
	}

	rented, err := s.ledger.HasActiveRental(ctx, id, s.now().UTC())
	if err != nil {
		return errs.Storage(err)
	}
	if rented {
		return errs.Conflictf("vehicle %s has an active rental", id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return errs.Storage(err)
	}
	if s.log != nil {
		s.log.WithField("vehicle_id", id).Info("vehicle deleted")
	}
	return nil
}

func deriveStatus(d Details, active map[string]struct{}) Status {
	if _, ok := active[d.Registration]; ok {
		return StatusRented
	}
	if d.Status == StatusRented || d.Status == "" {
		return StatusAvailable
	}
	return d.Status
}
