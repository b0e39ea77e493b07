package customer

import (
	"context"
	"strings"
	"time"

	"github.com/wheelease/wheelease/internal/common/errs"
	"github.com/wheelease/wheelease/internal/common/logger"
)

const DefaultPageSize = 10

// Service 封装客户登记表的用例。
type Service struct {
	store     Store
	log       logger.Logger
	opTimeout time.Duration
}

func NewService(store Store, log logger.Logger, opTimeout time.Duration) *Service {
	return &Service{store: store, log: log, opTimeout: opTimeout}
}

// CreateInput 新建客户的入参。
type CreateInput struct {
	FirstName     string
	LastName      string
	AddressLine1  string
	AddressLine2  string
	City          string
	Postcode      string
	PhoneNumber   string
	Email         string
	LicenseNumber string
	DateOfBirth   time.Time
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *Service) List(ctx context.Context, page, pageSize int) ([]Customer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	items, total, err := s.store.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, errs.Storage(err)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Customer, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, errs.Storage(err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (int, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)
	if firstName == "" || lastName == "" {
		return 0, errs.Validationf("first/last name required")
	}
	if email == "" {
		return 0, errs.Validationf("email required")
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	id, err := s.store.Create(ctx, &Customer{
		FirstName:     firstName,
		LastName:      lastName,
		AddressLine1:  strings.TrimSpace(in.AddressLine1),
		AddressLine2:  strings.TrimSpace(in.AddressLine2),
		City:          strings.TrimSpace(in.City),
		Postcode:      strings.TrimSpace(in.Postcode),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		Email:         email,
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		DateOfBirth:   in.DateOfBirth,
	})
	if err != nil {
		return 0, errs.Storage(err)
	}

	if s.log != nil {
		s.log.WithField("customer_id", id).Info("customer created")
	}
	return id, nil
}
