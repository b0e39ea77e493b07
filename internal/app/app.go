package app

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/wheelease/wheelease/internal/common/config"
	"github.com/wheelease/wheelease/internal/common/db"
	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/customer"
	"github.com/wheelease/wheelease/internal/refdata"
	"github.com/wheelease/wheelease/internal/rental"
	"github.com/wheelease/wheelease/internal/report"
	"github.com/wheelease/wheelease/internal/vehicle"
)

// App 按配置装配好的全套服务。
// backend=mysql 走 GORM 仓储，backend=memory 走内存字典（开发/测试）。
type App struct {
	Vehicles  *vehicle.Service
	Customers *customer.Service
	Rentals   *rental.Service
	Reports   *report.Service
	Ref       refdata.Source

	// DB 仅 mysql 后端非空
	DB *gorm.DB
}

// New 装配存储、服务与报表数据源。
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	switch cfg.Storage.Backend {
	case "mysql":
		return newMySQL(cfg, log)
	case "memory", "":
		return newMemory(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newMySQL(cfg *config.Config, log logger.Logger) (*App, error) {
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init mysql: %w", err)
	}
	if err := gormDB.AutoMigrate(&vehicle.Vehicle{}, &customer.Customer{}, &rental.Rental{}); err != nil {
		return nil, fmt.Errorf("failed to migrate mysql schema: %w", err)
	}
	if err := refdata.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("failed to migrate reference tables: %w", err)
	}
	if err := refdata.Seed(context.Background(), gormDB); err != nil {
		return nil, fmt.Errorf("failed to seed reference tables: %w", err)
	}

	ref := refdata.NewProvider(gormDB)
	opTimeout := cfg.Storage.OpTimeout()

	vehicleStore := vehicle.NewRepo(gormDB)
	customerStore := customer.NewRepo(gormDB)
	rentalStore := rental.NewRepo(gormDB)

	return &App{
		Vehicles:  vehicle.NewService(vehicleStore, ref, rentalStore, log, opTimeout),
		Customers: customer.NewService(customerStore, log, opTimeout),
		Rentals:   rental.NewService(rentalStore, vehicleStore, customerStore, log, opTimeout),
		Reports:   report.NewService(report.NewGormSource(gormDB), log, opTimeout),
		Ref:       ref,
		DB:        gormDB,
	}, nil
}

func newMemory(cfg *config.Config, log logger.Logger) *App {
	tables := refdata.Fixture()
	ref := refdata.NewStaticSource(tables)
	opTimeout := cfg.Storage.OpTimeout()

	vehicleStore := vehicle.NewMemoryStore(tables)
	vehicleStore.SeedFixture()
	customerStore := customer.NewMemoryStore()
	rentalStore := rental.NewMemoryStore()

	src := report.NewMemorySource(vehicleStore, customerStore, rentalStore, tables)

	return &App{
		Vehicles:  vehicle.NewService(vehicleStore, ref, rentalStore, log, opTimeout),
		Customers: customer.NewService(customerStore, log, opTimeout),
		Rentals:   rental.NewService(rentalStore, vehicleStore, customerStore, log, opTimeout),
		Reports:   report.NewService(src, log, opTimeout),
		Ref:       ref,
	}
}

// Register 挂载全部业务路由。
func (a *App) Register(r *mux.Router) error {
	vehicle.NewHandler(a.Vehicles).Register(r)
	customer.NewHandler(a.Customers).Register(r)
	rental.NewHandler(a.Rentals).Register(r)
	report.NewHandler(a.Reports).Register(r)
	refdata.NewHandler(a.Ref).Register(r)
	return nil
}
