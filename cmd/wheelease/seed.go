package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheelease/wheelease/internal/common/db"
	"github.com/wheelease/wheelease/internal/customer"
	"github.com/wheelease/wheelease/internal/refdata"
	"github.com/wheelease/wheelease/internal/rental"
	"github.com/wheelease/wheelease/internal/vehicle"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the MySQL schema and seed the reference tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.Storage.Backend != "mysql" {
			return fmt.Errorf("seed requires storage backend mysql, got %q", cfg.Storage.Backend)
		}

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
			return fmt.Errorf("failed to init mysql: %w", err)
		}

		if err := gormDB.AutoMigrate(&vehicle.Vehicle{}, &customer.Customer{}, &rental.Rental{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		if err := refdata.Migrate(gormDB); err != nil {
			return fmt.Errorf("failed to migrate reference tables: %w", err)
		}
		if err := refdata.Seed(context.Background(), gormDB); err != nil {
			return fmt.Errorf("failed to seed reference tables: %w", err)
		}

		log.Infof("schema migrated and reference tables seeded")
		return nil
	},
}
