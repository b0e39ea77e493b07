package report

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// GormSource 在 MySQL 上用聚合查询实现报表数据源。
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) AvailableVehicles(ctx context.Context, on time.Time) ([]AvailableVehicleRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report db is nil")
	}
	var rows []AvailableVehicleRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT v.registration AS vehicle_id, m.name AS manufacturer, v.model,
		       b.address, b.city, c.name AS category
		FROM vehicle v
		JOIN vehicle_category c ON c.id = v.category_id
		JOIN manufacturer m ON m.id = v.manufacturer_id
		LEFT JOIN branch b ON b.id = v.branch_id
		WHERE NOT EXISTS (
			SELECT 1 FROM rental r
			WHERE r.vehicle_id = v.registration
			  AND r.start_date <= ? AND r.end_date >= ?
		)
		ORDER BY c.name, b.address, v.registration`,
		on, on).Scan(&rows).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return rows, nil
}

func (s *GormSource) RentalSummary(ctx context.Context, on time.Time) ([]RentalSummaryRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report db is nil")
	}
	var rows []RentalSummaryRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT r.start_date AS date, c.name AS category, COUNT(*) AS rentals
		FROM rental r
		JOIN vehicle v ON v.registration = r.vehicle_id
		JOIN vehicle_category c ON c.id = v.category_id
		WHERE r.start_date = ?
		GROUP BY r.start_date, c.name
		ORDER BY c.name`,
		on).Scan(&rows).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return rows, nil
}

func (s *GormSource) UtilisationRate(ctx context.Context, start, end time.Time) ([]UtilisationRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report db is nil")
	}
	days := int(end.Sub(start)/(24*time.Hour)) + 1
	if days < 1 {
		days = 1
	}
	var rows []UtilisationRow
	// 租约与周期的交集天数之和除以周期天数
	err := s.db.WithContext(ctx).Raw(`
		SELECT v.registration AS vehicle_id, m.name AS manufacturer, v.model,
		       COALESCE(SUM(DATEDIFF(LEAST(r.end_date, ?), GREATEST(r.start_date, ?)) + 1), 0) / ? AS rate
		FROM vehicle v
		JOIN manufacturer m ON m.id = v.manufacturer_id
		LEFT JOIN rental r ON r.vehicle_id = v.registration
		     AND r.start_date <= ? AND r.end_date >= ?
		GROUP BY v.registration, m.name, v.model
		ORDER BY rate DESC, v.registration`,
		end, start, days, end, start).Scan(&rows).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return rows, nil
}

func (s *GormSource) Loyalty(ctx context.Context, since time.Time) ([]LoyaltyRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report db is nil")
	}
	var rows []LoyaltyRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.id AS customer_id, c.first_name, c.last_name, c.email,
		       COUNT(*) AS total_rentals
		FROM rental r
		JOIN customer c ON c.id = r.customer_id
		WHERE r.start_date >= ?
		GROUP BY c.id, c.first_name, c.last_name, c.email
		HAVING COUNT(*) >= 2
		ORDER BY total_rentals DESC, c.id`,
		since).Scan(&rows).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return rows, nil
}

func (s *GormSource) LocationPerformance(ctx context.Context) ([]LocationPerformanceRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report db is nil")
	}
	var rows []LocationPerformanceRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT b.id AS branch_id, b.address, b.city,
		       COALESCE(SUM((DATEDIFF(r.end_date, r.start_date) + 1) * dr.price), 0) AS revenue,
		       COALESCE(AVG(DATEDIFF(r.end_date, r.start_date) + 1), 0) AS avg_days,
		       COUNT(r.id) AS rentals
		FROM branch b
		LEFT JOIN vehicle v ON v.branch_id = b.id
		LEFT JOIN daily_rate dr ON dr.id = v.daily_rate_id
		LEFT JOIN rental r ON r.vehicle_id = v.registration
		GROUP BY b.id, b.address, b.city
		ORDER BY revenue DESC, b.id`).Scan(&rows).Error
	if err != nil {
		return nil, errs.Storage(err)
	}
	return rows, nil
}
