package rental

import "time"

// State 租约的推导状态。账本从不存储它，始终按当前日期计算，
// 因此不存在过期的状态字段需要修复。
type State string

const (
	StateScheduled State = "Scheduled"
	StateActive    State = "Active"
	StateCompleted State = "Completed"
)

// DateOnly 截断到 UTC 零点。账本里的所有日期比较都以天为粒度。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StateAt 按给定时刻推导租约状态。
func (r *Rental) StateAt(now time.Time) State {
	day := DateOnly(now)
	switch {
	case day.Before(DateOnly(r.StartDate)):
		return StateScheduled
	case day.After(DateOnly(r.EndDate)):
		return StateCompleted
	default:
		return StateActive
	}
}

// ActiveOn 给定日期是否落在租期闭区间内。
func (r *Rental) ActiveOn(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(r.StartDate)) && !d.After(DateOnly(r.EndDate))
}

// Overlaps 两个闭区间是否相交。共享端点的日期算冲突：
// 一辆车不能在同一天既归还又交付。
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOnly(aStart).After(DateOnly(bEnd)) && !DateOnly(aEnd).Before(DateOnly(bStart))
}
