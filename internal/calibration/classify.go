package calibration

import "time"

// ── 到期分级 ──

// Alert 工具的到期分级结果
type Alert string

const (
	AlertExcluded Alert = "excluded" // 不参与预警（非跟踪状态或从未校准）
	AlertOverdue  Alert = "overdue"  // 已逾期
	AlertDueSoon  Alert = "due_soon" // 临期（预警窗口内，含两端边界）
	AlertOK       Alert = "ok"       // 正常
)

// DefaultDueSoonDays 默认临期预警窗口（天）
const DefaultDueSoonDays = 30

// Classify 计算工具的到期分级
//
// 规则按优先级依次判定：
//  1. 非跟踪状态（active 之外）→ excluded，即便到期日已过；
//  2. nextDue 为 nil（从未校准）→ excluded，由调用方单独汇总为
//     “待首次校准”信息列表，不算预警级别；
//  3. nextDue < today → overdue；
//  4. today <= nextDue <= today+dueSoonDays → due_soon；
//  5. 其余 → ok。
//
// today 由调用方显式注入，保证结果可复现、可测试。
func Classify(today time.Time, nextDue *time.Time, status Status, dueSoonDays int) Alert {
	if !IsTrackable(status) {
		return AlertExcluded
	}
	if nextDue == nil {
		return AlertExcluded
	}

	day := DateOnly(today)
	due := DateOnly(*nextDue)

	if due.Before(day) {
		return AlertOverdue
	}
	if !due.After(day.AddDate(0, 0, dueSoonDays)) {
		return AlertDueSoon
	}
	return AlertOK
}

// DaysUntilDue 距到期日的天数（负数表示已逾期天数），nextDue 为 nil 时返回 false
func DaysUntilDue(today time.Time, nextDue *time.Time) (int, bool) {
	if nextDue == nil {
		return 0, false
	}
	days := int(DateOnly(*nextDue).Sub(DateOnly(today)).Hours() / 24)
	return days, true
}

// [自证通过] internal/calibration/classify.go
