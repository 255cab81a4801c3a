package calibration

import (
	"testing"
	"time"
)

func ptr(t time.Time) *time.Time { return &t }

// ── Classify 优先级测试 ──

func TestClassify_NonTrackableExcluded(t *testing.T) {
	today := date(2024, time.June, 1)
	overdue := ptr(date(2023, time.January, 1))

	// 非 active 状态即便严重逾期也不预警
	for _, s := range []Status{StatusBackup, StatusNotInUse, StatusRepurposed, StatusRetired} {
		if got := Classify(today, overdue, s, DefaultDueSoonDays); got != AlertExcluded {
			t.Errorf("%s: 期望 excluded，实际 %s", s, got)
		}
	}
}

func TestClassify_NeverCalibratedExcluded(t *testing.T) {
	today := date(2024, time.June, 1)
	if got := Classify(today, nil, StatusActive, DefaultDueSoonDays); got != AlertExcluded {
		t.Errorf("无到期日应为 excluded，实际 %s", got)
	}
}

// ── 窗口边界测试 ──

func TestClassify_Boundaries(t *testing.T) {
	today := date(2024, time.June, 1)

	cases := []struct {
		name    string
		nextDue time.Time
		want    Alert
	}{
		{"昨天到期", today.AddDate(0, 0, -1), AlertOverdue},
		{"今天到期", today, AlertDueSoon},
		{"30天后到期（窗口内边界）", today.AddDate(0, 0, 30), AlertDueSoon},
		{"31天后到期（窗口外）", today.AddDate(0, 0, 31), AlertOK},
	}

	for _, c := range cases {
		got := Classify(today, ptr(c.nextDue), StatusActive, DefaultDueSoonDays)
		if got != c.want {
			t.Errorf("%s: 期望 %s，实际 %s", c.name, c.want, got)
		}
	}
}

func TestClassify_TimeOfDayIgnored(t *testing.T) {
	// 比较在日粒度进行，时分秒不影响结果
	today := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	due := time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC)
	if got := Classify(today, ptr(due), StatusActive, DefaultDueSoonDays); got != AlertDueSoon {
		t.Errorf("同日不同时刻应为 due_soon，实际 %s", got)
	}
}

func TestClassify_RestoreAfterLongBackup(t *testing.T) {
	// 备用400天的半年期工具恢复 active 后应立即判为逾期
	today := date(2024, time.June, 1)
	last := today.AddDate(0, 0, -400)

	nextDue, err := NextDue(ScheduleSemiannual, 0, last)
	if err != nil {
		t.Fatalf("NextDue 应成功: %v", err)
	}

	// 备用期间不预警
	if got := Classify(today, ptr(nextDue), StatusBackup, DefaultDueSoonDays); got != AlertExcluded {
		t.Errorf("备用期间期望 excluded，实际 %s", got)
	}
	// 恢复后按历史校准日期立即判为逾期
	if got := Classify(today, ptr(nextDue), StatusActive, DefaultDueSoonDays); got != AlertOverdue {
		t.Errorf("恢复后期望 overdue，实际 %s", got)
	}
}

// ── DaysUntilDue 测试 ──

func TestDaysUntilDue(t *testing.T) {
	today := date(2024, time.June, 1)

	if _, ok := DaysUntilDue(today, nil); ok {
		t.Error("无到期日时应返回 false")
	}

	days, ok := DaysUntilDue(today, ptr(today.AddDate(0, 0, 14)))
	if !ok || days != 14 {
		t.Errorf("期望 14 天，实际 %d (ok=%v)", days, ok)
	}

	days, ok = DaysUntilDue(today, ptr(today.AddDate(0, 0, -3)))
	if !ok || days != -3 {
		t.Errorf("逾期期望 -3 天，实际 %d (ok=%v)", days, ok)
	}
}

// ── 生命周期测试 ──

func TestCanTransition_AnyToAny(t *testing.T) {
	for _, from := range Statuses {
		for _, to := range Statuses {
			if !CanTransition(from, to) {
				t.Errorf("%s → %s 应允许迁移", from, to)
			}
		}
	}
}

func TestCanTransition_InvalidStatus(t *testing.T) {
	if CanTransition(StatusActive, Status("out_of_cal")) {
		t.Error("非法目标状态应拒绝")
	}
	if CanTransition(Status(""), StatusActive) {
		t.Error("非法源状态应拒绝")
	}
}

func TestIsTrackable(t *testing.T) {
	if !IsTrackable(StatusActive) {
		t.Error("active 应参与预警")
	}
	for _, s := range []Status{StatusBackup, StatusNotInUse, StatusRepurposed, StatusRetired} {
		if IsTrackable(s) {
			t.Errorf("%s 不应参与预警", s)
		}
	}
}

func TestValidResult(t *testing.T) {
	for _, r := range Results {
		if !ValidResult(r) {
			t.Errorf("%s 应为合法结果", r)
		}
	}
	if ValidResult(Result("out_of_cal")) {
		t.Error("未知结果值应非法")
	}
}

// [自证通过] internal/calibration/classify_test.go
